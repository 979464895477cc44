package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajwerner/rbtree/collection"
)

const people = `
name: people
add_policy: best-effort
lookup_cache: 64
current_index: by_age
fields:
  - {name: id, kind: string}
  - {name: name, kind: string}
  - {name: age, kind: int}
  - {name: score, kind: float}
indices:
  - {name: by_id, fields: [id], unique: true}
  - {name: by_age, fields: [age, name]}
records:
  - {id: a, name: ann, age: 30, score: 1}
  - {id: b, name: bob, age: 25, score: 2.5}
  - {id: a, name: amy, age: 41}
log:
  level: debug
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(people))
	require.NoError(t, err)
	assert.Equal(t, "people", d.Name)
	assert.Len(t, d.Fields, 4)
	assert.Equal(t, Index{Name: "by_id", Fields: []string{"id"}, Unique: true}, d.Indices[0])
	assert.Equal(t, "debug", d.Log.Level)
	assert.Equal(t, int64(64), d.LookupCache)
	assert.Len(t, d.Records, 3)
}

func TestBuild(t *testing.T) {
	d, err := Parse([]byte(people))
	require.NoError(t, err)
	c, err := d.Build()
	require.ErrorIs(t, err, collection.ErrDuplicateKey)
	require.NotNil(t, c)
	defer c.Close()

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, collection.BestEffort, c.Policy())
	require.NotNil(t, c.CurrentIndex())
	assert.Equal(t, "by_age", c.CurrentIndex().Name())
	byID, err := c.Index("by_id")
	require.NoError(t, err)
	assert.Equal(t, 2, byID.Len())

	r, err := byID.Lookup(collection.StringValue("a"))
	require.NoError(t, err)
	score, err := r.Get("score")
	require.NoError(t, err)
	assert.Equal(t, collection.FloatValue(1), score)
	require.NoError(t, c.Verify())
}

func TestParseRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"missing name":   "fields: [{name: a, kind: int}]",
		"no fields":      "name: x",
		"bad kind":       "name: x\nfields: [{name: a, kind: decimal}]",
		"unknown key":    "name: x\ncolour: red\nfields: [{name: a, kind: int}]",
		"bad policy":     "name: x\nadd_policy: sometimes\nfields: [{name: a, kind: int}]",
		"dup field":      "name: x\nfields: [{name: a, kind: int}, {name: a, kind: string}]",
		"index field":    "name: x\nfields: [{name: a, kind: int}]\nindices: [{name: i, fields: [b]}]",
		"empty index":    "name: x\nfields: [{name: a, kind: int}]\nindices: [{name: i, fields: []}]",
		"dup index":      "name: x\nfields: [{name: a, kind: int}]\nindices: [{name: i, fields: [a]}, {name: i, fields: [a]}]",
		"current":        "name: x\ncurrent_index: j\nfields: [{name: a, kind: int}]",
		"record field":   "name: x\nfields: [{name: a, kind: int}]\nrecords: [{b: 1}]",
		"negative cache": "name: x\nlookup_cache: -1\nfields: [{name: a, kind: int}]",
		"bad log level":  "name: x\nfields: [{name: a, kind: int}]\nlog: {level: loud}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestBuildKindMismatch(t *testing.T) {
	d, err := Parse([]byte("name: x\nfields: [{name: a, kind: int}]\nrecords: [{a: nope}]"))
	require.NoError(t, err)
	_, err = d.Build()
	assert.ErrorIs(t, err, collection.ErrKindMismatch)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.yaml")
	require.NoError(t, os.WriteFile(path, []byte(people), 0o644))
	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "people", d.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

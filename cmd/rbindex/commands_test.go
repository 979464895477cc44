package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataset = `
name: cli_people
current_index: by_id
fields:
  - {name: id, kind: string}
  - {name: name, kind: string}
  - {name: age, kind: int}
indices:
  - {name: by_id, fields: [id], unique: true}
  - {name: by_age, fields: [age, name]}
records:
  - {id: a, name: ann, age: 30}
  - {id: b, name: bob, age: 25}
  - {id: c, name: cat, age: 35}
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestDemo(t *testing.T) {
	out, err := run(t, "demo")
	require.NoError(t, err)
	got := lines(out)
	require.GreaterOrEqual(t, len(got), 9)
	assert.Equal(t, "insert 5: 5;", got[0])
	assert.Equal(t, "insert 3: (3*,)5;", got[1])
	assert.Equal(t, "insert 9: ((1*,4*)3,(7*,9*)8)5;", got[6])
	assert.Equal(t, "in order: 1 3 4 5 7 8 9", got[7])
	assert.Equal(t, []string{
		"5 (black)",
		"  3 (black)",
		"    1 (red)",
		"    4 (red)",
		"  8 (black)",
		"    7 (red)",
		"    9 (red)",
	}, got[8:])
}

func TestScan(t *testing.T) {
	path := writeDataset(t)
	out, err := run(t, "--data", path, "scan")
	require.NoError(t, err)
	assert.Equal(t, []string{
		`{id="a", name="ann", age=30}`,
		`{id="b", name="bob", age=25}`,
		`{id="c", name="cat", age=35}`,
	}, lines(out))

	out, err = run(t, "--data", path, "scan", "--index", "by_age")
	require.NoError(t, err)
	assert.Equal(t, []string{
		`{id="b", name="bob", age=25}`,
		`{id="a", name="ann", age=30}`,
		`{id="c", name="cat", age=35}`,
	}, lines(out))
}

func TestSearchAndLookup(t *testing.T) {
	path := writeDataset(t)
	out, err := run(t, "--data", path, "search", "--index", "by_age", "30")
	require.NoError(t, err)
	assert.Equal(t, []string{`{id="a", name="ann", age=30}`}, lines(out))

	out, err = run(t, "--data", path, "lookup", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{`{id="b", name="bob", age=25}`}, lines(out))

	_, err = run(t, "--data", path, "lookup", "z")
	assert.Error(t, err)
	_, err = run(t, "--data", path, "search", "--index", "by_age", "old")
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	path := writeDataset(t)
	out, err := run(t, "--data", path, "update", "--index", "by_age",
		"--field", "age", "--value", "40", "30", "ann")
	require.NoError(t, err)
	assert.Equal(t, []string{
		`updated: {id="a", name="ann", age=40}`,
		`{id="b", name="bob", age=25}`,
		`{id="c", name="cat", age=35}`,
		`{id="a", name="ann", age=40}`,
	}, lines(out))

	_, err = run(t, "--data", path, "update", "--field", "id", "--value", "b", "a")
	assert.Error(t, err)
}

func TestDotAndVerify(t *testing.T) {
	path := writeDataset(t)
	out, err := run(t, "--data", path, "dot")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph RBTree {\n"))
	assert.Contains(t, out, `[label="{\"b\"}"];`)
	assert.Contains(t, out, `color="red"`)

	out, err = run(t, "--data", path, "verify")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "ok by_id (3 records")
	assert.Contains(t, got[1], "ok by_age (3 records")
}

func TestErrors(t *testing.T) {
	_, err := run(t, "scan")
	assert.ErrorContains(t, err, "--data is required")
	_, err = run(t, "--data", writeDataset(t), "scan", "--index", "missing")
	assert.Error(t, err)
	_, err = run(t, "--data", filepath.Join(t.TempDir(), "missing.yaml"), "verify")
	assert.Error(t, err)
	_, err = run(t, "--data", writeDataset(t), "--log-level", "loud", "verify")
	assert.Error(t, err)
}

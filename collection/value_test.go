package collection

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	default:
		return 0
	}
}

func randValue(rng *rand.Rand) Value {
	switch rng.Intn(5) {
	case 0:
		return Null()
	case 1:
		b := make([]byte, rng.Intn(4))
		for i := range b {
			b[i] = []byte{0x00, 0x01, 'a', 'b', 0xff}[rng.Intn(5)]
		}
		return StringValue(string(b))
	case 2:
		return IntValue(rng.Int63n(11) - 5 + []int64{0, math.MinInt64 + 5, math.MaxInt64 - 5}[rng.Intn(3)])
	case 3:
		return FloatValue([]float64{
			math.Inf(-1), -1.5, -1, math.Copysign(0, -1), 0, 0.25, 1, math.Inf(1), math.NaN(),
		}[rng.Intn(9)])
	default:
		return BoolValue(rng.Intn(2) == 0)
	}
}

func TestKeyEncodingOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		a, b := randValue(rng), randValue(rng)
		ka, kb := makeKey([]Value{a}, nil), makeKey([]Value{b}, nil)
		require.Equal(t, sign(Compare(a, b)), sign(compareKeys(ka, kb)),
			"Compare(%#v, %#v)", a, b)
	}
}

func TestCompositeKeyOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	compareTuples := func(a, b []Value) int {
		for i := range a {
			if c := Compare(a[i], b[i]); c != 0 {
				return c
			}
		}
		return 0
	}
	for i := 0; i < 5000; i++ {
		a := []Value{randValue(rng), randValue(rng)}
		b := []Value{randValue(rng), randValue(rng)}
		require.Equal(t, sign(compareTuples(a, b)),
			sign(compareKeys(makeKey(a, nil), makeKey(b, nil))), "%v vs %v", a, b)
	}
}

func TestStringKeyPrefixes(t *testing.T) {
	a := makeKey([]Value{StringValue("a"), StringValue("z")}, nil)
	ab := makeKey([]Value{StringValue("ab"), StringValue("a")}, nil)
	assert.Negative(t, compareKeys(a, ab))
	assert.False(t, strings.HasPrefix(ab.enc, prefixKey([]Value{StringValue("a")})))
	assert.Equal(t, `{"a","z"}`, a.String())
}

func TestParseValue(t *testing.T) {
	for _, tc := range []struct {
		kind Kind
		in   string
		exp  Value
	}{
		{KindString, "null", StringValue("null")},
		{KindInt, "-12", IntValue(-12)},
		{KindInt, "null", Null()},
		{KindFloat, "2.5", FloatValue(2.5)},
		{KindBool, "true", BoolValue(true)},
	} {
		got, err := ParseValue(tc.kind, tc.in)
		require.NoError(t, err)
		assert.Zero(t, Compare(tc.exp, got), "%v %q", tc.kind, tc.in)
		assert.Equal(t, tc.exp.Kind(), got.Kind())
	}
	_, err := ParseValue(KindInt, "x")
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestValueOf(t *testing.T) {
	v, err := ValueOf(7)
	require.NoError(t, err)
	assert.Equal(t, IntValue(7), v)
	v, err = ValueOf(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	_, err = ValueOf([]int{1})
	assert.Error(t, err)
	assert.Equal(t, "-0.5", FloatValue(-0.5).String())
	assert.Equal(t, "null", Null().String())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("INT")
	require.NoError(t, err)
	assert.Equal(t, KindInt, k)
	_, err = ParseKind("decimal")
	assert.Error(t, err)
}

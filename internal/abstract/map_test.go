package abstract

import (
	"cmp"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

// countAug tracks the number of items in the subtree so that the tests
// exercise augmentation maintenance across rotations.
type countAug struct {
	n int
}

func (a *countAug) Update(
	_ *Config[int, struct{}], n Node[int, *countAug], _ UpdateMeta[int],
) (changed bool) {
	c := 1
	for _, d := range [2]Dir{Pred, Succ} {
		if child := n.Child(d); child != nil {
			c += child.n
		}
	}
	changed = a.n != c
	a.n = c
	return changed
}

type testMap = Map[int, int, struct{}, countAug, *countAug]

func makeTestMap() testMap {
	return MakeMap[int, int, struct{}, countAug, *countAug](struct{}{}, cmp.Compare[int])
}

func verify(t *testing.T, m *testMap) {
	t.Helper()
	if err := m.Verify(); err != nil {
		t.Fatalf("%v\n%s", err, m.String())
	}
	if m.root != nil && m.root.aug.n != m.Len() {
		t.Fatalf("root count %d, length %d", m.root.aug.n, m.Len())
	}
}

func keys(m *testMap) []int {
	var out []int
	it := m.MakeIter()
	for it.Advance() {
		out = append(out, it.Cur())
	}
	return out
}

func assertKeys(t *testing.T, m *testMap, exp ...int) {
	t.Helper()
	got := keys(m)
	if len(got) != len(exp) {
		t.Fatalf("expected %v, got %v", exp, got)
	}
	for i := range exp {
		if got[i] != exp[i] {
			t.Fatalf("expected %v, got %v", exp, got)
		}
	}
}

func TestInsertScenario(t *testing.T) {
	m := makeTestMap()
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		if !m.Insert(k, k*10) {
			t.Fatalf("insert %d reported duplicate", k)
		}
		verify(t, &m)
	}
	assertKeys(t, &m, 1, 3, 4, 5, 7, 8, 9)
	if m.Len() != 7 {
		t.Fatalf("expected length 7, got %d", m.Len())
	}
	if got := m.String(); got != "((1*,4*)3,(7*,9*)8)5;" {
		t.Fatalf("unexpected shape %s", got)
	}
}

func TestInsertAscendingRotates(t *testing.T) {
	m := makeTestMap()
	for i := 1; i <= 3; i++ {
		m.Insert(i, i)
	}
	if got := m.String(); got != "(1*,3*)2;" {
		t.Fatalf("outer case did not rotate: %s", got)
	}
	m.Reset()
	m.Insert(3, 0)
	m.Insert(1, 0)
	m.Insert(2, 0)
	if got := m.String(); got != "(1*,3*)2;" {
		t.Fatalf("inner case did not double rotate: %s", got)
	}
	verify(t, &m)
}

func TestInsertDuplicate(t *testing.T) {
	m := makeTestMap()
	for _, k := range []int{2, 1, 3} {
		m.Insert(k, k)
	}
	before := m.String()
	if m.Insert(2, 99) {
		t.Fatal("duplicate insert succeeded")
	}
	if m.Len() != 3 || m.String() != before {
		t.Fatalf("duplicate insert changed the tree: %s", m.String())
	}
	if v, _ := m.Get(2); v != 2 {
		t.Fatalf("duplicate insert replaced value: %d", v)
	}
	if old, replaced := m.Upsert(2, 99); !replaced || old != 2 {
		t.Fatalf("upsert: got %d %v", old, replaced)
	}
	if v, _ := m.Get(2); v != 99 {
		t.Fatalf("upsert did not replace value: %d", v)
	}
	verify(t, &m)
}

func TestDeleteCases(t *testing.T) {
	m := makeTestMap()
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		m.Insert(k, k)
	}
	// Two children, red leaf, two children again, then the root.
	for _, k := range []int{3, 1, 8, 5} {
		if _, _, found := m.Delete(k); !found {
			t.Fatalf("delete %d not found", k)
		}
		verify(t, &m)
		if m.Contains(k) {
			t.Fatalf("%d still present", k)
		}
	}
	assertKeys(t, &m, 4, 7, 9)
	if _, _, found := m.Delete(42); found {
		t.Fatal("deleted missing key")
	}
	for _, k := range []int{4, 7, 9} {
		m.Delete(k)
		verify(t, &m)
	}
	if m.Len() != 0 || m.String() != ";" {
		t.Fatalf("expected empty tree, got %s", m.String())
	}
}

func TestDeleteReturnsEntry(t *testing.T) {
	m := makeTestMap()
	for i := 0; i < 10; i++ {
		m.Insert(i, -i)
	}
	k, v, found := m.Delete(4)
	if !found || k != 4 || v != -4 {
		t.Fatalf("got %d %d %v", k, v, found)
	}
}

func TestRandomInsertDelete(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		m := makeTestMap()
		const N = 300
		present := map[int]bool{}
		for op := 0; op < 4*N; op++ {
			k := rng.Intn(N)
			if rng.Float64() < .6 {
				if inserted := m.Insert(k, k); inserted == present[k] {
					t.Fatalf("insert %d: inserted=%v present=%v", k, inserted, present[k])
				}
				present[k] = true
			} else {
				if _, _, found := m.Delete(k); found != present[k] {
					t.Fatalf("delete %d: found=%v present=%v", k, found, present[k])
				}
				delete(present, k)
			}
			verify(t, &m)
		}
		for k := 0; k < N; k++ {
			if m.Contains(k) != present[k] {
				t.Fatalf("contains %d: %v", k, m.Contains(k))
			}
		}
		var exp []int
		for k := 0; k < N; k++ {
			if present[k] {
				exp = append(exp, k)
			}
		}
		assertKeys(t, &m, exp...)
	}
}

func TestHeightBound(t *testing.T) {
	m := makeTestMap()
	const N = 1 << 12
	for i := 0; i < N; i++ {
		m.Insert(i, i)
	}
	verify(t, &m)
	// 2*log2(N+1)
	if h := m.Height(); h > 26 {
		t.Fatalf("height %d exceeds bound for %d items", h, N)
	}
}

func TestIteratorPrevNext(t *testing.T) {
	m := makeTestMap()
	for _, i := range rand.Perm(100) {
		m.Insert(i, i)
	}
	it := m.MakeIter()
	it.Last()
	for exp := 99; exp >= 0; exp-- {
		if !it.Valid() || it.Cur() != exp {
			t.Fatalf("expected %d", exp)
		}
		it.Prev()
	}
	if it.Valid() {
		t.Fatal("expected invalid before first")
	}
	it.Next()
	if !it.Valid() || it.Cur() != 0 {
		t.Fatal("expected Next from before start to reach the first key")
	}
	it.Last()
	it.Next()
	if it.Valid() {
		t.Fatal("expected invalid past end")
	}
	it.Prev()
	if !it.Valid() || it.Cur() != 99 {
		t.Fatal("expected Prev from past end to reach the last key")
	}
}

func TestIteratorEmpty(t *testing.T) {
	m := makeTestMap()
	it := m.MakeIter()
	if it.Advance() {
		t.Fatal("advance on empty tree")
	}
	it.SeekMin(func(int) int { return 0 })
	if it.Advance() {
		t.Fatal("seek on empty tree")
	}
	it.First()
	if it.Valid() {
		t.Fatal("first on empty tree")
	}
}

func TestSeekGELT(t *testing.T) {
	m := makeTestMap()
	for i := 0; i < 50; i++ {
		m.Insert(i*2, i)
	}
	it := m.MakeIter()
	for k := -1; k < 101; k++ {
		it.SeekGE(k)
		exp := k + k&1
		if k < 0 {
			exp = 0
		}
		if exp > 98 {
			if it.Valid() {
				t.Fatalf("SeekGE(%d) expected invalid, got %d", k, it.Cur())
			}
		} else if !it.Valid() || it.Cur() != exp {
			t.Fatalf("SeekGE(%d) expected %d", k, exp)
		}
		it.SeekLT(k)
		expLT := k - 1 - (k-1)&1
		if k > 99 {
			expLT = 98
		}
		if k <= 0 {
			if it.Valid() {
				t.Fatalf("SeekLT(%d) expected invalid, got %d", k, it.Cur())
			}
		} else if !it.Valid() || it.Cur() != expLT {
			t.Fatalf("SeekLT(%d) expected %d", k, expLT)
		}
	}
}

func between(lo, hi int) RangeCompare[int] {
	return func(k int) int {
		switch {
		case k < lo:
			return 1
		case k > hi:
			return -1
		default:
			return 0
		}
	}
}

func TestSeekMin(t *testing.T) {
	m := makeTestMap()
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		m.Insert(k, k)
	}
	it := m.MakeIter()
	for _, tc := range []struct {
		lo, hi int
		exp    []int
	}{
		{lo: 2, hi: 4, exp: []int{3, 4}},
		{lo: 0, hi: 1, exp: []int{1}},
		{lo: 6, hi: 100, exp: []int{7, 8, 9}},
		{lo: 5, hi: 5, exp: []int{5}},
		{lo: 10, hi: 20},
		{lo: -5, hi: 0},
	} {
		it.SeekMin(between(tc.lo, tc.hi))
		var got []int
		for it.Advance() && between(tc.lo, tc.hi)(it.Cur()) == 0 {
			got = append(got, it.Cur())
		}
		if len(got) != len(tc.exp) {
			t.Fatalf("[%d,%d]: expected %v, got %v", tc.lo, tc.hi, tc.exp, got)
		}
		for i := range got {
			if got[i] != tc.exp[i] {
				t.Fatalf("[%d,%d]: expected %v, got %v", tc.lo, tc.hi, tc.exp, got)
			}
		}
	}
	// No match: positioned at the maximum, so the next advance exhausts.
	it.SeekMin(between(10, 20))
	if !it.Valid() || it.Cur() != 9 {
		t.Fatal("expected seek past end to rest on the last key")
	}
	if it.Advance() {
		t.Fatal("expected exhaustion")
	}
}

func TestStaleIterator(t *testing.T) {
	m := makeTestMap()
	for i := 0; i < 10; i++ {
		m.Insert(i, i)
	}
	it := m.MakeIter()
	it.First()
	m.Insert(100, 100)
	if it.Valid() {
		t.Fatal("iterator survived an insert")
	}
	if !errors.Is(it.Err(), ErrStaleIterator) {
		t.Fatalf("expected stale iterator error, got %v", it.Err())
	}
	func() {
		defer func() {
			if r := recover(); r != ErrStaleIterator {
				t.Fatalf("expected panic with ErrStaleIterator, got %v", r)
			}
		}()
		it.Cur()
	}()
	it.First()
	if !it.Valid() || it.Err() != nil {
		t.Fatal("repositioning should clear the error")
	}
	// Value replacement does not restructure the tree.
	m.Upsert(0, 7)
	if !it.Valid() || it.Value() != 7 {
		t.Fatal("upsert of an existing key invalidated the iterator")
	}
	m.Delete(5)
	if it.Advance() {
		t.Fatal("iterator survived a delete")
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	m := makeTestMap()
	for i := 0; i < 7; i++ {
		m.Insert(i, i)
	}
	// 1(0, 3*(2, 5(4*, 6*)))
	m.root.children[Succ].children[Pred].red = true
	err := m.Verify()
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected invariant error, got %v", err)
	}
	var ie *InvariantError
	if !errors.As(err, &ie) || ie.Property == "" {
		t.Fatalf("expected *InvariantError, got %T", err)
	}
}

func TestWalkAndDot(t *testing.T) {
	m := makeTestMap()
	for _, k := range []int{2, 1, 3} {
		m.Insert(k, k)
	}
	var visited []int
	m.Walk(func(depth int, d Dir, k, _ int, red bool) {
		visited = append(visited, k)
		if (depth == 0) == red {
			t.Fatalf("unexpected color for %d at depth %d", k, depth)
		}
	})
	if len(visited) != 3 || visited[0] != 2 || visited[1] != 1 || visited[2] != 3 {
		t.Fatalf("unexpected pre-order %v", visited)
	}
	var b strings.Builder
	if err := m.WriteDot(&b, nil); err != nil {
		t.Fatal(err)
	}
	exp := `digraph RBTree {
0 [label="2"];
1 [label="1", color="red"];
0 -> 1;
2 [label="3", color="red"];
0 -> 2;
}
`
	if b.String() != exp {
		t.Fatalf("unexpected dot output:\n%s", b.String())
	}
}

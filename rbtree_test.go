package rbtree

import (
	"cmp"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestMap(t *testing.T) {
	assertEq := func(t *testing.T, exp, got int) {
		t.Helper()
		if exp != got {
			t.Fatalf("expected %d, got %d", exp, got)
		}
	}

	tree := MakeMap[int, string](cmp.Compare[int])
	tree.Insert(2, "two")
	tree.Insert(12, "twelve")
	tree.Insert(1, "one")

	iter := tree.MakeIter()
	iter.First()
	for _, exp := range []int{1, 2, 12} {
		assertEq(t, exp, iter.Cur())
		iter.Next()
	}
	if iter.Valid() {
		t.Fatal("expected iterator to be exhausted")
	}
	if v, ok := tree.Get(12); !ok || v != "twelve" {
		t.Fatalf("unexpected Get result %q %v", v, ok)
	}
}

func TestSetScenario(t *testing.T) {
	s := MakeSet[int](cmp.Compare[int])
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		if !s.Insert(k) {
			t.Fatalf("failed to insert %d", k)
		}
		if err := s.Verify(); err != nil {
			t.Fatalf("after inserting %d: %v", k, err)
		}
	}
	var got []int
	it := s.MakeIter()
	for it.Advance() {
		got = append(got, it.Cur())
	}
	exp := []int{1, 3, 4, 5, 7, 8, 9}
	if len(got) != len(exp) {
		t.Fatalf("expected %v, got %v", exp, got)
	}
	for i := range exp {
		if exp[i] != got[i] {
			t.Fatalf("expected %v, got %v", exp, got)
		}
	}
}

func TestSetProperties(t *testing.T) {
	t.Parallel()
	s := MakeSet[int](cmp.Compare[int])
	const maxN = 1000
	N := rand.Intn(maxN) + 1
	perm := rand.Perm(N)
	for _, k := range perm {
		s.Insert(k)
	}
	// Duplicates are ignored.
	for _, k := range perm[:N/2] {
		if s.Insert(k) {
			t.Fatalf("duplicate %d inserted", k)
		}
	}
	if s.Len() != N {
		t.Fatalf("expected %d items, got %d", N, s.Len())
	}
	removed := map[int]bool{}
	for _, k := range rand.Perm(N) {
		if rand.Float64() < .3 {
			if !s.Delete(k) {
				t.Fatalf("failed to delete %d", k)
			}
			removed[k] = true
		}
	}
	if err := s.Verify(); err != nil {
		t.Fatal(err)
	}
	for k := 0; k < N; k++ {
		if s.Contains(k) == removed[k] {
			t.Fatalf("Contains(%d) = %v after removal=%v", k, s.Contains(k), removed[k])
		}
	}
	prev := -1
	it := s.MakeIter()
	for it.Advance() {
		if it.Cur() <= prev {
			t.Fatalf("out of order: %d after %d", it.Cur(), prev)
		}
		prev = it.Cur()
	}
}

func TestSeekMinStrings(t *testing.T) {
	s := MakeSet[string](strings.Compare)
	for _, w := range []string{"apple", "apricot", "banana", "blueberry", "cherry"} {
		s.Insert(w)
	}
	prefix := func(p string) RangeCompare[string] {
		return func(k string) int {
			if strings.HasPrefix(k, p) {
				return 0
			}
			return strings.Compare(p, k)
		}
	}
	it := s.MakeIter()
	it.SeekMin(prefix("b"))
	var got []string
	for it.Advance() && strings.HasPrefix(it.Cur(), "b") {
		got = append(got, it.Cur())
	}
	if strings.Join(got, ",") != "banana,blueberry" {
		t.Fatalf("unexpected prefix scan %v", got)
	}
	it.SeekMin(prefix("z"))
	if it.Advance() {
		t.Fatalf("expected exhaustion, got %s", it.Cur())
	}
}

func TestIteratorStale(t *testing.T) {
	m := MakeMap[int, int](cmp.Compare[int])
	m.Insert(1, 1)
	it := m.MakeIter()
	it.First()
	m.Delete(1)
	if it.Valid() || !errors.Is(it.Err(), ErrStaleIterator) {
		t.Fatal("expected stale iterator")
	}
}

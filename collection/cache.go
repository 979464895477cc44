// Copyright 2021 Andrew Werner.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package collection

import (
	"github.com/dgraph-io/ristretto/v2"
)

// lookupCache remembers the record found by an exact-match lookup on a
// Unique index. Entries are never trusted: a hit is only returned if the
// record is still linked into the index under the requested key, so
// writes need not invalidate the cache synchronously.
type lookupCache struct {
	c       *ristretto.Cache[string, *Record]
	metrics *metrics
}

func newLookupCache(size int64, m *metrics) (*lookupCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, *Record]{
		NumCounters: 10 * size,
		MaxCost:     size,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &lookupCache{c: c, metrics: m}, nil
}

func cacheKey(idx *Index, k Key) string { return idx.name + "\x00" + k.enc }

func (lc *lookupCache) get(idx *Index, k Key) (*Record, bool) {
	if lc == nil {
		return nil, false
	}
	r, ok := lc.c.Get(cacheKey(idx, k))
	if ok && r.added && r.c == idx.c && r.keys[idx].enc == k.enc {
		lc.metrics.cache("hit")
		return r, true
	}
	lc.metrics.cache("miss")
	return nil, false
}

func (lc *lookupCache) set(idx *Index, k Key, r *Record) {
	if lc == nil {
		return
	}
	lc.c.Set(cacheKey(idx, k), r, 1)
}

// forget drops the entries for r's current snapshots.
func (lc *lookupCache) forget(r *Record) {
	if lc == nil {
		return
	}
	for idx, k := range r.keys {
		if idx.uniq == Unique {
			lc.c.Del(cacheKey(idx, k))
		}
	}
}

func (lc *lookupCache) close() {
	if lc != nil {
		lc.c.Close()
	}
}

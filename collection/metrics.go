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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// indexOperations counts index operations by kind
	indexOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rbindex_index_operations_total",
		Help: "Total index operations by collection, index and operation",
	}, []string{"collection", "index", "op"})

	// duplicateRejections counts keys rejected by unique indices
	duplicateRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rbindex_duplicate_rejections_total",
		Help: "Total records rejected by a unique index",
	}, []string{"collection", "index"})

	// recordCount tracks the number of records in each collection
	recordCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rbindex_records",
		Help: "Number of records in the collection",
	}, []string{"collection"})

	// lookupCacheTotal counts lookup cache results
	lookupCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rbindex_lookup_cache_total",
		Help: "Total exact-match lookup cache results",
	}, []string{"collection", "result"}) // "hit" or "miss"
)

// metrics records the collection's metrics under its name.
type metrics struct {
	collection string
}

func (m *metrics) op(index, op string) {
	indexOperations.WithLabelValues(m.collection, index, op).Inc()
}

func (m *metrics) duplicate(index string) {
	duplicateRejections.WithLabelValues(m.collection, index).Inc()
}

func (m *metrics) records(n int) {
	recordCount.WithLabelValues(m.collection).Set(float64(n))
}

func (m *metrics) cache(result string) {
	lookupCacheTotal.WithLabelValues(m.collection, result).Inc()
}

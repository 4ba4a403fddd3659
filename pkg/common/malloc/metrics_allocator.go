// Copyright 2024 VecKit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package malloc

import (
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsAllocator decorates an upstream allocator with prometheus
// accounting.  Any metric may be nil to skip that series.
type MetricsAllocator[T any] struct {
	upstream Allocator[T]
	elemSz   int

	allocateBytesCounter   prometheus.Counter
	inuseBytesGauge        prometheus.Gauge
	allocateObjectsCounter prometheus.Counter
	inuseObjectsGauge      prometheus.Gauge
}

func NewMetricsAllocator[T any](
	upstream Allocator[T],
	allocateBytesCounter prometheus.Counter,
	inuseBytesGauge prometheus.Gauge,
	allocateObjectsCounter prometheus.Counter,
	inuseObjectsGauge prometheus.Gauge,
) *MetricsAllocator[T] {
	var zero T
	return &MetricsAllocator[T]{
		upstream:               upstream,
		elemSz:                 int(unsafe.Sizeof(zero)),
		allocateBytesCounter:   allocateBytesCounter,
		inuseBytesGauge:        inuseBytesGauge,
		allocateObjectsCounter: allocateObjectsCounter,
		inuseObjectsGauge:      inuseObjectsGauge,
	}
}

func (m *MetricsAllocator[T]) Allocate(n int) ([]T, error) {
	s, err := m.upstream.Allocate(n)
	if err != nil {
		return nil, err
	}
	bytes := float64(n * m.elemSz)
	if m.allocateBytesCounter != nil {
		m.allocateBytesCounter.Add(bytes)
	}
	if m.inuseBytesGauge != nil {
		m.inuseBytesGauge.Add(bytes)
	}
	if m.allocateObjectsCounter != nil {
		m.allocateObjectsCounter.Add(1)
	}
	if m.inuseObjectsGauge != nil {
		m.inuseObjectsGauge.Add(1)
	}
	return s, nil
}

func (m *MetricsAllocator[T]) Deallocate(s []T) {
	bytes := float64(len(s) * m.elemSz)
	m.upstream.Deallocate(s)
	if m.inuseBytesGauge != nil {
		m.inuseBytesGauge.Sub(bytes)
	}
	if m.inuseObjectsGauge != nil {
		m.inuseObjectsGauge.Sub(1)
	}
}

func (m *MetricsAllocator[T]) MaxSize() int {
	return m.upstream.MaxSize()
}

func (m *MetricsAllocator[T]) Policy() Policy {
	return m.upstream.Policy()
}

func (m *MetricsAllocator[T]) Equal(other Allocator[T]) bool {
	if o, ok := other.(*MetricsAllocator[T]); ok {
		return m.upstream.Equal(o.upstream)
	}
	return m.upstream.Equal(other)
}

func (m *MetricsAllocator[T]) Lifecycle() *Lifecycle[T] {
	return m.upstream.Lifecycle()
}

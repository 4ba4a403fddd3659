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
	"sync/atomic"

	"github.com/veckit/veckit/pkg/common/moerr"
)

// LimitAllocator decorates an upstream allocator with a budget of
// live elements.  Exceeding the budget yields an out of memory error
// without touching the upstream.
type LimitAllocator[T any] struct {
	upstream Allocator[T]
	limit    int64
	live     atomic.Int64
}

func NewLimitAllocator[T any](upstream Allocator[T], limit int) *LimitAllocator[T] {
	return &LimitAllocator[T]{
		upstream: upstream,
		limit:    int64(limit),
	}
}

func (l *LimitAllocator[T]) Allocate(n int) ([]T, error) {
	if l.live.Add(int64(n)) > l.limit {
		l.live.Add(-int64(n))
		return nil, moerr.NewOOM()
	}
	s, err := l.upstream.Allocate(n)
	if err != nil {
		l.live.Add(-int64(n))
		return nil, err
	}
	return s, nil
}

func (l *LimitAllocator[T]) Deallocate(s []T) {
	l.upstream.Deallocate(s)
	l.live.Add(-int64(len(s)))
}

// Live reports the number of elements currently allocated.
func (l *LimitAllocator[T]) Live() int {
	return int(l.live.Load())
}

func (l *LimitAllocator[T]) MaxSize() int {
	if int(l.limit) < l.upstream.MaxSize() {
		return int(l.limit)
	}
	return l.upstream.MaxSize()
}

func (l *LimitAllocator[T]) Policy() Policy {
	return l.upstream.Policy()
}

func (l *LimitAllocator[T]) Equal(other Allocator[T]) bool {
	if o, ok := other.(*LimitAllocator[T]); ok {
		return l == o
	}
	return false
}

func (l *LimitAllocator[T]) Lifecycle() *Lifecycle[T] {
	return l.upstream.Lifecycle()
}

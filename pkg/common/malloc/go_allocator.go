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
	"math"
	"unsafe"

	"github.com/veckit/veckit/pkg/common/moerr"
)

// GoAllocator is the default strategy, serving storage straight from
// the Go heap.  Every instance is interchangeable and the garbage
// collector reclaims storage, so Deallocate only runs sanity checks.
type GoAllocator[T any] struct {
	lc *Lifecycle[T]
}

func NewGoAllocator[T any](lc *Lifecycle[T]) *GoAllocator[T] {
	return &GoAllocator[T]{lc: lc}
}

func (g *GoAllocator[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, moerr.NewInvalidArg("allocate count", n)
	}
	if n > g.MaxSize() {
		return nil, moerr.NewOOM()
	}
	if n == 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

func (g *GoAllocator[T]) Deallocate(s []T) {
	if s == nil {
		panic(moerr.NewInvalidArg("deallocate", "nil slice"))
	}
}

func (g *GoAllocator[T]) MaxSize() int {
	var zero T
	sz := int(unsafe.Sizeof(zero))
	if sz == 0 {
		return math.MaxInt
	}
	return math.MaxInt / sz
}

func (g *GoAllocator[T]) Policy() Policy {
	return Policy{AlwaysEqual: true}
}

func (g *GoAllocator[T]) Equal(other Allocator[T]) bool {
	_, ok := other.(*GoAllocator[T])
	return ok
}

func (g *GoAllocator[T]) Lifecycle() *Lifecycle[T] {
	return g.lc
}

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

// Package malloc provides typed, pluggable allocation strategies for
// the containers in this module.  Allocators compose as decorators,
// so accounting and limits can be stacked over any base strategy.
package malloc

// Policy describes how an allocator travels with container copy,
// move and swap, mirroring propagation traits.
type Policy struct {
	// PropagateOnCopy carries the source allocator along on copy
	// assignment.
	PropagateOnCopy bool
	// PropagateOnMove carries the source allocator along on move
	// assignment.
	PropagateOnMove bool
	// PropagateOnSwap exchanges the allocators when two containers
	// swap.
	PropagateOnSwap bool
	// AlwaysEqual marks every instance of the strategy
	// interchangeable.  Moves between such containers may steal
	// storage wholesale.
	AlwaysEqual bool
	// SelectNewOnCopy requests a fresh default allocator for copies
	// instead of the source's.
	SelectNewOnCopy bool
}

// Allocator hands out typed storage.  Allocate returns a slice with
// len == cap == n whose slots are uninitialized in the lifecycle
// sense.  Deallocate takes the exact slice Allocate returned.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(s []T)
	// MaxSize bounds a single allocation, in elements.
	MaxSize() int
	Policy() Policy
	// Equal reports whether storage from one allocator may be
	// released through the other.
	Equal(other Allocator[T]) bool
	// Lifecycle returns the element hooks shared by every container
	// using this allocator.  May be nil, meaning fully trivial.
	Lifecycle() *Lifecycle[T]
}

// SelectOnCopy picks the allocator a copied container starts with.
func SelectOnCopy[T any](a Allocator[T]) Allocator[T] {
	if a.Policy().SelectNewOnCopy {
		return NewGoAllocator[T](a.Lifecycle())
	}
	return a
}

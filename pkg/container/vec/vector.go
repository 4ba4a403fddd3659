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

// Package vec implements a growable contiguous container over
// pluggable allocation strategies.  A Vector owns one buffer and one
// allocator; element construction and destruction follow the
// allocator's lifecycle hooks, with fast paths for trivial types.
//
// A Vector is not safe for concurrent use.
package vec

import (
	"fmt"
	"strings"

	"github.com/veckit/veckit/pkg/common/malloc"
	"github.com/veckit/veckit/pkg/common/moerr"
)

// Vector is a dynamically sized contiguous array of T.
type Vector[T any] struct {
	alloc malloc.Allocator[T]
	lc    *malloc.Lifecycle[T]
	buf   []T // len(buf) is the capacity
	size  int
	// version bumps on every size or storage change, outstanding
	// regions and inserters check it
	version uint64
}

// Option configures a new Vector.
type Option[T any] func(*Vector[T])

// WithAllocator selects the allocation strategy.
func WithAllocator[T any](a malloc.Allocator[T]) Option[T] {
	return func(v *Vector[T]) {
		v.alloc = a
	}
}

// New returns an empty vector.  No storage is allocated until the
// first element arrives.
func New[T any](opts ...Option[T]) *Vector[T] {
	v := &Vector[T]{}
	for _, opt := range opts {
		opt(v)
	}
	if v.alloc == nil {
		v.alloc = malloc.NewGoAllocator[T](nil)
	}
	v.lc = v.alloc.Lifecycle()
	return v
}

// NewWithCapacity returns an empty vector with room for n elements.
func NewWithCapacity[T any](n int, opts ...Option[T]) (*Vector[T], error) {
	if n < 0 {
		return nil, moerr.NewInvalidArg("capacity", n)
	}
	v := New(opts...)
	if err := v.reallocate(n); err != nil {
		return nil, err
	}
	return v, nil
}

// NewWithSize returns a vector of n default-constructed elements.
func NewWithSize[T any](n int, opts ...Option[T]) (*Vector[T], error) {
	v, err := NewWithCapacity(n, opts...)
	if err != nil {
		return nil, err
	}
	constructRange(v.lc, v.buf[:n])
	v.size = n
	return v, nil
}

// Repeat returns a vector of n copies of val.
func Repeat[T any](n int, val T, opts ...Option[T]) (*Vector[T], error) {
	v, err := NewWithCapacity(n, opts...)
	if err != nil {
		return nil, err
	}
	constructFill(v.lc, v.buf[:n], val)
	v.size = n
	return v, nil
}

// FromSlice returns a vector holding a copy of s.
func FromSlice[T any](s []T, opts ...Option[T]) (*Vector[T], error) {
	v, err := NewWithCapacity(len(s), opts...)
	if err != nil {
		return nil, err
	}
	copyConstructRange(v.lc, v.buf[:len(s)], s)
	v.size = len(s)
	return v, nil
}

// FromSeq drains a sequence into a new vector.  Sized sequences are
// laid out in one allocation, unsized ones go through the chained
// buffer path.
func FromSeq[T any](seq Seq[T], opts ...Option[T]) (*Vector[T], error) {
	v := New(opts...)
	if err := v.InsertSeq(0, seq); err != nil {
		v.Free()
		return nil, err
	}
	return v, nil
}

// NewFromMove steals src's storage into a fresh vector.  src is left
// empty with its allocator intact.
func NewFromMove[T any](src *Vector[T]) *Vector[T] {
	dst := &Vector[T]{
		alloc: src.alloc,
		lc:    src.lc,
		buf:   src.buf,
		size:  src.size,
	}
	src.buf = nil
	src.size = 0
	src.version++
	return dst
}

// Clone copies the vector.  The copy's allocator follows the
// allocator's copy-selection policy.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	return FromSlice(v.Data(), WithAllocator(malloc.SelectOnCopy(v.alloc)))
}

// Allocator returns the vector's allocation strategy.
func (v *Vector[T]) Allocator() malloc.Allocator[T] {
	return v.alloc
}

func (v *Vector[T]) capacity() int {
	return len(v.buf)
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of slots before the next reallocation.
func (v *Vector[T]) Cap() int {
	return v.capacity()
}

// Available returns how many elements fit without growing.
func (v *Vector[T]) Available() int {
	return v.capacity() - v.size
}

func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

func (v *Vector[T]) Full() bool {
	return v.size == v.capacity()
}

// MaxLen returns the largest size the allocator can serve.
func (v *Vector[T]) MaxLen() int {
	return v.alloc.MaxSize()
}

// Data exposes the live elements.  The view is invalidated by any
// size or capacity change.
func (v *Vector[T]) Data() []T {
	return v.buf[:v.size]
}

// Get returns the element at i, checked.
func (v *Vector[T]) Get(i int) (T, error) {
	if i < 0 || i >= v.size {
		var zero T
		return zero, moerr.NewOutOfRange("vector", "index %d, size %d", i, v.size)
	}
	return v.buf[i], nil
}

// MustGet returns the element at i, unchecked.
func (v *Vector[T]) MustGet(i int) T {
	return v.buf[:v.size][i]
}

// Set overwrites the element at i, checked.  The old value is
// dropped.
func (v *Vector[T]) Set(i int, val T) error {
	if i < 0 || i >= v.size {
		return moerr.NewOutOfRange("vector", "index %d, size %d", i, v.size)
	}
	assignOne(v.lc, &v.buf[i], val)
	return nil
}

// MustSet overwrites the element at i, unchecked.
func (v *Vector[T]) MustSet(i int, val T) {
	assignOne(v.lc, &v.buf[:v.size][i], val)
}

// Front returns the first element, panics when empty.
func (v *Vector[T]) Front() T {
	if v.size == 0 {
		panic(moerr.NewInvalidState("front of empty vector"))
	}
	return v.buf[0]
}

// Back returns the last element, panics when empty.
func (v *Vector[T]) Back() T {
	if v.size == 0 {
		panic(moerr.NewInvalidState("back of empty vector"))
	}
	return v.buf[v.size-1]
}

// Range calls fn for each element until fn returns false.
func (v *Vector[T]) Range(fn func(i int, val T) bool) {
	for i := 0; i < v.size; i++ {
		if !fn(i, v.buf[i]) {
			return
		}
	}
}

// Reserve guarantees capacity for at least n elements.  It never
// shrinks.
func (v *Vector[T]) Reserve(n int) error {
	if n < 0 {
		return moerr.NewInvalidArg("reserve", n)
	}
	return v.reallocate(n)
}

// ShrinkToFit drops spare capacity.
func (v *Vector[T]) ShrinkToFit() error {
	if v.size == v.capacity() {
		return nil
	}
	if v.size == 0 {
		v.releaseBuf()
		v.version++
		return nil
	}
	nb, err := v.alloc.Allocate(v.size)
	if err != nil {
		return err
	}
	moveRange(nb, v.buf[:v.size])
	v.adopt(nb, v.size)
	return nil
}

// Resize sets the element count to n.  Growth default-constructs the
// new tail, shrinking destroys the excess.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		return moerr.NewInvalidArg("resize", n)
	}
	if n <= v.size {
		v.truncate(n)
		return nil
	}
	if err := v.grow(n - v.size); err != nil {
		return err
	}
	constructRange(v.lc, v.buf[v.size:n])
	v.size = n
	v.version++
	return nil
}

// ResizeFill sets the element count to n, filling growth with val.
func (v *Vector[T]) ResizeFill(n int, val T) error {
	if n < 0 {
		return moerr.NewInvalidArg("resize", n)
	}
	if n <= v.size {
		v.truncate(n)
		return nil
	}
	if err := v.grow(n - v.size); err != nil {
		return err
	}
	constructFill(v.lc, v.buf[v.size:n], val)
	v.size = n
	v.version++
	return nil
}

// truncate destroys elements at and beyond n.
func (v *Vector[T]) truncate(n int) {
	if n >= v.size {
		return
	}
	destroyRange(v.lc, v.buf[n:v.size])
	zeroRange(v.buf[n:v.size])
	v.size = n
	v.version++
}

// Clear removes every element, capacity is retained.
func (v *Vector[T]) Clear() {
	v.truncate(0)
}

// Free destroys every element and returns the storage.  The vector
// stays usable as an empty container.
func (v *Vector[T]) Free() {
	destroyRange(v.lc, v.buf[:v.size])
	v.releaseBuf()
	v.size = 0
	v.version++
}

// Swap exchanges contents with o.  Allocators swap along when their
// policy says so, otherwise they must be interchangeable.
func (v *Vector[T]) Swap(o *Vector[T]) {
	if v == o {
		return
	}
	pol := v.alloc.Policy()
	if pol.PropagateOnSwap {
		v.alloc, o.alloc = o.alloc, v.alloc
		v.lc, o.lc = o.lc, v.lc
	} else if !pol.AlwaysEqual && !v.alloc.Equal(o.alloc) {
		panic(moerr.NewAllocatorMixup())
	}
	v.buf, o.buf = o.buf, v.buf
	v.size, o.size = o.size, v.size
	v.version++
	o.version++
}

// String renders the live elements.
func (v *Vector[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < v.size; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v", v.buf[i])
	}
	sb.WriteByte(']')
	return sb.String()
}

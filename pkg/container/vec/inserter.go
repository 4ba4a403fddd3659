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

package vec

import (
	"github.com/veckit/veckit/pkg/common/moerr"
)

// Region is a two-phase bulk append: reserve slots, write them
// directly, then commit how many were actually produced.  Intended
// for trivial element types fed by decoders that overshoot their
// reservation estimate.
type Region[T any] struct {
	v       *Vector[T]
	version uint64
	slots   []T
}

// ReserveAppend makes room for n more elements past the current end
// and exposes them for direct writes.  Any other mutation of the
// vector invalidates the region.
func (v *Vector[T]) ReserveAppend(n int) (*Region[T], error) {
	if n < 0 {
		return nil, moerr.NewInvalidArg("reserve append count", n)
	}
	if err := v.grow(n); err != nil {
		return nil, err
	}
	return &Region[T]{
		v:       v,
		version: v.version,
		slots:   v.buf[v.size : v.size+n],
	}, nil
}

// Slots returns the reserved span.  Writes land in the vector only
// after Commit.
func (r *Region[T]) Slots() []T {
	return r.slots
}

// Commit publishes the first k reserved slots as live elements.  The
// rest of the reservation is wiped.
func (r *Region[T]) Commit(k int) error {
	if k < 0 || k > len(r.slots) {
		return moerr.NewInvalidArg("commit count", k)
	}
	if r.v.version != r.version {
		return moerr.NewStaleView("append region")
	}
	zeroRange(r.slots[k:])
	r.v.size += k
	r.v.version++
	r.version = 0 // a region commits once
	return nil
}

// BackInserter is a growing append cursor: Next hands out the slot
// one past the end, growing as needed, and publishes it immediately.
// Any mutation not made through the inserter invalidates it.
type BackInserter[T any] struct {
	v       *Vector[T]
	version uint64
}

// BackInserter returns an append cursor positioned at the end.
func (v *Vector[T]) BackInserter() *BackInserter[T] {
	return &BackInserter[T]{v: v, version: v.version}
}

// Next appends a default-constructed element and returns its slot.
func (b *BackInserter[T]) Next() (*T, error) {
	if b.v.version != b.version {
		return nil, moerr.NewStaleView("back inserter")
	}
	p, err := b.v.PushDefault()
	if err != nil {
		return nil, err
	}
	b.version = b.v.version
	return p, nil
}

// Push appends val through the inserter.
func (b *BackInserter[T]) Push(val T) error {
	p, err := b.Next()
	if err != nil {
		return err
	}
	assignOne(b.v.lc, p, val)
	return nil
}

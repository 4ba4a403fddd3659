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
	"github.com/veckit/veckit/pkg/common/malloc"
	"github.com/veckit/veckit/pkg/common/moerr"
)

// CopyFrom replaces the contents with a copy of o.  The allocator
// follows o's propagation-on-copy policy.
func (v *Vector[T]) CopyFrom(o *Vector[T]) error {
	if v == o {
		return nil
	}
	pol := o.alloc.Policy()
	if pol.PropagateOnCopy {
		chosen := malloc.SelectOnCopy(o.alloc)
		if !v.sameAllocator(chosen) {
			// old storage must go back through the old allocator
			v.Free()
			v.alloc = chosen
			v.lc = chosen.Lifecycle()
		}
	}
	return v.AssignSlice(o.Data())
}

func (v *Vector[T]) sameAllocator(a malloc.Allocator[T]) bool {
	return v.alloc == a || v.alloc.Equal(a)
}

// MoveFrom empties o into v.  Equal or propagating allocators steal
// the storage outright, otherwise elements relocate one by one.
// Either way o ends up empty.
func (v *Vector[T]) MoveFrom(o *Vector[T]) error {
	if v == o {
		return nil
	}
	pol := o.alloc.Policy()
	if pol.PropagateOnMove || pol.AlwaysEqual || v.alloc.Equal(o.alloc) {
		v.Free()
		if pol.PropagateOnMove {
			v.alloc = o.alloc
			v.lc = o.lc
		}
		v.buf = o.buf
		v.size = o.size
		v.version++
		o.buf = nil
		o.size = 0
		o.version++
		return nil
	}
	// allocators are incompatible, relocate values into our own
	// storage and strip them from o without dropping
	v.Clear()
	if err := v.reallocate(o.size); err != nil {
		return err
	}
	moveRange(v.buf[:o.size], o.buf[:o.size])
	v.size = o.size
	v.version++
	zeroRange(o.buf[:o.size])
	o.size = 0
	o.version++
	return nil
}

// Assign replaces the contents with n copies of val.
func (v *Vector[T]) Assign(n int, val T) error {
	if n < 0 {
		return moerr.NewInvalidArg("assign count", n)
	}
	if n > v.capacity() {
		// fresh storage, nothing old is worth moving
		nb, err := v.alloc.Allocate(bestCapacity(v.capacity(), n))
		if err != nil {
			return err
		}
		destroyRange(v.lc, v.buf[:v.size])
		constructFill(v.lc, nb[:n], val)
		v.adopt(nb, n)
		return nil
	}
	if v.lc.TrivialDrop() {
		constructFill(v.lc, v.buf[:n], val)
		if n < v.size {
			zeroRange(v.buf[n:v.size])
		}
		v.size = n
		v.version++
		return nil
	}
	m := v.size
	if n < m {
		m = n
	}
	assignFill(v.lc, v.buf[:m], val)
	if n > v.size {
		constructFill(v.lc, v.buf[v.size:n], val)
	} else {
		destroyRange(v.lc, v.buf[n:v.size])
		zeroRange(v.buf[n:v.size])
	}
	v.size = n
	v.version++
	return nil
}

// AssignSlice replaces the contents with a copy of s.  s may alias
// the vector's own storage.
func (v *Vector[T]) AssignSlice(s []T) error {
	n := len(s)
	if n > v.capacity() {
		nb, err := v.alloc.Allocate(bestCapacity(v.capacity(), n))
		if err != nil {
			return err
		}
		copyConstructRange(v.lc, nb[:n], s)
		destroyRange(v.lc, v.buf[:v.size])
		v.adopt(nb, n)
		return nil
	}
	if rangesAlias(v.buf, s) {
		// assigning a view of ourselves, shift it to the front
		start := sliceOffset(v.buf, s)
		destroyRange(v.lc, v.buf[:start])
		destroyRange(v.lc, v.buf[start+n:v.size])
		moveRange(v.buf[:n], v.buf[start:start+n])
		zeroRange(v.buf[n:v.size])
		v.size = n
		v.version++
		return nil
	}
	if v.lc.TrivialDrop() {
		copyConstructRange(v.lc, v.buf[:n], s)
		if n < v.size {
			zeroRange(v.buf[n:v.size])
		}
		v.size = n
		v.version++
		return nil
	}
	m := v.size
	if n < m {
		m = n
	}
	copyAssignRange(v.lc, v.buf[:m], s[:m])
	if n > v.size {
		copyConstructRange(v.lc, v.buf[v.size:n], s[v.size:])
	} else {
		destroyRange(v.lc, v.buf[n:v.size])
		zeroRange(v.buf[n:v.size])
	}
	v.size = n
	v.version++
	return nil
}

// AssignSeq replaces the contents by draining seq once.  Existing
// slots are reused, the remainder is appended with doubling growth.
func (v *Vector[T]) AssignSeq(seq Seq[T]) error {
	if n, sized := SeqSize[T](seq); sized {
		v.Clear()
		if err := v.grow(n); err != nil {
			return err
		}
		k, _ := constructSeq(v.lc, v.buf[:n], seq)
		v.size = k
		v.version++
		return nil
	}
	i := 0
	for {
		val, ok := seq.Next()
		if !ok {
			break
		}
		if i < v.size {
			assignOne(v.lc, &v.buf[i], val)
		} else {
			if err := v.Push(val); err != nil {
				// keep what was assigned so far consistent
				v.truncate(i)
				return err
			}
		}
		i++
	}
	v.truncate(i)
	return nil
}

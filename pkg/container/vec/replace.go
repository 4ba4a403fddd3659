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

// Replace substitutes [i, j) with n copies of val, fused so elements
// move at most once.  Equivalent to erase then insert.
func (v *Vector[T]) Replace(i, j, n int, val T) error {
	if err := v.checkRange(i, j); err != nil {
		return err
	}
	if n < 0 {
		return moerr.NewInvalidArg("replace count", n)
	}
	m := j - i
	switch {
	case n <= m:
		assignFill(v.lc, v.buf[i:i+n], val)
		return v.EraseRange(i+n, j)

	case v.size+n-m <= v.capacity():
		extra := n - m
		moveRange(v.buf[j+extra:v.size+extra], v.buf[j:v.size])
		assignFill(v.lc, v.buf[i:j], val)
		constructFill(v.lc, v.buf[j:j+extra], val)
		v.size += extra
		v.version++
		return nil

	default:
		nb, err := v.alloc.Allocate(bestCapacity(v.capacity(), v.size+n-m))
		if err != nil {
			return err
		}
		moveRange(nb[:i], v.buf[:i])
		destroyRange(v.lc, v.buf[i:j])
		constructFill(v.lc, nb[i:i+n], val)
		moveRange(nb[i+n:v.size+n-m], v.buf[j:v.size])
		v.adopt(nb, v.size+n-m)
		return nil
	}
}

// ReplaceSlice substitutes [i, j) with a copy of s.  s may alias the
// vector's own storage.
func (v *Vector[T]) ReplaceSlice(i, j int, s []T) error {
	if err := v.checkRange(i, j); err != nil {
		return err
	}
	n := len(s)
	m := j - i
	if v.size+n-m > v.capacity() {
		// single reallocation, the old buffer is only read
		nb, err := v.alloc.Allocate(bestCapacity(v.capacity(), v.size+n-m))
		if err != nil {
			return err
		}
		moveRange(nb[:i], v.buf[:i])
		copyConstructRange(v.lc, nb[i:i+n], s)
		destroyRange(v.lc, v.buf[i:j])
		moveRange(nb[i+n:v.size+n-m], v.buf[j:v.size])
		v.adopt(nb, v.size+n-m)
		return nil
	}
	if rangesAlias(v.buf, s) {
		tmp := make([]T, n)
		copy(tmp, s)
		s = tmp
	}
	switch {
	case n <= m:
		copyAssignRange(v.lc, v.buf[i:i+n], s)
		return v.EraseRange(i+n, j)
	default:
		extra := n - m
		moveRange(v.buf[j+extra:v.size+extra], v.buf[j:v.size])
		copyAssignRange(v.lc, v.buf[i:j], s[:m])
		copyConstructRange(v.lc, v.buf[j:j+extra], s[m:])
		v.size += extra
		v.version++
		return nil
	}
}

// ReplaceSeq substitutes [i, j) with the contents of seq.  Sized
// sequences are fused like ReplaceSlice, unsized ones erase first and
// stage the insertion through chained buffers.
func (v *Vector[T]) ReplaceSeq(i, j int, seq Seq[T]) error {
	if err := v.checkRange(i, j); err != nil {
		return err
	}
	n, sized := SeqSize[T](seq)
	if !sized {
		if err := v.EraseRange(i, j); err != nil {
			return err
		}
		return v.insertSeqUnknown(i, seq)
	}
	m := j - i
	if v.size+n-m > v.capacity() {
		nb, err := v.alloc.Allocate(bestCapacity(v.capacity(), v.size+n-m))
		if err != nil {
			return err
		}
		moveRange(nb[:i], v.buf[:i])
		k, _ := constructSeq(v.lc, nb[i:i+n], seq)
		destroyRange(v.lc, v.buf[i:j])
		moveRange(nb[i+k:v.size+k-m], v.buf[j:v.size])
		v.adopt(nb, v.size+k-m)
		return nil
	}
	switch {
	case n <= m:
		k, _ := assignSeq(v.lc, v.buf[i:i+n], seq)
		return v.EraseRange(i+k, j)
	default:
		extra := n - m
		moveRange(v.buf[j+extra:v.size+extra], v.buf[j:v.size])
		k, exhausted := assignSeq(v.lc, v.buf[i:j], seq)
		if exhausted {
			// short source: drop the unreplaced tail of [i+k, j) and
			// close the widened gap
			destroyRange(v.lc, v.buf[i+k:j])
			moveRange(v.buf[i+k:v.size+k-m], v.buf[j+extra:v.size+extra])
			zeroRange(v.buf[v.size+k-m : v.size+extra])
			v.size += k - m
			v.version++
			return nil
		}
		k2, _ := constructSeq(v.lc, v.buf[j:j+extra], seq)
		if k2 < extra {
			moveRange(v.buf[j+k2:v.size+k2], v.buf[j+extra:v.size+extra])
			zeroRange(v.buf[v.size+k2 : v.size+extra])
			v.size += k2
			v.version++
			return nil
		}
		v.size += extra
		v.version++
		return nil
	}
}

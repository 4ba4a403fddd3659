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

func (v *Vector[T]) checkInsertPos(i int) error {
	if i < 0 || i > v.size {
		return moerr.NewOutOfRange("vector", "insert position %d, size %d", i, v.size)
	}
	return nil
}

// Push appends val.
func (v *Vector[T]) Push(val T) error {
	if err := v.grow(1); err != nil {
		return err
	}
	constructOne(v.lc, &v.buf[v.size], val)
	v.size++
	v.version++
	return nil
}

// PushDefault appends a default-constructed element and returns a
// pointer to it, valid until the next size or capacity change.
func (v *Vector[T]) PushDefault() (*T, error) {
	if err := v.grow(1); err != nil {
		return nil, err
	}
	constructRange(v.lc, v.buf[v.size:v.size+1])
	p := &v.buf[v.size]
	v.size++
	v.version++
	return p, nil
}

// Insert places val before position i.
func (v *Vector[T]) Insert(i int, val T) error {
	if err := v.checkInsertPos(i); err != nil {
		return err
	}
	if v.Full() {
		// splice through a new buffer, constructing val in its
		// final slot
		nb, err := v.alloc.Allocate(bestCapacity(v.capacity(), v.size+1))
		if err != nil {
			return err
		}
		moveRange(nb[:i], v.buf[:i])
		constructOne(v.lc, &nb[i], val)
		moveRange(nb[i+1:v.size+1], v.buf[i:v.size])
		v.adopt(nb, v.size+1)
		return nil
	}
	// shift the suffix right, the vacated slot is a construct target
	moveRange(v.buf[i+1:v.size+1], v.buf[i:v.size])
	constructOne(v.lc, &v.buf[i], val)
	v.size++
	v.version++
	return nil
}

// InsertN places n copies of val before position i.
func (v *Vector[T]) InsertN(i, n int, val T) error {
	if err := v.checkInsertPos(i); err != nil {
		return err
	}
	if n < 0 {
		return moerr.NewInvalidArg("insert count", n)
	}
	if n == 0 {
		return nil
	}
	if v.size+n > v.capacity() {
		nb, err := v.alloc.Allocate(bestCapacity(v.capacity(), v.size+n))
		if err != nil {
			return err
		}
		moveRange(nb[:i], v.buf[:i])
		constructFill(v.lc, nb[i:i+n], val)
		moveRange(nb[i+n:v.size+n], v.buf[i:v.size])
		v.adopt(nb, v.size+n)
		return nil
	}
	moveRange(v.buf[i+n:v.size+n], v.buf[i:v.size])
	constructFill(v.lc, v.buf[i:i+n], val)
	v.size += n
	v.version++
	return nil
}

// InsertSlice places a copy of s before position i.  s may alias the
// vector's own storage.
func (v *Vector[T]) InsertSlice(i int, s []T) error {
	if err := v.checkInsertPos(i); err != nil {
		return err
	}
	n := len(s)
	if n == 0 {
		return nil
	}
	if v.size+n > v.capacity() {
		// the old buffer is only read during the splice, aliasing
		// sources stay intact until adopt
		nb, err := v.alloc.Allocate(bestCapacity(v.capacity(), v.size+n))
		if err != nil {
			return err
		}
		moveRange(nb[:i], v.buf[:i])
		copyConstructRange(v.lc, nb[i:i+n], s)
		moveRange(nb[i+n:v.size+n], v.buf[i:v.size])
		v.adopt(nb, v.size+n)
		return nil
	}
	if rangesAlias(v.buf, s) {
		// the shift below would clobber the source, go through a
		// detached copy
		tmp := make([]T, n)
		copy(tmp, s)
		s = tmp
	}
	moveRange(v.buf[i+n:v.size+n], v.buf[i:v.size])
	copyConstructRange(v.lc, v.buf[i:i+n], s)
	v.size += n
	v.version++
	return nil
}

// InsertSeq drains seq into the vector before position i.  A sized
// sequence is spliced in one pass, an unsized one goes through
// chained staging buffers, still in one pass over the source.
func (v *Vector[T]) InsertSeq(i int, seq Seq[T]) error {
	if err := v.checkInsertPos(i); err != nil {
		return err
	}
	n, sized := SeqSize[T](seq)
	if !sized {
		return v.insertSeqUnknown(i, seq)
	}
	if n == 0 {
		return nil
	}
	if v.size+n > v.capacity() {
		nb, err := v.alloc.Allocate(bestCapacity(v.capacity(), v.size+n))
		if err != nil {
			return err
		}
		moveRange(nb[:i], v.buf[:i])
		if k, exhausted := constructSeq(v.lc, nb[i:i+n], seq); exhausted {
			// the sequence lied about its length, keep what arrived
			moveRange(nb[i+k:v.size+k], v.buf[i:v.size])
			v.adopt(nb, v.size+k)
			return nil
		}
		moveRange(nb[i+n:v.size+n], v.buf[i:v.size])
		v.adopt(nb, v.size+n)
		return nil
	}
	moveRange(v.buf[i+n:v.size+n], v.buf[i:v.size])
	k, exhausted := constructSeq(v.lc, v.buf[i:i+n], seq)
	if exhausted && k < n {
		// close the unfilled part of the gap
		moveRange(v.buf[i+k:v.size+k], v.buf[i+n:v.size+n])
		zeroRange(v.buf[v.size+k : v.size+n])
		v.size += k
		v.version++
		return nil
	}
	v.size += n
	v.version++
	return nil
}

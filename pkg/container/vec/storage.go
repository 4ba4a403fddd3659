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

// Growth policy: an empty container jumps to two slots, afterwards
// capacity doubles.  Explicit demands larger than the doubled figure
// are taken verbatim.

func nextCapacity(c int) int {
	if c == 0 {
		return 2
	}
	return 2 * c
}

func bestCapacity(c, needed int) int {
	nc := nextCapacity(c)
	if needed > nc {
		return needed
	}
	return nc
}

// reallocate moves live elements to a buffer of at least newCap
// slots.  Requests within the current capacity are a no-op.  There is
// no rollback, a failed allocation leaves the container untouched but
// a panic from a lifecycle hook mid-move leaves content unspecified.
func (v *Vector[T]) reallocate(newCap int) error {
	if newCap <= v.capacity() {
		return nil
	}
	nb, err := v.alloc.Allocate(newCap)
	if err != nil {
		return err
	}
	moveRange(nb, v.buf[:v.size])
	v.releaseBuf()
	v.buf = nb
	v.version++
	return nil
}

// grow makes room for at least extra more elements, doubling by
// default.
func (v *Vector[T]) grow(extra int) error {
	needed := v.size + extra
	if needed <= v.capacity() {
		return nil
	}
	return v.reallocate(bestCapacity(v.capacity(), needed))
}

// releaseBuf hands the buffer back without touching element state.
// Every live element has either been destroyed or moved elsewhere by
// the caller.
func (v *Vector[T]) releaseBuf() {
	if v.buf != nil {
		v.alloc.Deallocate(v.buf)
		v.buf = nil
	}
}

// adopt installs a replacement buffer the caller has fully prepared.
func (v *Vector[T]) adopt(buf []T, size int) {
	v.releaseBuf()
	v.buf = buf
	v.size = size
	v.version++
}

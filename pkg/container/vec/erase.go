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

func (v *Vector[T]) checkRange(i, j int) error {
	if i < 0 || j < i || j > v.size {
		return moerr.NewOutOfRange("vector", "range [%d, %d), size %d", i, j, v.size)
	}
	return nil
}

// Erase removes the element at i.
func (v *Vector[T]) Erase(i int) error {
	return v.EraseRange(i, i+1)
}

// EraseRange removes [i, j).  An empty range is a no-op, a range
// reaching the end degrades to truncation.
func (v *Vector[T]) EraseRange(i, j int) error {
	if err := v.checkRange(i, j); err != nil {
		return err
	}
	if i == j {
		return nil
	}
	destroyRange(v.lc, v.buf[i:j])
	moveRange(v.buf[i:], v.buf[j:v.size])
	k := j - i
	zeroRange(v.buf[v.size-k : v.size])
	v.size -= k
	v.version++
	return nil
}

// Pop removes the last element.
func (v *Vector[T]) Pop() error {
	if v.size == 0 {
		return moerr.NewInvalidState("pop of empty vector")
	}
	v.truncate(v.size - 1)
	return nil
}

// TakeBack moves the last element out.  Returns false on an empty
// vector.
func (v *Vector[T]) TakeBack() (T, bool) {
	if v.size == 0 {
		var zero T
		return zero, false
	}
	val := v.buf[v.size-1]
	zeroRange(v.buf[v.size-1 : v.size])
	v.size--
	v.version++
	return val, true
}

// Take moves the element at i out and closes the gap.  The caller
// owns the returned value, no drop runs for it.
func (v *Vector[T]) Take(i int) (T, error) {
	var zero T
	if i < 0 || i >= v.size {
		return zero, moerr.NewOutOfRange("vector", "index %d, size %d", i, v.size)
	}
	val := v.buf[i]
	moveRange(v.buf[i:], v.buf[i+1:v.size])
	zeroRange(v.buf[v.size-1 : v.size])
	v.size--
	v.version++
	return val, nil
}

// TakeRange moves [i, j) out through the sink in order, then closes
// the gap.
func (v *Vector[T]) TakeRange(i, j int, sink func(T)) error {
	if err := v.checkRange(i, j); err != nil {
		return err
	}
	if i == j {
		return nil
	}
	for k := i; k < j; k++ {
		sink(v.buf[k])
	}
	moveRange(v.buf[i:], v.buf[j:v.size])
	k := j - i
	zeroRange(v.buf[v.size-k : v.size])
	v.size -= k
	v.version++
	return nil
}

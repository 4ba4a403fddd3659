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

// Seq is a single-pass element source.  Bulk operations taking a Seq
// consume it exactly once and never rewind.
type Seq[T any] interface {
	Next() (T, bool)
}

// SizedSeq is a Seq that knows how many elements remain.  Operations
// probe for it and pre-size storage when the upgrade succeeds.
type SizedSeq[T any] interface {
	Seq[T]
	Len() int
}

// SeqSize reports the remaining length when the source carries one.
func SeqSize[T any](s Seq[T]) (int, bool) {
	if ss, ok := s.(SizedSeq[T]); ok {
		return ss.Len(), true
	}
	return 0, false
}

type sliceSeq[T any] struct {
	s []T
	i int
}

// SliceSeq adapts a slice into a sized sequence.
func SliceSeq[T any](s []T) Seq[T] {
	return &sliceSeq[T]{s: s}
}

func (q *sliceSeq[T]) Next() (T, bool) {
	if q.i >= len(q.s) {
		var zero T
		return zero, false
	}
	v := q.s[q.i]
	q.i++
	return v, true
}

func (q *sliceSeq[T]) Len() int {
	return len(q.s) - q.i
}

type funcSeq[T any] struct {
	next func() (T, bool)
}

// FuncSeq adapts a generator function into an unsized sequence.
func FuncSeq[T any](next func() (T, bool)) Seq[T] {
	return &funcSeq[T]{next: next}
}

func (q *funcSeq[T]) Next() (T, bool) {
	return q.next()
}

type repeatSeq[T any] struct {
	val T
	n   int
}

// RepeatSeq yields val n times, as a sized sequence.
func RepeatSeq[T any](n int, val T) Seq[T] {
	return &repeatSeq[T]{val: val, n: n}
}

func (q *repeatSeq[T]) Next() (T, bool) {
	if q.n <= 0 {
		var zero T
		return zero, false
	}
	q.n--
	return q.val, true
}

func (q *repeatSeq[T]) Len() int {
	return q.n
}

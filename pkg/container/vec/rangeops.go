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
	"unsafe"

	"github.com/veckit/veckit/pkg/common/malloc"
)

// Bulk element lifecycle over spans.  The lifecycle hooks are checked
// once per call, trivial types run the plain slice path.
//
// Relocation within and between buffers is plain assignment: a moved
// value keeps its identity and must be dropped exactly once, at its
// final slot.  Construction targets are slots whose old value either
// never existed or has already moved away; assignment targets hold a
// live value that is dropped first.

func destroyRange[T any](lc *malloc.Lifecycle[T], s []T) {
	if lc.TrivialDrop() {
		return
	}
	for i := range s {
		lc.Drop(&s[i])
	}
}

// constructRange default-constructs every slot.  For a trivial Init
// the slots keep whatever bytes they already hold.  Freshly allocated
// storage is zeroed by the allocators in this module, but recycled
// regions inside one container are not re-zeroed.
func constructRange[T any](lc *malloc.Lifecycle[T], s []T) {
	if lc.TrivialInit() {
		return
	}
	for i := range s {
		lc.Init(&s[i])
	}
}

func constructOne[T any](lc *malloc.Lifecycle[T], dst *T, val T) {
	if lc.TrivialCopy() {
		*dst = val
		return
	}
	lc.Copy(dst, &val)
}

func assignOne[T any](lc *malloc.Lifecycle[T], dst *T, val T) {
	if !lc.TrivialDrop() {
		lc.Drop(dst)
	}
	constructOne(lc, dst, val)
}

// constructFill copy-constructs every slot from the exemplar.
func constructFill[T any](lc *malloc.Lifecycle[T], s []T, val T) {
	if lc.TrivialCopy() {
		for i := range s {
			s[i] = val
		}
		return
	}
	for i := range s {
		lc.Copy(&s[i], &val)
	}
}

// assignFill overwrites live slots with the exemplar.
func assignFill[T any](lc *malloc.Lifecycle[T], s []T, val T) {
	if lc.TrivialDrop() {
		constructFill(lc, s, val)
		return
	}
	for i := range s {
		lc.Drop(&s[i])
		constructOne(lc, &s[i], val)
	}
}

// copyConstructRange duplicates src into fresh dst slots.  The spans
// must not overlap.
func copyConstructRange[T any](lc *malloc.Lifecycle[T], dst, src []T) {
	if lc.TrivialCopy() {
		copy(dst, src)
		return
	}
	for i := range src {
		lc.Copy(&dst[i], &src[i])
	}
}

// copyAssignRange duplicates src over live dst slots.
func copyAssignRange[T any](lc *malloc.Lifecycle[T], dst, src []T) {
	if lc.TrivialDrop() {
		copyConstructRange(lc, dst, src)
		return
	}
	for i := range src {
		lc.Drop(&dst[i])
		lc.Copy(&dst[i], &src[i])
	}
}

// moveRange relocates src into dst by plain assignment.  Overlapping
// spans are fine, copy is memmove underneath.  The vacated slots keep
// stale duplicates, callers zero or overwrite them.
func moveRange[T any](dst, src []T) {
	copy(dst, src)
}

// zeroRange wipes slots that no longer hold live values, so stale
// duplicates neither pin heap objects nor get dropped later.
func zeroRange[T any](s []T) {
	var zero T
	for i := range s {
		s[i] = zero
	}
}

// constructSeq constructs into dst from src until either side runs
// out, reporting the constructed count and whether src is exhausted.
func constructSeq[T any](lc *malloc.Lifecycle[T], dst []T, src Seq[T]) (int, bool) {
	for i := range dst {
		val, ok := src.Next()
		if !ok {
			return i, true
		}
		constructOne(lc, &dst[i], val)
	}
	return len(dst), false
}

// assignSeq assigns over live dst slots from src, same cursor
// reporting as constructSeq.
func assignSeq[T any](lc *malloc.Lifecycle[T], dst []T, src Seq[T]) (int, bool) {
	for i := range dst {
		val, ok := src.Next()
		if !ok {
			return i, true
		}
		assignOne(lc, &dst[i], val)
	}
	return len(dst), false
}

// sliceOffset returns the element index of sub's start within base.
// sub must alias base.
func sliceOffset[T any](base, sub []T) int {
	var zero T
	sz := unsafe.Sizeof(zero)
	if sz == 0 {
		return 0
	}
	lo := uintptr(unsafe.Pointer(unsafe.SliceData(base)))
	at := uintptr(unsafe.Pointer(unsafe.SliceData(sub)))
	return int((at - lo) / sz)
}

// rangesAlias reports whether two spans share storage.
func rangesAlias[T any](a, b []T) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	var zero T
	sz := unsafe.Sizeof(zero)
	aLo := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	aHi := aLo + uintptr(len(a))*sz
	bLo := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	bHi := bLo + uintptr(len(b))*sz
	return aLo < bHi && bLo < aHi
}

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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/veckit/veckit/pkg/common/malloc"
	"github.com/veckit/veckit/pkg/common/mpool"
)

func TestAssignRoundTrips(t *testing.T) {
	v, err := FromSlice([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)

	// shorter
	require.NoError(t, v.Assign(2, 9))
	require.Equal(t, []int{9, 9}, v.Data())

	// equal
	require.NoError(t, v.Assign(2, 8))
	require.Equal(t, []int{8, 8}, v.Data())

	// longer, within capacity
	require.NoError(t, v.Assign(5, 7))
	require.Equal(t, []int{7, 7, 7, 7, 7}, v.Data())

	// longer, reallocating
	require.NoError(t, v.Assign(100, 6))
	require.Equal(t, 100, v.Len())
	require.Equal(t, 6, v.MustGet(99))
}

func TestAssignDropsOldValues(t *testing.T) {
	var st hookStats
	v := New(WithAllocator(countingAllocator(&st)))
	for i := 0; i < 5; i++ {
		require.NoError(t, v.Push(i))
	}
	st = hookStats{}

	require.NoError(t, v.Assign(2, 42))
	require.Equal(t, 5, st.drops, "every old element dropped exactly once")
	require.Equal(t, []int{42, 42}, v.Data())
}

func TestAssignSlice(t *testing.T) {
	v, err := FromSlice([]int{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, v.AssignSlice([]int{4, 5, 6, 7}))
	require.Equal(t, []int{4, 5, 6, 7}, v.Data())

	require.NoError(t, v.AssignSlice(nil))
	require.True(t, v.Empty())
}

func TestAssignSliceSelf(t *testing.T) {
	v, err := FromSlice([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)

	// assigning a window of the vector to itself
	require.NoError(t, v.AssignSlice(v.Data()[1:4]))
	require.Equal(t, []int{2, 3, 4}, v.Data())
}

func TestAssignSeq(t *testing.T) {
	v, err := FromSlice([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)

	require.NoError(t, v.AssignSeq(SliceSeq([]int{9, 8})))
	require.Equal(t, []int{9, 8}, v.Data())

	k := 0
	unsized := FuncSeq(func() (int, bool) {
		if k >= 7 {
			return 0, false
		}
		k++
		return k, true
	})
	require.NoError(t, v.AssignSeq(unsized))
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, v.Data())
}

func TestAssignSeqWithinCapacityKeepsBuffer(t *testing.T) {
	v, err := FromSlice([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.NoError(t, v.Reserve(8))
	p := unsafe.SliceData(v.buf)

	require.NoError(t, v.AssignSeq(SliceSeq([]int{9, 8, 7})))
	require.Equal(t, []int{9, 8, 7}, v.Data())
	require.Equal(t, 8, v.Cap())
	require.Equal(t, p, unsafe.SliceData(v.buf), "sized assign within capacity must reuse storage")
}

func TestCopyFrom(t *testing.T) {
	a, err := FromSlice([]int{1, 2, 3})
	require.NoError(t, err)
	b, err := FromSlice([]int{9})
	require.NoError(t, err)

	require.NoError(t, b.CopyFrom(a))
	require.Equal(t, a.Data(), b.Data())

	require.NoError(t, b.Set(0, 100))
	require.Equal(t, 1, a.MustGet(0), "copy must not share storage")

	require.NoError(t, a.CopyFrom(a))
	require.Equal(t, []int{1, 2, 3}, a.Data())
}

func TestMoveFromStealsWhenEqual(t *testing.T) {
	a, err := FromSlice([]int{1, 2, 3})
	require.NoError(t, err)
	b := New[int]()

	p := unsafe.SliceData(a.buf)
	require.NoError(t, b.MoveFrom(a))
	require.Equal(t, []int{1, 2, 3}, b.Data())
	require.Equal(t, p, unsafe.SliceData(b.buf), "equal allocators steal storage")
	require.True(t, a.Empty())
}

func TestMoveFromIncompatibleAllocators(t *testing.T) {
	mp, err := mpool.NewMPool("test-vec-movefrom", 0)
	require.NoError(t, err)
	defer mpool.DeleteMPool(mp)

	pa, err := malloc.NewPoolAllocator[int](mp, nil, malloc.Policy{})
	require.NoError(t, err)

	src, err := FromSlice([]int{5, 6, 7}, WithAllocator[int](pa))
	require.NoError(t, err)
	dst := New[int]()

	require.NoError(t, dst.MoveFrom(src))
	require.Equal(t, []int{5, 6, 7}, dst.Data())
	require.True(t, src.Empty())

	src.Free()
	dst.Free()
	require.Equal(t, int64(0), mp.CurrNB())
}

func TestMoveFromPropagates(t *testing.T) {
	mp, err := mpool.NewMPool("test-vec-movefrom-prop", 0)
	require.NoError(t, err)
	defer mpool.DeleteMPool(mp)

	pa, err := malloc.NewPoolAllocator[int](mp, nil, malloc.Policy{PropagateOnMove: true})
	require.NoError(t, err)

	src, err := FromSlice([]int{1, 2}, WithAllocator[int](pa))
	require.NoError(t, err)
	dst := New[int]()

	require.NoError(t, dst.MoveFrom(src))
	require.Equal(t, malloc.Allocator[int](pa), dst.Allocator(), "allocator travels on move")
	require.Equal(t, []int{1, 2}, dst.Data())

	dst.Free()
	require.Equal(t, int64(0), mp.CurrNB())
}

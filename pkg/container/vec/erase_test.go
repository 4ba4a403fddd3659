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

	"github.com/stretchr/testify/require"

	"github.com/veckit/veckit/pkg/common/moerr"
)

func TestErase(t *testing.T) {
	v, err := FromSlice([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)

	require.NoError(t, v.Erase(2))
	require.Equal(t, []int{1, 2, 4, 5}, v.Data())

	require.NoError(t, v.Erase(0))
	require.Equal(t, []int{2, 4, 5}, v.Data())

	require.NoError(t, v.Erase(v.Len()-1))
	require.Equal(t, []int{2, 4}, v.Data())

	require.True(t, moerr.IsOutOfRange(v.Erase(5)))
}

func TestEraseRange(t *testing.T) {
	v, err := FromSlice([]int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	capBefore := v.Cap()

	// empty range is a no-op
	require.NoError(t, v.EraseRange(3, 3))
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, v.Data())

	require.NoError(t, v.EraseRange(1, 3))
	require.Equal(t, []int{1, 4, 5, 6}, v.Data())

	// erase through the end degrades to truncation
	require.NoError(t, v.EraseRange(2, v.Len()))
	require.Equal(t, []int{1, 4}, v.Data())
	require.Equal(t, capBefore, v.Cap())

	require.True(t, moerr.IsOutOfRange(v.EraseRange(2, 1)))
	require.True(t, moerr.IsOutOfRange(v.EraseRange(0, 10)))
}

func TestEraseDropsRemovedOnly(t *testing.T) {
	var st hookStats
	v := New(WithAllocator(countingAllocator(&st)))
	for i := 0; i < 6; i++ {
		require.NoError(t, v.Push(i * 10))
	}
	st = hookStats{}

	require.NoError(t, v.EraseRange(1, 3))
	require.Equal(t, 2, st.drops, "only removed elements dropped")
	require.Equal(t, []int{0, 30, 40, 50}, v.Data())
}

func TestPop(t *testing.T) {
	v, err := FromSlice([]int{1, 2})
	require.NoError(t, err)

	require.NoError(t, v.Pop())
	require.NoError(t, v.Pop())
	require.Error(t, v.Pop())
	require.True(t, v.Empty())
}

func TestTakeBack(t *testing.T) {
	var st hookStats
	v := New(WithAllocator(countingAllocator(&st)))
	require.NoError(t, v.Push(1))
	require.NoError(t, v.Push(2))
	st = hookStats{}

	val, ok := v.TakeBack()
	require.True(t, ok)
	require.Equal(t, 2, val)
	require.Equal(t, 0, st.drops, "taken values are not dropped")
	require.Equal(t, 1, v.Len())

	_, ok = New[int]().TakeBack()
	require.False(t, ok)
}

func TestTake(t *testing.T) {
	v, err := FromSlice([]int{1, 2, 3, 4})
	require.NoError(t, err)

	val, err := v.Take(1)
	require.NoError(t, err)
	require.Equal(t, 2, val)
	require.Equal(t, []int{1, 3, 4}, v.Data())

	_, err = v.Take(10)
	require.True(t, moerr.IsOutOfRange(err))
}

func TestTakeRange(t *testing.T) {
	v, err := FromSlice([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)

	var got []int
	require.NoError(t, v.TakeRange(1, 4, func(x int) { got = append(got, x) }))
	require.Equal(t, []int{2, 3, 4}, got)
	require.Equal(t, []int{1, 5}, v.Data())

	require.NoError(t, v.TakeRange(1, 1, func(x int) { t.Fatal("unexpected") }))
}

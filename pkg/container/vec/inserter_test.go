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

func TestReserveAppendCommit(t *testing.T) {
	v, err := FromSlice([]int{1, 2})
	require.NoError(t, err)

	r, err := v.ReserveAppend(4)
	require.NoError(t, err)
	slots := r.Slots()
	require.Equal(t, 4, len(slots))

	// a decoder writes three of the four reserved slots
	slots[0], slots[1], slots[2] = 10, 11, 12
	require.NoError(t, r.Commit(3))
	require.Equal(t, []int{1, 2, 10, 11, 12}, v.Data())
}

func TestReserveAppendCommitZero(t *testing.T) {
	v, err := FromSlice([]int{1})
	require.NoError(t, err)

	r, err := v.ReserveAppend(8)
	require.NoError(t, err)
	require.NoError(t, r.Commit(0))
	require.Equal(t, []int{1}, v.Data())

	require.Error(t, r.Commit(1), "a region commits once")
}

func TestReserveAppendInvalidation(t *testing.T) {
	v, err := FromSlice([]int{1, 2})
	require.NoError(t, err)

	r, err := v.ReserveAppend(2)
	require.NoError(t, err)

	// any other mutation invalidates the reservation
	require.NoError(t, v.Push(3))
	err = r.Commit(2)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrStaleView))
	require.Equal(t, []int{1, 2, 3}, v.Data())
}

func TestReserveAppendBadCounts(t *testing.T) {
	v := New[int]()
	_, err := v.ReserveAppend(-1)
	require.Error(t, err)

	r, err := v.ReserveAppend(2)
	require.NoError(t, err)
	require.Error(t, r.Commit(3))
	require.Error(t, r.Commit(-1))
}

func TestBackInserter(t *testing.T) {
	v := New[int]()
	bi := v.BackInserter()

	for i := 0; i < 100; i++ {
		require.NoError(t, bi.Push(i))
	}
	require.Equal(t, 100, v.Len())
	for i := 0; i < 100; i++ {
		require.Equal(t, i, v.MustGet(i))
	}
}

func TestBackInserterNext(t *testing.T) {
	v := New[int]()
	bi := v.BackInserter()

	p, err := bi.Next()
	require.NoError(t, err)
	*p = 42
	require.Equal(t, []int{42}, v.Data())
}

func TestBackInserterInvalidation(t *testing.T) {
	v := New[int]()
	bi := v.BackInserter()
	require.NoError(t, bi.Push(1))

	// a mutation outside the inserter invalidates it
	require.NoError(t, v.Push(2))
	_, err := bi.Next()
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrStaleView))
}

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

	"github.com/smartystreets/goconvey/convey"
)

func mustVec(t *testing.T, s []int) *Vector[int] {
	t.Helper()
	v, err := FromSlice(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func Test_Equal(t *testing.T) {
	convey.Convey("Test vector equality succ", t, func() {
		eq := func(a, b int) bool { return a == b }

		a := mustVec(t, []int{1, 2, 3})
		b := mustVec(t, []int{1, 2, 3})
		c := mustVec(t, []int{1, 2, 4})
		d := mustVec(t, []int{1, 2})

		convey.So(a.Equal(b, eq), convey.ShouldBeTrue)
		convey.So(a.Equal(c, eq), convey.ShouldBeFalse)
		convey.So(a.Equal(d, eq), convey.ShouldBeFalse)
		convey.So(New[int]().Equal(New[int](), eq), convey.ShouldBeTrue)
	})
}

func Test_Compare(t *testing.T) {
	convey.Convey("Test vector ordering succ", t, func() {
		less := func(a, b int) bool { return a < b }

		var cases = []struct {
			a, b []int
			want int
		}{
			{nil, nil, 0},
			{[]int{1, 2, 3}, []int{1, 2, 3}, 0},
			{[]int{1, 2}, []int{1, 2, 3}, -1},
			{[]int{9, 9}, []int{1, 2, 3}, -1}, // size decides first
			{[]int{1, 2, 3}, []int{0}, 1},
			{[]int{1, 2, 3}, []int{1, 2, 4}, -1},
			{[]int{1, 3, 3}, []int{1, 2, 4}, 1},
		}
		for _, c := range cases {
			a := mustVec(t, c.a)
			b := mustVec(t, c.b)
			convey.So(a.Compare(b, less), convey.ShouldEqual, c.want)
			convey.So(a.Less(b, less), convey.ShouldEqual, c.want < 0)
		}
	})
}

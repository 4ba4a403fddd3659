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
	"github.com/veckit/veckit/pkg/common/util"
)

// Equal reports whether v and o hold the same sequence.  Sizes are
// compared before any element.
func (v *Vector[T]) Equal(o *Vector[T], eq func(a, b T) bool) bool {
	if v.size != o.size {
		return false
	}
	return util.EqualRange(v.Data(), o.Data(), eq)
}

// Compare orders two vectors: by size first, element order decides
// only between equal sizes.
func (v *Vector[T]) Compare(o *Vector[T], less func(a, b T) bool) int {
	switch {
	case v.size < o.size:
		return -1
	case v.size > o.size:
		return 1
	}
	return util.CompareRange(v.Data(), o.Data(), less)
}

// Less reports whether v orders strictly before o.
func (v *Vector[T]) Less(o *Vector[T], less func(a, b T) bool) bool {
	return v.Compare(o, less) < 0
}

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

package util

// CompareRange orders two spans lexicographically using only a
// two-argument less-than.  A shorter span that ties on the shared
// prefix orders first.
func CompareRange[T any](a, b []T, less func(x, y T) bool) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if less(a[i], b[i]) {
			return -1
		}
		if less(b[i], a[i]) {
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// LexicographicLess reports whether a orders strictly before b.
func LexicographicLess[T any](a, b []T, less func(x, y T) bool) bool {
	return CompareRange(a, b, less) < 0
}

// EqualRange reports element-wise equality of two equal-length spans.
func EqualRange[T any](a, b []T, eq func(x, y T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

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

package malloc

// Lifecycle customizes element construction and destruction.  A nil
// Lifecycle, or any nil hook, means the corresponding operation is
// trivial and bulk code may skip it entirely.
type Lifecycle[T any] struct {
	// Init default-constructs a slot.  When nil, slots keep whatever
	// bytes the allocator handed out.
	Init func(p *T)
	// Copy places *src into *dst.  When nil, plain assignment.
	Copy func(dst, src *T)
	// Drop destroys a live slot.  When nil, nothing to release.
	Drop func(p *T)
	// ExpensiveCopy marks element duplication as costly.  Containers
	// construct elements directly in their final slot either way, the
	// flag is advisory for callers batching copies.
	ExpensiveCopy bool
}

func (lc *Lifecycle[T]) TrivialInit() bool {
	return lc == nil || lc.Init == nil
}

func (lc *Lifecycle[T]) TrivialCopy() bool {
	return lc == nil || lc.Copy == nil
}

func (lc *Lifecycle[T]) TrivialDrop() bool {
	return lc == nil || lc.Drop == nil
}

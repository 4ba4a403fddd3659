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

import (
	"reflect"
	"unsafe"

	"github.com/veckit/veckit/pkg/common/moerr"
	"github.com/veckit/veckit/pkg/common/mpool"
)

// PoolAllocator serves typed storage out of an mpool byte pool.  The
// element type must be pointer-free, the pool does not participate in
// garbage collection scanning and large buffers live outside the Go
// heap entirely.
type PoolAllocator[T any] struct {
	mp     *mpool.MPool
	lc     *Lifecycle[T]
	policy Policy
	elemSz int
}

func NewPoolAllocator[T any](mp *mpool.MPool, lc *Lifecycle[T], policy Policy) (*PoolAllocator[T], error) {
	var zero T
	typ := reflect.TypeOf(&zero).Elem()
	if containsPointers(typ) {
		return nil, moerr.NewInvalidInput("pool allocator element type %s contains pointers", typ.String())
	}
	return &PoolAllocator[T]{
		mp:     mp,
		lc:     lc,
		policy: policy,
		elemSz: int(unsafe.Sizeof(zero)),
	}, nil
}

func containsPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return containsPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if containsPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (p *PoolAllocator[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, moerr.NewInvalidArg("allocate count", n)
	}
	if n == 0 {
		return nil, nil
	}
	if n > p.MaxSize() {
		return nil, moerr.NewOOM()
	}
	if p.elemSz == 0 {
		return make([]T, n), nil
	}
	buf, err := p.mp.Alloc(n * p.elemSz)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(buf))), n), nil
}

func (p *PoolAllocator[T]) Deallocate(s []T) {
	if s == nil {
		panic(moerr.NewInvalidArg("deallocate", "nil slice"))
	}
	if p.elemSz == 0 {
		return
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*p.elemSz)
	p.mp.Free(buf)
}

func (p *PoolAllocator[T]) MaxSize() int {
	if p.elemSz == 0 {
		return int(^uint(0) >> 1)
	}
	return int(^uint(0)>>1) / p.elemSz
}

func (p *PoolAllocator[T]) Policy() Policy {
	return p.policy
}

func (p *PoolAllocator[T]) Equal(other Allocator[T]) bool {
	o, ok := other.(*PoolAllocator[T])
	return ok && o.mp == p.mp
}

func (p *PoolAllocator[T]) Lifecycle() *Lifecycle[T] {
	return p.lc
}

// Pool exposes the backing byte pool for accounting.
func (p *PoolAllocator[T]) Pool() *mpool.MPool {
	return p.mp
}

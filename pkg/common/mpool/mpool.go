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

// Package mpool is a byte-level memory pool with accounting.  Every
// allocation carries a hidden header so Free can verify ownership and
// settle the books.  Large allocations are served by anonymous mmap
// and returned to the OS on free, small ones come from the Go heap.
package mpool

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/veckit/veckit/pkg/common/moerr"
	"github.com/veckit/veckit/pkg/logutil"
)

const (
	kMemHdrSz           = 24
	kMemGuard    uint32 = 0xdeadbeef

	// allocations at or above this size go to mmap
	kMmapThreshold = 1 << 20

	kindGo   int32 = 1
	kindMmap int32 = 2
)

type memHdr struct {
	poolId  int64
	allocSz int64
	kind    int32
	guard   uint32
}

// Stats records allocation accounting for one pool.  All fields are
// atomics, a pool is safe to share between goroutines.
type Stats struct {
	NumAlloc      atomic.Int64
	NumFree       atomic.Int64
	NumGoAlloc    atomic.Int64
	NumMmapAlloc  atomic.Int64
	NumCurrBytes  atomic.Int64
	HighWaterMark atomic.Int64
}

func (s *Stats) RecordFree(sz int64) {
	s.NumFree.Add(1)
	s.NumCurrBytes.Add(-sz)
}

// MPool tracks and limits allocations.  Cap <= 0 means unlimited.
type MPool struct {
	id    int64
	name  string
	cap   int64
	stats Stats
}

var (
	nextPoolId atomic.Int64
	pools      sync.Map // name -> *MPool
)

// NewMPool creates and registers a pool.  Pool names must be unique.
func NewMPool(name string, cap int64) (*MPool, error) {
	mp := &MPool{
		id:   nextPoolId.Add(1),
		name: name,
		cap:  cap,
	}
	if _, loaded := pools.LoadOrStore(name, mp); loaded {
		return nil, moerr.NewDupPoolName(name)
	}
	logutil.Debug("mpool created",
		zap.String("name", name), zap.Int64("cap", cap))
	return mp, nil
}

// MustNewNoLimit creates an unlimited pool, panics on name conflicts.
func MustNewNoLimit(name string) *MPool {
	mp, err := NewMPool(name, 0)
	if err != nil {
		panic(err)
	}
	return mp
}

// DeleteMPool unregisters the pool.  Leaked bytes are logged.
func DeleteMPool(mp *MPool) {
	if mp == nil {
		return
	}
	if nb := mp.stats.NumCurrBytes.Load(); nb != 0 {
		logutil.Warn("mpool deleted with outstanding bytes",
			zap.String("name", mp.name), zap.Int64("bytes", nb))
	}
	pools.Delete(mp.name)
}

func (mp *MPool) Name() string {
	return mp.name
}

func (mp *MPool) Cap() int64 {
	return mp.cap
}

func (mp *MPool) Stats() *Stats {
	return &mp.stats
}

// CurrNB returns the number of live bytes in the pool.
func (mp *MPool) CurrNB() int64 {
	return mp.stats.NumCurrBytes.Load()
}

// reserve claims sz live bytes.  The claim is added before the cap
// check and undone on overshoot, so concurrent claims cannot slip
// past the cap together.
func (mp *MPool) reserve(sz int64) error {
	curr := mp.stats.NumCurrBytes.Add(sz)
	if mp.cap > 0 && curr > mp.cap {
		mp.stats.NumCurrBytes.Add(-sz)
		return moerr.NewOOM()
	}
	for {
		hw := mp.stats.HighWaterMark.Load()
		if curr <= hw {
			break
		}
		if mp.stats.HighWaterMark.CompareAndSwap(hw, curr) {
			break
		}
	}
	return nil
}

func (mp *MPool) unreserve(sz int64) {
	mp.stats.NumCurrBytes.Add(-sz)
}

// Alloc returns sz zeroed bytes.  Alloc(0) returns nil.
func (mp *MPool) Alloc(sz int) ([]byte, error) {
	if sz < 0 {
		return nil, moerr.NewInvalidArg("mpool alloc size", sz)
	}
	if sz == 0 {
		return nil, nil
	}
	total := int64(sz) + kMemHdrSz
	if err := mp.reserve(total); err != nil {
		return nil, err
	}

	var buf []byte
	var kind int32
	if total >= kMmapThreshold {
		var err error
		buf, err = unix.Mmap(-1, 0, int(total),
			unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_PRIVATE|unix.MAP_ANON)
		if err != nil {
			mp.unreserve(total)
			return nil, moerr.NewOOM()
		}
		kind = kindMmap
		mp.stats.NumMmapAlloc.Add(1)
	} else {
		buf = make([]byte, total)
		kind = kindGo
		mp.stats.NumGoAlloc.Add(1)
	}

	hdr := (*memHdr)(unsafe.Pointer(&buf[0]))
	hdr.poolId = mp.id
	hdr.allocSz = total
	hdr.kind = kind
	hdr.guard = kMemGuard
	mp.stats.NumAlloc.Add(1)
	return buf[kMemHdrSz : kMemHdrSz+int64(sz) : total], nil
}

func hdrOf(b []byte) *memHdr {
	ptr := unsafe.Pointer(unsafe.SliceData(b))
	return (*memHdr)(unsafe.Add(ptr, -kMemHdrSz))
}

// Free releases a buffer obtained from Alloc or Realloc.  Passing a
// foreign buffer panics, the header guard catches it.
func (mp *MPool) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	hdr := hdrOf(b)
	if hdr.guard != kMemGuard || hdr.poolId != mp.id {
		panic(moerr.NewForeignBuffer(mp.name))
	}
	kind := hdr.kind
	total := hdr.allocSz
	// poison the guard so a double free trips
	hdr.guard = 0
	mp.stats.RecordFree(total)
	if kind == kindMmap {
		whole := unsafe.Slice((*byte)(unsafe.Pointer(hdr)), total)
		if err := unix.Munmap(whole); err != nil {
			logutil.Error("munmap failed",
				zap.String("pool", mp.name), zap.Error(err))
		}
	}
}

// Realloc grows a buffer to sz bytes, copying the old content.  The
// new tail is zeroed.
func (mp *MPool) Realloc(old []byte, sz int) ([]byte, error) {
	if sz <= len(old) {
		return old[:sz], nil
	}
	buf, err := mp.Alloc(sz)
	if err != nil {
		return nil, err
	}
	copy(buf, old)
	mp.Free(old)
	return buf, nil
}

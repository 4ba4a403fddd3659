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

// Unknown-length insertion.  The source is consumed exactly once into
// a chain of staging buffers whose capacities follow the growth
// policy.  Element t is staged at slot (i+t) mod cap, so when the
// last buffer is large enough to become the final storage its
// elements already sit at their final indices and only the prefix,
// the suffix and the earlier buffers move.  Each inserted element is
// constructed once and moved at most once, each preexisting element
// moves once.

type stageBlock[T any] struct {
	buf   []T
	first int // insertion ordinal of the first staged element
	n     int
}

func (v *Vector[T]) insertSeqUnknown(i int, seq Seq[T]) error {
	var blocks []stageBlock[T]
	total := 0
	blockCap := nextCapacity(v.capacity())

	release := func() {
		for _, b := range blocks {
			v.alloc.Deallocate(b.buf)
		}
	}

	exhausted := false
	for !exhausted {
		buf, err := v.alloc.Allocate(blockCap)
		if err != nil {
			release()
			return err
		}
		blk := stageBlock[T]{buf: buf, first: total}
		for blk.n < blockCap {
			val, ok := seq.Next()
			if !ok {
				exhausted = true
				break
			}
			constructOne(v.lc, &buf[(i+total)%blockCap], val)
			blk.n++
			total++
		}
		blocks = append(blocks, blk)
		blockCap = nextCapacity(blockCap)
	}

	if total == 0 {
		release()
		return nil
	}

	newSize := v.size + total
	last := blocks[len(blocks)-1]
	lastCap := len(last.buf)

	if lastCap >= newSize {
		// the last buffer becomes the storage, its elements are
		// already in place: ordinals [first, total) live at absolute
		// slots i+first .. i+total-1, all below lastCap
		blocks = blocks[:len(blocks)-1]
		moveRange(last.buf[:i], v.buf[:i])
		moveRange(last.buf[i+total:newSize], v.buf[i:v.size])
		for _, b := range blocks {
			bc := len(b.buf)
			for t := b.first; t < b.first+b.n; t++ {
				last.buf[i+t] = b.buf[(i+t)%bc]
			}
			v.alloc.Deallocate(b.buf)
		}
		v.adopt(last.buf, newSize)
		return nil
	}

	final, err := v.alloc.Allocate(bestCapacity(lastCap, newSize))
	if err != nil {
		release()
		return err
	}
	moveRange(final[:i], v.buf[:i])
	moveRange(final[i+total:newSize], v.buf[i:v.size])
	for _, b := range blocks {
		bc := len(b.buf)
		for t := b.first; t < b.first+b.n; t++ {
			final[i+t] = b.buf[(i+t)%bc]
		}
		v.alloc.Deallocate(b.buf)
	}
	v.adopt(final, newSize)
	return nil
}

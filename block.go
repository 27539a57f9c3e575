/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package arena

import (
	"unsafe"
)

const (
	// headerSize is the size of the bookkeeping header at the start of every
	// block's backing memory. Data starts right after it, so the data region
	// of a block backed by a 16-byte aligned buffer stays 16-byte aligned.
	headerSize = 16

	// blockMagic marks the header of a live block. It is cleared when the
	// block is disposed so a double dispose or a stray header write is
	// caught instead of corrupting the backing allocator.
	blockMagic uint64 = 0xBADB10CC0DE
)

// block is one contiguous chunk of backing memory owned by an arena.
// buf holds the whole allocation: header words first, data after.
type block struct {
	next *block
	buf  []byte
}

// allocBlock obtains a block with size usable data bytes from mc.
// With slack, headerSize+size is rounded up to the allocator-friendly size
// first, so the spare capacity becomes usable bytes instead of waste; the
// returned usable size is >= size either way.
// The caller must have overflow-checked headerSize+size already.
func allocBlock(mc Allocator, size int, slack bool) (b *block, usable int, err error) {
	total := headerSize + size
	if slack {
		total = mc.GoodSize(total)
	}
	buf, err := mc.Malloc(total)
	if err != nil {
		return nil, 0, err
	}
	if len(buf) < total {
		panic("arena: backing allocator returned short buffer")
	}
	usable = total - headerSize
	b = &block{buf: buf[:total]}
	p := unsafe.Pointer(&b.buf[0])
	*(*uint64)(p) = blockMagic
	*(*uint64)(unsafe.Add(p, 8)) = uint64(usable)
	return b, usable, nil
}

// data returns the usable region of the block. The cap is pinned to the
// usable size so no caller can write past the block's end.
func (b *block) data() []byte {
	return b.buf[headerSize:len(b.buf):len(b.buf)]
}

func (b *block) usable() int {
	return len(b.buf) - headerSize
}

// deallocate finalizes the header, then returns the raw memory to mc.
// The block must not be referenced afterwards.
func (b *block) deallocate(mc Allocator) {
	p := unsafe.Pointer(&b.buf[0])
	if *(*uint64)(p) != blockMagic {
		panic("arena: double free or invalid block")
	}
	if int(*(*uint64)(unsafe.Add(p, 8))) != b.usable() {
		panic("arena: corrupted block header")
	}
	*(*uint64)(p) = 0
	buf := b.buf
	b.buf = nil
	b.next = nil
	mc.Free(buf)
}

// blockList is a singly linked list of blocks with O(1) operations at both
// ends and O(1) splicing. The zero value is an empty list.
//
// The arena keeps its current bump block at the front and dedicated
// oversized blocks at the back.
type blockList struct {
	head *block
	tail *block
	n    int
}

func (l *blockList) pushFront(b *block) {
	b.next = l.head
	l.head = b
	if l.tail == nil {
		l.tail = b
	}
	l.n++
}

func (l *blockList) pushBack(b *block) {
	b.next = nil
	if l.tail == nil {
		l.head = b
	} else {
		l.tail.next = b
	}
	l.tail = b
	l.n++
}

// prepend moves every block of o to the front of l, preserving o's order,
// and leaves o empty. It relinks list ends only: O(1) regardless of length.
func (l *blockList) prepend(o *blockList) {
	if o.head == nil {
		return
	}
	o.tail.next = l.head
	if l.tail == nil {
		l.tail = o.tail
	}
	l.head = o.head
	l.n += o.n
	o.head, o.tail, o.n = nil, nil, 0
}

// popFront removes and returns the front block, or nil if the list is empty.
func (l *blockList) popFront() *block {
	b := l.head
	if b == nil {
		return nil
	}
	l.head = b.next
	if l.head == nil {
		l.tail = nil
	}
	b.next = nil
	l.n--
	return b
}

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

// Package arena provides a region-based memory allocator: it serves many
// short-lived allocations out of a few large backing blocks obtained from an
// Allocator, and reclaims them all at once on Release.
//
// An Arena is single-owner. None of its methods are safe for concurrent use;
// callers needing shared access must lock externally or keep one arena per
// goroutine.
package arena

import (
	"errors"

	"github.com/cloudwego/arena/internal/safemath"
)

const (
	// DefaultMinBlockSize is the default data capacity of a standard block.
	// Header included, a default block asks the backing allocator for
	// exactly 4KB before slack rounding.
	DefaultMinBlockSize = 4096 - headerSize

	// NoSizeLimit disables the cumulative size limit.
	NoSizeLimit = 0
)

var (
	// ErrSizeOverflow is returned when the required block size computation
	// would overflow int. The arena is left unchanged.
	ErrSizeOverflow = errors.New("arena: block size overflows int")

	// ErrSizeLimit is returned when honoring an allocation would push the
	// cumulative acquired bytes past the configured SizeLimit. The arena is
	// left unchanged.
	ErrSizeLimit = errors.New("arena: size limit exceeded")

	errNegativeSize = errors.New("arena: negative size")
)

// Option configures an Arena at construction.
type Option struct {
	// MinBlockSize is the data capacity of a standard block. Requests no
	// larger than it are bump-allocated out of standard blocks; larger
	// requests get a dedicated block each.
	MinBlockSize int

	// SizeLimit caps the cumulative bytes (data + header) the arena may
	// acquire from its backing allocator over its lifetime.
	// NoSizeLimit means unbounded.
	SizeLimit int
}

// DefaultOption returns the default values of Option.
func DefaultOption() *Option {
	return &Option{
		MinBlockSize: DefaultMinBlockSize,
		SizeLimit:    NoSizeLimit,
	}
}

// Arena owns a list of backing blocks and a bump window into the most
// recently acquired standard block. The zero Arena is not usable; call New.
type Arena struct {
	mc     Allocator
	blocks blockList

	// cur is the unused tail of the current bump block, nil until the first
	// standard block is acquired. It is always capped at the block's usable
	// end, so a carved allocation can never grow into the window.
	cur []byte

	minBlockSize   int
	sizeLimit      int
	totalAllocated int
	bytesUsed      int
}

// New creates an Arena backed by mc. A nil mc selects CacheAllocator.
// A nil opt, or zero fields in it, select the DefaultOption values.
// MinBlockSize must be > 0 once defaulted.
func New(mc Allocator, opt *Option) *Arena {
	if mc == nil {
		mc = CacheAllocator{}
	}
	if opt == nil {
		opt = DefaultOption()
	}
	minBlockSize := opt.MinBlockSize
	if minBlockSize == 0 {
		minBlockSize = DefaultMinBlockSize
	}
	if minBlockSize < 0 {
		panic("arena: MinBlockSize must be > 0")
	}
	sizeLimit := opt.SizeLimit
	if sizeLimit < 0 {
		panic("arena: SizeLimit must be >= 0")
	}
	return &Arena{
		mc:           mc,
		minBlockSize: minBlockSize,
		sizeLimit:    sizeLimit,
	}
}

// Alloc returns a buffer of exactly size bytes of arena-owned memory, with
// cap(buf) == size. The memory is NOT zeroed: backing allocators recycle
// dirty buffers. The buffer stays valid until the owning arena (after any
// Merge, the recipient) is Released; it must never be freed individually.
//
// The fast path bump-allocates from the current block and cannot fail.
// When the current block cannot satisfy the request, one backing allocation
// is made; on any failure the arena is left byte-for-byte unchanged.
func (a *Arena) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, errNegativeSize
	}
	if size <= len(a.cur) {
		buf := a.cur[:size:size]
		a.cur = a.cur[size:]
		a.bytesUsed += size
		return buf, nil
	}
	return a.allocSlow(size)
}

func (a *Arena) allocSlow(size int) ([]byte, error) {
	reqSize := size
	if reqSize < a.minBlockSize {
		reqSize = a.minBlockSize
	}
	allocSize, ok := safemath.Add(reqSize, headerSize)
	if !ok {
		return nil, ErrSizeOverflow
	}
	if a.sizeLimit != NoSizeLimit && allocSize > a.sizeLimit-a.totalAllocated {
		return nil, ErrSizeLimit
	}

	var buf []byte
	if size > a.minBlockSize {
		// Oversized request: a dedicated block, sized exactly, kept at the
		// back of the list and never bump-allocated from again. The current
		// bump window is untouched.
		b, usable, err := allocBlock(a.mc, size, false)
		if err != nil {
			return nil, err
		}
		a.blocks.pushBack(b)
		a.totalAllocated += usable + headerSize
		buf = b.data()[:size:size]
	} else {
		// Standard block with slack: it becomes the new bump block and the
		// request is carved out of its front immediately.
		b, usable, err := allocBlock(a.mc, a.minBlockSize, true)
		if err != nil {
			return nil, err
		}
		a.blocks.pushFront(b)
		a.totalAllocated += usable + headerSize
		data := b.data()
		a.cur = data[size:]
		buf = data[:size:size]
	}
	a.bytesUsed += size
	return buf, nil
}

// Merge moves every block owned by other into a, in O(1): other's block
// list is spliced onto the front of a's and other's cumulative accounting
// is added to a's. Allocations previously returned by other stay valid and
// are reclaimed by a's Release.
//
// Afterwards other is empty, as if freshly constructed, and may be reused.
// Its unused bump capacity is discarded, not inherited by a. Both arenas
// must share the same backing Allocator.
func (a *Arena) Merge(other *Arena) {
	if a == other {
		panic("arena: merge with itself")
	}
	a.blocks.prepend(&other.blocks)
	a.totalAllocated += other.totalAllocated
	a.bytesUsed += other.bytesUsed
	other.cur = nil
	other.totalAllocated = 0
	other.bytesUsed = 0
}

// Release returns every owned block to the backing allocator and resets the
// arena to the freshly-constructed empty state. Every buffer the arena ever
// returned is invalid afterwards. Releasing an empty arena is a no-op, so
// Release is safe to run more than once and the arena may be reused.
func (a *Arena) Release() {
	for b := a.blocks.popFront(); b != nil; b = a.blocks.popFront() {
		b.deallocate(a.mc)
	}
	a.cur = nil
	a.totalAllocated = 0
	a.bytesUsed = 0
}

// TotalSize returns the cumulative bytes (data + header) acquired from the
// backing allocator. It grows only when a new block is acquired; fast-path
// allocations never change it.
func (a *Arena) TotalSize() int {
	return a.totalAllocated
}

// BytesUsed returns the total bytes handed out by Alloc.
func (a *Arena) BytesUsed() int {
	return a.bytesUsed
}

// Available returns the bytes left in the current bump block: the largest
// request guaranteed to be served without a backing allocation.
func (a *Arena) Available() int {
	return len(a.cur)
}

// NumBlocks returns the number of blocks the arena currently owns.
func (a *Arena) NumBlocks() int {
	return a.blocks.n
}

// MinBlockSize returns the data capacity of the arena's standard blocks.
func (a *Arena) MinBlockSize() int {
	return a.minBlockSize
}

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
	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/bytedance/gopkg/lang/mcache"

	"github.com/cloudwego/arena/internal/safemath"
)

// Allocator supplies the raw memory backing an Arena's blocks.
//
// Malloc must return a buffer with len(buf) == size on success,
// and may return dirty (non-zeroed) memory.
// Free reclaims a buffer previously returned by Malloc; it must not fail.
// GoodSize reports an allocator-friendly size >= size, used by the arena to
// round block requests up so the spare capacity becomes usable bytes.
type Allocator interface {
	Malloc(size int) ([]byte, error)
	Free(buf []byte)
	GoodSize(size int) int
}

// CacheAllocator backs an arena with mcache's size-classed buffer pools.
// It is the default Allocator and is usable as a zero value.
//
// mcache hands out power-of-two size classes, so GoodSize rounds up to the
// next power of two: anything smaller would leave the class's tail capacity
// stranded inside the pool buffer.
type CacheAllocator struct{}

func (CacheAllocator) Malloc(size int) ([]byte, error) {
	return mcache.Malloc(size), nil
}

func (CacheAllocator) Free(buf []byte) {
	mcache.Free(buf)
}

func (CacheAllocator) GoodSize(size int) int {
	return safemath.NextPow2(size)
}

// HeapAllocator backs an arena with plain garbage-collected heap memory.
// Malloc skips zeroing, Free is a no-op: the GC reclaims blocks once the
// arena drops them. For callers who want arena allocation semantics without
// buffer pooling.
type HeapAllocator struct{}

func (HeapAllocator) Malloc(size int) ([]byte, error) {
	return dirtmake.Bytes(size, size), nil
}

func (HeapAllocator) Free(buf []byte) {}

func (HeapAllocator) GoodSize(size int) int {
	return size
}

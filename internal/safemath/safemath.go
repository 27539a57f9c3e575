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

// Package safemath provides size arithmetic that reports overflow
// instead of wrapping silently.
package safemath

import (
	"math"
	"math/bits"
)

// Add returns a + b and whether the sum fits in an int.
// Both operands must be non-negative.
func Add(a, b int) (int, bool) {
	if a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// NextPow2 returns the smallest power of two >= n.
// It returns n unchanged when the next power of two would not fit in an int,
// so the result is always >= n. n must be non-negative.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	if n > math.MaxInt/2+1 {
		// 1 << bits.Len would overflow
		return n
	}
	return 1 << bits.Len(uint(n-1))
}

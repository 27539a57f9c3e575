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

// Copy allocates len(b) bytes from the arena and copies b into them.
func (a *Arena) Copy(b []byte) ([]byte, error) {
	buf, err := a.Alloc(len(b))
	if err != nil {
		return nil, err
	}
	copy(buf, b)
	return buf, nil
}

// CopyString copies s into arena memory and returns a string aliasing it.
//
// DO NOT MUTATE the arena bytes behind the result, and DO NOT USE the
// result after the owning arena is Released: unlike a normal Go string it
// does not keep its bytes alive.
func (a *Arena) CopyString(s string) (string, error) {
	buf, err := a.Alloc(len(s))
	if err != nil {
		return "", err
	}
	copy(buf, s)
	// for str, the Data ptr and len match a []byte's first two fields
	return *(*string)(unsafe.Pointer(&buf)), nil
}

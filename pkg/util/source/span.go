// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package source

import "fmt"

// Span represents a contiguous slice of the original text, given as a
// half-open pair of byte offsets.  Instead of
// representing this as a string slice, however, it is useful to retain the
// physical indices.  This allows us to do certain things, such as determine the
// enclosing line, etc.
type Span struct {
	// The first byte of this span in the original text.
	start int
	// One past the final byte of this span in the original text.
	end int
}

// NewSpan constructs a new span whilst checking the internal invariants are
// maintained.
func NewSpan(start int, end int) Span {
	if start < 0 || start > end {
		panic(fmt.Sprintf("invalid span (%d,%d)", start, end))
	}

	return Span{start, end}
}

// Start returns the starting index of this span in the original text.
func (p Span) Start() int {
	return p.start
}

// End returns one past the last index of this span in the original text.
func (p Span) End() int {
	return p.end
}

// Length returns the number of bytes covered by this span in the original
// text.
func (p Span) Length() int {
	return p.end - p.start
}

// Contains checks whether a given span lies entirely within this span.
func (p Span) Contains(other Span) bool {
	return p.start <= other.start && other.end <= p.end
}

func (p Span) String() string {
	return fmt.Sprintf("%d:%d", p.start, p.end)
}

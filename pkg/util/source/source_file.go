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

import (
	"os"
)

// ReadFile reads a given source file from disk, or produces an error.  The
// returned file retains the name exactly as given.
func ReadFile(filename string) (*File, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return NewSourceFile(filename, bytes), nil
}

// Line provides information about a given line within the original text.
// This includes the line number (counting from 1), and the span of the line
// within the original text.
type Line struct {
	// Original text
	text string
	// Span within original text of this line.
	span Span
	// Line number of this line (counting from 1).
	number int
}

// Get the string representing this line.
func (p *Line) String() string {
	return p.text[p.span.start:p.span.end]
}

// Number gets the line number of this line, where the first line in a string
// has line number 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the starting index of this line in the original text.
func (p *Line) Start() int {
	return p.span.start
}

// Length returns the number of bytes in this line.
func (p *Line) Length() int {
	return p.span.Length()
}

// Prefix returns the text of this line up to (but not including) a given
// index in the original text.  The index is clamped to the line.
func (p *Line) Prefix(index int) string {
	end := min(max(index, p.span.start), p.span.end)
	return p.text[p.span.start:end]
}

// File represents a given source file (typically stored on disk).
type File struct {
	// File name for this source file.
	filename string
	// Contents of this file.  Spans index the bytes of this text.
	contents string
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	return &File{filename, string(bytes)}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() string {
	return s.contents
}

// Text returns the bytes of this source file covered by a given span.
func (s *File) Text(span Span) string {
	return s.contents[span.start:span.end]
}

// FindFirstEnclosingLine determines the first line  in this source file which
// encloses the start of a span.  Observe that, if the position is beyond the
// bounds of the source file then the last physical line is returned.  Also,
// the returned line is not guaranteed to enclose the entire span, as these can
// cross multiple lines.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	return s.FindEnclosingLine(span.start)
}

// FindEnclosingLine determines the line enclosing a given index.  An index at
// (or beyond) the end of the file belongs to the last physical line.
func (s *File) FindEnclosingLine(index int) Line {
	// Num records the line number, counting from 1.
	num := 1
	// Start records the starting offset of the current line.
	start := 0
	// Find the line.
	for i := 0; i < len(s.contents); i++ {
		if i == index {
			end := findEndOfLine(index, s.contents)
			return Line{s.contents, Span{start, end}, num}
		} else if s.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}
	//
	return Line{s.contents, Span{start, len(s.contents)}, num}
}

// FindEnclosingLines determines all lines which intersect a given span, in
// order.  An empty span still yields its enclosing line.
func (s *File) FindEnclosingLines(span Span) []Line {
	var (
		first = s.FindEnclosingLine(span.start)
		lines = []Line{first}
		last  = first
	)
	//
	for last.span.end < len(s.contents) && last.span.end+1 < span.end {
		last = s.FindEnclosingLine(last.span.end + 1)
		lines = append(lines, last)
	}
	//
	return lines
}

// Find the end of the enclosing line
func findEndOfLine(index int, text string) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	// No end in sight!
	return len(text)
}

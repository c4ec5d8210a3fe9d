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
package diag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/consensys/go-circom/pkg/util/source"
	"github.com/mattn/go-runewidth"
)

// RenderPosition renders the line enclosing a given offset of a source file,
// with a caret beneath the offset.  For example:
//
//	  |
//	3 | include "a.circom"
//	  |                   ^
//
// The gutter is as wide as the line number.
func RenderPosition(file *source.File, offset int) string {
	var (
		line   = file.FindEnclosingLine(offset)
		num    = strconv.Itoa(line.Number())
		gutter = strings.Repeat(" ", len(num))
	)
	//
	return fmt.Sprintf("%s |\n%s | %s\n%s | %s^", gutter, num, line.String(), gutter, indent(line.Prefix(offset)))
}

// RenderSpan renders every line of a source file covered by a given span, each
// prefixed with its line number.
func RenderSpan(file *source.File, span source.Span) string {
	var (
		lines = file.FindEnclosingLines(span)
		width = len(strconv.Itoa(lines[len(lines)-1].Number()))
		out   strings.Builder
	)
	//
	for i, l := range lines {
		if i != 0 {
			out.WriteString("\n")
		}
		//
		fmt.Fprintf(&out, "%*d | %s", width, l.Number(), l.String())
	}
	//
	return out.String()
}

// Construct whitespace of the same displayed width as some text.  Tabs are
// retained so that the result aligns regardless of tab width.
func indent(text string) string {
	var out strings.Builder
	//
	for _, r := range text {
		if r == '\t' {
			out.WriteRune('\t')
		} else {
			out.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
	}
	//
	return out.String()
}

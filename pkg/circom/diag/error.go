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
	"strings"

	"github.com/consensys/go-circom/pkg/circom/grammar"
	"github.com/consensys/go-circom/pkg/util/source"
)

// Code is a stable numeric identifier for a class of compilation error.
type Code uint

const (
	// SyntaxError indicates the grammar rejected a source file.
	SyntaxError Code = 101
	// IOError indicates a source file could not be read.
	IOError Code = 201
	// IncludeCycle indicates a file (transitively) includes itself.  This is
	// only reported when cycle reporting is enabled.
	IncludeCycle Code = 202
	// MissingMain indicates a module without a main component declaration.
	MissingMain Code = 301
	// InvalidTopLevel indicates a top-level declaration which is neither the
	// main component, a template, a function nor a variable.
	InvalidTopLevel Code = 302
	// DuplicateSymbol indicates two symbols of the same module share a name.
	DuplicateSymbol Code = 303
	// LiteralOutOfField indicates a numeric literal which does not fit in the
	// configured prime field.
	LiteralOutOfField Code = 304
)

func (c Code) String() string {
	return fmt.Sprintf("E%d", uint(c))
}

// Info provides additional information about a compilation error, which is
// one of ParseFailure, IOFailure or LogicFailure.
type Info interface {
	// Location returns a short description of where the error arose.
	Location() string
}

// CompileError is a diagnostic produced whilst loading or analysing a set of
// circuit source files.
type CompileError struct {
	Code    Code
	Message string
	Info    Info
}

// Error implements the error interface.
func (p *CompileError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", p.Location(), p.Message, p.Code)
}

// Location returns the location associated with this error.
func (p *CompileError) Location() string {
	if p.Info == nil {
		return "<unknown>"
	}
	//
	return p.Info.Location()
}

// Unwrap returns the underlying cause of an I/O error (if applicable).
func (p *CompileError) Unwrap() error {
	if info, ok := p.Info.(*IOFailure); ok {
		return info.Cause
	}
	//
	return nil
}

// ParseFailure describes a source file rejected by the grammar.
type ParseFailure struct {
	// Path of the file being parsed.
	Path string
	// Line of the failing position (counting from 1).
	Line int
	// Column of the failing position (counting from 1).
	Column int
	// Named rules expected at the failing position (punctuation excluded).
	Expected []grammar.Rule
	// Rendered source excerpt highlighting the failing position.
	Excerpt string
}

// Location implementation for Info interface.
func (p *ParseFailure) Location() string {
	return fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Column)
}

// IOFailure describes a source file which could not be read.
type IOFailure struct {
	Path  string
	Cause error
}

// Location implementation for Info interface.
func (p *IOFailure) Location() string {
	return p.Path
}

// Unwrap returns the underlying cause.
func (p *IOFailure) Unwrap() error {
	return p.Cause
}

// LogicFailure describes a well-formed source file which nevertheless has a
// structural problem (e.g. a duplicate symbol).  The excerpt is empty when no
// specific part of the file is to blame.
type LogicFailure struct {
	Path    string
	Line    int
	Excerpt string
}

// Location implementation for Info interface.
func (p *LogicFailure) Location() string {
	if p.Line == 0 {
		return p.Path
	}
	//
	return fmt.Sprintf("%s:%d", p.Path, p.Line)
}

// NewParseError constructs an error for a parse failure of a given source file.
// The message lists only the named rules expected at the failing position, and
// never the punctuation (e.g. a closing bracket) which would also be accepted.
func NewParseError(file *source.File, failure *grammar.Failure) *CompileError {
	var names = make([]string, len(failure.Expected))
	//
	for i, r := range failure.Expected {
		names[i] = r.String()
	}
	//
	msg := "unexpected input"
	//
	if len(names) > 0 {
		msg = fmt.Sprintf("expected %s", strings.Join(names, ", "))
	}
	//
	return &CompileError{SyntaxError, msg, &ParseFailure{
		Path:     file.Filename(),
		Line:     failure.Line,
		Column:   failure.Column,
		Expected: failure.Expected,
		Excerpt:  RenderPosition(file, failure.Offset),
	}}
}

// NewIOError constructs an error for a file which could not be read.
func NewIOError(path string, cause error) *CompileError {
	return &CompileError{IOError, "unable to read file", &IOFailure{path, cause}}
}

// NewLogicError constructs an error which is not attributed to any particular
// part of a file.
func NewLogicError(code Code, path string, msg string) *CompileError {
	return &CompileError{code, msg, &LogicFailure{Path: path}}
}

// NewLogicErrorAt constructs an error attributed to a given span of a source
// file, which is rendered as an excerpt.
func NewLogicErrorAt(code Code, file *source.File, span source.Span, msg string) *CompileError {
	line := file.FindFirstEnclosingLine(span)
	//
	return &CompileError{code, msg, &LogicFailure{
		Path:    file.Filename(),
		Line:    line.Number(),
		Excerpt: RenderSpan(file, span),
	}}
}

// Count returns the number of errors with a given code.
func Count(errors []*CompileError, code Code) int {
	var n = 0
	//
	for _, e := range errors {
		if e.Code == code {
			n++
		}
	}
	//
	return n
}

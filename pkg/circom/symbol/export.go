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
package symbol

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// SummarySchema identifies the layout of an exported summary.  This changes
// whenever the layout changes.
const SummarySchema uint16 = 1

// Summary is a self-contained description of a program's symbol table (and
// the errors arising in building it), which can be exported and imported
// without the original source files.
type Summary struct {
	Schema  uint16
	Main    string
	Modules []ModuleSummary
	Errors  []ErrorSummary
}

// ModuleSummary describes a single module of a program.
type ModuleSummary struct {
	Path     string
	Symbols  []SymbolSummary
	Includes []string
}

// SymbolSummary describes a single symbol of a module.
type SymbolSummary struct {
	Kind string
	Name string
	// Line on which the symbol is declared (counting from 1).
	Line int
	// Source text of the declaration.
	Text string
}

// ErrorSummary describes a single error.
type ErrorSummary struct {
	Code     uint
	Message  string
	Location string
}

// Summarise the symbol table of a given (built) context.  Modules appear in
// the order in which they were reached.
func Summarise(ctx Context) *Summary {
	var summary = &Summary{Schema: SummarySchema, Main: ctx.Files.Main}
	//
	for i := uint(0); i < ctx.Store.Len(); i++ {
		var (
			module = ctx.Store.Module(i)
			ms     = ModuleSummary{Path: module.Path}
			file   = ctx.Files.Files[module.Path].File
		)
		//
		for _, s := range module.Symbols {
			line := file.Root.Source.FindFirstEnclosingLine(s.Span())
			ms.Symbols = append(ms.Symbols, SymbolSummary{s.Kind().String(), s.Name(), line.Number(),
				file.Root.Source.Text(s.Span())})
		}
		//
		for _, c := range module.Children {
			ms.Includes = append(ms.Includes, ctx.Store.Module(c).Path)
		}
		//
		summary.Modules = append(summary.Modules, ms)
	}
	//
	for _, e := range ctx.Errors {
		summary.Errors = append(summary.Errors, ErrorSummary{uint(e.Code), e.Message, e.Location()})
	}
	//
	return summary
}

// Export writes a msgpack encoding of the summary of a given context.
func Export(w io.Writer, ctx Context) error {
	if err := msgpack.NewEncoder(w).Encode(Summarise(ctx)); err != nil {
		return fmt.Errorf("exporting symbols: %w", err)
	}
	//
	return nil
}

// Import reads a summary previously written by Export.
func Import(r io.Reader) (*Summary, error) {
	var summary Summary
	//
	if err := msgpack.NewDecoder(r).Decode(&summary); err != nil {
		return nil, fmt.Errorf("importing symbols: %w", err)
	} else if summary.Schema != SummarySchema {
		return nil, fmt.Errorf("importing symbols: unsupported schema %d (expected %d)", summary.Schema, SummarySchema)
	}
	//
	return &summary, nil
}

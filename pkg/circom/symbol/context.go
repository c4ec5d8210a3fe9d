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
	"github.com/consensys/go-circom/pkg/circom/ast"
	"github.com/consensys/go-circom/pkg/circom/diag"
	"github.com/consensys/go-circom/pkg/circom/include"
	"github.com/consensys/go-circom/pkg/circom/prime"
	"github.com/consensys/go-circom/pkg/util/source"
)

// Context is the working state threaded through each phase of building the
// symbol table of a program.  Phases take a context and return an updated
// context, such that errors accumulate in order.
type Context struct {
	// Node identifies the module currently being built.
	Node uint
	// Errors arising so far, in order.
	Errors []*diag.CompileError
	// Store holds every module built so far, indexed by path.
	Store *Store
	// Files holds the files reached from the main file.
	Files *include.Context
	// Source of the module currently being built.
	Source *source.File
	// Path of the module currently being built.
	Path string
	// Field against which numeric literals are checked (nil if none).
	Field *prime.Field
}

// Current returns the module currently being built.
func (p *Context) Current() *Module {
	return p.Store.Module(p.Node)
}

// Main returns the module of the main file.
func (p *Context) Main() *Module {
	index, ok := p.Store.Lookup(p.Files.Main)
	// Build always allocates the main module
	if !ok {
		panic("missing main module")
	}
	//
	return p.Store.Module(index)
}

// Construct an error attributed to a given token of the current module.
func (p *Context) errorAt(code diag.Code, token ast.Token, msg string) *diag.CompileError {
	return diag.NewLogicErrorAt(code, p.Source, token.Span(), msg)
}

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
	"github.com/consensys/go-circom/pkg/util/source"
)

// Kind identifies the kind of a symbol.
type Kind uint8

const (
	// MainKind identifies the main component declaration.
	MainKind Kind = iota
	// TemplateKind identifies a template declaration.
	TemplateKind
	// FunctionKind identifies a function declaration.
	FunctionKind
	// VariableKind identifies a global variable declaration.
	VariableKind
)

var kindNames = [...]string{"main", "template", "function", "var"}

func (k Kind) String() string {
	return kindNames[k]
}

// Symbol represents a named declaration at the top level of a module.  Every
// symbol retains the relevant parts of the syntax tree verbatim.
type Symbol interface {
	// Kind of this symbol.
	Kind() Kind
	// Name of this symbol.
	Name() string
	// Span of the declaration of this symbol.
	Span() source.Span
}

// Main is the main component declaration of a program, i.e. "component main =
// expr".
type Main struct {
	span source.Span
	// Expression instantiating the main component.
	Expression ast.Token
}

// Kind implementation for Symbol interface.
func (p *Main) Kind() Kind {
	return MainKind
}

// Name implementation for Symbol interface.
func (p *Main) Name() string {
	return "main"
}

// Span implementation for Symbol interface.
func (p *Main) Span() source.Span {
	return p.span
}

// Template is a (parameterised) circuit template.
type Template struct {
	name string
	span source.Span
	// Parameters of this template.
	Parameters ast.Token
	// Body of this template.
	Body ast.Token
}

// Kind implementation for Symbol interface.
func (p *Template) Kind() Kind {
	return TemplateKind
}

// Name implementation for Symbol interface.
func (p *Template) Name() string {
	return p.name
}

// Span implementation for Symbol interface.
func (p *Template) Span() source.Span {
	return p.span
}

// Function is a function declaration.
type Function struct {
	name string
	span source.Span
	// Parameters of this function.
	Parameters ast.Token
	// Body of this function.
	Body ast.Token
}

// Kind implementation for Symbol interface.
func (p *Function) Kind() Kind {
	return FunctionKind
}

// Name implementation for Symbol interface.
func (p *Function) Name() string {
	return p.name
}

// Span implementation for Symbol interface.
func (p *Function) Span() source.Span {
	return p.span
}

// GlobalVariable is a variable declared at the top level of a module.
type GlobalVariable struct {
	name string
	span source.Span
	// Dimensions of this variable (nil for a scalar).
	Dimensions ast.Token
	// Initialiser of this variable (nil if none given).
	Initialiser ast.Token
}

// Kind implementation for Symbol interface.
func (p *GlobalVariable) Kind() Kind {
	return VariableKind
}

// Name implementation for Symbol interface.
func (p *GlobalVariable) Name() string {
	return p.name
}

// Span implementation for Symbol interface.
func (p *GlobalVariable) Span() source.Span {
	return p.span
}

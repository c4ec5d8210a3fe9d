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
package ast

import (
	"fmt"

	"github.com/consensys/go-circom/pkg/circom/grammar"
	"github.com/consensys/go-circom/pkg/util/source"
)

// Token is a node in the syntax tree of a circuit source file.  Every token
// is either a Terminal (which has no children) or a NonTerminal (which has at
// least one child).
type Token interface {
	// Rule identifies the grammar rule which produced this token.
	Rule() grammar.Rule
	// Span identifies the portion of the original text covered by this token.
	Span() source.Span
}

// Terminal is a leaf of the syntax tree.  Its content is exactly the text
// covered by its span.
type Terminal struct {
	rule    grammar.Rule
	span    source.Span
	content string
}

// NewTerminal constructs a new terminal token.
func NewTerminal(rule grammar.Rule, span source.Span, content string) *Terminal {
	return &Terminal{rule, span, content}
}

// Rule implementation for Token interface.
func (p *Terminal) Rule() grammar.Rule {
	return p.rule
}

// Span implementation for Token interface.
func (p *Terminal) Span() source.Span {
	return p.span
}

// Content returns the text matched by this terminal.
func (p *Terminal) Content() string {
	return p.content
}

func (p *Terminal) String() string {
	return fmt.Sprintf("%s(%q)", p.rule, p.content)
}

// NonTerminal is an internal node of the syntax tree.  Children are ordered by
// ascending position, do not overlap and lie within the span of this token.
type NonTerminal struct {
	rule     grammar.Rule
	span     source.Span
	children []Token
}

// NewNonTerminal constructs a new non-terminal token.
func NewNonTerminal(rule grammar.Rule, span source.Span, children ...Token) *NonTerminal {
	return &NonTerminal{rule, span, children}
}

// Rule implementation for Token interface.
func (p *NonTerminal) Rule() grammar.Rule {
	return p.rule
}

// Span implementation for Token interface.
func (p *NonTerminal) Span() source.Span {
	return p.span
}

// Children returns the child tokens of this non-terminal.
func (p *NonTerminal) Children() []Token {
	return p.children
}

// Child returns the ith child of this non-terminal.
func (p *NonTerminal) Child(i int) Token {
	return p.children[i]
}

func (p *NonTerminal) String() string {
	return fmt.Sprintf("%s%v", p.rule, p.children)
}

// Children returns the children of a given token, which is empty for a
// terminal.
func Children(token Token) []Token {
	if t, ok := token.(*NonTerminal); ok {
		return t.children
	}
	//
	return nil
}

// Walk visits every token in a given sequence of trees in pre-order.  Visiting
// stops early if the visitor returns false.
func Walk(tokens []Token, visitor func(Token, int) bool) bool {
	return walk(tokens, 0, visitor)
}

func walk(tokens []Token, depth int, visitor func(Token, int) bool) bool {
	for _, t := range tokens {
		if !visitor(t, depth) || !walk(Children(t), depth+1, visitor) {
			return false
		}
	}
	//
	return true
}

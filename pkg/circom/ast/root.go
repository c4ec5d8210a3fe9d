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
	"io"

	"github.com/consensys/go-circom/pkg/circom/grammar"
	"github.com/consensys/go-circom/pkg/util/source"
)

// Root is the result of materializing a parse of some source file.  It
// retains the source file itself along with the top-level sequence of tokens.
// For the whole-circuit rule, there is exactly one top-level token (whose rule
// is grammar.Circuit).
type Root struct {
	Source *source.File
	Tokens []Token
}

// Materialize converts the generic parse tree produced by the grammar engine
// for a given source file into tokens.  Nodes without children become
// terminals, all others become non-terminals.
func Materialize(file *source.File, nodes []grammar.Node) Root {
	return Root{file, materializeAll(file, nodes)}
}

func materializeAll(file *source.File, nodes []grammar.Node) []Token {
	var tokens = make([]Token, len(nodes))
	//
	for i, n := range nodes {
		tokens[i] = materialize(file, n)
	}
	//
	return tokens
}

func materialize(file *source.File, node grammar.Node) Token {
	if node.Span.End() > len(file.Contents()) {
		// grammar/materializer contract
		panic(fmt.Sprintf("%s node %s exceeds source (length %d)", node.Rule, node.Span, len(file.Contents())))
	} else if len(node.Children) == 0 {
		return &Terminal{node.Rule, node.Span, file.Text(node.Span)}
	}
	//
	return &NonTerminal{node.Rule, node.Span, materializeAll(file, node.Children)}
}

// Text returns the source text covered by a given token.
func (p *Root) Text(token Token) string {
	if t, ok := token.(*Terminal); ok {
		return t.content
	}
	//
	return p.Source.Text(token.Span())
}

// Circuit returns the top-level items of the circuit represented by this root.
// An empty circuit (i.e. a file containing only whitespace or comments) has no
// items.
func (p *Root) Circuit() []Token {
	// grammar/materializer contract: exactly one Circuit token at the root.
	if len(p.Tokens) != 1 || p.Tokens[0].Rule() != grammar.Circuit {
		panic(fmt.Sprintf("malformed circuit root %v", p.Tokens))
	}
	//
	return Children(p.Tokens[0])
}

// Dump writes a textual representation of every token in this root, one line
// per token (in pre-order) giving its rule, its content and its depth.
func Dump(w io.Writer, root Root) error {
	var err error
	//
	Walk(root.Tokens, func(t Token, depth int) bool {
		_, err = fmt.Fprintf(w, "Rule: %s, Content: %q at Height %d\n", t.Rule(), root.Text(t), depth)
		return err == nil
	})
	//
	return err
}

// File represents a single circuit source file which has been successfully
// loaded and parsed.
type File struct {
	// Canonical path of this file.
	Path string
	// Root of the syntax tree for this file.
	Root Root
	// Include targets of this file, each resolved against the directory of
	// this file.  This is empty until includes are resolved.
	Includes []string
}

// NewFile constructs a file with an empty include list.
func NewFile(path string, root Root) *File {
	return &File{path, root, nil}
}

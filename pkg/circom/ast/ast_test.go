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
	"os"
	"strings"
	"testing"

	"github.com/consensys/go-circom/pkg/circom/grammar"
	"github.com/consensys/go-circom/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialize_01(t *testing.T) {
	root := parse(t, grammar.Circuit, "")
	require.Len(t, root.Tokens, 1)
	assert.IsType(t, &Terminal{}, root.Tokens[0])
	assert.Empty(t, root.Circuit())
}

func TestMaterialize_02(t *testing.T) {
	root := parse(t, grammar.Circuit, `include "a.circom"; template T(){signal x; x === 1;} component main = T();`)
	items := root.Circuit()
	require.Len(t, items, 4)
	assert.Equal(t, []grammar.Rule{grammar.IncludeStatement, grammar.TemplateBlock,
		grammar.DeclarationStatement, grammar.EndOfLine}, rules(items))
	// Include shape
	include := items[0].(*NonTerminal)
	require.Len(t, include.Children(), 3)
	path := include.Child(1).(*NonTerminal).Child(0).(*Terminal)
	assert.Equal(t, grammar.FilesystemPath, path.Rule())
	assert.Equal(t, "a.circom", path.Content())
	// Main declaration
	main := items[2].(*NonTerminal)
	assert.Equal(t, []grammar.Rule{grammar.ComponentDeclarationKW, grammar.VariableName,
		grammar.Expression}, rules(main.Children()))
	assert.Equal(t, "main", main.Child(1).(*Terminal).Content())
	assert.Equal(t, "component main = T()", root.Text(main))
	//
	checkInvariants(t, root)
}

func TestMaterialize_03(t *testing.T) {
	root := parseFile(t, "../grammar/testdata/multiplier.circom")
	checkInvariants(t, root)
	assert.Len(t, root.Circuit(), 8)
}

func TestMaterialize_04(t *testing.T) {
	file := source.NewSourceFile("test.circom", []byte("abc"))
	nodes := []grammar.Node{{Rule: grammar.VariableName, Span: source.NewSpan(0, 4)}}
	//
	assert.Panics(t, func() { Materialize(file, nodes) })
}

func TestMaterialize_05(t *testing.T) {
	root := parse(t, grammar.Circuit, "// héllo wörld\ninclude \"ü.circom\";\ntemplate T() {}\ncomponent main = T();\n")
	checkInvariants(t, root)
	//
	items := root.Circuit()
	require.Len(t, items, 4)
	assert.Equal(t, "template T() {}", root.Text(items[1]))
	path := items[0].(*NonTerminal).Child(1).(*NonTerminal).Child(0).(*Terminal)
	assert.Equal(t, "ü.circom", path.Content())
}

func TestCircuit_Malformed(t *testing.T) {
	root := parse(t, grammar.Expression, "1 + 2")
	assert.Panics(t, func() { root.Circuit() })
}

func TestWalk_Stops(t *testing.T) {
	root := parse(t, grammar.Expression, "a + b")
	count := 0
	//
	completed := Walk(root.Tokens, func(t Token, _ int) bool {
		count++
		return t.Rule() != grammar.BinaryOperator
	})
	//
	assert.False(t, completed)
	assert.Equal(t, 4, count)
}

func TestDump(t *testing.T) {
	var (
		buf  strings.Builder
		root = parse(t, grammar.Circuit, `include "a";`)
	)
	//
	require.NoError(t, Dump(&buf, root))
	//
	expected := `Rule: Circuit, Content: "include \"a\";" at Height 0
Rule: IncludeStatement, Content: "include \"a\";" at Height 1
Rule: IncludeKW, Content: "include" at Height 2
Rule: IncludePathString, Content: "\"a\"" at Height 2
Rule: FilesystemPath, Content: "a" at Height 3
Rule: EndOfLine, Content: ";" at Height 2
`
	assert.Equal(t, expected, buf.String())
}

// ============================================================================
// Helpers
// ============================================================================

func parse(t *testing.T, rule grammar.Rule, text string) Root {
	t.Helper()
	//
	file := source.NewSourceFile("test.circom", []byte(text))
	nodes, failure := grammar.Parse(rule, file.Contents())
	require.Nil(t, failure)
	//
	return Materialize(file, nodes)
}

func parseFile(t *testing.T, filename string) Root {
	t.Helper()
	//
	bytes, err := os.ReadFile(filename)
	require.NoError(t, err)
	//
	return parse(t, grammar.Circuit, string(bytes))
}

func rules(tokens []Token) []grammar.Rule {
	var rs = make([]grammar.Rule, len(tokens))
	//
	for i, t := range tokens {
		rs[i] = t.Rule()
	}
	//
	return rs
}

// Check every terminal matches its source text, and every non-terminal has
// ordered, non-overlapping children nested within its own span.
func checkInvariants(t *testing.T, root Root) {
	t.Helper()
	//
	Walk(root.Tokens, func(token Token, _ int) bool {
		switch tok := token.(type) {
		case *Terminal:
			text := root.Source.Contents()
			assert.Equal(t, text[tok.Span().Start():tok.Span().End()], tok.Content())
		case *NonTerminal:
			require.NotEmpty(t, tok.Children())
			//
			last := tok.Span().Start()
			//
			for _, c := range tok.Children() {
				assert.True(t, tok.Span().Contains(c.Span()), "%s not within %s", c.Span(), tok.Span())
				assert.LessOrEqual(t, last, c.Span().Start())
				last = c.Span().End()
			}
		default:
			t.Fatalf("unknown token %v", token)
		}
		//
		return true
	})
}

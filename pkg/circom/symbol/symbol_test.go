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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-circom/pkg/circom/ast"
	"github.com/consensys/go-circom/pkg/circom/diag"
	"github.com/consensys/go-circom/pkg/circom/grammar"
	"github.com/consensys/go-circom/pkg/circom/include"
	"github.com/consensys/go-circom/pkg/circom/loader"
	"github.com/consensys/go-circom/pkg/circom/prime"
	"github.com/consensys/go-circom/pkg/util/source"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Example(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"a.circom":    "function f() { return 1; }\n",
		"main.circom": `include "a.circom"; template T(){signal x; x === 1;} component main = T();`,
	})
	//
	require.Empty(t, ctx.Errors)
	main := ctx.Main()
	checkSymbols(t, main, "main:main", "template:T")
	// Template retains its syntax verbatim
	tmpl := main.Symbols[1].(*Template)
	assert.Equal(t, source.NewSpan(20, 52), tmpl.Span())
	assert.Equal(t, grammar.Parameters, tmpl.Parameters.Rule())
	assert.Equal(t, grammar.Body, tmpl.Body.Rule())
	// Main retains its expression
	m, ok := main.Main()
	require.True(t, ok)
	assert.Equal(t, grammar.Expression, m.Expression.Rule())
	assert.Equal(t, "T()", ctx.Source.Text(m.Expression.Span()))
	// Include resolved relative to the main file
	file, _ := ctx.Files.File(ctx.Files.Main)
	assert.Equal(t, []string{filepath.Join(filepath.Dir(ctx.Files.Main), "a.circom")}, file.Includes)
}

func TestBuild_DuplicateTemplate(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"main.circom": "template A(x) {}\ntemplate A() {}\ncomponent main = A(1);\n",
	})
	//
	require.Len(t, ctx.Errors, 1)
	assert.Equal(t, diag.DuplicateSymbol, ctx.Errors[0].Code)
	assert.Equal(t, "duplicate symbol A", ctx.Errors[0].Message)
	assert.Equal(t, "2 | template A() {}", ctx.Errors[0].Info.(*diag.LogicFailure).Excerpt)
	// First registration retained
	checkSymbols(t, ctx.Main(), "main:main", "template:A")
	a, _ := ctx.Main().Lookup("A")
	assert.Equal(t, source.NewSpan(0, 16), a.Span())
}

func TestBuild_MissingMain(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"main.circom": "template A() {}\nfunction f() { return 0; }\n",
	})
	//
	require.Len(t, ctx.Errors, 1)
	assert.Equal(t, diag.MissingMain, ctx.Errors[0].Code)
	assert.Equal(t, "no main component definition", ctx.Errors[0].Message)
	assert.Empty(t, ctx.Main().Symbols)
}

func TestBuild_EmptyFile(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{"main.circom": "// nothing here\n"})
	//
	require.Len(t, ctx.Errors, 1)
	assert.Equal(t, diag.MissingMain, ctx.Errors[0].Code)
}

func TestBuild_InvalidTopLevel(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"main.circom": "signal input x;\ntemplate A() {}\ncomponent c = A();\nfunction f() { return 0; }\ncomponent main = A();\n",
	})
	//
	require.Len(t, ctx.Errors, 2)
	assert.Equal(t, diag.InvalidTopLevel, ctx.Errors[0].Code)
	assert.Equal(t, "1 | signal input x;", ctx.Errors[0].Info.(*diag.LogicFailure).Excerpt)
	assert.Equal(t, diag.InvalidTopLevel, ctx.Errors[1].Code)
	// Collection continued
	checkSymbols(t, ctx.Main(), "main:main", "template:A", "function:f")
}

func TestBuild_SecondMain(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"main.circom": "template A() {}\ncomponent main = A();\ncomponent main = A();\n",
	})
	//
	require.Len(t, ctx.Errors, 1)
	assert.Equal(t, diag.InvalidTopLevel, ctx.Errors[0].Code)
	checkSymbols(t, ctx.Main(), "main:main", "template:A")
}

func TestBuild_CollidesWithMain(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"main.circom": "template main() {}\nfunction f() { return 0; }\nvar f;\nvar main = 1;\ncomponent main = f();\n",
	})
	//
	require.Len(t, ctx.Errors, 3)
	assert.Equal(t, 3, diag.Count(ctx.Errors, diag.DuplicateSymbol))
	checkSymbols(t, ctx.Main(), "main:main", "function:f")
}

func TestBuild_GlobalVariables(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"main.circom": "var a;\nvar b = 1;\nvar c[2] = [1, 2];\ntemplate T() {}\ncomponent main = T();\n",
	})
	//
	require.Empty(t, ctx.Errors)
	checkSymbols(t, ctx.Main(), "main:main", "var:a", "var:b", "var:c", "template:T")
	//
	a, _ := ctx.Main().Lookup("a")
	assert.Nil(t, a.(*GlobalVariable).Dimensions)
	assert.Nil(t, a.(*GlobalVariable).Initialiser)
	b, _ := ctx.Main().Lookup("b")
	assert.Nil(t, b.(*GlobalVariable).Dimensions)
	assert.Equal(t, "1", ctx.Source.Text(b.(*GlobalVariable).Initialiser.Span()))
	c, _ := ctx.Main().Lookup("c")
	assert.Equal(t, "[2]", ctx.Source.Text(c.(*GlobalVariable).Dimensions.Span()))
	assert.Equal(t, "[1, 2]", ctx.Source.Text(c.(*GlobalVariable).Initialiser.Span()))
}

func TestBuild_Includes(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"c.circom":    "function g() { return 2; }\n",
		"a.circom":    "include \"c.circom\";\ntemplate A() {}\n",
		"b.circom":    "include \"c.circom\";\ntemplate B() {}\ntemplate A() {}\n",
		"main.circom": "include \"a.circom\";\ninclude \"b.circom\";\ntemplate T() {}\ncomponent main = T();\n",
	})
	//
	require.Empty(t, ctx.Errors)
	require.Equal(t, uint(4), ctx.Store.Len())
	// Included symbols are not merged into the including module
	main := ctx.Main()
	checkSymbols(t, main, "main:main", "template:T")
	require.Len(t, main.Children, 2)
	//
	a, b := ctx.Store.Module(main.Children[0]), ctx.Store.Module(main.Children[1])
	checkSymbols(t, a, "template:A")
	checkSymbols(t, b, "template:B", "template:A")
	// Shared module built once
	require.Len(t, a.Children, 1)
	require.Equal(t, a.Children, b.Children)
	checkSymbols(t, ctx.Store.Module(a.Children[0]), "function:g")
}

func TestBuild_IncludeCycle(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"b.circom":    "include \"main.circom\";\ntemplate B() {}\n",
		"main.circom": "include \"b.circom\";\ninclude \"main.circom\";\ntemplate T() {}\ncomponent main = T();\n",
	})
	//
	require.Empty(t, ctx.Errors)
	require.Equal(t, uint(2), ctx.Store.Len())
	//
	main := ctx.Main()
	require.Len(t, main.Children, 1)
	b := ctx.Store.Module(main.Children[0])
	checkSymbols(t, b, "template:B")
	assert.Empty(t, b.Children)
}

func TestBuild_IncludedMain(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"a.circom":    "template A() {}\ncomponent main = A();\n",
		"main.circom": "include \"a.circom\";\ntemplate T() {}\ncomponent main = T();\n",
	})
	//
	require.Len(t, ctx.Errors, 1)
	assert.Equal(t, diag.InvalidTopLevel, ctx.Errors[0].Code)
	assert.Equal(t, filepath.Join(filepath.Dir(ctx.Files.Main), "a.circom")+":2", ctx.Errors[0].Location())
}

func TestBuild_IncludeErrors(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"bad.circom":  "template {}\n",
		"main.circom": "include \"missing.circom\";\ninclude \"bad.circom\";\ntemplate T() {}\ncomponent main = T();\n",
	})
	//
	require.Len(t, ctx.Errors, 2)
	assert.Equal(t, diag.IOError, ctx.Errors[0].Code)
	assert.Equal(t, diag.SyntaxError, ctx.Errors[1].Code)
	// Collection unaffected
	checkSymbols(t, ctx.Main(), "main:main", "template:T")
	assert.Empty(t, ctx.Main().Children)
}

func TestBuild_MissingFile(t *testing.T) {
	ctx := Build(filepath.Join(t.TempDir(), "main.circom"), Options{})
	//
	require.Len(t, ctx.Errors, 1)
	assert.Equal(t, diag.IOError, ctx.Errors[0].Code)
	assert.Empty(t, ctx.Main().Symbols)
}

func TestBuild_Literals(t *testing.T) {
	files := map[string]string{
		"main.circom": "var big = 0x30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001;\n" +
			"var nine = 09;\nvar ten = 010;\n" +
			"var edge = 021888242871839275222246405745257275088548364400416034343698204186575808495616;\n" +
			"template T() { var x = 21888242871839275222246405745257275088548364400416034343698204186575808495616; }\n" +
			"component main = T();\n",
	}
	// No field configured
	ctx := build(t, Options{}, files)
	assert.Empty(t, ctx.Errors)
	// BN128 field
	field, err := prime.ByName("bn128")
	require.NoError(t, err)
	//
	ctx = build(t, Options{Field: field}, files)
	require.Len(t, ctx.Errors, 1)
	assert.Equal(t, diag.LiteralOutOfField, ctx.Errors[0].Code)
	assert.Equal(t, "literal 0x30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001 exceeds bn128 field",
		ctx.Errors[0].Message)
}

func TestBuild_MultibyteSpans(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"main.circom": "// généré\ntemplate T() {}\ntemplate T(n) {}\ncomponent main = T();\n",
	})
	//
	require.Len(t, ctx.Errors, 1)
	assert.Equal(t, diag.DuplicateSymbol, ctx.Errors[0].Code)
	assert.Equal(t, "3 | template T(n) {}", ctx.Errors[0].Info.(*diag.LogicFailure).Excerpt)
	//
	summary := Summarise(ctx)
	require.Len(t, summary.Modules, 1)
	assert.Equal(t, []SymbolSummary{
		{"main", "main", 4, "component main = T()"},
		{"template", "T", 2, "template T() {}"},
	}, summary.Modules[0].Symbols)
}

func TestLoadMainSymbol(t *testing.T) {
	var (
		file  = newFile(t, "var a;\ncomponent main = T();\nvar b;\n")
		store = NewStore()
		ctx   = Context{Store: store, Source: file.Root.Source, Path: file.Path}
	)
	//
	ctx.Node, _ = store.Alloc(file.Path)
	ctx, items, ok := LoadMainSymbol(ctx, file.Root.Circuit())
	//
	require.True(t, ok)
	assert.Empty(t, ctx.Errors)
	assert.Equal(t, []grammar.Rule{grammar.DeclarationStatement, grammar.EndOfLine,
		grammar.DeclarationStatement, grammar.EndOfLine}, rules(items))
	// Original tree untouched
	assert.Len(t, file.Root.Circuit(), 6)
}

func TestLoadIncludes_PassThrough(t *testing.T) {
	var (
		file  = newFile(t, "template T() {}\n")
		store = NewStore()
		ctx   = Context{Store: store, Files: &include.Context{Files: map[string]*include.Entry{}}}
	)
	//
	ctx.Node, _ = store.Alloc(file.Path)
	items := file.Root.Circuit()
	ctx, remaining := LoadIncludes(ctx, items, []string{"/does/not/exist.circom"})
	//
	assert.Equal(t, items, remaining)
	assert.Empty(t, ctx.Errors)
	assert.Empty(t, ctx.Current().Children)
}

func TestExport(t *testing.T) {
	ctx := build(t, Options{}, map[string]string{
		"a.circom":    "template A() {}\ntemplate A() {}\n",
		"main.circom": "include \"a.circom\";\nvar x = 1;\ntemplate T() {}\ncomponent main = T();\n",
	})
	//
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, ctx))
	//
	summary, err := Import(&buf)
	require.NoError(t, err)
	//
	if diff := cmp.Diff(Summarise(ctx), summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	//
	require.Len(t, summary.Modules, 2)
	assert.Equal(t, []SymbolSummary{
		{"main", "main", 4, "component main = T()"},
		{"var", "x", 2, "var x = 1"},
		{"template", "T", 3, "template T() {}"},
	}, summary.Modules[0].Symbols)
	assert.Equal(t, []string{summary.Modules[1].Path}, summary.Modules[0].Includes)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, uint(diag.DuplicateSymbol), summary.Errors[0].Code)
}

func TestImport_Invalid(t *testing.T) {
	_, err := Import(bytes.NewReader([]byte{0xc1}))
	assert.Error(t, err)
}

// ============================================================================
// Helpers
// ============================================================================

// Write a set of files into a fresh directory, then build from "main.circom".
func build(t *testing.T, opts Options, files map[string]string) Context {
	t.Helper()
	//
	dir := t.TempDir()
	//
	for name, contents := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o600))
	}
	//
	return Build(filepath.Join(dir, "main.circom"), opts)
}

func newFile(t *testing.T, text string) *ast.File {
	t.Helper()
	//
	path := filepath.Join(t.TempDir(), "main.circom")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	//
	file, err := loader.LoadFile(path)
	require.Nil(t, err)
	//
	return file
}

func checkSymbols(t *testing.T, module *Module, expected ...string) {
	t.Helper()
	//
	var actual []string
	//
	for _, s := range module.Symbols {
		actual = append(actual, s.Kind().String()+":"+s.Name())
	}
	//
	assert.Equal(t, expected, actual)
}

func rules(tokens []ast.Token) []grammar.Rule {
	var rs []grammar.Rule
	//
	for _, t := range tokens {
		rs = append(rs, t.Rule())
	}
	//
	return rs
}

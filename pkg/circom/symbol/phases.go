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
	"slices"

	"github.com/consensys/go-circom/pkg/circom/ast"
	"github.com/consensys/go-circom/pkg/circom/diag"
	"github.com/consensys/go-circom/pkg/circom/grammar"
	log "github.com/sirupsen/logrus"
)

// LoadMainSymbol extracts the main component declaration from the top-level
// items of the current module.  The first declaration of the form "component
// main = expr" is registered as the main symbol, and removed (along with its
// terminating semi-colon) from the returned items.  If there is no such
// declaration, an error is reported and false is returned.
func LoadMainSymbol(ctx Context, items []ast.Token) (Context, []ast.Token, bool) {
	for i, item := range items {
		if expr, ok := mainDeclaration(item); ok {
			ctx.Store.Declare(ctx.Node, &Main{item.Span(), expr})
			//
			end := i + 1
			if end < len(items) && items[end].Rule() == grammar.EndOfLine {
				end++
			}
			//
			return ctx, slices.Delete(slices.Clone(items), i, end), true
		}
	}
	//
	ctx.Errors = append(ctx.Errors, diag.NewLogicError(diag.MissingMain, ctx.Path, "no main component definition"))
	//
	return ctx, items, false
}

// LoadIncludes links the modules of the given (resolved) include paths as
// children of the current module, building each included module if this has
// not already happened.  Included modules which failed to load are skipped
// (their errors having already been reported), as are modules still being
// built (i.e. include cycles).  The symbols of included modules are not added
// to the namespace of the current module, hence the items are returned
// unchanged.
func LoadIncludes(ctx Context, items []ast.Token, includes []string) (Context, []ast.Token) {
	for _, path := range includes {
		file, ok := ctx.Files.File(path)
		//
		if !ok {
			continue
		}
		//
		index, fresh := ctx.Store.Alloc(path)
		//
		if fresh {
			child := ctx
			child.Node = index
			child = buildModule(child, file, false)
			ctx.Errors = child.Errors
		} else if !ctx.Store.Module(index).built {
			log.Debugf("skipping cyclic include of %s from %s", path, ctx.Path)
			continue
		}
		//
		ctx.Store.Link(ctx.Node, index)
	}
	//
	return ctx, items
}

// LoadSymbols registers every template, function and global variable declared
// in the given top-level items with the current module.  Declarations which
// are not permitted at the top level, or whose names have already been
// declared (including the name "main"), are reported and skipped without
// preventing the remaining items from being processed.
func LoadSymbols(ctx Context, items []ast.Token) (Context, []ast.Token) {
	var names = map[string]bool{"main": true}
	//
	for _, item := range items {
		var symbol Symbol
		//
		switch item.Rule() {
		case grammar.PragmaStatement, grammar.IncludeStatement, grammar.EndOfLine:
			continue
		case grammar.TemplateBlock:
			name, params, body := block(item, grammar.TemplateKW, grammar.TemplateName)
			symbol = &Template{name, item.Span(), params, body}
		case grammar.FunctionBlock:
			name, params, body := block(item, grammar.FunctionKW, grammar.FunctionName)
			symbol = &Function{name, item.Span(), params, body}
		case grammar.DeclarationStatement:
			variable, ok := globalVariable(item)
			//
			if !ok {
				ctx.Errors = append(ctx.Errors, ctx.errorAt(diag.InvalidTopLevel, item,
					"only main component and variables allowed at top level"))
				//
				continue
			}
			//
			symbol = variable
		default:
			// grammar/materializer contract
			panic(fmt.Sprintf("unexpected top-level %s in %s", item.Rule(), ctx.Path))
		}
		//
		if names[symbol.Name()] {
			ctx.Errors = append(ctx.Errors, ctx.errorAt(diag.DuplicateSymbol, item,
				fmt.Sprintf("duplicate symbol %s", symbol.Name())))
		} else {
			names[symbol.Name()] = true
			ctx.Store.Declare(ctx.Node, symbol)
		}
	}
	//
	return ctx, nil
}

// CheckLiterals reports every numeric literal within the given items which
// does not fit within the configured prime field (if any).
func CheckLiterals(ctx Context, items []ast.Token) Context {
	if ctx.Field == nil {
		return ctx
	}
	//
	ast.Walk(items, func(token ast.Token, _ int) bool {
		if lit, ok := token.(*ast.Terminal); ok && lit.Rule() == grammar.NumberLiteral &&
			!ctx.Field.Contains(lit.Content()) {
			ctx.Errors = append(ctx.Errors, ctx.errorAt(diag.LiteralOutOfField, lit,
				fmt.Sprintf("literal %s exceeds %s field", lit.Content(), ctx.Field)))
		}
		//
		return true
	})
	//
	return ctx
}

// Build the symbols of a single module, which is assumed to have been
// allocated already.
func buildModule(ctx Context, file *ast.File, requireMain bool) Context {
	var (
		items = file.Root.Circuit()
		ok    bool
	)
	//
	ctx.Source, ctx.Path = file.Root.Source, file.Path
	//
	log.Debugf("building symbols of %s", file.Path)
	//
	if requireMain {
		if ctx, items, ok = LoadMainSymbol(ctx, items); !ok {
			ctx.Current().built = true
			return ctx
		}
	}
	//
	ctx, items = LoadIncludes(ctx, items, file.Includes)
	ctx, _ = LoadSymbols(ctx, items)
	ctx = CheckLiterals(ctx, file.Root.Circuit())
	ctx.Current().built = true
	//
	log.Debugf("built %d symbol(s) for %s", len(ctx.Current().Symbols), file.Path)
	//
	return ctx
}

// Determine whether a given top-level item has the form "component main =
// expr" and, if so, return the expression.
func mainDeclaration(item ast.Token) (ast.Token, bool) {
	decl, ok := item.(*ast.NonTerminal)
	//
	if !ok || decl.Rule() != grammar.DeclarationStatement || len(decl.Children()) != 3 {
		return nil, false
	}
	//
	kw, name, expr := decl.Child(0), decl.Child(1), decl.Child(2)
	//
	if kw.Rule() != grammar.ComponentDeclarationKW || expr.Rule() != grammar.Expression {
		return nil, false
	} else if n, ok := name.(*ast.Terminal); ok && n.Rule() == grammar.VariableName && n.Content() == "main" {
		return expr, true
	}
	//
	return nil, false
}

// Extract the name, parameters and body of a template or function block,
// which has the shape [keyword, name, Parameters, Body].
func block(item ast.Token, keyword grammar.Rule, nameRule grammar.Rule) (string, ast.Token, ast.Token) {
	// grammar/materializer contract
	blk, ok := item.(*ast.NonTerminal)
	if !ok || len(blk.Children()) != 4 ||
		blk.Child(0).Rule() != keyword ||
		blk.Child(2).Rule() != grammar.Parameters ||
		blk.Child(3).Rule() != grammar.Body {
		panic(fmt.Sprintf("malformed %s %v", item.Rule(), item))
	}
	//
	name, ok := blk.Child(1).(*ast.Terminal)
	if !ok || name.Rule() != nameRule {
		panic(fmt.Sprintf("malformed %s name %v", item.Rule(), blk.Child(1)))
	}
	//
	return name.Content(), blk.Child(2), blk.Child(3)
}

// Extract a global variable from a declaration, which has the shape
// [VariableDeclarationKW, VariableName, ArrayDimensions?, Expression?].  Any
// other shape (e.g. a signal or component declaration) is not permitted at
// the top level.
func globalVariable(item ast.Token) (*GlobalVariable, bool) {
	decl, ok := item.(*ast.NonTerminal)
	//
	if !ok || len(decl.Children()) < 2 || decl.Child(0).Rule() != grammar.VariableDeclarationKW {
		return nil, false
	}
	//
	name, ok := decl.Child(1).(*ast.Terminal)
	if !ok || name.Rule() != grammar.VariableName {
		return nil, false
	}
	//
	var (
		variable = &GlobalVariable{name: name.Content(), span: item.Span()}
		rest     = decl.Children()[2:]
	)
	//
	if len(rest) > 0 && rest[0].Rule() == grammar.ArrayDimensions {
		variable.Dimensions, rest = rest[0], rest[1:]
	}
	//
	if len(rest) > 0 && rest[0].Rule() == grammar.Expression {
		variable.Initialiser, rest = rest[0], rest[1:]
	}
	//
	return variable, len(rest) == 0
}

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
package include

import (
	"fmt"

	"github.com/consensys/go-circom/pkg/circom/ast"
	"github.com/consensys/go-circom/pkg/circom/grammar"
	"github.com/consensys/go-circom/pkg/util/source"
)

// Target represents a single include statement within a file.
type Target struct {
	// Path exactly as written in the include statement.
	Path string
	// Span of the include statement.
	Span source.Span
}

// Targets extracts the include statements from the top level of a given file,
// in order of appearance.
func Targets(file *ast.File) []Target {
	var targets []Target
	//
	for _, item := range file.Root.Circuit() {
		if item.Rule() == grammar.IncludeStatement {
			targets = append(targets, Target{includePath(item), item.Span()})
		}
	}
	//
	return targets
}

// Extract the path from an include statement, which has the shape
// [IncludeKW, IncludePathString[FilesystemPath], EndOfLine].
func includePath(item ast.Token) string {
	// grammar/materializer contract
	stmt, ok := item.(*ast.NonTerminal)
	if !ok || len(stmt.Children()) != 3 ||
		stmt.Child(0).Rule() != grammar.IncludeKW ||
		stmt.Child(1).Rule() != grammar.IncludePathString ||
		stmt.Child(2).Rule() != grammar.EndOfLine {
		panic(fmt.Sprintf("malformed include statement %v", item))
	}
	//
	str, ok := stmt.Child(1).(*ast.NonTerminal)
	if !ok || len(str.Children()) != 1 {
		panic(fmt.Sprintf("malformed include path %v", stmt.Child(1)))
	}
	//
	path, ok := str.Child(0).(*ast.Terminal)
	if !ok || path.Rule() != grammar.FilesystemPath {
		panic(fmt.Sprintf("malformed include path %v", str.Child(0)))
	}
	//
	return path.Content()
}

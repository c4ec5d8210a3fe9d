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
package loader

import (
	"path/filepath"

	"github.com/consensys/go-circom/pkg/circom/ast"
	"github.com/consensys/go-circom/pkg/circom/diag"
	"github.com/consensys/go-circom/pkg/circom/grammar"
	"github.com/consensys/go-circom/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Canonicalize a given path, such that two paths referring to the same file
// are equal.  Symbolic links are only resolved for files which exist.
func Canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	//
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	//
	return abs
}

// LoadFile reads and parses the circuit source file at a given path.  An
// unreadable file yields an I/O error, whilst a file rejected by the grammar
// yields a syntax error.  The returned file has an empty include list.
func LoadFile(path string) (*ast.File, *diag.CompileError) {
	file, err := source.ReadFile(path)
	//
	if err != nil {
		log.Debugf("unable to read %s: %v", path, err)
		return nil, diag.NewIOError(path, err)
	}
	//
	nodes, failure := grammar.Parse(grammar.Circuit, file.Contents())
	//
	if failure != nil {
		log.Debugf("unable to parse %s: %v", path, failure)
		return nil, diag.NewParseError(file, failure)
	}
	//
	log.Debugf("loaded %s (%d bytes)", path, len(file.Contents()))
	//
	return ast.NewFile(path, ast.Materialize(file, nodes)), nil
}

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
	"slices"

	"github.com/consensys/go-circom/pkg/circom/include"
	"github.com/consensys/go-circom/pkg/circom/prime"
	log "github.com/sirupsen/logrus"
)

// Options configures the building of a program.
type Options struct {
	// Include configures include resolution.
	Include include.Options
	// Field against which numeric literals are checked (nil if none).
	Field *prime.Field
}

// Build the symbol table of the program rooted at a given main file.  This
// first resolves every file (transitively) included by the main file, and
// then builds the module of the main file (along with those it includes).  The
// resulting context is returned even when errors arose, in which case it may
// be incomplete.
func Build(mainPath string, opts Options) Context {
	return BuildFrom(include.BuildContext(mainPath, opts.Include), opts.Field)
}

// BuildFrom builds the symbol table of a program from a set of files which
// have already been resolved.  Errors arising during resolution are retained.
func BuildFrom(files *include.Context, field *prime.Field) Context {
	var ctx = Context{
		Errors: slices.Clone(files.Errors),
		Store:  NewStore(),
		Files:  files,
		Path:   files.Main,
		Field:  field,
	}
	//
	ctx.Node, _ = ctx.Store.Alloc(files.Main)
	//
	if file, ok := files.File(files.Main); ok {
		ctx = buildModule(ctx, file, true)
	}
	//
	log.Debugf("built %d module(s) with %d error(s)", ctx.Store.Len(), len(ctx.Errors))
	//
	return ctx
}

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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/consensys/go-circom/pkg/circom/ast"
	"github.com/consensys/go-circom/pkg/circom/diag"
	"github.com/consensys/go-circom/pkg/circom/loader"
	log "github.com/sirupsen/logrus"
)

// CyclePolicy determines how an include cycle is handled.  In all cases, the
// re-entrant include is skipped so that resolution terminates.
type CyclePolicy uint8

const (
	// IgnoreCycles silently skips a re-entrant include.
	IgnoreCycles CyclePolicy = iota
	// ReportCycles additionally reports an error naming the include chain.
	ReportCycles
)

// ParseCyclePolicy parses a cycle policy from its textual form.
func ParseCyclePolicy(name string) (CyclePolicy, error) {
	switch name {
	case "", "ignore":
		return IgnoreCycles, nil
	case "report":
		return ReportCycles, nil
	}
	//
	return IgnoreCycles, fmt.Errorf("unknown cycle policy \"%s\" (expected ignore or report)", name)
}

// Options configures include resolution.
type Options struct {
	// Cycles determines whether include cycles are reported.
	Cycles CyclePolicy
	// SearchPaths are additional directories in which include targets are
	// looked for, after the directory of the including file.
	SearchPaths []string
	// Jobs determines how many files may be loaded concurrently.  Values
	// less than two mean files are loaded sequentially.
	Jobs int
}

// State identifies the status of an entry in the file registry.
type State uint8

const (
	// Loading indicates a file whose includes are still being resolved.
	Loading State = iota
	// Loaded indicates a file which was loaded successfully.
	Loaded
	// Failed indicates a file which could not be loaded.
	Failed
)

// Entry is the registry record for a single file.
type Entry struct {
	State State
	// File is set for loaded files (and for files still being resolved).
	File *ast.File
	// Err is set for files which failed to load.
	Err *diag.CompileError
}

// Context is the outcome of resolving the includes of a main file.  This
// contains an entry for every file reached, along with all errors arising.
type Context struct {
	// Main is the canonical path of the main file.
	Main string
	// Files maps canonical paths to their registry entries.
	Files map[string]*Entry
	// Errors in the order they arose.
	Errors []*diag.CompileError
}

// File returns the successfully loaded file for a given canonical path.
func (p *Context) File(path string) (*ast.File, bool) {
	if e, ok := p.Files[path]; ok && e.State == Loaded {
		return e.File, true
	}
	//
	return nil, false
}

// Paths returns the canonical paths of all registered files, sorted.
func (p *Context) Paths() []string {
	var paths = make([]string, 0, len(p.Files))
	//
	for path := range p.Files {
		paths = append(paths, path)
	}
	//
	slices.Sort(paths)
	//
	return paths
}

// BuildContext loads a given main file and, recursively, every file it
// includes.  Per-file failures are recorded (and do not prevent the remaining
// files being resolved).  Every file is loaded at most once.
func BuildContext(mainPath string, opts Options) *Context {
	return BuildContextWith(loader.NewCache(), mainPath, opts)
}

// BuildContextWith is as for BuildContext, except that files are loaded through
// a given cache.
func BuildContextWith(cache *loader.Cache, mainPath string, opts Options) *Context {
	var (
		path     = loader.Canonicalize(mainPath)
		resolver = &resolver{opts, cache, &Context{path, make(map[string]*Entry), nil}, nil}
	)
	// Claim the main path so that a self-include is caught as a cycle.
	resolver.context.Files[path] = &Entry{State: Loading}
	//
	resolver.load(path)
	//
	log.Debugf("resolved %d file(s) from %s with %d error(s)", len(resolver.context.Files), path,
		len(resolver.context.Errors))
	//
	return resolver.context
}

type resolver struct {
	opts    Options
	cache   *loader.Cache
	context *Context
	// Canonical paths of files currently being resolved, outermost first.
	stack []string
}

// Resolve a file which is not currently on the include stack.  This returns
// nil if the file cannot be loaded, or has already been resolved.
func (p *resolver) resolve(includer *ast.File, target Target, path string) *ast.File {
	entry, ok := p.context.Files[path]
	//
	switch {
	case ok && entry.State == Loading:
		log.Debugf("skipping cyclic include of %s from %s", path, includer.Path)
		//
		if p.opts.Cycles == ReportCycles {
			p.context.Errors = append(p.context.Errors, p.cycleError(includer, target, path))
		}
		//
		return nil
	case ok:
		// Already resolved via another include.
		return nil
	}
	//
	p.context.Files[path] = &Entry{State: Loading}
	//
	return p.load(path)
}

// Load a given file (which has been claimed in the registry) and resolve its
// includes.
func (p *resolver) load(path string) *ast.File {
	file, err := p.cache.Load(path)
	//
	if err != nil {
		p.context.Files[path] = &Entry{State: Failed, Err: err}
		p.context.Errors = append(p.context.Errors, err)
		//
		return nil
	}
	//
	p.context.Files[path].File = file
	p.stack = append(p.stack, path)
	//
	var (
		targets = Targets(file)
		paths   = make([]string, len(targets))
	)
	//
	for i, target := range targets {
		paths[i] = p.locate(file, target.Path)
	}
	//
	file.Includes = paths
	//
	if p.opts.Jobs > 1 {
		p.prefetch(paths)
	}
	//
	for i, target := range targets {
		p.resolve(file, target, paths[i])
	}
	//
	p.stack = p.stack[:len(p.stack)-1]
	p.context.Files[path].State = Loaded
	//
	return file
}

// Locate the file referred to by a given include target.  Targets are looked
// for first in the directory of the including file, then in each search path
// in turn.  If none exists, the path relative to the including file is
// returned.
func (p *resolver) locate(includer *ast.File, target string) string {
	if filepath.IsAbs(target) {
		return loader.Canonicalize(target)
	}
	//
	local := filepath.Join(filepath.Dir(includer.Path), target)
	//
	if _, err := os.Stat(local); err != nil {
		for _, dir := range p.opts.SearchPaths {
			candidate := filepath.Join(dir, target)
			//
			if _, err := os.Stat(candidate); err == nil {
				log.Debugf("found %s in search path %s", target, dir)
				return loader.Canonicalize(candidate)
			}
		}
	}
	//
	return loader.Canonicalize(local)
}

// Load in parallel those files which have not yet been reached.
func (p *resolver) prefetch(paths []string) {
	var pending []string
	//
	for _, path := range paths {
		if _, ok := p.context.Files[path]; !ok && !slices.Contains(pending, path) {
			pending = append(pending, path)
		}
	}
	//
	if err := p.cache.Prefetch(context.Background(), pending, p.opts.Jobs); err != nil {
		log.Debugf("prefetch abandoned: %v", err)
	}
}

func (p *resolver) cycleError(includer *ast.File, target Target, path string) *diag.CompileError {
	var (
		start = slices.Index(p.stack, path)
		chain = append(slices.Clone(p.stack[start:]), path)
	)
	//
	for i, c := range chain {
		chain[i] = filepath.Base(c)
	}
	//
	msg := fmt.Sprintf("include cycle %s", strings.Join(chain, " -> "))
	//
	return diag.NewLogicErrorAt(diag.IncludeCycle, includer.Root.Source, target.Span, msg)
}

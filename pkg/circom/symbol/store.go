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

import "slices"

// Module is the namespace exported by a single source file.  It holds the
// symbols declared in that file, in order of declaration, along with the
// modules it includes.
type Module struct {
	// Canonical path of the file.
	Path string
	// Symbols declared in this module.
	Symbols []Symbol
	// Children identifies the included modules (by index into the store).
	Children []uint
	// Indicates whether this module is complete, or still being built.
	built bool
}

// Lookup a symbol by name.
func (p *Module) Lookup(name string) (Symbol, bool) {
	for _, s := range p.Symbols {
		if s.Name() == name {
			return s, true
		}
	}
	//
	return nil, false
}

// Main returns the main component declaration of this module (if it exists).
func (p *Module) Main() (*Main, bool) {
	for _, s := range p.Symbols {
		if m, ok := s.(*Main); ok {
			return m, true
		}
	}
	//
	return nil, false
}

// Store is an arena of modules, such that every module is identified by its
// index.  A module is registered at most once for any given path.
type Store struct {
	modules []Module
	index   map[string]uint
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{nil, make(map[string]uint)}
}

// Alloc returns the index of the module for a given path, allocating an empty
// module if none exists.  The flag indicates whether allocation occurred.
func (p *Store) Alloc(path string) (uint, bool) {
	if index, ok := p.index[path]; ok {
		return index, false
	}
	//
	index := uint(len(p.modules))
	p.modules = append(p.modules, Module{Path: path})
	p.index[path] = index
	//
	return index, true
}

// Lookup the index of the module for a given path.
func (p *Store) Lookup(path string) (uint, bool) {
	index, ok := p.index[path]
	return index, ok
}

// Module returns the module at a given index.  The returned pointer is only
// valid until the next allocation.
func (p *Store) Module(index uint) *Module {
	return &p.modules[index]
}

// Len returns the number of modules in this store.
func (p *Store) Len() uint {
	return uint(len(p.modules))
}

// Link records that one module includes another.  Repeated links are ignored.
func (p *Store) Link(parent uint, child uint) {
	m := &p.modules[parent]
	//
	if !slices.Contains(m.Children, child) {
		m.Children = append(m.Children, child)
	}
}

// Declare adds a symbol to a given module.
func (p *Store) Declare(module uint, symbol Symbol) {
	p.modules[module].Symbols = append(p.modules[module].Symbols, symbol)
}

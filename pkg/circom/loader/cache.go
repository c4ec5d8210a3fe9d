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
	"context"
	"sync"

	"github.com/consensys/go-circom/pkg/circom/ast"
	"github.com/consensys/go-circom/pkg/circom/diag"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Cache records the outcome of loading each file, such that every file is
// read and parsed at most once.  Concurrent requests for the same path are
// coalesced, meaning a path is claimed by exactly one loader before loading
// starts.  A cache is safe for concurrent use.
type Cache struct {
	group   singleflight.Group
	mux     sync.Mutex
	entries map[string]outcome
	loads   uint
}

type outcome struct {
	file *ast.File
	err  *diag.CompileError
}

// NewCache constructs an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]outcome)}
}

// Load returns the outcome of loading a given (canonical) path, loading it
// only if this has not already happened.
func (p *Cache) Load(path string) (*ast.File, *diag.CompileError) {
	if r, ok := p.lookup(path); ok {
		return r.file, r.err
	}
	//
	r, _, _ := p.group.Do(path, func() (any, error) {
		// Check again, in case another load completed in the meantime.
		if r, ok := p.lookup(path); ok {
			return r, nil
		}
		//
		file, err := LoadFile(path)
		r := outcome{file, err}
		//
		p.mux.Lock()
		p.entries[path] = r
		p.loads++
		p.mux.Unlock()
		//
		return r, nil
	})
	//
	res := r.(outcome)
	//
	return res.file, res.err
}

// Loads returns the number of files actually read from disk by this cache.
func (p *Cache) Loads() uint {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	return p.loads
}

// Prefetch loads a given set of (canonical) paths in parallel, using at most
// jobs concurrent loaders.  The outcome of each load is retained in the cache,
// hence load failures are not reported here.  The only error returned arises
// from the context being cancelled.
func (p *Cache) Prefetch(ctx context.Context, paths []string, jobs int) error {
	if len(paths) == 0 {
		return nil
	}
	//
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	//
	log.Debugf("prefetching %d file(s) with %d job(s)", len(paths), jobs)
	//
	for _, path := range paths {
		path := path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			//
			p.Load(path)
			//
			return nil
		})
	}
	return g.Wait()
}

func (p *Cache) lookup(path string) (outcome, bool) {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	r, ok := p.entries[path]
	//
	return r, ok
}

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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-circom/pkg/circom/diag"
	"github.com/consensys/go-circom/pkg/circom/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Valid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.circom", "template T() {}\ncomponent main = T();\n")
	//
	file, err := LoadFile(path)
	require.Nil(t, err)
	assert.Equal(t, path, file.Path)
	assert.Empty(t, file.Includes)
	require.Len(t, file.Root.Tokens, 1)
	assert.Equal(t, grammar.Circuit, file.Root.Tokens[0].Rule())
	assert.Len(t, file.Root.Circuit(), 3)
}

func TestLoadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.circom")
	//
	file, err := LoadFile(path)
	assert.Nil(t, file)
	require.NotNil(t, err)
	assert.Equal(t, diag.IOError, err.Code)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, path, err.Info.(*diag.IOFailure).Path)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.circom", "pragma circom 2.0.0;\n\ninclude \"a.circom\"\n")
	//
	file, err := LoadFile(path)
	assert.Nil(t, file)
	require.NotNil(t, err)
	assert.Equal(t, diag.SyntaxError, err.Code)
	//
	info := err.Info.(*diag.ParseFailure)
	assert.Equal(t, 4, info.Line)
	assert.Equal(t, 1, info.Column)
	assert.Equal(t, []grammar.Rule{grammar.EndOfLine}, info.Expected)
}

func TestCanonicalize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.circom", "")
	//
	assert.Equal(t, Canonicalize(path), Canonicalize(filepath.Join(dir, "sub", "..", "a.circom")))
	assert.True(t, filepath.IsAbs(Canonicalize("a.circom")))
}

func TestCache_LoadOnce(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.circom", "var x;\n")
	cache := NewCache()
	//
	f1, err1 := cache.Load(path)
	f2, err2 := cache.Load(path)
	//
	require.Nil(t, err1)
	require.Nil(t, err2)
	assert.Same(t, f1, f2)
	assert.Equal(t, uint(1), cache.Loads())
}

func TestCache_LoadErrorOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.circom")
	cache := NewCache()
	//
	_, err1 := cache.Load(path)
	_, err2 := cache.Load(path)
	//
	require.NotNil(t, err1)
	assert.Same(t, err1, err2)
	assert.Equal(t, uint(1), cache.Loads())
}

func TestCache_Prefetch(t *testing.T) {
	var (
		dir   = t.TempDir()
		paths []string
	)
	//
	for _, name := range []string{"a.circom", "b.circom", "c.circom"} {
		p := writeFile(t, dir, name, "function f() { return 1; }\n")
		// Request each path several times
		paths = append(paths, p, p, p)
	}
	//
	cache := NewCache()
	require.NoError(t, cache.Prefetch(context.Background(), paths, 4))
	assert.Equal(t, uint(3), cache.Loads())
	// Subsequent loads are served from the cache
	for _, p := range paths {
		file, err := cache.Load(p)
		require.Nil(t, err)
		assert.Equal(t, p, file.Path)
	}
	//
	assert.Equal(t, uint(3), cache.Loads())
}

func TestCache_PrefetchCancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.circom", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	cache := NewCache()
	assert.ErrorIs(t, cache.Prefetch(ctx, []string{path}, 1), context.Canceled)
	assert.Equal(t, uint(0), cache.Loads())
}

func writeFile(t *testing.T, dir string, name string, contents string) string {
	t.Helper()
	//
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	//
	return Canonicalize(path)
}

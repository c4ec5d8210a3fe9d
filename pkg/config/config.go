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
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/consensys/go-circom/pkg/circom/include"
	"github.com/consensys/go-circom/pkg/circom/prime"
	"github.com/consensys/go-circom/pkg/circom/symbol"
)

// FileName is the name of a project configuration file.
const FileName = "circom.toml"

// Config represents the configuration of a circuit project.
type Config struct {
	// Path of the file from which this configuration was read (empty for the
	// default configuration).
	Path     string        `toml:"-"`
	Build    BuildConfig   `toml:"build"`
	Includes IncludeConfig `toml:"includes"`
	Output   OutputConfig  `toml:"output"`
}

// BuildConfig configures how programs are built.
type BuildConfig struct {
	// Main file of the project.
	Main string `toml:"main"`
	// Prime field against which literals are checked (empty for none).
	Prime string `toml:"prime"`
	// Number of files which can be loaded concurrently.
	Jobs int `toml:"jobs"`
}

// IncludeConfig configures how includes are resolved.
type IncludeConfig struct {
	// Either "ignore" or "report".
	Cycles string `toml:"cycles"`
	// Additional directories searched for included files.
	Paths []string `toml:"paths"`
}

// OutputConfig configures how output is presented.
type OutputConfig struct {
	// One of "auto", "always" or "never".
	Color string `toml:"color"`
}

// Default returns the configuration used when no configuration file exists.
func Default() Config {
	return Config{
		Build:    BuildConfig{Jobs: 1},
		Includes: IncludeConfig{Cycles: "ignore"},
		Output:   OutputConfig{Color: "auto"},
	}
}

// Find the nearest configuration file, starting from a given directory and
// working upwards through its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	//
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	//
	for {
		candidate := filepath.Join(dir, FileName)
		//
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		//
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		//
		dir = parent
	}
}

// Discover the configuration applicable to a given directory, returning the
// default configuration if there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	//
	if err != nil {
		return Config{}, err
	} else if !ok {
		return Default(), nil
	}
	//
	return Load(path)
}

// Load the configuration file at a given path.  Unspecified values take their
// defaults, and relative paths are resolved against the directory containing
// the file.
func Load(path string) (Config, error) {
	var cfg = Default()
	//
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	//
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var keys = make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		//
		return Config{}, fmt.Errorf("%s: unknown key(s) %s", path, strings.Join(keys, ", "))
	}
	//
	cfg.Path = path
	root := filepath.Dir(path)
	//
	if cfg.Build.Main != "" {
		cfg.Build.Main = resolve(root, cfg.Build.Main)
	}
	//
	for i, p := range cfg.Includes.Paths {
		cfg.Includes.Paths[i] = resolve(root, p)
	}
	//
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	//
	return cfg, nil
}

// Validate checks that all values of this configuration are permitted.
func (p *Config) Validate() error {
	if p.Build.Jobs < 1 {
		return fmt.Errorf("[build].jobs must be positive (was %d)", p.Build.Jobs)
	} else if _, err := prime.ByName(p.Build.Prime); err != nil {
		return fmt.Errorf("[build].prime: %w", err)
	} else if _, err := include.ParseCyclePolicy(p.Includes.Cycles); err != nil {
		return fmt.Errorf("[includes].cycles: %w", err)
	}
	//
	switch p.Output.Color {
	case "auto", "always", "never":
		return nil
	}
	//
	return fmt.Errorf("[output].color must be auto, always or never (was \"%s\")", p.Output.Color)
}

// Options returns the build options determined by this configuration.
func (p *Config) Options() (symbol.Options, error) {
	if err := p.Validate(); err != nil {
		return symbol.Options{}, err
	}
	// Validated above
	field, _ := prime.ByName(p.Build.Prime)
	cycles, _ := include.ParseCyclePolicy(p.Includes.Cycles)
	//
	return symbol.Options{
		Include: include.Options{Cycles: cycles, SearchPaths: p.Includes.Paths, Jobs: p.Build.Jobs},
		Field:   field,
	}, nil
}

func resolve(root string, path string) string {
	path = filepath.FromSlash(path)
	//
	if filepath.IsAbs(path) {
		return path
	}
	//
	return filepath.Join(root, path)
}

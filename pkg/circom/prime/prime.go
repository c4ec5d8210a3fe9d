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
package prime

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	bls12_377 "github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	bls12_381 "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	bn254 "github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Field describes a prime field over which circuits are compiled.
type Field struct {
	// Name of the field, as used on the command line.
	Name string
	// Modulus of the field.
	Modulus *big.Int
}

// Fields lists the supported prime fields.
var Fields = []Field{
	{"bn128", bn254.Modulus()},
	{"bls12381", bls12_381.Modulus()},
	{"bls12377", bls12_377.Modulus()},
}

// ByName returns the field with the given name.  An empty name yields nil,
// meaning no field is configured.
func ByName(name string) (*Field, error) {
	if name == "" {
		return nil, nil
	}
	//
	index := slices.IndexFunc(Fields, func(f Field) bool { return f.Name == name })
	//
	if index < 0 {
		var names = make([]string, len(Fields))
		for i, f := range Fields {
			names[i] = f.Name
		}
		//
		return nil, fmt.Errorf("unknown prime \"%s\" (expected one of %s)", name, strings.Join(names, ", "))
	}
	//
	return &Fields[index], nil
}

// Contains checks whether a given numeric literal is a canonical element of
// this field, i.e. is less than its modulus.  Literals are decimal (where
// leading zeros carry no meaning) unless prefixed with "0x".  Literals which
// cannot be parsed are not contained.
func (p *Field) Contains(literal string) bool {
	var (
		value = new(big.Int)
		ok    bool
	)
	//
	if digits, hex := strings.CutPrefix(literal, "0x"); hex {
		_, ok = value.SetString(digits, 16)
	} else {
		_, ok = value.SetString(literal, 10)
	}
	//
	return ok && value.Sign() >= 0 && value.Cmp(p.Modulus) < 0
}

func (p *Field) String() string {
	return p.Name
}

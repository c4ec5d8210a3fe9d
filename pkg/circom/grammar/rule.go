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
package grammar

import "fmt"

// Rule identifies a named production of the circuit grammar.  Every node of a
// parse tree is tagged with the rule which produced it.
type Rule uint

// Rules of the circuit grammar.
const (
	Circuit Rule = iota
	PragmaStatement
	PragmaKW
	PragmaValue
	IncludeStatement
	IncludeKW
	IncludePathString
	FilesystemPath
	EndOfLine
	TemplateBlock
	TemplateKW
	TemplateName
	FunctionBlock
	FunctionKW
	FunctionName
	Parameters
	ParameterName
	Body
	DeclarationStatement
	VariableDeclarationKW
	SignalDeclarationKW
	ComponentDeclarationKW
	VariableName
	ArrayDimensions
	ConstraintStatement
	ConstraintOperator
	AssignmentStatement
	AssignOperator
	IncrementOperator
	IfStatement
	IfKW
	ElseKW
	ForStatement
	ForKW
	WhileStatement
	WhileKW
	ReturnStatement
	ReturnKW
	LogStatement
	LogKW
	AssertStatement
	AssertKW
	StringLiteral
	Expression
	BinaryOperator
	PrefixOperator
	NumberLiteral
	VariableAccess
	ArrayIndex
	MemberAccess
	Call
	CalleeName
	Arguments
	ArrayLiteral
	// Marks the number of rules.
	numRules
)

var ruleNames = [numRules]string{
	"Circuit",
	"PragmaStatement",
	"PragmaKW",
	"PragmaValue",
	"IncludeStatement",
	"IncludeKW",
	"IncludePathString",
	"FilesystemPath",
	"EndOfLine",
	"TemplateBlock",
	"TemplateKW",
	"TemplateName",
	"FunctionBlock",
	"FunctionKW",
	"FunctionName",
	"Parameters",
	"ParameterName",
	"Body",
	"DeclarationStatement",
	"VariableDeclarationKW",
	"SignalDeclarationKW",
	"ComponentDeclarationKW",
	"VariableName",
	"ArrayDimensions",
	"ConstraintStatement",
	"ConstraintOperator",
	"AssignmentStatement",
	"AssignOperator",
	"IncrementOperator",
	"IfStatement",
	"IfKW",
	"ElseKW",
	"ForStatement",
	"ForKW",
	"WhileStatement",
	"WhileKW",
	"ReturnStatement",
	"ReturnKW",
	"LogStatement",
	"LogKW",
	"AssertStatement",
	"AssertKW",
	"StringLiteral",
	"Expression",
	"BinaryOperator",
	"PrefixOperator",
	"NumberLiteral",
	"VariableAccess",
	"ArrayIndex",
	"MemberAccess",
	"Call",
	"CalleeName",
	"Arguments",
	"ArrayLiteral",
}

func (r Rule) String() string {
	if r < numRules {
		return ruleNames[r]
	}
	//
	return fmt.Sprintf("Rule(%d)", uint(r))
}

// RuleByName looks up a rule from its name, as reported by String().
func RuleByName(name string) (Rule, bool) {
	for i, n := range ruleNames {
		if n == name {
			return Rule(i), true
		}
	}
	//
	return 0, false
}

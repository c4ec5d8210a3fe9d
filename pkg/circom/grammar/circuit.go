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

import (
	"github.com/consensys/go-circom/pkg/util/source/lex"
)

// Words which cannot be used as names.
var reserved = map[string]bool{
	"pragma": true, "include": true, "template": true, "function": true,
	"signal": true, "input": true, "output": true, "var": true,
	"component": true, "if": true, "else": true, "for": true, "while": true,
	"return": true, "log": true, "assert": true,
}

var (
	identStart = lex.Or(lex.Within('a', 'z'), lex.Within('A', 'Z'), lex.Unit('_'), lex.Unit('$'))
	identChar  = lex.Or(identStart, lex.Within('0', '9'))
	identifier = lex.Filter(lex.SequenceNullableLast(identStart, lex.Many(identChar)),
		func(word []rune) bool { return !reserved[string(word)] })
	// Whitespace and comments, which may appear between any two tokens.
	trivia = lex.Or(
		lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r'), lex.Unit('\n'))),
		lex.SequenceNullableLast(lex.String("//"), lex.Until('\n')),
		lex.Between([]rune("/*"), []rune("*/")),
	)
	hexDigit = lex.Or(lex.Within('0', '9'), lex.Within('a', 'f'), lex.Within('A', 'F'))
	number   = lex.Unless(lex.Or(
		lex.Sequence(lex.String("0x"), lex.Many(hexDigit)),
		lex.Many(lex.Within('0', '9')),
	), identChar)
	str = lex.Or(
		lex.Sequence(lex.Unit('"'), lex.Many(lex.Except('"', '\n')), lex.Unit('"')),
		lex.Unit('"', '"'),
	)
	signal = lex.Or(
		lex.Sequence(keyword("signal"), lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'))),
			lex.Or(keyword("input"), keyword("output"))),
		keyword("signal"),
	)
	binaryOps = operators("**", "*", "\\", "/", "%", "+", "-", "<<", ">>", "<=", ">=", "<", ">",
		"==", "!=", "&&", "||", "&", "|", "^")
	assignOps = lex.Or(operators("<==", "<--", "**=", "+=", "-=", "*=", "/=", "\\=", "%=",
		"<<=", ">>=", "&=", "|=", "^="), equals)
	equals = lex.Unless(lex.String("="), lex.Unit('='))
)

// The circuit grammar, indexed by rule.
var circuit [numRules]Expr

func keyword(word string) lex.Scanner[rune] {
	return lex.Unless(lex.String(word), identChar)
}

func operators(ops ...string) lex.Scanner[rune] {
	var scanners = make([]lex.Scanner[rune], len(ops))
	//
	for i, op := range ops {
		scanners[i] = lex.String(op)
	}
	//
	return lex.Or(scanners...)
}

func punct(c rune) Expr {
	return Literal(lex.Unit(c))
}

func ref(rule Rule) Expr {
	return Lazy(func() Expr { return circuit[rule] })
}

//nolint:funlen
func init() {
	var (
		statement Expr
		stmt      = Lazy(func() Expr { return statement })
		expr      = ref(Expression)
		eol       = Term(EndOfLine, lex.Unit(';'))
		name      = func(rule Rule) Expr { return Term(rule, identifier) }
		kw        = func(rule Rule, word string) Expr { return Term(rule, keyword(word)) }
		list      = func(lb, rb rune) Expr { return Seq(punct(lb), SeparatedBy(expr, punct(',')), punct(rb)) }
	)
	// Top-level declarations
	circuit[Circuit] = Named(Circuit, Seq(
		blank,
		Many(Choice(
			ref(PragmaStatement),
			ref(IncludeStatement),
			ref(TemplateBlock),
			ref(FunctionBlock),
			Seq(ref(DeclarationStatement), eol),
		)),
		Literal(lex.Eof[rune]()),
	))
	circuit[PragmaStatement] = Named(PragmaStatement, Seq(
		kw(PragmaKW, "pragma"), Term(PragmaValue, lex.Many(lex.Except(';', '\n'))), eol))
	circuit[IncludeStatement] = Named(IncludeStatement, Seq(
		kw(IncludeKW, "include"), ref(IncludePathString), eol))
	circuit[IncludePathString] = Named(IncludePathString, Atomic(Seq(
		punct('"'), Term(FilesystemPath, lex.Many(lex.Except('"', '\n'))), punct('"'))))
	circuit[TemplateBlock] = Named(TemplateBlock, Seq(
		kw(TemplateKW, "template"), name(TemplateName), ref(Parameters), ref(Body)))
	circuit[FunctionBlock] = Named(FunctionBlock, Seq(
		kw(FunctionKW, "function"), name(FunctionName), ref(Parameters), ref(Body)))
	circuit[Parameters] = Named(Parameters, Seq(
		punct('('), SeparatedBy(name(ParameterName), punct(',')), punct(')')))
	// Statements
	statement = Choice(
		Seq(ref(DeclarationStatement), eol),
		ref(IfStatement),
		ref(ForStatement),
		ref(WhileStatement),
		ref(ReturnStatement),
		ref(LogStatement),
		ref(AssertStatement),
		ref(Body),
		Seq(ref(AssignmentStatement), eol),
		Seq(ref(ConstraintStatement), eol),
	)
	circuit[Body] = Named(Body, Seq(punct('{'), Many(stmt), punct('}')))
	circuit[DeclarationStatement] = Named(DeclarationStatement, Seq(
		Choice(kw(VariableDeclarationKW, "var"), Term(SignalDeclarationKW, signal),
			kw(ComponentDeclarationKW, "component")),
		name(VariableName),
		Optional(ref(ArrayDimensions)),
		Optional(Seq(Literal(lex.Or(lex.String("<=="), lex.String("<--"), equals)), expr)),
	))
	circuit[ArrayDimensions] = Named(ArrayDimensions, Many1(Seq(punct('['), expr, punct(']'))))
	circuit[ConstraintStatement] = Named(ConstraintStatement, Seq(
		expr, Term(ConstraintOperator, lex.String("===")), expr))
	circuit[AssignmentStatement] = Named(AssignmentStatement, Choice(
		Seq(ref(VariableAccess), Term(AssignOperator, assignOps), expr),
		Seq(ref(VariableAccess), Term(IncrementOperator, operators("++", "--"))),
		Seq(expr, Term(AssignOperator, operators("==>", "-->")), ref(VariableAccess)),
	))
	circuit[IfStatement] = Named(IfStatement, Seq(
		kw(IfKW, "if"), punct('('), expr, punct(')'), stmt,
		Optional(Seq(kw(ElseKW, "else"), stmt))))
	circuit[ForStatement] = Named(ForStatement, Seq(
		kw(ForKW, "for"), punct('('),
		Choice(ref(DeclarationStatement), ref(AssignmentStatement)), eol,
		expr, eol,
		ref(AssignmentStatement), punct(')'), stmt))
	circuit[WhileStatement] = Named(WhileStatement, Seq(
		kw(WhileKW, "while"), punct('('), expr, punct(')'), stmt))
	circuit[ReturnStatement] = Named(ReturnStatement, Seq(kw(ReturnKW, "return"), expr, eol))
	circuit[LogStatement] = Named(LogStatement, Seq(
		kw(LogKW, "log"), punct('('),
		SeparatedBy(Choice(ref(StringLiteral), expr), punct(',')),
		punct(')'), eol))
	circuit[AssertStatement] = Named(AssertStatement, Seq(
		kw(AssertKW, "assert"), punct('('), expr, punct(')'), eol))
	// Expressions
	operand := Seq(
		Many(Term(PrefixOperator, lex.Or(lex.Unit('-'), lex.Unit('!'), lex.Unit('~')))),
		Choice(
			ref(NumberLiteral),
			ref(Call),
			ref(VariableAccess),
			Seq(punct('('), expr, punct(')')),
			ref(ArrayLiteral),
		),
	)
	circuit[Expression] = Named(Expression, Seq(
		operand,
		Many(Seq(Term(BinaryOperator, binaryOps), operand)),
		Optional(Seq(punct('?'), expr, punct(':'), expr)),
	))
	circuit[StringLiteral] = Term(StringLiteral, str)
	circuit[NumberLiteral] = Term(NumberLiteral, number)
	circuit[Call] = Named(Call, Seq(name(CalleeName), ref(Arguments)))
	circuit[Arguments] = Named(Arguments, list('(', ')'))
	circuit[ArrayLiteral] = Named(ArrayLiteral, list('[', ']'))
	circuit[VariableAccess] = Named(VariableAccess, Seq(
		name(VariableName), Many(Choice(ref(ArrayIndex), ref(MemberAccess)))))
	circuit[ArrayIndex] = Named(ArrayIndex, Seq(punct('['), expr, punct(']')))
	circuit[MemberAccess] = Named(MemberAccess, Seq(punct('.'), name(VariableName)))
	// Leaf rules, which can also be parsed directly.
	circuit[PragmaKW] = kw(PragmaKW, "pragma")
	circuit[PragmaValue] = Term(PragmaValue, lex.Many(lex.Except(';', '\n')))
	circuit[IncludeKW] = kw(IncludeKW, "include")
	circuit[FilesystemPath] = Term(FilesystemPath, lex.Many(lex.Except('"', '\n')))
	circuit[EndOfLine] = eol
	circuit[TemplateKW] = kw(TemplateKW, "template")
	circuit[TemplateName] = name(TemplateName)
	circuit[FunctionKW] = kw(FunctionKW, "function")
	circuit[FunctionName] = name(FunctionName)
	circuit[ParameterName] = name(ParameterName)
	circuit[VariableDeclarationKW] = kw(VariableDeclarationKW, "var")
	circuit[SignalDeclarationKW] = Term(SignalDeclarationKW, signal)
	circuit[ComponentDeclarationKW] = kw(ComponentDeclarationKW, "component")
	circuit[VariableName] = name(VariableName)
	circuit[ConstraintOperator] = Term(ConstraintOperator, lex.String("==="))
	circuit[AssignOperator] = Term(AssignOperator, lex.Or(assignOps, operators("==>", "-->")))
	circuit[IncrementOperator] = Term(IncrementOperator, operators("++", "--"))
	circuit[IfKW] = kw(IfKW, "if")
	circuit[ElseKW] = kw(ElseKW, "else")
	circuit[ForKW] = kw(ForKW, "for")
	circuit[WhileKW] = kw(WhileKW, "while")
	circuit[ReturnKW] = kw(ReturnKW, "return")
	circuit[LogKW] = kw(LogKW, "log")
	circuit[AssertKW] = kw(AssertKW, "assert")
	circuit[BinaryOperator] = Term(BinaryOperator, binaryOps)
	circuit[PrefixOperator] = Term(PrefixOperator, lex.Or(lex.Unit('-'), lex.Unit('!'), lex.Unit('~')))
	circuit[CalleeName] = name(CalleeName)
}

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
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"
	"github.com/consensys/go-circom/pkg/util/source"
	"github.com/consensys/go-circom/pkg/util/source/lex"
)

// Node is a single node in a generic parse tree.  Every node is tagged with the
// rule which produced it, and covers a span of the original text given in
// bytes.  Children
// are ordered by ascending position, do not overlap and lie within the span of
// their parent.
type Node struct {
	Rule     Rule
	Span     source.Span
	Children []Node
}

// Failure describes a rejected parse.  This identifies the furthest position
// reached in the text, along with the (innermost) named rules which were
// attempted at that position.
type Failure struct {
	// Byte offset of the failing position within the text.
	Offset int
	// Line of the failing position (counting from 1).
	Line int
	// Column of the failing position, in characters (counting from 1).
	Column int
	// Named rules expected at the failing position, in order of attempt.
	// Punctuation matched by unnamed literals is never listed.
	Expected []Rule
}

// Error implements the error interface.
func (p *Failure) Error() string {
	var names = make([]string, len(p.Expected))
	//
	for i, r := range p.Expected {
		names[i] = r.String()
	}
	//
	return fmt.Sprintf("%d:%d: expected %s", p.Line, p.Column, strings.Join(names, ", "))
}

// Parse the given text against a given rule of the circuit grammar.  Observe
// that, except for the whole-circuit rule (which must reach the end of the
// input), a rule may succeed having consumed only a prefix of the text.  Spans
// of the resulting nodes, and the offset of any failure, are byte offsets into
// the text.
func Parse(rule Rule, text string) ([]Node, *Failure) {
	var p = newParser(text)
	//
	if rule >= numRules {
		panic(fmt.Sprintf("unknown grammar rule %s", rule))
	} else if circuit[rule](p) {
		return p.nodes, nil
	}
	//
	return nil, p.failure()
}

// ============================================================================
// Evaluator
// ============================================================================

// Expr is a parsing expression.  An expression either matches at the current
// position (advancing it and appending zero or more nodes), or fails leaving
// the parser state untouched.
type Expr func(p *parser) bool

type parser struct {
	text []rune
	// Byte offset of each character of the text, plus one for the end.
	offsets []int
	// Current position within the text.
	pos int
	// Non-zero when implicit whitespace is disabled.
	atomic int
	// Nodes produced so far at the current level.
	nodes []Node
	// Furthest position at which a named rule failed.
	furthest int
	// Named rules which failed at the furthest position.
	expected []Rule
	// Counts every recorded rule failure, regardless of position.
	attempts uint
}

func newParser(text string) *parser {
	var (
		runes   = make([]rune, 0, len(text))
		offsets = make([]int, 0, len(text)+1)
	)
	//
	for i, r := range text {
		runes = append(runes, r)
		offsets = append(offsets, i)
	}
	//
	return &parser{text: runes, offsets: append(offsets, len(text))}
}

// Span of the text between two character positions, in bytes.
func (p *parser) span(start int, end int) source.Span {
	return source.NewSpan(p.offsets[start], p.offsets[end])
}

// Match a given scanner at the current position.
func (p *parser) scan(scanner lex.Scanner[rune]) bool {
	n, err := safecast.Conv[int](scanner(p.text[p.pos:]))
	// Eof matches with length one, but consumes nothing.
	if err != nil || n == 0 {
		return false
	}
	//
	p.pos = min(len(p.text), p.pos+n)
	//
	return true
}

// Skip over any implicit whitespace or comments.
func (p *parser) skip() {
	if p.atomic != 0 {
		return
	}
	//
	for p.pos < len(p.text) {
		if !p.scan(trivia) {
			return
		}
	}
}

// Record that a given rule failed at a given position.
func (p *parser) record(pos int, rule Rule) {
	p.attempts++
	//
	if pos > p.furthest {
		p.furthest = pos
		p.expected = []Rule{rule}
	} else if pos == p.furthest && !slices.Contains(p.expected, rule) {
		p.expected = append(p.expected, rule)
	}
}

func (p *parser) failure() *Failure {
	var (
		line   = 1
		column = 1
	)
	//
	for _, c := range p.text[:p.furthest] {
		if c == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	//
	return &Failure{p.offsets[p.furthest], line, column, p.expected}
}

// Restore the parser to a previously saved state.
func (p *parser) reset(pos int, nodes int) {
	p.pos = pos
	p.nodes = p.nodes[:nodes]
}

// ============================================================================
// Combinators
// ============================================================================

// Term constructs a named leaf rule, whose text is matched by a scanner.
func Term(rule Rule, scanner lex.Scanner[rune]) Expr {
	return func(p *parser) bool {
		start := p.pos
		//
		if !p.scan(scanner) {
			p.record(start, rule)
			return false
		}
		//
		p.nodes = append(p.nodes, Node{rule, p.span(start, p.pos), nil})
		//
		return true
	}
}

// Literal matches text using a given scanner, without producing a node.
func Literal(scanner lex.Scanner[rune]) Expr {
	return func(p *parser) bool {
		return p.scan(scanner)
	}
}

// Named constructs a rule which produces a node covering everything matched by
// its body, with the nodes produced by the body as its children.  When the body
// fails without any named rule inside having failed, then this rule is itself
// recorded as expected.
func Named(rule Rule, body Expr) Expr {
	return func(p *parser) bool {
		var (
			start    = p.pos
			outer    = p.nodes
			attempts = p.attempts
		)
		//
		p.nodes = nil
		ok := body(p)
		children := p.nodes
		p.nodes = outer
		//
		if !ok {
			p.pos = start
			//
			if p.attempts == attempts {
				p.record(start, rule)
			}
			//
			return false
		}
		//
		p.nodes = append(p.nodes, Node{rule, p.span(start, p.pos), children})
		//
		return true
	}
}

// Atomic disables implicit whitespace within a given expression.
func Atomic(body Expr) Expr {
	return func(p *parser) bool {
		p.atomic++
		defer func() { p.atomic-- }()
		//
		return body(p)
	}
}

// Seq matches each expression in turn, with implicit whitespace between them.
func Seq(exprs ...Expr) Expr {
	return func(p *parser) bool {
		var start, nodes = p.pos, len(p.nodes)
		//
		for i, e := range exprs {
			var before, produced = p.pos, len(p.nodes)
			//
			if i > 0 {
				p.skip()
			}
			//
			after := p.pos
			//
			if !e(p) {
				p.reset(start, nodes)
				return false
			} else if p.pos == after && len(p.nodes) == produced && p.pos < len(p.text) {
				// Nothing matched, hence don't consume whitespace either.
				p.pos = before
			}
		}
		//
		return true
	}
}

// Choice matches the first of the given expressions which matches.
func Choice(exprs ...Expr) Expr {
	return func(p *parser) bool {
		for _, e := range exprs {
			if e(p) {
				return true
			}
		}
		//
		return false
	}
}

// blank consumes any implicit whitespace or comments, and always succeeds.
func blank(p *parser) bool {
	p.skip()
	return true
}

// Optional matches an expression, or nothing.
func Optional(e Expr) Expr {
	return func(p *parser) bool {
		e(p)
		return true
	}
}

// Many matches an expression zero or more times, with implicit whitespace
// between repetitions.
func Many(e Expr) Expr {
	return func(p *parser) bool {
		for i := 0; ; i++ {
			var start, nodes = p.pos, len(p.nodes)
			//
			if i > 0 {
				p.skip()
			}
			//
			after := p.pos
			//
			if !e(p) || p.pos == after {
				p.reset(start, nodes)
				return true
			}
		}
	}
}

// Many1 matches an expression one or more times.
func Many1(e Expr) Expr {
	return Seq(e, Many(e))
}

// SeparatedBy matches zero or more occurrences of an expression, separated by
// a given separator.
func SeparatedBy(e Expr, separator Expr) Expr {
	return Optional(Seq(e, Many(Seq(separator, e))))
}

// Lazy defers the construction of an expression until it is first used, which
// allows recursive productions.
func Lazy(build func() Expr) Expr {
	return func(p *parser) bool {
		return build()(p)
	}
}

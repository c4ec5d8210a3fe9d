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
package lex

import (
	"cmp"
	"slices"
)

// Scanner is a function which accepts a given item or not.  A scanner returns
// the number of items it consumed from the start of the sequence, where zero
// signals no match.  Hence, scanners cannot match the empty sequence (with the
// exception of Eof).
type Scanner[T any] func(item []T) uint

// Or combines zero or more scanners such that the resulting scanner succeeds if
// any of the scanners succeeds.  Observe, however, that there is an implicit
// left-to-right order of evaluation.
func Or[T any](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		for _, scanner := range scanners {
			if n := scanner(items); n > 0 {
				return n
			}
		}
		// fail
		return 0
	}
}

// Unit accepts a given sequence of characters.  That is, for this scanner to
// match, it must match all the given characters (one after the other) in their given order.
func Unit[T comparable](chars ...T) Scanner[T] {
	return func(items []T) uint {
		if len(items) >= len(chars) {
			for i := 0; i < len(chars); i++ {
				if items[i] != chars[i] {
					// fail
					return 0
				}
			}
			// success
			return uint(len(chars))
		}
		// fail
		return 0
	}
}

// String expects a given string s.
// It is equivalent to [Unit](s[0], s[1], ...)
func String(s string) Scanner[int32] {
	return func(items []int32) uint {
		if len(items) < len(s) {
			return 0
		}

		for i := range s {
			if int32(s[i]) != items[i] {
				return 0
			}
		}

		return uint(len(s))
	}
}

// Within accepts any character within a given range.
func Within[T cmp.Ordered](lowest T, highest T) Scanner[T] {
	return func(items []T) uint {
		if len(items) != 0 && lowest <= items[0] && items[0] <= highest {
			return 1
		}
		// fail
		return 0
	}
}

// Many matches zero or more of a given item.
func Many[T any](acceptor Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		index := uint(0)
		//
		for index < uint(len(items)) {
			if n := acceptor(items[index:]); n != 0 {
				index += n
				continue
			}
			//
			break
		}
		// done
		return index
	}
}

// Until matches everything until a particular item is matched.
func Until[T comparable](item T) Scanner[T] {
	return func(items []T) uint {
		index := uint(0)
		//
		for index < uint(len(items)) {
			if items[index] == item {
				break
			}
			// continue match
			index = index + 1
		}
		// done
		return index
	}
}

// Eof matches the end of the input stream.
func Eof[T any]() Scanner[T] {
	return func(items []T) uint {
		if len(items) == 0 {
			return 1
		}
		//
		return 0
	}
}

// SequenceNullableLast matches all the scanners in order.
// Each scanner consumes the input right after the previous one ends.
// Only the final scanner is allowed a match length of 0.
func SequenceNullableLast[T comparable](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		n, i := uint(0), 0
		for i = range scanners {
			if n == uint(len(items)) {
				break
			}

			m := scanners[i](items[n:])
			if m == 0 {
				break
			}

			n += m
		}

		if i < len(scanners)-1 { // if we ended prematurely
			return 0
		}

		return n
	}
}

// Sequence matches all the scanners in order.
// Each scanner consumes the input right after the previous one ends.
func Sequence[T comparable](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		n := uint(0)
		for _, scanner := range scanners {
			if n == uint(len(items)) {
				return 0
			}

			m := scanner(items[n:])
			if m == 0 {
				return 0
			}

			n += m
		}

		return n
	}
}

// Except accepts any single item which is not one of the given items.
func Except[T comparable](excluded ...T) Scanner[T] {
	return func(items []T) uint {
		if len(items) != 0 && !slices.Contains(excluded, items[0]) {
			return 1
		}
		// fail
		return 0
	}
}

// Unless matches a given scanner only when its match is not immediately
// followed by something the guard accepts.  This is useful for keywords,
// which must not be the prefix of a longer identifier.
func Unless[T any](scanner Scanner[T], guard Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		n := scanner(items)
		//
		if n == 0 || (n < uint(len(items)) && guard(items[n:]) > 0) {
			return 0
		}
		//
		return n
	}
}

// Between matches an opening sequence, followed by everything up to and
// including the first occurrence of a closing sequence.  If the closing
// sequence is never found, then nothing is matched.
func Between[T comparable](opening []T, closing []T) Scanner[T] {
	return func(items []T) uint {
		if !hasPrefix(items, opening) {
			return 0
		}
		//
		for i := len(opening); i+len(closing) <= len(items); i++ {
			if hasPrefix(items[i:], closing) {
				return uint(i + len(closing))
			}
		}
		// unterminated
		return 0
	}
}

// Filter restricts a scanner such that a match is only accepted when the
// matched items satisfy a given predicate.
func Filter[T any](scanner Scanner[T], predicate func([]T) bool) Scanner[T] {
	return func(items []T) uint {
		if n := scanner(items); n > 0 && predicate(items[:n]) {
			return n
		}
		// fail
		return 0
	}
}

func hasPrefix[T comparable](items []T, prefix []T) bool {
	return len(items) >= len(prefix) && slices.Equal(items[:len(prefix)], prefix)
}

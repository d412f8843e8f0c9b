/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package expand substitutes variable references in rule strings.
//
// $(NAME) is replaced by the value of NAME in the simple variable store and
// &(NAME) by the paths bound to NAME in the node variable store, relativized
// for the directory the rule runs in. Expansion sizes the result first and
// then fills a buffer of exactly that size.
package expand

import (
	"errors"
	"fmt"
	"strings"

	"bennypowers.dev/vardb/vardb"
)

var (
	// ErrSyntax is returned for a reference without a closing parenthesis.
	ErrSyntax = errors.New("expand: unterminated variable reference")
	// ErrSizeMismatch is returned when the fill pass disagrees with the size pass.
	ErrSizeMismatch = errors.New("expand: size mismatch")
)

type kind int

const (
	literal kind = iota
	simpleRef
	nodeRef
)

type token struct {
	kind kind
	text string
}

// Expander expands rule strings against a pair of stores.
type Expander struct {
	vars    *vardb.Store
	nodes   *vardb.NodeStore
	relTo   vardb.DirID
	variant vardb.Variant
}

// New creates an Expander. Node references are relativized from relTo to
// the variant directory. Either store may be nil, in which case its
// references expand to nothing.
func New(vars *vardb.Store, nodes *vardb.NodeStore, relTo vardb.DirID, variant vardb.Variant) *Expander {
	return &Expander{vars: vars, nodes: nodes, relTo: relTo, variant: variant}
}

// Expand returns s with every reference replaced.
func (x *Expander) Expand(s string) (string, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return "", err
	}

	size := 0
	for _, tok := range tokens {
		n, err := x.sizeOf(tok)
		if err != nil {
			return "", err
		}
		size += n
	}

	buf := make([]byte, size)
	n := 0
	for _, tok := range tokens {
		want, err := x.sizeOf(tok)
		if err != nil {
			return "", err
		}
		if n+want > size {
			return "", fmt.Errorf("%w: %q needs %d bytes, %d left", ErrSizeMismatch, tok.text, want, size-n)
		}
		got, err := x.fill(buf[n:], tok)
		if err != nil {
			return "", err
		}
		if got != want {
			return "", fmt.Errorf("%w: %q wrote %d bytes, expected %d", ErrSizeMismatch, tok.text, got, want)
		}
		n += got
	}
	if n != size {
		return "", fmt.Errorf("%w: wrote %d bytes, expected %d", ErrSizeMismatch, n, size)
	}
	return string(buf), nil
}

func (x *Expander) sizeOf(tok token) (int, error) {
	switch tok.kind {
	case simpleRef:
		if x.vars == nil {
			return 0, nil
		}
		return x.vars.Len(tok.text), nil
	case nodeRef:
		if x.nodes == nil {
			return 0, nil
		}
		n, err := x.nodes.Len(tok.text, x.relTo, x.variant)
		if err != nil {
			return 0, fmt.Errorf("failed to expand &(%s): %w", tok.text, err)
		}
		return n, nil
	default:
		return len(tok.text), nil
	}
}

func (x *Expander) fill(dst []byte, tok token) (int, error) {
	switch tok.kind {
	case simpleRef:
		if x.vars == nil {
			return 0, nil
		}
		return x.vars.Copy(dst, tok.text), nil
	case nodeRef:
		if x.nodes == nil {
			return 0, nil
		}
		n, err := x.nodes.Copy(dst, tok.text, x.relTo, x.variant)
		if err != nil {
			return 0, fmt.Errorf("failed to expand &(%s): %w", tok.text, err)
		}
		return n, nil
	default:
		return copy(dst, tok.text), nil
	}
}

// References lists the names referenced by s, simple references first, each
// in order of first appearance.
func References(s string) (vars, nodes []string, err error) {
	tokens, err := tokenize(s)
	if err != nil {
		return nil, nil, err
	}
	seenVar := make(map[string]bool)
	seenNode := make(map[string]bool)
	for _, tok := range tokens {
		switch tok.kind {
		case simpleRef:
			if !seenVar[tok.text] {
				seenVar[tok.text] = true
				vars = append(vars, tok.text)
			}
		case nodeRef:
			if !seenNode[tok.text] {
				seenNode[tok.text] = true
				nodes = append(nodes, tok.text)
			}
		}
	}
	return vars, nodes, nil
}

func tokenize(s string) ([]token, error) {
	var tokens []token
	start := 0
	for i := 0; i+1 < len(s); i++ {
		if (s[i] != '$' && s[i] != '&') || s[i+1] != '(' {
			continue
		}
		end := strings.IndexByte(s[i+2:], ')')
		if end < 0 {
			return nil, fmt.Errorf("%w at offset %d in %q", ErrSyntax, i, s)
		}
		if i > start {
			tokens = append(tokens, token{kind: literal, text: s[start:i]})
		}
		k := simpleRef
		if s[i] == '&' {
			k = nodeRef
		}
		tokens = append(tokens, token{kind: k, text: s[i+2 : i+2+end]})
		i += 2 + end
		start = i + 1
	}
	if start < len(s) {
		tokens = append(tokens, token{kind: literal, text: s[start:]})
	}
	return tokens, nil
}

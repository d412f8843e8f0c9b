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

package vardb

import (
	"fmt"
	"iter"
)

// Visitor receives the result of comparing two stores key by key.
// Returning an error stops the comparison.
type Visitor interface {
	// OnlyLeft is called for a name bound only in the left store.
	OnlyLeft(e *Entry) error
	// OnlyRight is called for a name bound only in the right store.
	OnlyRight(e *Entry) error
	// Both is called for a name bound in both stores.
	Both(left, right *Entry) error
}

// Funcs adapts plain functions to a Visitor. Nil functions are skipped.
// Context is passed unchanged to every call.
type Funcs[C any] struct {
	OnlyLeft  func(e *Entry, ctx C) error
	OnlyRight func(e *Entry, ctx C) error
	Both      func(left, right *Entry, ctx C) error
	Context   C
}

// funcsVisitor exposes Funcs under the Visitor method names, which Funcs
// already uses for its fields.
type funcsVisitor[C any] struct{ f Funcs[C] }

func (v funcsVisitor[C]) OnlyLeft(e *Entry) error {
	if v.f.OnlyLeft == nil {
		return nil
	}
	return v.f.OnlyLeft(e, v.f.Context)
}

func (v funcsVisitor[C]) OnlyRight(e *Entry) error {
	if v.f.OnlyRight == nil {
		return nil
	}
	return v.f.OnlyRight(e, v.f.Context)
}

func (v funcsVisitor[C]) Both(left, right *Entry) error {
	if v.f.Both == nil {
		return nil
	}
	return v.f.Both(left, right, v.f.Context)
}

// Visitor returns f as a Visitor.
func (f Funcs[C]) Visitor() Visitor {
	return funcsVisitor[C]{f: f}
}

// Compare walks left and right together in ascending name order and calls
// exactly one Visitor method per distinct name. Names bound in both stores
// only reach Both. The first error returned by the visitor aborts the walk
// and is returned wrapped with the name being visited.
func Compare(left, right *Store, v Visitor) error {
	nextL, stopL := iter.Pull2(left.All())
	defer stopL()
	nextR, stopR := iter.Pull2(right.All())
	defer stopR()

	nameL, entL, okL := nextL()
	nameR, entR, okR := nextR()

	for okL || okR {
		switch {
		case !okL || (okR && nameR < nameL):
			if err := v.OnlyRight(entR); err != nil {
				return fmt.Errorf("compare %q: %w", nameR, err)
			}
			nameR, entR, okR = nextR()
		case !okR || nameL < nameR:
			if err := v.OnlyLeft(entL); err != nil {
				return fmt.Errorf("compare %q: %w", nameL, err)
			}
			nameL, entL, okL = nextL()
		default:
			if err := v.Both(entL, entR); err != nil {
				return fmt.Errorf("compare %q: %w", nameL, err)
			}
			nameL, entL, okL = nextL()
			nameR, entR, okR = nextR()
		}
	}
	return nil
}

// ChangeSet classifies the names of two store snapshots.
type ChangeSet struct {
	Added     []string `json:"added,omitempty"`     // bound only in the new store
	Removed   []string `json:"removed,omitempty"`   // bound only in the old store
	Changed   []string `json:"changed,omitempty"`   // bound in both with different values
	Unchanged []string `json:"unchanged,omitempty"` // bound in both with the same value
}

// Empty reports whether nothing was added, removed or changed.
func (c *ChangeSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0
}

// Changes compares a snapshot taken before a change with one taken after it.
// Each list is in ascending name order.
func Changes(before, after *Store) (*ChangeSet, error) {
	cs := &ChangeSet{}
	err := Compare(before, after, Funcs[*ChangeSet]{
		OnlyLeft: func(e *Entry, cs *ChangeSet) error {
			cs.Removed = append(cs.Removed, e.Name())
			return nil
		},
		OnlyRight: func(e *Entry, cs *ChangeSet) error {
			cs.Added = append(cs.Added, e.Name())
			return nil
		},
		Both: func(a, b *Entry, cs *ChangeSet) error {
			if a.value != b.value || a.valued != b.valued {
				cs.Changed = append(cs.Changed, a.Name())
			} else {
				cs.Unchanged = append(cs.Unchanged, a.Name())
			}
			return nil
		},
		Context: cs,
	}.Visitor())
	if err != nil {
		return nil, err
	}
	return cs, nil
}

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

// Package vardb holds the variable bindings of a build pass.
//
// A [Store] maps a variable name to a single string value and is used for
// textual substitution in build rules. A [NodeStore] maps a name to an
// ordered list of filesystem paths produced by graph evaluation; its values
// are rewritten relative to the directory that asks for them.
//
// Both stores follow a two-pass protocol for materialising values: Len
// reports the exact number of bytes Copy will write for the same arguments,
// so callers can size a destination buffer once and fill it without growth.
// Missing names behave as the empty string.
//
// Stores are not safe for concurrent use. Callers that share a store across
// goroutines must serialise access themselves.
package vardb

import "errors"

var (
	// ErrInsert is returned when the ordered map rejects a new entry.
	ErrInsert = errors.New("vardb: error inserting into tree")

	// ErrRelativize is returned when a relative directory path cannot be
	// computed for a node variable.
	ErrRelativize = errors.New("vardb: cannot compute relative directory")

	// ErrEmptyName is returned when a variable name is empty.
	ErrEmptyName = errors.New("vardb: empty variable name")
)

// EntryID identifies a build entry owned by the dependency graph. Stores keep
// and return EntryIDs but never interpret them.
type EntryID int64

// NoEntry is the absent build entry.
const NoEntry EntryID = 0

// Valid reports whether id refers to a build entry.
func (id EntryID) Valid() bool {
	return id != NoEntry
}

// DirID identifies a directory in the build tree.
type DirID int64

// Variant is a build-output context. Node variable values are stored
// relative to the variant's Dir.
type Variant struct {
	Dir  DirID // canonical directory of the variant
	Root bool  // true for the root (in-tree) variant
}

// Relativizer computes the relative path from one directory to another,
// e.g. "../.." from "a/b" to the root.
type Relativizer interface {
	RelativePath(from, to DirID) (string, error)
}

// Logger is an interface for logging messages from the stores.
type Logger interface {
	Warning(format string, args ...any)
	Debug(format string, args ...any)
}

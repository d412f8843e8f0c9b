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

// Package dirtree assigns directory identifiers to build-tree paths and
// computes relative paths between them.
package dirtree

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"bennypowers.dev/vardb/vardb"
)

// ErrUnknownDir is returned for a DirID that was never interned.
var ErrUnknownDir = errors.New("dirtree: unknown directory")

// Root is the path of the top of the build tree.
const Root = "."

// Tree maps directory paths, relative to the top of the build tree, to
// DirIDs. Paths always use forward slashes.
type Tree struct {
	ids   map[string]vardb.DirID
	paths map[vardb.DirID]string
	next  vardb.DirID
}

// New creates a Tree containing only the root directory.
func New() *Tree {
	t := &Tree{
		ids:   make(map[string]vardb.DirID),
		paths: make(map[vardb.DirID]string),
		next:  1,
	}
	t.Intern(Root)
	return t
}

// Clean normalises a directory path: forward slashes, no trailing slash,
// and "." for the root.
func Clean(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	if p == "" || p == "/" {
		return Root
	}
	return strings.TrimPrefix(p, "./")
}

// Intern returns the DirID for p, assigning a new one on first use.
func (t *Tree) Intern(p string) vardb.DirID {
	p = Clean(p)
	if id, ok := t.ids[p]; ok {
		return id
	}
	id := t.next
	t.next++
	t.ids[p] = id
	t.paths[id] = p
	return id
}

// Lookup returns the DirID of p if it has been interned.
func (t *Tree) Lookup(p string) (vardb.DirID, bool) {
	id, ok := t.ids[Clean(p)]
	return id, ok
}

// Path returns the path of id.
func (t *Tree) Path(id vardb.DirID) (string, bool) {
	p, ok := t.paths[id]
	return p, ok
}

// RootID returns the DirID of the root directory.
func (t *Tree) RootID() vardb.DirID {
	return t.ids[Root]
}

// RelativePath returns the slash-separated path that leads from the
// directory from to the directory to, such as "../.." or "../out/debug".
func (t *Tree) RelativePath(from, to vardb.DirID) (string, error) {
	fromPath, ok := t.paths[from]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownDir, from)
	}
	toPath, ok := t.paths[to]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownDir, to)
	}

	rel, err := filepath.Rel(filepath.FromSlash(fromPath), filepath.FromSlash(toPath))
	if err != nil {
		return "", fmt.Errorf("dirtree: %s -> %s: %w", fromPath, toPath, err)
	}
	return filepath.ToSlash(rel), nil
}

// Variant returns the variant context whose canonical directory is p.
// The variant at the root of the tree is the root variant.
func (t *Tree) Variant(p string) vardb.Variant {
	id := t.Intern(p)
	return vardb.Variant{Dir: id, Root: id == t.RootID()}
}

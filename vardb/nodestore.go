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
	"slices"

	"bennypowers.dev/vardb/internal/ordmap"
)

// DefaultSeparator joins a relative directory prefix to a node value.
const DefaultSeparator byte = '/'

// NodeEntry binds a node variable to one or more paths.
type NodeEntry struct {
	name    string
	values  []string
	sources []EntryID
}

// Name returns the variable name.
func (e *NodeEntry) Name() string {
	return e.name
}

// Values returns a copy of the stored paths in insertion order.
func (e *NodeEntry) Values() []string {
	return slices.Clone(e.values)
}

// Sources returns a copy of the build entries that contributed values.
// Values added with NoEntry have no corresponding source, so there may be
// fewer sources than values.
func (e *NodeEntry) Sources() []EntryID {
	return slices.Clone(e.sources)
}

// Count returns the number of stored paths.
func (e *NodeEntry) Count() int {
	return len(e.values)
}

func (e *NodeEntry) add(src EntryID, path string) {
	if src.Valid() {
		e.sources = append(e.sources, src)
	}
	e.values = append(e.values, path)
}

// NodeStore maps node variable names to paths. Paths are stored relative to
// the canonical directory of the variant being built.
type NodeStore struct {
	entries *ordmap.Map[*NodeEntry]
	rel     Relativizer
	sep     byte
	logger  Logger
}

// NewNodeStore creates an empty NodeStore. rel computes directory prefixes
// for Len and Copy; the logger may be nil.
func NewNodeStore(rel Relativizer, logger Logger) *NodeStore {
	return &NodeStore{
		entries: ordmap.New[*NodeEntry](),
		rel:     rel,
		sep:     DefaultSeparator,
		logger:  logger,
	}
}

// SetSeparator changes the byte placed between a directory prefix and a
// stored path.
func (s *NodeStore) SetSeparator(sep byte) {
	s.sep = sep
}

// Set binds name to a single path, discarding every previous path and source.
func (s *NodeStore) Set(name string, src EntryID, path string) error {
	if name == "" {
		return ErrEmptyName
	}

	if e, ok := s.entries.Get(name); ok {
		e.values = nil
		e.sources = nil
		e.add(src, path)
		s.debug("set %s", name)
		return nil
	}

	e := &NodeEntry{name: name}
	e.add(src, path)
	if err := s.entries.Insert(name, e); err != nil {
		if s.logger != nil {
			s.logger.Warning("vardb: error inserting node %q: %v", name, err)
		}
		return fmt.Errorf("%w: %q: %w", ErrInsert, name, err)
	}
	s.debug("new node %s", name)
	return nil
}

// Append adds a path to name, keeping earlier paths. If name is not bound,
// Append behaves like Set.
func (s *NodeStore) Append(name string, src EntryID, path string) error {
	e, ok := s.entries.Get(name)
	if !ok {
		return s.Set(name, src, path)
	}
	e.add(src, path)
	s.debug("append node %s", name)
	return nil
}

// Get returns the entry bound to name, or nil.
func (s *NodeStore) Get(name string) *NodeEntry {
	e, _ := s.entries.Get(name)
	return e
}

// prefix returns the directory path from relTo to the variant directory.
// It is empty when relTo is the variant directory itself.
func (s *NodeStore) prefix(relTo DirID, v Variant) (string, bool, error) {
	if relTo == v.Dir {
		return "", false, nil
	}
	if s.rel == nil {
		return "", false, fmt.Errorf("%w: no relativizer for %d -> %d", ErrRelativize, relTo, v.Dir)
	}
	p, err := s.rel.RelativePath(relTo, v.Dir)
	if err != nil {
		return "", false, fmt.Errorf("%w: %d -> %d: %w", ErrRelativize, relTo, v.Dir, err)
	}
	return p, true, nil
}

// Len returns the number of bytes Copy writes for the same arguments: the
// paths of name joined by single spaces, each prefixed with the path from
// relTo to the variant directory when the two differ. Unbound names have
// length 0.
func (s *NodeStore) Len(name string, relTo DirID, v Variant) (int, error) {
	e, ok := s.entries.Get(name)
	if !ok {
		return 0, nil
	}

	prefix, prefixed, err := s.prefix(relTo, v)
	if err != nil {
		return 0, err
	}

	n := 0
	for i, value := range e.values {
		if i > 0 {
			n++
		}
		if prefixed {
			n += len(prefix) + 1
		}
		n += len(value)
	}
	return n, nil
}

// Copy writes the paths of name into dst, as described by Len, and returns
// the number of bytes written. dst must be at least Len bytes long. If the
// relative prefix cannot be computed, nothing is written.
func (s *NodeStore) Copy(dst []byte, name string, relTo DirID, v Variant) (int, error) {
	e, ok := s.entries.Get(name)
	if !ok {
		return 0, nil
	}

	prefix, prefixed, err := s.prefix(relTo, v)
	if err != nil {
		return 0, err
	}

	n := 0
	for i, value := range e.values {
		if i > 0 {
			dst[n] = ' '
			n++
		}
		if prefixed {
			n += copy(dst[n:], prefix)
			dst[n] = s.sep
			n++
		}
		n += copy(dst[n:], value)
	}
	return n, nil
}

// Value returns the expanded paths of name as a string.
func (s *NodeStore) Value(name string, relTo DirID, v Variant) (string, error) {
	size, err := s.Len(name, relTo, v)
	if err != nil {
		return "", err
	}
	buf := make([]byte, size)
	n, err := s.Copy(buf, name, relTo, v)
	if err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}

// Count returns the number of bound node variables.
func (s *NodeStore) Count() int {
	return s.entries.Len()
}

// All iterates over every entry in ascending name order.
func (s *NodeStore) All() iter.Seq2[string, *NodeEntry] {
	return s.entries.All()
}

// Close releases every entry and its path and source lists. Source entries
// themselves are not touched.
func (s *NodeStore) Close() {
	for _, e := range s.entries.All() {
		e.values = nil
		e.sources = nil
	}
	s.entries.Clear()
}

func (s *NodeStore) debug(format string, args ...any) {
	if s.logger != nil {
		s.logger.Debug("vardb: "+format, args...)
	}
}

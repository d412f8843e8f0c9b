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

	"bennypowers.dev/vardb/internal/ordmap"
)

// Entry is a single variable binding.
type Entry struct {
	name   string
	value  string
	valued bool
	source EntryID
}

// Name returns the variable name.
func (e *Entry) Name() string {
	return e.name
}

// Value returns the variable value. A declared variable without a value
// reads as the empty string.
func (e *Entry) Value() string {
	return e.value
}

// HasValue reports whether the variable was given a value.
func (e *Entry) HasValue() bool {
	return e.valued
}

// Source returns the build entry that produced the binding, or NoEntry.
func (e *Entry) Source() EntryID {
	return e.source
}

// Store maps variable names to string values.
type Store struct {
	entries *ordmap.Map[*Entry]
	logger  Logger
}

// NewStore creates an empty Store. The logger may be nil.
func NewStore(logger Logger) *Store {
	return &Store{
		entries: ordmap.New[*Entry](),
		logger:  logger,
	}
}

// Set binds name to value, replacing any previous value. The source entry
// always overwrites the stored one, including with NoEntry.
func (s *Store) Set(name, value string, src EntryID) (*Entry, error) {
	return s.set(name, value, true, src)
}

// Declare binds name without a value. An existing value is discarded.
func (s *Store) Declare(name string, src EntryID) (*Entry, error) {
	return s.set(name, "", false, src)
}

func (s *Store) set(name, value string, valued bool, src EntryID) (*Entry, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if e, ok := s.entries.Get(name); ok {
		e.value = value
		e.valued = valued
		e.source = src
		s.debug("set %s", name)
		return e, nil
	}

	e := &Entry{
		name:   name,
		value:  value,
		valued: valued,
		source: src,
	}
	if err := s.entries.Insert(name, e); err != nil {
		if s.logger != nil {
			s.logger.Warning("vardb: error inserting %q: %v", name, err)
		}
		return nil, fmt.Errorf("%w: %q: %w", ErrInsert, name, err)
	}
	s.debug("new %s", name)
	return e, nil
}

// Append adds value to the end of an existing variable, separated by a
// single space. If name is not bound, Append behaves like Set with NoEntry.
func (s *Store) Append(name, value string) error {
	e, ok := s.entries.Get(name)
	if !ok {
		_, err := s.Set(name, value, NoEntry)
		return err
	}

	e.value = e.value + " " + value
	e.valued = true
	s.debug("append %s", name)
	return nil
}

// Get returns the entry bound to name, or nil.
func (s *Store) Get(name string) *Entry {
	e, _ := s.entries.Get(name)
	return e
}

// Len returns the length in bytes of the value of name. Unbound names have
// length 0.
func (s *Store) Len(name string) int {
	e, ok := s.entries.Get(name)
	if !ok {
		return 0
	}
	return len(e.value)
}

// Copy writes the value of name into dst and returns the number of bytes
// written. dst should be at least Len(name) bytes long. Unbound names write
// nothing.
func (s *Store) Copy(dst []byte, name string) int {
	e, ok := s.entries.Get(name)
	if !ok {
		return 0
	}
	return copy(dst, e.value)
}

// Value returns the value of name, or "" if it is not bound.
func (s *Store) Value(name string) string {
	buf := make([]byte, s.Len(name))
	n := s.Copy(buf, name)
	return string(buf[:n])
}

// Count returns the number of bound variables.
func (s *Store) Count() int {
	return s.entries.Len()
}

// All iterates over every entry in ascending name order.
func (s *Store) All() iter.Seq2[string, *Entry] {
	return s.entries.All()
}

// Clone returns an independent copy of the store, suitable as a snapshot
// for Compare.
func (s *Store) Clone() *Store {
	clone := NewStore(s.logger)
	for name, e := range s.entries.All() {
		cp := *e
		// Keys are unique in s, so this cannot collide.
		_ = clone.entries.Insert(name, &cp)
	}
	return clone
}

// Close releases every entry. Source entries are not touched.
func (s *Store) Close() {
	s.entries.Clear()
}

func (s *Store) debug(format string, args ...any) {
	if s.logger != nil {
		s.logger.Debug("vardb: "+format, args...)
	}
}

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

// Package load collects variable files named on the command line and loads
// them into vardb stores.
package load

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/vardb/fs"
	"bennypowers.dev/vardb/vardb"
	"bennypowers.dev/vardb/varfile"
)

// ErrNoFiles is returned when neither arguments nor a glob name any file.
var ErrNoFiles = errors.New("no variable files: provide file arguments or use --glob")

// Files returns args followed by the matches of pattern, as absolute paths
// with duplicates removed. An empty pattern matches nothing.
func Files(args []string, pattern string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) error {
		absPath, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("invalid file path %q: %w", p, err)
		}
		if _, exists := seen[absPath]; !exists {
			seen[absPath] = struct{}{}
			files = append(files, absPath)
		}
		return nil
	}

	for _, arg := range args {
		if err := add(arg); err != nil {
			return nil, err
		}
	}

	if pattern != "" {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern: %w", err)
		}
		for _, match := range matches {
			if err := add(match); err != nil {
				return nil, err
			}
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}

// Stores loads files in order into a new variable store and, when rel is
// non-nil, a new node store using rel and sep.
func Stores(fsys fs.FileSystem, files []string, rel vardb.Relativizer, sep byte, logger vardb.Logger) (*vardb.Store, *vardb.NodeStore, error) {
	vars := vardb.NewStore(logger)
	var nodes *vardb.NodeStore
	if rel != nil {
		nodes = vardb.NewNodeStore(rel, logger)
		nodes.SetSeparator(sep)
	}
	if err := varfile.Load(fsys, files, vars, nodes); err != nil {
		vars.Close()
		if nodes != nil {
			nodes.Close()
		}
		return nil, nil, err
	}
	return vars, nodes, nil
}

// Filter returns a store holding the entries of s whose names match the
// doublestar pattern. An empty pattern returns s itself.
func Filter(s *vardb.Store, pattern string) (*vardb.Store, error) {
	if pattern == "" {
		return s, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid match pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	filtered := vardb.NewStore(nil)
	for name, e := range s.All() {
		if ok, _ := doublestar.Match(pattern, name); !ok {
			continue
		}
		var err error
		if e.HasValue() {
			_, err = filtered.Set(name, e.Value(), e.Source())
		} else {
			_, err = filtered.Declare(name, e.Source())
		}
		if err != nil {
			return nil, err
		}
	}
	return filtered, nil
}

// Separator parses a separator flag value, which must be a single byte.
func Separator(s string) (byte, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("invalid separator %q: must be a single byte", s)
	}
	return s[0], nil
}

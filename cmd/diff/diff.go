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

// Package diff provides the diff command for vardb.
package diff

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/vardb/fs"
	"bennypowers.dev/vardb/internal/load"
	"bennypowers.dev/vardb/internal/log"
	"bennypowers.dev/vardb/internal/output"
	"bennypowers.dev/vardb/vardb"
)

// Cmd is the diff cobra command that compares the variables of two files.
var Cmd = &cobra.Command{
	Use:   "diff OLD NEW",
	Short: "Compare the variables of two variable files",
	Long: `Compare the variables defined by two variable files.

Each variable is printed with a marker:
  + only in NEW
  - only in OLD
  ~ in both with a different value
  = in both and unchanged (only with --all)`,
	Example: `  # What changed between two configurations
  vardb diff old.yaml new.yaml

  # Include unchanged variables, as JSON
  vardb diff old.yaml new.hcl --all --format json`,
	Args: cobra.ExactArgs(2),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	Cmd.Flags().String("match", "", "Only compare variables whose names match this glob")
	Cmd.Flags().Bool("all", false, "Also list unchanged variables")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger := log.New(os.Stderr, viper.GetBool("verbose"))

	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", format)
	}
	match, _ := cmd.Flags().GetString("match")
	all, _ := cmd.Flags().GetBool("all")

	before, err := loadOne(osfs, args[0], match, logger)
	if err != nil {
		return err
	}
	after, err := loadOne(osfs, args[1], match, logger)
	if err != nil {
		return err
	}

	var text string
	if format == "json" {
		changes, err := vardb.Changes(before, after)
		if err != nil {
			return err
		}
		if !all {
			changes.Unchanged = nil
		}
		out, err := json.MarshalIndent(changes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal changes: %w", err)
		}
		text = string(out)
	} else {
		lines, err := Lines(before, after, all)
		if err != nil {
			return err
		}
		text = strings.Join(lines, "\n")
	}
	return output.Text(osfs, cmd.OutOrStdout(), text)
}

func loadOne(osfs fs.FileSystem, path, match string, logger vardb.Logger) (*vardb.Store, error) {
	files, err := load.Files([]string{path}, "")
	if err != nil {
		return nil, err
	}
	vars, _, err := load.Stores(osfs, files, nil, 0, logger)
	if err != nil {
		return nil, err
	}
	return load.Filter(vars, match)
}

type listing struct {
	lines []string
	all   bool
}

// Lines returns one marked line per variable, in name order.
func Lines(before, after *vardb.Store, all bool) ([]string, error) {
	out := &listing{all: all}
	v := vardb.Funcs[*listing]{
		OnlyLeft: func(e *vardb.Entry, l *listing) error {
			l.lines = append(l.lines, "- "+e.Name())
			return nil
		},
		OnlyRight: func(e *vardb.Entry, l *listing) error {
			l.lines = append(l.lines, "+ "+e.Name())
			return nil
		},
		Both: func(a, b *vardb.Entry, l *listing) error {
			switch {
			case a.Value() != b.Value() || a.HasValue() != b.HasValue():
				l.lines = append(l.lines, "~ "+a.Name())
			case l.all:
				l.lines = append(l.lines, "= "+a.Name())
			}
			return nil
		},
		Context: out,
	}
	if err := vardb.Compare(before, after, v.Visitor()); err != nil {
		return nil, err
	}
	return out.lines, nil
}

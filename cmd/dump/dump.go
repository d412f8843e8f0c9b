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

// Package dump provides the dump command for vardb.
package dump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/vardb/fs"
	"bennypowers.dev/vardb/internal/load"
	"bennypowers.dev/vardb/internal/log"
	"bennypowers.dev/vardb/internal/output"
	"bennypowers.dev/vardb/vardb"
)

// Cmd is the dump cobra command that loads variable files and prints the
// resulting variable store.
var Cmd = &cobra.Command{
	Use:   "dump [file...]",
	Short: "Print the variables defined by variable files",
	Long: `Load variable files in order and print the resulting variables.

Later files override earlier ones. Files may be YAML, JSON or HCL.`,
	Example: `  # Dump variables from two files
  vardb dump defaults.yaml local.hcl

  # Dump every variable file below config/
  vardb dump --glob "config/**/*.{yaml,hcl}"

  # Only flags, as JSON
  vardb dump build.yaml --match "*FLAGS" --format json`,
	RunE: run,
}

// Variable is the JSON form of a variable.
type Variable struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Valued bool   `json:"valued"`
	Source int64  `json:"source,omitempty"`
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json, html)")
	Cmd.Flags().String("glob", "", "Glob pattern to match variable files (e.g., \"config/**/*.yaml\")")
	Cmd.Flags().String("match", "", "Only show variables whose names match this glob")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger := log.New(os.Stderr, viper.GetBool("verbose"))

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text", "json", "html":
		// valid
	default:
		return fmt.Errorf("invalid format %q: must be one of text, json, html", format)
	}

	globPattern, _ := cmd.Flags().GetString("glob")
	files, err := load.Files(args, globPattern)
	if err != nil {
		return err
	}

	vars, _, err := load.Stores(osfs, files, nil, 0, logger)
	if err != nil {
		return err
	}
	defer vars.Close()

	match, _ := cmd.Flags().GetString("match")
	vars, err = load.Filter(vars, match)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch format {
	case "json":
		out, err := json.MarshalIndent(variables(vars), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal variables: %w", err)
		}
		buf.Write(out)
	case "html":
		var rows [][]string
		for name, e := range vars.All() {
			rows = append(rows, []string{name, e.Value(), strconv.FormatInt(int64(e.Source()), 10)})
		}
		if err := output.Table(&buf, "vardb", []string{"Name", "Value", "Source"}, rows); err != nil {
			return err
		}
	default:
		if err := vars.Dump(&buf); err != nil {
			return err
		}
	}
	return output.Text(osfs, cmd.OutOrStdout(), buf.String())
}

func variables(s *vardb.Store) []Variable {
	out := make([]Variable, 0, s.Count())
	for name, e := range s.All() {
		out = append(out, Variable{
			Name:   name,
			Value:  e.Value(),
			Valued: e.HasValue(),
			Source: int64(e.Source()),
		})
	}
	return out
}

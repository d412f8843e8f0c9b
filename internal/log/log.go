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

// Package log provides the console logger used by the vardb CLI.
package log

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger writes human-readable log lines through zerolog. It satisfies
// vardb.Logger.
type Logger struct {
	zl zerolog.Logger
}

// New creates a Logger writing to w. Debug messages are dropped unless
// verbose is set.
func New(w io.Writer, verbose bool) *Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	return &Logger{zl: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

// Warning logs a formatted warning.
func (l *Logger) Warning(format string, args ...any) {
	l.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

// Debug logs a formatted debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msg(fmt.Sprintf(format, args...))
}

// Error logs err with a message.
func (l *Logger) Error(err error, msg string) {
	l.zl.Error().Err(err).Msg(msg)
}

// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"log/slog"
	"strings"
)

// Severity defines the severity of a logging message.
type Severity int32

// The values must be kept in order of increasing severity.
const (
	// Verbose indicates extremely verbose level messages.
	Verbose Severity = iota
	// Debug indicates debug-level messages.
	Debug
	// Info indicates minor informational messages that should generally be ignored.
	Info
	// Warning indicates issues that might affect performance or compatibility, but could be ignored.
	Warning
	// Error indicates non terminal failure conditions that may have an effect on results.
	Error
	// Fatal indicates a fatal error.
	Fatal
)

var severityNames = [...]string{"Verbose", "Debug", "Info", "Warning", "Error", "Fatal"}

func (s Severity) String() string {
	if s < Verbose || s > Fatal {
		return fmt.Sprintf("Severity(%d)", int32(s))
	}
	return severityNames[s]
}

// Short returns the single character abbreviation of the severity.
func (s Severity) Short() string {
	if s < Verbose || s > Fatal {
		return "?"
	}
	return severityNames[s][:1]
}

// Level returns the slog level used when s is handed to a slog.Handler.
func (s Severity) Level() slog.Level {
	switch {
	case s <= Verbose:
		return slog.LevelDebug - 4
	case s == Debug:
		return slog.LevelDebug
	case s == Info:
		return slog.LevelInfo
	case s == Warning:
		return slog.LevelWarn
	case s == Error:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

// ParseSeverity returns the Severity named by str, ignoring case. Either the
// full name or the single character abbreviation is accepted.
func ParseSeverity(str string) (Severity, error) {
	for i, n := range severityNames {
		if strings.EqualFold(str, n) || strings.EqualFold(str, n[:1]) {
			return Severity(i), nil
		}
	}
	return Info, fmt.Errorf("unknown log severity %q", str)
}

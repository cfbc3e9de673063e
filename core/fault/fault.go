// Copyright (C) 2026 Google Inc.
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

// Package fault holds the error values raised for broken preconditions and
// helpers for collecting errors across workers.
package fault

import "fmt"

// Const is the type for constant error values.
type Const string

// Error implements error for Const returning the string value of the const.
func (e Const) Error() string { return string(e) }

// InvalidErrorType is the error returned by From when the type is not an error.
const InvalidErrorType = Const("Invalid type for error")

// From converts a recovered panic value to an error.
// A nil value gives a nil error; a value that is not an error gives
// InvalidErrorType.
func From(value interface{}) error {
	switch err := value.(type) {
	case nil:
		return nil
	case error:
		return err
	default:
		return InvalidErrorType
	}
}

// Violation is the panic value raised when a caller breaks the
// precondition of an operation. Kind identifies the broken rule, Detail
// describes the offending values.
type Violation struct {
	Kind   Const
	Detail string
}

func (v Violation) Error() string {
	if v.Detail == "" {
		return string(v.Kind)
	}
	return fmt.Sprintf("%s: %s", v.Kind, v.Detail)
}

// Unwrap returns the Kind so errors.Is(v, kind) holds.
func (v Violation) Unwrap() error { return v.Kind }

// Panicf panics with a Violation of the given kind.
func Panicf(kind Const, format string, args ...interface{}) {
	panic(Violation{Kind: kind, Detail: fmt.Sprintf(format, args...)})
}

// Catch calls f and returns the Violation it panicked with, if any.
// Panics with any other value are propagated.
func Catch(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			v, ok := r.(Violation)
			if !ok {
				panic(r)
			}
			err = v
		}
	}()
	f()
	return nil
}

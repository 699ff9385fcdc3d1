// This file is part of nova.
//
// nova is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// nova is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with nova.  If not, see <https://www.gnu.org/licenses/>.

// Package errors implements curated errors: values built from a message
// template rather than a single fixed string, so that call sites can
// switch on the template (via Is/Head) without string-matching a fully
// formatted message, and so that repeated wrapping doesn't produce
// stuttering messages like "compile error: compile error: ...".
package errors

import (
	"fmt"
	"strings"
)

// Values is the type used to specify arguments for a curated error's
// message template.
type Values []any

// curated is an error built from a message template and a set of values to
// substitute into it. The template is only expanded when Error() is called.
type curated struct {
	message string
	values  Values
}

// Errorf creates a new curated error from a message template and values.
func Errorf(message string, values ...any) error {
	return curated{message: message, values: values}
}

// Error returns the expanded message, with an accidentally doubled leading
// clause collapsed (this happens naturally when a curated error wraps
// another curated error built from the same template).
func (e curated) Error() string {
	s := fmt.Errorf(e.message, e.values...).Error()

	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		return strings.Join(p[1:], ": ")
	}
	return strings.Join(p, ": ")
}

// Head returns the error's message template, unexpanded, if err is a
// curated error. For a plain error it returns the result of Error().
func Head(err error) string {
	if e, ok := err.(curated); ok {
		return e.message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsAny reports whether err is a curated error, regardless of template.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is reports whether err is a curated error built from the given message
// template.
func Is(err error, message string) bool {
	e, ok := err.(curated)
	return ok && e.message == message
}

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

// Package testhelp is a small, in-house set of test helpers, an alternative
// to an assertion-framework dependency. None of the module's current test
// files import it.
package testhelp

import (
	"strings"
	"testing"
)

// Writer is an io.Writer that captures everything written to it for later
// comparison.
type Writer struct {
	buf strings.Builder
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Compare reports whether the captured output equals want.
func (w *Writer) Compare(want string) bool {
	return w.buf.String() == want
}

// String returns everything captured so far.
func (w *Writer) String() string {
	return w.buf.String()
}

// Clear empties the captured buffer.
func (w *Writer) Clear() {
	w.buf.Reset()
}

// Equate fails the test if got and want differ.
func Equate(t *testing.T, got, want bool) {
	t.Helper()
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// ExpectEquality fails the test if got and want differ.
func ExpectEquality[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

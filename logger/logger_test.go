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

package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/justinvassantachart/nova-sub000/logger"
)

func TestCentralLogger(t *testing.T) {
	w := &strings.Builder{}

	logger.Write(w)
	if w.String() != "" {
		t.Fatalf("expected empty log, got %q", w.String())
	}

	logger.Log("test", "this is a test")
	logger.Write(w)
	if w.String() != "test: this is a test\n" {
		t.Fatalf("unexpected log contents: %q", w.String())
	}

	w.Reset()
	logger.Log("test2", "this is another test")
	logger.Write(w)
	if w.String() != "test: this is a test\ntest2: this is another test\n" {
		t.Fatalf("unexpected log contents: %q", w.String())
	}

	w.Reset()
	logger.Tail(w, 100)
	if w.String() != "test: this is a test\ntest2: this is another test\n" {
		t.Fatalf("Tail with excess count: %q", w.String())
	}

	w.Reset()
	logger.Tail(w, 1)
	if w.String() != "test2: this is another test\n" {
		t.Fatalf("Tail with one entry: %q", w.String())
	}

	w.Reset()
	logger.Tail(w, 0)
	if w.String() != "" {
		t.Fatalf("Tail with zero entries: %q", w.String())
	}

	logger.Clear()
}

type prohibitLogging struct {
	allow bool
}

func (p prohibitLogging) AllowLogging() bool {
	return p.allow
}

func TestPermission(t *testing.T) {
	log := logger.NewLogger(10)
	w := &strings.Builder{}

	log.Log(prohibitLogging{allow: false}, "tag", "detail")
	log.Write(w)
	if w.String() != "" {
		t.Fatalf("expected logging to be prohibited, got %q", w.String())
	}

	log.Log(prohibitLogging{allow: true}, "tag", "detail")
	log.Write(w)
	if w.String() != "tag: detail\n" {
		t.Fatalf("expected logging to be allowed, got %q", w.String())
	}
}

func TestErrorAndStringerLogging(t *testing.T) {
	log := logger.NewLogger(10)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", errors.New("test error"))
	log.Write(w)
	if w.String() != "tag: test error\n" {
		t.Fatalf("unexpected error log: %q", w.String())
	}

	log.Clear()
	w.Reset()
	log.Logf(logger.Allow, "tag", "wrapped: %v", errors.New("test error"))
	log.Write(w)
	if w.String() != "tag: wrapped: test error\n" {
		t.Fatalf("unexpected logf output: %q", w.String())
	}
}

func TestCapacity(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Log(logger.Allow, "a", "1")
	log.Log(logger.Allow, "b", "2")
	log.Log(logger.Allow, "c", "3")
	log.Write(w)
	if w.String() != "b: 2\nc: 3\n" {
		t.Fatalf("expected oldest entry to be dropped, got %q", w.String())
	}
}

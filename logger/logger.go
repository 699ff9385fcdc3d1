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

// Package logger implements a small capped ring-buffer logger shared by
// every component of the debug core. Components never write to stdout or
// stderr directly; they log through here with a component tag so that
// degraded-but-not-fatal conditions (a DWARF parse anomaly, an
// out-of-bounds memory read, an unreachable allocation) are recorded
// without being visible to the user unless asked for.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Permission is consulted before every Log/Logf call. This allows a caller
// to silence a class of log entries (eg. a particular subsystem, or
// everything below some verbosity) without threading a boolean through
// every call site.
type Permission interface {
	AllowLogging() bool
}

// allow is the permission used by the package-level convenience functions.
// It permits every entry.
type allow struct{}

func (allow) AllowLogging() bool { return true }

// Allow is a Permission value that always allows logging.
var Allow Permission = allow{}

type entry struct {
	tag    string
	detail string
}

// Logger is a capped ring buffer of log entries.
type Logger struct {
	mu       sync.Mutex
	entries  []entry
	capacity int
}

// NewLogger is the preferred method of initialisation for the Logger type.
// Once the buffer reaches capacity, the oldest entry is dropped to make
// room for each new one.
func NewLogger(capacity int) *Logger {
	if capacity <= 0 {
		capacity = 1
	}
	return &Logger{
		entries:  make([]entry, 0, capacity),
		capacity: capacity,
	}
}

// detailString renders detail the way Log/Logf present it: errors via
// Error(), fmt.Stringer via String(), everything else via the %v verb.
func detailString(detail any) string {
	switch d := detail.(type) {
	case error:
		return d.Error()
	case fmt.Stringer:
		return d.String()
	case string:
		return d
	default:
		return fmt.Sprintf("%v", detail)
	}
}

// Log appends a new entry if perm allows it.
func (log *Logger) Log(perm Permission, tag string, detail any) {
	if perm == nil || !perm.AllowLogging() {
		return
	}

	log.mu.Lock()
	defer log.mu.Unlock()

	if len(log.entries) == log.capacity {
		log.entries = append(log.entries[1:], entry{tag: tag, detail: detailString(detail)})
		return
	}
	log.entries = append(log.entries, entry{tag: tag, detail: detailString(detail)})
}

// Logf is like Log but formats detail with fmt.Sprintf first.
func (log *Logger) Logf(perm Permission, tag string, format string, args ...any) {
	log.Log(perm, tag, fmt.Sprintf(format, args...))
}

// Write dumps every entry, oldest first, one per line as "tag: detail".
func (log *Logger) Write(w io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()

	var b strings.Builder
	for _, e := range log.entries {
		fmt.Fprintf(&b, "%s: %s\n", e.tag, e.detail)
	}
	io.WriteString(w, b.String())
}

// Tail is like Write but dumps only the most recent n entries. Asking for
// more entries than exist, or for zero entries, is not an error.
func (log *Logger) Tail(w io.Writer, n int) {
	log.mu.Lock()
	defer log.mu.Unlock()

	if n <= 0 {
		return
	}
	if n > len(log.entries) {
		n = len(log.entries)
	}

	var b strings.Builder
	for _, e := range log.entries[len(log.entries)-n:] {
		fmt.Fprintf(&b, "%s: %s\n", e.tag, e.detail)
	}
	io.WriteString(w, b.String())
}

// Clear empties the buffer.
func (log *Logger) Clear() {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.entries = log.entries[:0]
}

// central is the instance backing the package-level convenience functions.
var central = NewLogger(1000)

// Log appends a new entry to the central logger, always allowed.
func Log(tag string, detail any) {
	central.Log(Allow, tag, detail)
}

// Logf is like Log but formats detail with fmt.Sprintf first.
func Logf(perm Permission, tag string, format string, args ...any) {
	central.Logf(perm, tag, format, args...)
}

// Write dumps the central logger's entries.
func Write(w io.Writer) {
	central.Write(w)
}

// Tail dumps the central logger's last n entries.
func Tail(w io.Writer, n int) {
	central.Tail(w, n)
}

// Clear empties the central logger.
func Clear() {
	central.Clear()
}

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

package instrument

import (
	"strconv"
	"strings"
)

// lineKind classifies one line of assembly text for the purposes of the
// token-stream rewrite.
type lineKind int

const (
	kindBlank lineKind = iota
	kindComment
	kindLabel
	kindDirective
	kindEndFunction
	kindInstruction
	kindOther
)

// classify returns the kind of a single (already trimmed) line.
func classify(trimmed string) lineKind {
	if trimmed == "" {
		return kindBlank
	}
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";;") || strings.HasPrefix(trimmed, "//") {
		return kindComment
	}
	if trimmed == "end_function" {
		return kindEndFunction
	}
	if strings.HasPrefix(trimmed, ".") {
		return kindDirective
	}
	if strings.HasSuffix(trimmed, ":") && !strings.ContainsAny(trimmed, " \t") {
		return kindLabel
	}

	r := rune(trimmed[0])
	if r >= 'a' && r <= 'z' {
		return kindInstruction
	}
	return kindOther
}

// parseDotFile parses a `.file id "path"` directive. ok is false if the
// line doesn't match that shape.
func parseDotFile(fields []string) (id int, path string, ok bool) {
	if len(fields) < 3 || fields[0] != ".file" {
		return 0, "", false
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, "", false
	}
	path = strings.Trim(fields[2], "\"")
	return id, path, true
}

// parseDotFunctype parses a `.functype name (...) -> (...)` directive,
// returning the raw (possibly mangled) function name. ok is false if the
// line doesn't match that shape, or if name is one of the hook names
// themselves (so that the hooks' own functype declarations, including the
// one this package prepends, are never mistaken for a user function).
func parseDotFunctype(fields []string) (name string, ok bool) {
	if len(fields) < 2 || fields[0] != ".functype" {
		return "", false
	}
	name = fields[1]
	switch name {
	case StepHookName, EnterHookName, ExitHookName:
		return "", false
	}
	return name, true
}

// parseDotLoc parses a `.loc fileId line col [flags...]` directive.
func parseDotLoc(fields []string) (fileID, line int, prologueEnd bool, ok bool) {
	if len(fields) < 3 || fields[0] != ".loc" {
		return 0, 0, false, false
	}
	fileID, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, false, false
	}
	line, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, false, false
	}
	for _, f := range fields[3:] {
		if f == "prologue_end" {
			prologueEnd = true
		}
	}
	return fileID, line, prologueEnd, true
}

// demangle applies the length-prefix rule of the Itanium mangling scheme
// ("_Z<len><name>...") to recover a readable function name. It handles
// plain ("_Z3foo...") and nested ("_ZN3Foo3barE...") names; anything it
// doesn't recognise is returned unchanged. This is intentionally not a
// complete demangler (no template arguments, no substitutions) -- callers
// only need a readable name for display and denylist/alias matching, not
// full ABI fidelity.
func demangle(mangled string) string {
	if !strings.HasPrefix(mangled, "_Z") {
		return mangled
	}
	s := mangled[2:]

	nested := false
	if strings.HasPrefix(s, "N") {
		nested = true
		s = s[1:]
	}

	var parts []string
	for len(s) > 0 {
		i := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == 0 {
			break // no more length-prefixed components
		}
		n, err := strconv.Atoi(s[:i])
		if err != nil || n <= 0 || i+n > len(s) {
			break
		}
		parts = append(parts, s[i:i+n])
		s = s[i+n:]
		if !nested {
			break // what follows a plain name is its parameter types
		}
		if strings.HasPrefix(s, "E") {
			break
		}
	}

	if len(parts) == 0 {
		return mangled
	}
	return strings.Join(parts, "::")
}

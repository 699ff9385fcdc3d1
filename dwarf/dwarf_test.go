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

package dwarf_test

import (
	"testing"

	"github.com/justinvassantachart/nova-sub000/dwarf"
)

func TestParseDegradesGracefullyOnGarbageInput(t *testing.T) {
	info := dwarf.Parse([]byte("not a wasm module"), 10)
	if info == nil {
		t.Fatal("Parse must never return nil")
	}
	if len(info.Variables) != 0 || len(info.Types) != 0 || len(info.LineMap) != 0 {
		t.Fatal("expected an empty Info for unparseable input")
	}
}

func TestParseDegradesGracefullyOnModuleWithoutDebugSections(t *testing.T) {
	// a well-formed, minimal WASM header with no section table at all --
	// a -g0 build, say.
	module := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	info := dwarf.Parse(module, 10)
	if info == nil {
		t.Fatal("Parse must never return nil")
	}
	if len(info.Variables) != 0 {
		t.Fatalf("expected no variables without debug sections, got %d", len(info.Variables))
	}
}

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

// Package dwarf turns the DWARF custom sections of a compiled WASM module
// into a line map, a variable table and a type table.
//
// The standard library's debug/dwarf package already does the hard part --
// abbreviation-table parsing, DIE decoding across DWARF versions 2 through
// 5, and line-number program interpretation -- provided it is handed the
// raw section bytes. debug/dwarf doesn't care whether those bytes came out
// of an ELF, a Mach-O or, as here, a WASM module's custom sections: feeding
// it bytes extracted by our own WASM container walk is the same trick as
// feeding it bytes read out of an ELF section table.
package dwarf

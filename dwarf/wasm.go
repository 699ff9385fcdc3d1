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

package dwarf

import (
	"fmt"

	"github.com/justinvassantachart/nova-sub000/dwarf/leb128"
)

const (
	wasmMagic   = 0x6d736100 // "\0asm", little endian
	wasmVersion = 1

	customSectionID = 0
)

// targetSections are the custom sections this package pulls out of the
// module.
var targetSections = map[string]bool{
	".debug_line":   true,
	".debug_info":   true,
	".debug_abbrev": true,
	".debug_str":    true,
}

// extractDebugSections walks the top-level sections of a binary WASM module
// and collects the payload of every custom section whose name is one of the
// four DWARF section names this package cares about. Sections that are
// absent are simply not present in the returned map -- callers treat a
// missing section as an empty slice.
func extractDebugSections(module []byte) (map[string][]byte, error) {
	if len(module) < 8 {
		return nil, fmt.Errorf("dwarf: module too short to contain a header")
	}

	magic := uint32(module[0]) | uint32(module[1])<<8 | uint32(module[2])<<16 | uint32(module[3])<<24
	if magic != wasmMagic {
		return nil, fmt.Errorf("dwarf: not a WASM module (bad magic)")
	}
	version := uint32(module[4]) | uint32(module[5])<<8 | uint32(module[6])<<16 | uint32(module[7])<<24
	if version != wasmVersion {
		return nil, fmt.Errorf("dwarf: unsupported WASM version %d", version)
	}

	sections := make(map[string][]byte)

	pos := 8
	for pos < len(module) {
		id := module[pos]
		pos++

		size, n, err := leb128.DecodeUnsigned(module[pos:])
		if err != nil {
			return sections, fmt.Errorf("dwarf: malformed section size at byte %d: %w", pos, err)
		}
		pos += n

		end := pos + int(size)
		if end > len(module) {
			return sections, fmt.Errorf("dwarf: section at byte %d overruns module", pos)
		}
		content := module[pos:end]

		if id == customSectionID {
			name, rest, err := readWasmString(content)
			if err == nil && targetSections[name] {
				sections[name] = rest
			}
		}

		pos = end
	}

	return sections, nil
}

// readWasmString reads a WASM "name" value: a LEB128 length prefix followed
// by that many bytes of UTF-8.
func readWasmString(b []byte) (string, []byte, error) {
	n, k, err := leb128.DecodeUnsigned(b)
	if err != nil {
		return "", nil, err
	}
	if k+int(n) > len(b) {
		return "", nil, fmt.Errorf("dwarf: truncated name")
	}
	return string(b[k : k+int(n)]), b[k+int(n):], nil
}

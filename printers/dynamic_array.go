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

package printers

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// VectorPrinter decodes the classic three-pointer dynamic-array
// representation (begin, end, capacity-end) shared by every major standard
// library's vector implementation.
type VectorPrinter struct {
	TypeNames    []string
	ElementSize  map[string]int // resolved element type name -> byte size
	MaxElements  int
}

const vectorHeaderSize = 4 * 3 // three WASM32 pointers

// NewVectorPrinter constructs a VectorPrinter. elementSize maps an element
// type name (as it appears inside "T[]" type names produced by the dwarf
// package for array types, or supplied directly by the caller for known
// vector element types) to its byte size; maxElements caps how many
// elements are read inline.
func NewVectorPrinter(elementSize map[string]int, maxElements int, typeNames ...string) *VectorPrinter {
	return &VectorPrinter{TypeNames: typeNames, ElementSize: elementSize, MaxElements: maxElements}
}

func (p *VectorPrinter) Match(typeName string) bool {
	for _, n := range p.TypeNames {
		if n == typeName {
			return true
		}
	}
	return false
}

func (p *VectorPrinter) Format(mem MemoryAccessor, addr uint32, typeName string) (Result, bool) {
	header, ok := mem.ReadBytes(addr, vectorHeaderSize)
	if !ok {
		return Result{}, false
	}
	begin := binary.LittleEndian.Uint32(header[0:4])
	end := binary.LittleEndian.Uint32(header[4:8])
	if end < begin {
		return Result{}, false
	}

	elem := elementTypeOf(typeName)
	size, known := p.ElementSize[elem]
	if !known || size <= 0 {
		size = 4 // fall back to pointer/int width
	}

	count := int(end-begin) / size
	shown := count
	if p.MaxElements > 0 && shown > p.MaxElements {
		shown = p.MaxElements
	}

	return Result{
		Display:  fmt.Sprintf("%s[%d]", elem, count),
		Tag:      fmt.Sprintf("array:%s:%d:%d", elem, begin, shown),
		Consumes: []uint32{begin},
	}, true
}

// elementTypeOf extracts T from a "std::vector<T>" or "T[]" spelling.
func elementTypeOf(typeName string) string {
	if i := strings.IndexByte(typeName, '<'); i >= 0 && strings.HasSuffix(typeName, ">") {
		return typeName[i+1 : len(typeName)-1]
	}
	if strings.HasSuffix(typeName, "[]") {
		return strings.TrimSuffix(typeName, "[]")
	}
	return "int"
}

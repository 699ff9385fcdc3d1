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

package memreader

import (
	"fmt"
	"strconv"
	"strings"
)

// arrayTag records a vector printer's "this heap buffer is an array of T"
// annotation.
type arrayTag struct {
	Elem  string
	Begin uint32
	Count int
}

// parseArrayTag parses the "array:Elem:begin:count" tag a vector printer
// attaches to its Result (printers.VectorPrinter.Format).
func parseArrayTag(tag string) (arrayTag, bool) {
	if !strings.HasPrefix(tag, "array:") {
		return arrayTag{}, false
	}
	parts := strings.Split(tag, ":")
	if len(parts) < 4 {
		return arrayTag{}, false
	}
	// Elem may itself contain colons ("std::string"), so begin and count
	// are taken from the end.
	elem := strings.Join(parts[1:len(parts)-2], ":")
	begin, err1 := strconv.ParseUint(parts[len(parts)-2], 10, 32)
	count, err2 := strconv.Atoi(parts[len(parts)-1])
	if err1 != nil || err2 != nil {
		return arrayTag{}, false
	}
	return arrayTag{Elem: elem, Begin: uint32(begin), Count: count}, true
}

// typeHeap iterates to a fixed point, typing allocations either as arrays
// (via a recorded array tag) or as structs (via the pointer->type map),
// since typing one allocation's members can reveal further pointer edges
// into allocations not yet typed.
func (r *Reader) typeHeap(acc byteAccessor, allocs []rawAlloc, types map[uint32]string, arrays map[uint32]arrayTag) []HeapAllocation {
	typed := make(map[uint32]HeapAllocation)

	for pass := 0; pass < len(allocs)+1; pass++ {
		changed := false
		for _, a := range allocs {
			if _, done := typed[a.Address]; done {
				continue
			}

			if tag, ok := arrays[a.Address]; ok {
				typed[a.Address] = r.typeArrayAllocation(acc, a, tag, allocs, types, arrays)
				changed = true
				continue
			}

			if name, ok := types[a.Address]; ok {
				if t, ok := r.info.Types[name]; ok {
					alloc := HeapAllocation{Address: a.Address, Size: a.Size, TypeName: name}
					for _, m := range t.Members {
						mv := r.readValue(acc, a.Address+uint32(m.ByteOffset), m.Type, m.Size, m.IsPointer, m.Pointee, r.cfg.MaxTypeResolutionDepth, allocs, types, arrays)
						mv.Name = m.Name
						alloc.Members = append(alloc.Members, mv)
					}
					typed[a.Address] = alloc
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	out := make([]HeapAllocation, 0, len(allocs))
	for _, a := range allocs {
		if h, ok := typed[a.Address]; ok {
			out = append(out, h)
			continue
		}
		out = append(out, r.rawWords(acc, a))
	}
	return out
}

func (r *Reader) typeArrayAllocation(acc byteAccessor, a rawAlloc, tag arrayTag, allocs []rawAlloc, types map[uint32]string, arrays map[uint32]arrayTag) HeapAllocation {
	elemSize := int64(defaultSizeFor(tag.Elem))
	if t, ok := r.info.Types[tag.Elem]; ok && t.ByteSize > 0 {
		elemSize = t.ByteSize
	}

	count := tag.Count
	if r.cfg.MaxArrayElements > 0 && count > r.cfg.MaxArrayElements {
		count = r.cfg.MaxArrayElements
	}

	alloc := HeapAllocation{Address: a.Address, Size: a.Size, TypeName: tag.Elem + "[]"}
	for i := 0; i < count; i++ {
		elemAddr := tag.Begin + uint32(int64(i)*elemSize)
		v := r.readValue(acc, elemAddr, tag.Elem, elemSize, false, "", r.cfg.MaxTypeResolutionDepth, allocs, types, arrays)
		v.Name = fmt.Sprintf("[%d]", i)
		alloc.Members = append(alloc.Members, v)
	}
	return alloc
}

// rawWords exposes an untyped leftover allocation as its first 8 32-bit
// words.
func (r *Reader) rawWords(acc byteAccessor, a rawAlloc) HeapAllocation {
	alloc := HeapAllocation{Address: a.Address, Size: a.Size, TypeName: "<unknown>"}
	const maxWords = 8
	n := int(a.Size) / 4
	if n > maxWords {
		n = maxWords
	}
	for i := 0; i < n; i++ {
		word, ok := acc.readUint32(a.Address + uint32(i*4))
		if !ok {
			break
		}
		alloc.Members = append(alloc.Members, Value{
			Name:    fmt.Sprintf("word%d", i),
			Address: a.Address + uint32(i*4),
			Raw:     uint64(word),
			Display: fmt.Sprintf("0x%x", word),
		})
	}
	return alloc
}

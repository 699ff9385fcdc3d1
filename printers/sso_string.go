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

import "encoding/binary"

// StringPrinter decodes the 12-byte small-string-optimized layout: byte 11's
// most significant bit selects short or long mode. In short mode, the
// remaining 7 bits of byte 11 are the length and the characters sit inline
// in bytes 0..length-1. In long mode, a 32-bit capacity sits at +0, a
// 32-bit size at +4, and a data pointer at +8.
type StringPrinter struct {
	TypeNames []string
}

const (
	ssoHeaderSize   = 12
	ssoLongFlag     = 0x80
	ssoShortLenMask = 0x7F
)

// NewStringPrinter constructs a StringPrinter matching the given resolved
// type names (typically just "std::string").
func NewStringPrinter(typeNames ...string) *StringPrinter {
	return &StringPrinter{TypeNames: typeNames}
}

func (p *StringPrinter) Match(typeName string) bool {
	for _, n := range p.TypeNames {
		if n == typeName {
			return true
		}
	}
	return false
}

func (p *StringPrinter) Format(mem MemoryAccessor, addr uint32, typeName string) (Result, bool) {
	header, ok := mem.ReadBytes(addr, ssoHeaderSize)
	if !ok || len(header) < ssoHeaderSize {
		return Result{}, false
	}

	tag := header[11]
	if tag&ssoLongFlag == 0 {
		length := int(tag & ssoShortLenMask)
		if length > 11 {
			return Result{}, false
		}
		return Result{Display: string(header[:length])}, true
	}

	capacity := binary.LittleEndian.Uint32(header[0:4])
	_ = capacity // not needed for display
	size := binary.LittleEndian.Uint32(header[4:8])
	// byte 11 is shared between the pointer's top byte and the mode tag,
	// so the tag bit must be masked back off before the pointer is usable.
	ptr := binary.LittleEndian.Uint32(header[8:12]) &^ (uint32(ssoLongFlag) << 24)

	chars, ok := mem.ReadBytes(ptr, int(size))
	if !ok {
		// the backing buffer isn't readable (freed, or out of the
		// snapshot's bounds): still report the string as long-mode,
		// just without contents.
		return Result{Display: "<unreadable>", Consumes: []uint32{ptr}}, true
	}
	return Result{Display: string(chars), Consumes: []uint32{ptr}}, true
}

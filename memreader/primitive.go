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
	"math"
)

// readPrimitive decodes a 1/2/4/8-byte primitive by name and size, handling
// signed, unsigned, and float/double representations. raw is the bit
// pattern as stored; display is the rendered value.
func readPrimitive(buf []byte, typeName string, size int64) (raw uint64, display string, ok bool) {
	if size <= 0 {
		size = defaultSizeFor(typeName)
	}
	n := int(size)
	if n <= 0 || n > len(buf) {
		return 0, "", false
	}
	b := buf[:n]

	var u uint64
	for i := n - 1; i >= 0; i-- {
		u = u<<8 | uint64(b[i])
	}

	if typeName == "float" && n == 4 {
		f := math.Float32frombits(uint32(u))
		return u, fmt.Sprintf("%g", f), true
	}
	if typeName == "double" && n == 8 {
		f := math.Float64frombits(u)
		return u, fmt.Sprintf("%g", f), true
	}

	if isUnsigned(typeName) {
		return u, fmt.Sprintf("%d", u), true
	}

	signBit := uint64(1) << (n*8 - 1)
	if u&signBit != 0 {
		s := int64(u) - int64(signBit)<<1
		return u, fmt.Sprintf("%d", s), true
	}
	return u, fmt.Sprintf("%d", u), true
}

func isUnsigned(typeName string) bool {
	switch typeName {
	case "unsigned char", "unsigned short", "unsigned int", "unsigned long", "unsigned long long",
		"uint8_t", "uint16_t", "uint32_t", "uint64_t", "size_t", "bool":
		return true
	}
	return false
}

func defaultSizeFor(typeName string) int64 {
	switch typeName {
	case "char", "unsigned char", "bool", "int8_t", "uint8_t":
		return 1
	case "short", "unsigned short", "int16_t", "uint16_t":
		return 2
	case "double", "long long", "unsigned long long", "int64_t", "uint64_t":
		return 8
	default:
		return 4
	}
}

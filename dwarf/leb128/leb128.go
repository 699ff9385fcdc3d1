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

package leb128

import "fmt"

// DecodeUnsigned reads an unsigned LEB128 value from b, returning the value
// and the number of bytes consumed.
func DecodeUnsigned(b []byte) (uint64, int, error) {
	var result uint64
	var shift uint
	for i, by := range b {
		if shift >= 64 {
			return 0, 0, fmt.Errorf("leb128: unsigned value too large")
		}
		result |= uint64(by&0x7f) << shift
		if by&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, fmt.Errorf("leb128: truncated unsigned value")
}

// DecodeSigned reads a signed LEB128 value from b, returning the value and
// the number of bytes consumed. This is the encoding used for the offset
// operand of DW_OP_fbreg (DWARF4 Standard, §2.5.1, "DW_OP_fbreg").
func DecodeSigned(b []byte) (int64, int, error) {
	var result int64
	var shift uint
	var by byte
	i := 0
	for {
		if i >= len(b) {
			return 0, 0, fmt.Errorf("leb128: truncated signed value")
		}
		by = b[i]
		if shift >= 64 {
			return 0, 0, fmt.Errorf("leb128: signed value too large")
		}
		result |= int64(by&0x7f) << shift
		shift += 7
		i++
		if by&0x80 == 0 {
			break
		}
	}
	if shift < 64 && by&0x40 != 0 {
		result |= -1 << shift
	}
	return result, i, nil
}

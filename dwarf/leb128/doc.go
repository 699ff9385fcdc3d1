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

// Package leb128 implements decoding of the Little Endian Base 128 variable
// length data encoding used throughout both the WASM binary format and the
// DWARF debugging format (DWARF4 Standard, §7.6 "Variable Length Data").
//
// We only ever need to decode LEB128 values, never encode them. The dwarf
// package decodes the unsigned section sizes and name lengths of the WASM
// container with DecodeUnsigned, and the signed offset that follows a
// DW_OP_fbreg opcode in a frame-base-relative location expression with
// DecodeSigned.
package leb128

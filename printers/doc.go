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

// Package printers is a pluggable registry of decoders for domain types the
// typed memory reader cannot render as a plain scalar or struct: small
// strings, dynamic arrays and fixed-width char buffers.
//
// A Printer never reads the target process's memory directly -- it's handed
// a MemoryAccessor, the same narrow read-only view the rest of the reader
// uses, which keeps every printer testable against a plain byte slice.
package printers

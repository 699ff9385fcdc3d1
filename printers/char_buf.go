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

// CharBufPrinter renders a fixed-width "char[N]" array as a C string,
// stopping at the first NUL byte, at the end of readable memory, or after
// 256 bytes, whichever comes first. The array length N is not consulted.
type CharBufPrinter struct{}

func NewCharBufPrinter() *CharBufPrinter { return &CharBufPrinter{} }

func (p *CharBufPrinter) Match(typeName string) bool {
	return typeName == "char[]"
}

func (p *CharBufPrinter) Format(mem MemoryAccessor, addr uint32, typeName string) (Result, bool) {
	const maxProbe = 256
	var out []byte
	for i := 0; i < maxProbe; i++ {
		b, ok := mem.ReadBytes(addr+uint32(i), 1)
		if !ok {
			if i == 0 {
				return Result{}, false
			}
			break
		}
		if b[0] == 0 {
			break
		}
		out = append(out, b[0])
	}
	return Result{Display: string(out)}, true
}

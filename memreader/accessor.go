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

// byteAccessor adapts a plain read-only byte slice -- the inspector's own
// copy of the snapshot region, never the shared region itself -- to
// printers.MemoryAccessor.
type byteAccessor struct {
	buf []byte
}

func (a byteAccessor) ReadBytes(addr uint32, n int) ([]byte, bool) {
	if n < 0 || int(addr) < 0 {
		return nil, false
	}
	end := int(addr) + n
	if end > len(a.buf) || end < 0 {
		return nil, false
	}
	return a.buf[addr:end], true
}

func (a byteAccessor) readUint32(addr uint32) (uint32, bool) {
	b, ok := a.ReadBytes(addr, 4)
	if !ok {
		return 0, false
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, true
}

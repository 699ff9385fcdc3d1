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

import "github.com/justinvassantachart/nova-sub000/dwarf/leb128"

// opFbreg is DW_OP_fbreg (DWARF4 Standard, §7.7.1, table 7.9).
const opFbreg = 0x91

// frameBaseOffset decodes the single opcode this module understands in a
// location expression: "frame base plus signed offset". Any other leading
// opcode, or a malformed operand, reports ok=false -- the variable is then
// left without a resolvable address and is simply omitted from the
// snapshot.
func frameBaseOffset(expr []byte) (offset int64, ok bool) {
	if len(expr) == 0 || expr[0] != opFbreg {
		return 0, false
	}
	off, _, err := leb128.DecodeSigned(expr[1:])
	if err != nil {
		return 0, false
	}
	return off, true
}

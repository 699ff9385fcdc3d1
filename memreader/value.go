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

import "github.com/justinvassantachart/nova-sub000/bridge"

// Value is a semantic leaf or node in a local's or allocation's value tree.
type Value struct {
	Name      string
	TypeName  string
	Address   uint32
	Display   string
	Raw       uint64
	IsPointer bool
	Target    uint32
	IsStruct  bool
	Children  []Value
}

// FrameSnapshot is one call frame with its locals resolved to values.
type FrameSnapshot struct {
	bridge.Frame
	Locals []Value
}

// HeapAllocation is one tracked allocation, typed where possible.
type HeapAllocation struct {
	Address  uint32
	Size     uint32
	TypeName string
	Members  []Value
}

// Snapshot is the full semantic result of one memory reader build pass.
type Snapshot struct {
	Frames []FrameSnapshot
	Heap   []HeapAllocation

	// PointerTypes is the successor pointer->inferred-type map carried
	// forward to the next step, so a pointer's target type survives once
	// inferred even after the pointer itself goes out of scope.
	PointerTypes map[uint32]string
}

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

	"github.com/justinvassantachart/nova-sub000/bridge"
	"github.com/justinvassantachart/nova-sub000/config"
	"github.com/justinvassantachart/nova-sub000/dwarf"
	"github.com/justinvassantachart/nova-sub000/printers"
)

// rawAlloc is one entry read straight out of the in-program allocation
// tracker, before any typing pass.
type rawAlloc struct {
	Address uint32
	Size    uint32
}

// Reader converts (snapshot, frames, tracker pointers, DWARF) into a
// Snapshot.
type Reader struct {
	cfg      config.Config
	info     *dwarf.Info
	printers *printers.Registry
}

// New constructs a Reader.
func New(cfg config.Config, info *dwarf.Info, registry *printers.Registry) *Reader {
	return &Reader{cfg: cfg, info: info, printers: registry}
}

// Build resolves frame locals and types tracked heap allocations for one
// step. buf is the inspector's own copy of the snapshot region (never the
// shared region itself). priorTypes is the pointer->type map carried over
// from the previous step; a nil map is treated as empty.
func (r *Reader) Build(buf []byte, frames []bridge.Frame, allocCountAddr, allocsAddr uint32, priorTypes map[uint32]string) *Snapshot {
	acc := byteAccessor{buf: buf}

	allocs := r.readTracker(acc, allocCountAddr, allocsAddr)

	types := make(map[uint32]string, len(priorTypes))
	for addr, name := range priorTypes {
		if _, live := findAllocation(allocs, addr); live {
			types[addr] = name
		}
	}

	arrays := make(map[uint32]arrayTag)

	frameSnapshots := make([]FrameSnapshot, 0, len(frames))
	for _, f := range frames {
		fs := FrameSnapshot{Frame: f}
		fs.Locals = r.buildLocals(acc, f, allocs, types, arrays)
		frameSnapshots = append(frameSnapshots, fs)
	}

	heap := r.typeHeap(acc, allocs, types, arrays)

	return &Snapshot{Frames: frameSnapshots, Heap: heap, PointerTypes: types}
}

// readTracker reads the allocation tracker's count and (address, size)
// pairs. The layout is a uint32 live count at allocCountAddr and a packed
// array of uint32 (address, size) pairs at allocsAddr -- the shape an
// allocator wrapper instrumented alongside the rest of the runtime would
// naturally expose.
func (r *Reader) readTracker(acc byteAccessor, countAddr, arrayAddr uint32) []rawAlloc {
	count, ok := acc.readUint32(countAddr)
	if !ok {
		return nil
	}
	max := r.cfg.MaxHeapAllocations
	if max <= 0 {
		max = int(count)
	}
	n := int(count)
	if n > max {
		n = max
	}

	allocs := make([]rawAlloc, 0, n)
	for i := 0; i < n; i++ {
		base := arrayAddr + uint32(i*8)
		addr, ok1 := acc.readUint32(base)
		size, ok2 := acc.readUint32(base + 4)
		if !ok1 || !ok2 {
			break
		}
		allocs = append(allocs, rawAlloc{Address: addr, Size: size})
	}
	return allocs
}

func findAllocation(allocs []rawAlloc, target uint32) (rawAlloc, bool) {
	for _, a := range allocs {
		if target >= a.Address && target < a.Address+a.Size {
			return a, true
		}
	}
	return rawAlloc{}, false
}

// buildLocals resolves every DWARF variable owned by frame's function.
// Variables not yet declared relative to the frame's current line are
// hidden (the "time-travel invariant": a local shouldn't appear before its
// declaration has executed, even though its storage already exists).
func (r *Reader) buildLocals(acc byteAccessor, frame bridge.Frame, allocs []rawAlloc, types map[uint32]string, arrays map[uint32]arrayTag) []Value {
	var out []Value
	for _, v := range r.info.Variables {
		if v.FunctionName != frame.Function {
			continue
		}
		if v.DeclLine > 0 && frame.Line > 0 && v.DeclLine >= int64(frame.Line) {
			continue
		}
		addr := uint32(int32(frame.SP) + int32(v.FrameOffset))
		val := r.readValue(acc, addr, v.TypeName, v.ByteSize, v.IsPointer, v.Pointee, r.cfg.MaxTypeResolutionDepth, allocs, types, arrays)
		val.Name = v.Name
		out = append(out, val)
	}
	return out
}

// readValue resolves the value at addr: try the pretty-printer registry
// first, then pointer handling with topological inference, then struct
// recursion, then a plain primitive read.
func (r *Reader) readValue(acc byteAccessor, addr uint32, typeName string, size int64, isPointer bool, pointee string, depth int, allocs []rawAlloc, types map[uint32]string, arrays map[uint32]arrayTag) Value {
	v := Value{TypeName: typeName, Address: addr}

	if r.printers != nil {
		if res, ok := r.printers.Format(acc, addr, typeName); ok {
			v.Display = res.Display
			if tag, ok := parseArrayTag(res.Tag); ok {
				arrays[tag.Begin] = tag
			}
			return v
		}
	}

	if isPointer {
		v.IsPointer = true
		target, ok := acc.readUint32(addr)
		if !ok {
			v.Display = "<unreadable>"
			return v
		}
		v.Target = target
		v.Raw = uint64(target)
		if target == 0 {
			v.Display = "nullptr"
			return v
		}
		v.Display = fmt.Sprintf("0x%x", target)
		if pointee != "" && pointee != "void" {
			if _, live := findAllocation(allocs, target); live {
				types[target] = pointee
			}
		}
		return v
	}

	if t, ok := r.info.Types[typeName]; ok {
		v.IsStruct = true
		if depth <= 0 {
			v.Display = "{...}"
			return v
		}
		for _, m := range t.Members {
			mv := r.readValue(acc, addr+uint32(m.ByteOffset), m.Type, m.Size, m.IsPointer, m.Pointee, depth-1, allocs, types, arrays)
			mv.Name = m.Name
			v.Children = append(v.Children, mv)
		}
		return v
	}

	n := int(size)
	if n <= 0 {
		n = int(defaultSizeFor(typeName))
	}
	bytes, ok := acc.ReadBytes(addr, n)
	if !ok {
		v.Display = "<unreadable>"
		return v
	}
	raw, disp, ok := readPrimitive(bytes, typeName, int64(n))
	if !ok {
		v.Display = "<unreadable>"
		return v
	}
	v.Raw = raw
	v.Display = disp
	return v
}

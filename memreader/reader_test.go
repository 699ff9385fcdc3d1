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

package memreader_test

import (
	"encoding/binary"
	"testing"

	"github.com/justinvassantachart/nova-sub000/bridge"
	"github.com/justinvassantachart/nova-sub000/config"
	"github.com/justinvassantachart/nova-sub000/dwarf"
	"github.com/justinvassantachart/nova-sub000/memreader"
)

func buildFixture() (buf []byte, info *dwarf.Info) {
	buf = make([]byte, 300)

	binary.LittleEndian.PutUint32(buf[96:100], 42) // local x

	binary.LittleEndian.PutUint32(buf[92:96], 200) // local p, pointing at the Node

	binary.LittleEndian.PutUint32(buf[200:204], 7) // Node.value
	binary.LittleEndian.PutUint32(buf[204:208], 0) // Node.next == nullptr

	binary.LittleEndian.PutUint32(buf[0:4], 1) // tracker count
	binary.LittleEndian.PutUint32(buf[4:8], 200)
	binary.LittleEndian.PutUint32(buf[8:12], 8)

	info = &dwarf.Info{
		Variables: []dwarf.Variable{
			{Name: "x", TypeName: "int", ByteSize: 4, FrameOffset: -4, FunctionName: "main", DeclLine: 1},
			{Name: "p", TypeName: "Node*", ByteSize: 4, FrameOffset: -8, IsPointer: true, Pointee: "Node", FunctionName: "main", DeclLine: 2},
		},
		Types: map[string]*dwarf.Type{
			"Node": {
				Name:     "Node",
				ByteSize: 8,
				Members: []dwarf.Member{
					{Name: "value", ByteOffset: 0, Type: "int", Size: 4},
					{Name: "next", ByteOffset: 4, Type: "Node*", Size: 4, IsPointer: true, Pointee: "Node"},
				},
			},
		},
	}
	return buf, info
}

func TestBuildResolvesLocalsAndHeap(t *testing.T) {
	buf, info := buildFixture()
	r := memreader.New(config.Default(), info, nil)

	frame := bridge.Frame{ID: 1, Function: "main", Line: 5, SP: 100, Size: 16}
	snap := r.Build(buf, []bridge.Frame{frame}, 0, 4, nil)

	if len(snap.Frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(snap.Frames))
	}
	locals := snap.Frames[0].Locals
	if len(locals) != 2 {
		t.Fatalf("expected 2 locals, got %d", len(locals))
	}
	if locals[0].Name != "x" || locals[0].Display != "42" {
		t.Fatalf("unexpected x: %+v", locals[0])
	}
	if !locals[1].IsPointer || locals[1].Target != 200 {
		t.Fatalf("unexpected p: %+v", locals[1])
	}

	if len(snap.Heap) != 1 {
		t.Fatalf("expected 1 heap allocation, got %d", len(snap.Heap))
	}
	node := snap.Heap[0]
	if node.TypeName != "Node" {
		t.Fatalf("expected the allocation to be typed as Node via topological inference, got %q", node.TypeName)
	}
	if len(node.Members) != 2 || node.Members[0].Display != "7" {
		t.Fatalf("unexpected Node members: %+v", node.Members)
	}
	if node.Members[1].Display != "nullptr" {
		t.Fatalf("expected next to read as nullptr, got %q", node.Members[1].Display)
	}

	if snap.PointerTypes[200] != "Node" {
		t.Fatalf("expected successor pointer type map to carry address 200 -> Node, got %v", snap.PointerTypes)
	}
}

func TestBuildHidesNotYetDeclaredLocals(t *testing.T) {
	buf, info := buildFixture()
	r := memreader.New(config.Default(), info, nil)

	// line 1 is not past either declaration line (x at 1, p at 2): both
	// must be hidden.
	frame := bridge.Frame{ID: 1, Function: "main", Line: 1, SP: 100, Size: 16}
	snap := r.Build(buf, []bridge.Frame{frame}, 0, 4, nil)

	if len(snap.Frames[0].Locals) != 0 {
		t.Fatalf("expected no locals visible before their declaration line, got %+v", snap.Frames[0].Locals)
	}
}

func TestBuildLeavesUntypedAllocationsAsRawWords(t *testing.T) {
	buf, info := buildFixture()
	info.Variables = nil // no pointer ever references the allocation
	r := memreader.New(config.Default(), info, nil)

	frame := bridge.Frame{ID: 1, Function: "main", Line: 5, SP: 100, Size: 16}
	snap := r.Build(buf, []bridge.Frame{frame}, 0, 4, nil)

	if len(snap.Heap) != 1 {
		t.Fatalf("expected 1 heap allocation, got %d", len(snap.Heap))
	}
	if snap.Heap[0].TypeName != "<unknown>" {
		t.Fatalf("expected an untyped allocation to fall back to raw words, got %q", snap.Heap[0].TypeName)
	}
	if len(snap.Heap[0].Members) == 0 {
		t.Fatal("expected raw word members")
	}
}

func TestDiffReportsChangedLocal(t *testing.T) {
	buf, info := buildFixture()
	r := memreader.New(config.Default(), info, nil)
	frame := bridge.Frame{ID: 1, Function: "main", Line: 5, SP: 100, Size: 16}

	before := r.Build(buf, []bridge.Frame{frame}, 0, 4, nil)

	binary.LittleEndian.PutUint32(buf[96:100], 43)
	after := r.Build(buf, []bridge.Frame{frame}, 0, 4, before.PointerTypes)

	changes := after.Diff(before)
	found := false
	for _, c := range changes {
		if c.Kind == "local" && c.Old == "42" && c.New == "43" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a local change 42 -> 43, got %+v", changes)
	}
}

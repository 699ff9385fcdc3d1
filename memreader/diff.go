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

import "fmt"

// Change is one difference between two consecutive snapshots (supplemental
// feature: a shallow structural diff keyed by address, used to highlight
// what moved between two steps without recomputing a whole new UI tree).
type Change struct {
	Kind string // "local", "heap"
	Path string
	Old  string
	New  string
}

// Diff compares s against prior, reporting locals and heap allocations that
// were added, removed, or changed display value. Comparison is by address,
// not by tree position, so a variable shadowed or reassigned to a new
// address is reported as a remove+add rather than a spurious change.
func (s *Snapshot) Diff(prior *Snapshot) []Change {
	if prior == nil {
		return nil
	}

	var changes []Change

	for fi, frame := range s.Frames {
		var priorLocals []Value
		if fi < len(prior.Frames) {
			priorLocals = prior.Frames[fi].Locals
		}
		changes = append(changes, diffValues("local", frame.Function, frame.Locals, priorLocals)...)
	}

	oldHeap := make(map[uint32]HeapAllocation, len(prior.Heap))
	for _, h := range prior.Heap {
		oldHeap[h.Address] = h
	}
	newHeap := make(map[uint32]bool, len(s.Heap))
	for _, h := range s.Heap {
		newHeap[h.Address] = true
		old, existed := oldHeap[h.Address]
		path := fmt.Sprintf("heap@0x%x", h.Address)
		if !existed {
			changes = append(changes, Change{Kind: "heap", Path: path, New: h.TypeName})
			continue
		}
		if old.TypeName != h.TypeName {
			changes = append(changes, Change{Kind: "heap", Path: path, Old: old.TypeName, New: h.TypeName})
		}
	}
	for addr, h := range oldHeap {
		if !newHeap[addr] {
			changes = append(changes, Change{Kind: "heap", Path: fmt.Sprintf("heap@0x%x", addr), Old: h.TypeName})
		}
	}

	return changes
}

func diffValues(kind, scope string, next, prior []Value) []Change {
	oldByAddr := make(map[uint32]Value, len(prior))
	for _, v := range prior {
		oldByAddr[v.Address] = v
	}
	seen := make(map[uint32]bool, len(next))

	var changes []Change
	for _, v := range next {
		seen[v.Address] = true
		path := fmt.Sprintf("%s/%s@0x%x", scope, v.Name, v.Address)
		old, existed := oldByAddr[v.Address]
		if !existed {
			changes = append(changes, Change{Kind: kind, Path: path, New: v.Display})
			continue
		}
		if old.Display != v.Display {
			changes = append(changes, Change{Kind: kind, Path: path, Old: old.Display, New: v.Display})
		}
	}
	for _, v := range prior {
		if !seen[v.Address] {
			changes = append(changes, Change{Kind: kind, Path: fmt.Sprintf("%s/%s@0x%x", scope, v.Name, v.Address), Old: v.Display})
		}
	}
	return changes
}

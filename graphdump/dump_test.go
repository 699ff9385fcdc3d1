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

package graphdump_test

import (
	"bytes"
	"testing"

	"github.com/justinvassantachart/nova-sub000/graphdump"
	"github.com/justinvassantachart/nova-sub000/memreader"
)

func TestWriteToProducesNonEmptyDot(t *testing.T) {
	snap := &memreader.Snapshot{
		Heap: []memreader.HeapAllocation{
			{Address: 200, Size: 8, TypeName: "Node"},
		},
		PointerTypes: map[uint32]string{200: "Node"},
	}

	var buf bytes.Buffer
	graphdump.WriteTo(&buf, snap)

	if buf.Len() == 0 {
		t.Fatal("expected a non-empty dot graph")
	}
}

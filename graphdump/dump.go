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

package graphdump

import (
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/justinvassantachart/nova-sub000/memreader"
)

// WriteTo renders snap's frames and heap allocations as a Graphviz dot
// graph, following memviz's own reflection-based walk rather than a
// hand-rolled tree printer, so pointer cycles and shared substructure show
// up the way they actually are in memory.
func WriteTo(w io.Writer, snap *memreader.Snapshot) {
	memviz.Map(w, snap)
}

// WriteFile is the common case: dump snap to a named .dot file.
func WriteFile(path string, snap *memreader.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	WriteTo(f, snap)
	return nil
}

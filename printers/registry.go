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

// MemoryAccessor is the narrow read-only view a Printer needs: raw bytes at
// an address, nothing more.
type MemoryAccessor interface {
	ReadBytes(addr uint32, n int) ([]byte, bool)
}

// Result is what a Printer produces for one value.
type Result struct {
	Display string

	// Tag optionally marks the value for the typed memory reader's heap
	// typing pass, e.g. "this buffer is actually an array of T starting at
	// address X". Empty for scalar-shaped results.
	Tag string

	// Consumes lists heap addresses this printer has fully accounted for
	// (eg. a long-mode string's backing buffer). The memreader package does
	// not read this field, so such buffers still appear among a snapshot's
	// heap allocations.
	Consumes []uint32
}

// Printer decodes one domain type's in-memory representation.
type Printer interface {
	// Match reports whether this printer handles typeName.
	Match(typeName string) bool

	// Format reads and renders the value of typeName at addr.
	Format(mem MemoryAccessor, addr uint32, typeName string) (Result, bool)
}

// Registry is an ordered list of printers, tried in registration order.
type Registry struct {
	printers []Printer
}

// NewRegistry builds a registry from the given printers, tried in order.
func NewRegistry(ps ...Printer) *Registry {
	return &Registry{printers: ps}
}

// Format tries every registered printer in order, returning the first
// match's result.
func (r *Registry) Format(mem MemoryAccessor, addr uint32, typeName string) (Result, bool) {
	for _, p := range r.printers {
		if !p.Match(typeName) {
			continue
		}
		if res, ok := p.Format(mem, addr, typeName); ok {
			return res, true
		}
	}
	return Result{}, false
}

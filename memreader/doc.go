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

// Package memreader turns a byte-for-byte memory snapshot, DWARF info and a
// frame vector into a semantic snapshot of typed values: frame locals,
// typed heap allocations, and the pointer edges between them.
//
// The tree shape each local or allocation resolves into -- a typed leaf, or
// a struct node with typed children -- follows the same NumChildren/Child
// recursive pattern source-level variable inspectors use elsewhere,
// generalised from "resolve against a live coprocessor" to "resolve
// against a snapshot byte buffer".
package memreader

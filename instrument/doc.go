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

// Package instrument rewrites the token stream of a compiler's textual WASM
// assembly output, injecting step/enter/exit hook calls at user-code source
// line boundaries.
//
// Nothing else in this codebase rewrites a compiler's text output before
// assembly -- disassembly and annotation of already-built machine code is
// the closer cousin. This package is written fresh, in the surrounding
// module's manner: table-driven dispatch, small single-purpose methods, a
// total function that never errors on unrecognised input, matching the
// "degrade, don't crash" stance used throughout coprocessor/developer.
package instrument

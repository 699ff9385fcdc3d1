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

import (
	"fmt"
	"io"

	"debug/dwarf"

	"github.com/justinvassantachart/nova-sub000/logger"
)

// Variable is one local, parameter or global the DIE walk found, with its
// address fully resolved to a frame-relative offset.
type Variable struct {
	Name         string
	TypeName     string
	ByteSize     int64
	FrameOffset  int64
	IsPointer    bool
	Pointee      string
	FunctionName string
	DeclLine     int64
}

// pendingType defers a variable's type-name resolution until the whole DIE
// walk (and therefore the whole type map) is complete, since a variable's
// type may be declared later in the unit.
type pendingType struct {
	index int
	ref   dwarf.Offset
}

// Info is the complete result of parsing a module's debug sections.
type Info struct {
	// LineMap maps a hex-formatted address string to the source line that
	// address belongs to.
	LineMap map[string]int

	// SourceFiles is the ordered list of source paths referenced by the
	// line table.
	SourceFiles []string

	Variables []Variable
	Types     map[string]*Type

	pending []pendingType
}

func empty() *Info {
	return &Info{LineMap: make(map[string]int), Types: make(map[string]*Type)}
}

// dieFrame tracks, for the DIE currently being walked, the innermost
// enclosing function name (for attributing locals/parameters) and the
// innermost enclosing struct/class/union record (for attributing members).
type dieFrame struct {
	funcName string
	curType  *rawType
}

// Parse extracts DWARF debug information from a binary WASM module. Any
// failure -- a malformed container, an unparseable debug section -- is
// logged and degrades to an empty Info rather than propagating an error,
// so the rest of the system remains usable with reduced inspection.
func Parse(module []byte, maxTypeDepth int) *Info {
	sections, err := extractDebugSections(module)
	if err != nil {
		logger.Logf(logger.Allow, "dwarf", "failed to walk module sections: %v", err)
		return empty()
	}

	d, err := dwarf.New(
		sections[".debug_abbrev"],
		nil,
		nil,
		sections[".debug_info"],
		sections[".debug_line"],
		nil,
		nil,
		sections[".debug_str"],
	)
	if err != nil {
		logger.Logf(logger.Allow, "dwarf", "failed to parse debug sections: %v", err)
		return empty()
	}

	info := empty()
	types := make(map[dwarf.Offset]*rawType)
	fileSeen := make(map[string]bool)

	rdr := d.Reader()
	var stack []dieFrame
	top := func() dieFrame {
		if len(stack) == 0 {
			return dieFrame{}
		}
		return stack[len(stack)-1]
	}

	for {
		entry, err := rdr.Next()
		if err != nil {
			logger.Logf(logger.Allow, "dwarf", "DIE walk stopped early: %v", err)
			break
		}
		if entry == nil {
			break
		}
		if entry.Tag == 0 {
			// null DIE: end of the current sibling list
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		next := top() // the frame pushed for this entry's children, if any

		switch entry.Tag {
		case dwarf.TagCompileUnit:
			if lr, err := d.LineReader(entry); err == nil && lr != nil {
				collectLines(lr, info, fileSeen)
			}

		case dwarf.TagSubprogram:
			name, _ := entry.Val(dwarf.AttrName).(string)
			next = dieFrame{funcName: name}

		case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType, dwarf.TagBaseType,
			dwarf.TagPointerType, dwarf.TagConstType, dwarf.TagVolatileType, dwarf.TagTypedef, dwarf.TagArrayType:
			rt := &rawType{tag: entry.Tag}
			rt.name, _ = entry.Val(dwarf.AttrName).(string)
			if sz, ok := entry.Val(dwarf.AttrByteSize).(int64); ok {
				rt.size = sz
			}
			if tref, ok := entry.Val(dwarf.AttrType).(dwarf.Offset); ok {
				rt.typeRef = tref
				rt.hasType = true
			}
			types[entry.Offset] = rt
			next = dieFrame{funcName: top().funcName, curType: rt}

		case dwarf.TagMember:
			rm := rawMember{}
			rm.name, _ = entry.Val(dwarf.AttrName).(string)
			if off, ok := entry.Val(dwarf.AttrDataMemberLoc).(int64); ok {
				rm.byteOffset = off
			}
			if tref, ok := entry.Val(dwarf.AttrType).(dwarf.Offset); ok {
				rm.typeRef = tref
				rm.hasType = true
			}
			if ct := top().curType; ct != nil {
				ct.members = append(ct.members, rm)
			}

		case dwarf.TagFormalParameter, dwarf.TagVariable:
			loc, hasLoc := entry.Val(dwarf.AttrLocation).([]byte)
			if !hasLoc {
				break
			}
			off, ok := frameBaseOffset(loc)
			if !ok {
				break // unrepresentable location: drop the variable
			}
			v := Variable{FunctionName: top().funcName, FrameOffset: off}
			v.Name, _ = entry.Val(dwarf.AttrName).(string)
			if dl, ok := entry.Val(dwarf.AttrDeclLine).(int64); ok {
				v.DeclLine = dl
			}
			idx := len(info.Variables)
			info.Variables = append(info.Variables, v)
			if tref, ok := entry.Val(dwarf.AttrType).(dwarf.Offset); ok {
				info.pending = append(info.pending, pendingType{index: idx, ref: tref})
			}
		}

		if entry.Children {
			stack = append(stack, next)
		}
	}

	info.Types = buildTypeTable(types, maxTypeDepth)
	info.resolveVariableTypes(types, maxTypeDepth)

	return info
}

func (info *Info) resolveVariableTypes(types map[dwarf.Offset]*rawType, maxDepth int) {
	for _, p := range info.pending {
		if p.index >= len(info.Variables) {
			continue
		}
		name, size, isPtr, pointee := resolveTypeName(types, p.ref, maxDepth)
		v := &info.Variables[p.index]
		v.TypeName = name
		v.ByteSize = size
		v.IsPointer = isPtr
		v.Pointee = pointee
	}
	info.pending = nil
}

// collectLines drains a compile unit's line-number program, recording every
// row into the shared line map and source-file list. The
// standard library's LineReader already implements the full DWARF 2-5
// state machine (standard, extended and special opcodes); we only need to
// fold its rows into our map.
func collectLines(lr *dwarf.LineReader, info *Info, fileSeen map[string]bool) {
	var entry dwarf.LineEntry
	for {
		if err := lr.Next(&entry); err != nil {
			if err != io.EOF {
				logger.Logf(logger.Allow, "dwarf", "line program stopped early: %v", err)
			}
			return
		}
		if entry.File != nil && !fileSeen[entry.File.Name] {
			fileSeen[entry.File.Name] = true
			info.SourceFiles = append(info.SourceFiles, entry.File.Name)
		}
		info.LineMap[fmt.Sprintf("%x", entry.Address)] = entry.Line
	}
}

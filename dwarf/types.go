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
	"strings"

	"debug/dwarf"
)

// Member is one field of a struct or class type.
type Member struct {
	Name      string
	ByteOffset int64
	Type       string
	Size       int64
	IsPointer  bool
	Pointee    string
}

// Type is a resolved entry of the type table: name -> { byte size, members }
//.
type Type struct {
	Name     string
	ByteSize int64
	Members  []Member
}

// rawType is the unresolved, offset-keyed record collected during the DIE
// walk.
type rawType struct {
	tag      dwarf.Tag
	name     string
	size     int64
	typeRef  dwarf.Offset
	hasType  bool
	members  []rawMember
}

type rawMember struct {
	name       string
	byteOffset int64
	typeRef    dwarf.Offset
	hasType    bool
}

// resolveTypeName follows a type-ref chain starting at off, returning a
// display name, its byte size, whether it is a pointer, and -- if it is --
// the pointee's display name. depth caps recursion against cyclic or very
// deep chains.
func resolveTypeName(types map[dwarf.Offset]*rawType, off dwarf.Offset, depth int) (name string, size int64, isPointer bool, pointee string) {
	if depth <= 0 {
		return "...", 0, false, ""
	}
	rt, ok := types[off]
	if !ok {
		return "<unknown>", 0, false, ""
	}

	switch rt.tag {
	case dwarf.TagPointerType:
		isPointer = true
		size = 4 // WASM32 pointer
		if rt.hasType {
			pointee, _, _, _ = resolveTypeName(types, rt.typeRef, depth-1)
		} else {
			pointee = "void"
		}
		name = pointee + "*"
		return normalizeTypeName(name), size, isPointer, normalizeTypeName(pointee)

	case dwarf.TagConstType, dwarf.TagVolatileType, dwarf.TagTypedef:
		if !rt.hasType {
			return "void", 0, false, ""
		}
		name, size, isPointer, pointee = resolveTypeName(types, rt.typeRef, depth-1)
		return name, size, isPointer, pointee

	case dwarf.TagArrayType:
		elem := "?"
		if rt.hasType {
			elem, _, _, _ = resolveTypeName(types, rt.typeRef, depth-1)
		}
		return normalizeTypeName(elem) + "[]", rt.size, false, ""

	default:
		if rt.name == "" {
			return fmt.Sprintf("<type@%d>", off), rt.size, false, ""
		}
		return normalizeTypeName(rt.name), rt.size, false, ""
	}
}

// buildTypeTable materializes the final name -> Type table from the
// raw struct/class/union records collected during the DIE walk.
func buildTypeTable(types map[dwarf.Offset]*rawType, maxDepth int) map[string]*Type {
	table := make(map[string]*Type)
	for _, rt := range types {
		switch rt.tag {
		case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType:
		default:
			continue
		}
		if rt.name == "" {
			continue
		}
		name := normalizeTypeName(rt.name)
		t := &Type{Name: name, ByteSize: rt.size}
		for _, rm := range rt.members {
			memberType, memberSize, isPtr, pointee := "<unknown>", int64(0), false, ""
			if rm.hasType {
				memberType, memberSize, isPtr, pointee = resolveTypeName(types, rm.typeRef, maxDepth)
			}
			t.Members = append(t.Members, Member{
				Name:       rm.name,
				ByteOffset: rm.byteOffset,
				Type:       memberType,
				Size:       memberSize,
				IsPointer:  isPtr,
				Pointee:    pointee,
			})
		}
		table[name] = t
	}
	return table
}

// libraryTypeRewrites maps the long mangled/internal spellings libc++ and
// similar runtimes give their string and container templates down to the
// names a student actually wrote.
var libraryTypeRewrites = []struct {
	prefix string
	name   string
}{
	{"std::__2::basic_string", "std::string"},
	{"std::basic_string", "std::string"},
	{"std::__2::vector", "std::vector"},
	{"std::__2::__compressed_pair", "std::pair"},
}

func normalizeTypeName(name string) string {
	for _, r := range libraryTypeRewrites {
		if strings.HasPrefix(name, r.prefix) {
			return r.name
		}
	}
	return name
}

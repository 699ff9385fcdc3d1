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

package printers_test

import (
	"encoding/binary"
	"testing"

	"github.com/justinvassantachart/nova-sub000/printers"
)

type fakeMemory struct {
	buf []byte
}

func (f fakeMemory) ReadBytes(addr uint32, n int) ([]byte, bool) {
	if int(addr)+n > len(f.buf) {
		return nil, false
	}
	return f.buf[addr : int(addr)+n], true
}

func TestStringPrinterShortMode(t *testing.T) {
	buf := make([]byte, 32)
	copy(buf[0:], "abc")
	buf[11] = 3 // short mode, length 3 (MSB of byte 11 clear)
	mem := fakeMemory{buf: buf}

	p := printers.NewStringPrinter("std::string")
	res, ok := p.Format(mem, 0, "std::string")
	if !ok {
		t.Fatal("expected a match")
	}
	if res.Display != "abc" {
		t.Fatalf("got %q, want %q", res.Display, "abc")
	}
}

func TestStringPrinterLongMode(t *testing.T) {
	buf := make([]byte, 64)
	binary.LittleEndian.PutUint32(buf[0:4], 16)  // capacity
	binary.LittleEndian.PutUint32(buf[4:8], 5)   // size
	binary.LittleEndian.PutUint32(buf[8:12], 32) // pointer
	buf[11] |= 0x80                              // long mode: MSB of byte 11 (pointer's top byte) set
	copy(buf[32:], "hello")
	mem := fakeMemory{buf: buf}

	p := printers.NewStringPrinter("std::string")
	res, ok := p.Format(mem, 0, "std::string")
	if !ok {
		t.Fatal("expected a match")
	}
	if res.Display != "hello" {
		t.Fatalf("got %q, want %q", res.Display, "hello")
	}
	if len(res.Consumes) != 1 || res.Consumes[0] != 32 {
		t.Fatalf("expected Consumes=[32], got %v", res.Consumes)
	}
}

func TestVectorPrinter(t *testing.T) {
	buf := make([]byte, 64)
	binary.LittleEndian.PutUint32(buf[0:4], 40) // begin
	binary.LittleEndian.PutUint32(buf[4:8], 60) // end: 20 bytes / 4-byte ints = 5 elements
	binary.LittleEndian.PutUint32(buf[8:12], 60)
	mem := fakeMemory{buf: buf}

	p := printers.NewVectorPrinter(map[string]int{"int": 4}, 50, "std::vector")
	res, ok := p.Format(mem, 0, "std::vector<int>")
	if !ok {
		t.Fatal("expected a match")
	}
	if res.Display != "int[5]" {
		t.Fatalf("got %q, want %q", res.Display, "int[5]")
	}
}

func TestCharBufPrinterStopsAtNUL(t *testing.T) {
	buf := make([]byte, 64)
	copy(buf, "hi\x00garbage")
	mem := fakeMemory{buf: buf}

	p := printers.NewCharBufPrinter()
	res, ok := p.Format(mem, 0, "char[]")
	if !ok {
		t.Fatal("expected a match")
	}
	if res.Display != "hi" {
		t.Fatalf("got %q, want %q", res.Display, "hi")
	}
}

func TestRegistryTriesInOrder(t *testing.T) {
	buf := make([]byte, 32)
	buf[0] = byte(1 << 1)
	copy(buf[1:], "x")
	mem := fakeMemory{buf: buf}

	reg := printers.NewRegistry(
		printers.NewCharBufPrinter(),
		printers.NewStringPrinter("std::string"),
	)
	if _, ok := reg.Format(mem, 0, "std::string"); !ok {
		t.Fatal("expected the string printer to match when the char-buf printer declines")
	}
}

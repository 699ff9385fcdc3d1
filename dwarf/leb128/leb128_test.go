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

package leb128_test

import (
	"testing"

	"github.com/justinvassantachart/nova-sub000/dwarf/leb128"
)

func TestDecodeUnsigned(t *testing.T) {
	cases := []struct {
		in   []byte
		want uint64
		n    int
	}{
		{[]byte{0x00}, 0, 1},
		{[]byte{0x02}, 2, 1},
		{[]byte{0x7f}, 127, 1},
		{[]byte{0xe5, 0x8e, 0x26}, 624485, 3},
	}
	for _, c := range cases {
		got, n, err := leb128.DecodeUnsigned(c.in)
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", c.in, err)
		}
		if got != c.want || n != c.n {
			t.Fatalf("DecodeUnsigned(%v) = %d, %d, want %d, %d", c.in, got, n, c.want, c.n)
		}
	}
}

func TestDecodeSigned(t *testing.T) {
	cases := []struct {
		in   []byte
		want int64
		n    int
	}{
		{[]byte{0x00}, 0, 1},
		{[]byte{0x02}, 2, 1},
		{[]byte{0x7e}, -2, 1},
		{[]byte{0xff, 0x00}, 127, 2},
		{[]byte{0x9b, 0xf1, 0x59}, -624485, 3},
	}
	for _, c := range cases {
		got, n, err := leb128.DecodeSigned(c.in)
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", c.in, err)
		}
		if got != c.want || n != c.n {
			t.Fatalf("DecodeSigned(%v) = %d, %d, want %d, %d", c.in, got, n, c.want, c.n)
		}
	}
}

func TestTruncated(t *testing.T) {
	if _, _, err := leb128.DecodeUnsigned([]byte{0x80}); err == nil {
		t.Fatal("expected error decoding truncated unsigned value")
	}
	if _, _, err := leb128.DecodeSigned([]byte{0x80}); err == nil {
		t.Fatal("expected error decoding truncated signed value")
	}
}

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

package metrics

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestHandlePoolStatsEncodesProvidedFunc(t *testing.T) {
	s := New("localhost:0", "localhost:0", func() interface{} {
		return map[string]int{"queueDepth": 3}
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/debug/pool", nil)
	s.handlePoolStats(rec, req)

	var got map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if got["queueDepth"] != 3 {
		t.Fatalf("got %v, want queueDepth=3", got)
	}
}

func TestHandlePoolStatsWithNilFuncReportsEmptyObject(t *testing.T) {
	s := New("localhost:0", "localhost:0", nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/debug/pool", nil)
	s.handlePoolStats(rec, req)

	if rec.Body.String() != "{}" {
		t.Fatalf("got %q, want {}", rec.Body.String())
	}
}

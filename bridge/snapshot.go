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

package bridge

import "sync"

// SnapshotRegion is the shared byte-for-byte mirror of the executor's
// linear memory. Mirror is called from
// the executor goroutine at every step hook; Copy is called from the
// inspector side and always returns an independent buffer -- the inspector
// must never alias the shared region into typed views that escape to
// long-lived UI state.
type SnapshotRegion struct {
	mu  sync.Mutex
	buf []byte
}

// NewSnapshotRegion allocates a region of the given capacity.
func NewSnapshotRegion(capacity int) *SnapshotRegion {
	return &SnapshotRegion{buf: make([]byte, capacity)}
}

// Mirror copies src into the region, up to its capacity.
func (s *SnapshotRegion) Mirror(src []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := copy(s.buf, src)
	for i := n; i < len(s.buf); i++ {
		s.buf[i] = 0
	}
}

// Copy returns an independent copy of the region's current contents.
func (s *SnapshotRegion) Copy() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.buf))
	copy(out, s.buf)
	return out
}

// Len reports the region's fixed capacity.
func (s *SnapshotRegion) Len() int {
	return len(s.buf)
}

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

// Frame is one entry of the call stack. Pushed by
// the enter hook, popped by the exit hook; the top frame's Function/Line
// are updated by every step hook.
type Frame struct {
	ID       int64
	Function string
	Line     int
	SP       int32
	Size     int32
}

// PausedState is what the inspector observes while the control region
// reports PAUSED: the step id, the full frame stack (outermost first), and
// an independent copy of linear memory.
type PausedState struct {
	StepID   int
	Frames   []Frame
	Snapshot []byte
}

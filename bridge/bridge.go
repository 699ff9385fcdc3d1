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

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/justinvassantachart/nova-sub000/assert"
	"github.com/justinvassantachart/nova-sub000/config"
	"github.com/justinvassantachart/nova-sub000/instrument"
)

// Bridge owns the control region, the snapshot region and the call-frame
// stack for one executing debug module.
type Bridge struct {
	control  *Control
	snapshot *SnapshotRegion
	history  *History
	steps    *instrument.StepMap

	mu        sync.Mutex
	frames    []Frame
	nextFrame int64

	execGoroutine uint64
	haveGoroutine bool
}

// assertExecutorGoroutine confirms Enter/Exit/Step are all reached from the
// same goroutine: the executor drives the module's hooks single-threaded,
// and a violation means something is calling in concurrently.
func (b *Bridge) assertExecutorGoroutine() {
	id := assert.GetGoRoutineID()
	if !b.haveGoroutine {
		b.execGoroutine = id
		b.haveGoroutine = true
		return
	}
	if id != b.execGoroutine {
		panic(fmt.Sprintf("bridge: hook called from goroutine %d, expected executor goroutine %d", id, b.execGoroutine))
	}
}

// New constructs a Bridge. steps is the step map produced by instrumenting
// and compiling the linked module; it is consulted on every step hook to
// resolve a step id to (line, function).
func New(cfg config.Config, steps *instrument.StepMap) *Bridge {
	return &Bridge{
		control:  NewControl(cfg.ControlRegionSlots),
		snapshot: NewSnapshotRegion(cfg.SnapshotCapacity),
		history:  NewHistory(cfg.StepHistoryCapacity),
		steps:    steps,
	}
}

// Control exposes the shared control region.
func (b *Bridge) Control() *Control { return b.control }

// Snapshot exposes the shared snapshot region.
func (b *Bridge) Snapshot() *SnapshotRegion { return b.snapshot }

// Enter implements the enter-hook: push a new frame with a fresh opaque id.
func (b *Bridge) Enter(frameSize int32, spDelta bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.assertExecutorGoroutine()
	b.nextFrame++
	b.frames = append(b.frames, Frame{ID: b.nextFrame, Size: frameSize})
	b.control.SetFrameDepth(len(b.frames))
}

// Exit implements the exit-hook: pop a frame.
func (b *Bridge) Exit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.assertExecutorGoroutine()
	if len(b.frames) > 0 {
		b.frames = b.frames[:len(b.frames)-1]
	}
	b.control.SetFrameDepth(len(b.frames))
}

// Step implements the step-hook: mirror memory, resolve and
// publish the current (line, func), publish the allocation-tracker
// pointers, flip to PAUSED, and block until the inspector resumes or stops
// execution. It runs on the executor's own goroutine and must never be
// called concurrently with itself.
func (b *Bridge) Step(stepID int, linearMemory []byte, stackPointer int32, allocCountPtr, allocsPtr int32) error {
	b.snapshot.Mirror(linearMemory)

	entry, known := b.steps.Lookup(stepID)

	b.mu.Lock()
	b.assertExecutorGoroutine()
	if len(b.frames) > 0 {
		top := &b.frames[len(b.frames)-1]
		if known {
			top.Function = entry.Function
			top.Line = entry.Line
		}
		top.SP = stackPointer
	}
	for k, f := range b.frames {
		b.control.SetFrame(k, int32(f.ID), f.SP, f.Size)
	}
	b.control.SetFrameDepth(len(b.frames))
	framesCopy := append([]Frame(nil), b.frames...)
	b.mu.Unlock()

	b.control.SetAllocTrackerPointers(allocCountPtr, allocsPtr)
	b.control.SetStepID(stepID)
	b.history.Record(stepID, framesCopy, b.snapshot.Copy())

	b.control.SetState(StatePaused)
	return b.spinUntilResumed()
}

// spinUntilResumed blocks on the control slot until it leaves PAUSED.
func (b *Bridge) spinUntilResumed() error {
	for {
		switch b.control.State() {
		case StatePaused:
			runtime.Gosched()
		case StateStop:
			return ErrStopped
		default:
			return nil
		}
	}
}

// Continue resumes execution (inspector side).
func (b *Bridge) Continue() {
	b.control.SetState(StateRunning)
}

// RequestStop asks execution to terminate; honored at the next hook
// boundary or the next resume.
func (b *Bridge) RequestStop() {
	b.control.SetState(StateStop)
}

// Poll returns the current paused state, or ok=false if the control region
// does not currently report PAUSED.
func (b *Bridge) Poll() (PausedState, bool) {
	if b.control.State() != StatePaused {
		return PausedState{}, false
	}
	b.mu.Lock()
	frames := append([]Frame(nil), b.frames...)
	b.mu.Unlock()
	return PausedState{StepID: b.control.StepID(), Frames: frames, Snapshot: b.snapshot.Copy()}, true
}

// StepBack republishes the previously recorded pause state without
// re-entering RUNNING.
func (b *Bridge) StepBack() (PausedState, bool) {
	stepID, frames, snap, ok := b.history.Back()
	if !ok {
		return PausedState{}, false
	}
	return PausedState{StepID: stepID, Frames: frames, Snapshot: snap}, true
}

// StepForward replays the next recorded history entry if StepBack has been
// called and forward history remains; otherwise it resumes the executor
// and reports ok=false.
func (b *Bridge) StepForward() (PausedState, bool) {
	stepID, frames, snap, ok := b.history.Forward()
	if ok {
		return PausedState{StepID: stepID, Frames: frames, Snapshot: snap}, true
	}
	b.Continue()
	return PausedState{}, false
}

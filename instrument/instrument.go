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

package instrument

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/justinvassantachart/nova-sub000/config"
	"github.com/justinvassantachart/nova-sub000/logger"
)

// AlreadyInstrumented reports whether raw already declares the hook
// functypes, ie. whether it has already been through Instrument. Running
// the instrumenter twice on its own output is forbidden; callers that need a guard before invoking Instrument can
// use this directly.
func AlreadyInstrumented(raw string) bool {
	return strings.Contains(raw, ".functype "+StepHookName+" ")
}

// StepEntry is one entry of a Step map: the source line and function a
// step id resolves to.
type StepEntry struct {
	Line     int
	Function string
}

// StepMap is the ordered step-id -> (line, function) mapping produced by
// instrumentation. IDs are dense, assigned in emission order, starting at
// whatever base id the caller supplied (so that step ids stay unique across
// translation units compiled by the same orchestrator run).
type StepMap struct {
	base    int
	entries []StepEntry
}

// Len returns the number of step ids in the map.
func (m *StepMap) Len() int { return len(m.entries) }

// Lookup returns the entry for id, and whether it exists.
func (m *StepMap) Lookup(id int) (StepEntry, bool) {
	idx := id - m.base
	if idx < 0 || idx >= len(m.entries) {
		return StepEntry{}, false
	}
	return m.entries[idx], true
}

func (m *StepMap) add(e StepEntry) int {
	id := m.base + len(m.entries)
	m.entries = append(m.entries, e)
	return id
}

// Result is the output of Instrument.
type Result struct {
	Text          string
	HooksInjected int
	Steps         *StepMap
}

// Instrumenter rewrites one assembly unit at a time, injecting step, enter
// and exit hook calls at user-code source-line boundaries.
type Instrumenter struct {
	cfg config.Config
}

// New is the preferred method of initialisation for the Instrumenter type.
func New(cfg config.Config) *Instrumenter {
	return &Instrumenter{cfg: cfg}
}

// perFunction holds the state reset at the start of each .functype.
type perFunction struct {
	name              string
	skip              bool
	stackReady        bool
	currentLine       int
	pendingEmitEnter  bool
	entered           bool
	exitedExplicitly  bool
	instrumentedLines map[int]bool
	frameSize         int
	spDelta           bool
	frameSizeKnown    bool
}

func newPerFunction(name string, skip bool) *perFunction {
	return &perFunction{
		name:              name,
		skip:              skip,
		instrumentedLines: make(map[int]bool),
	}
}

// Instrument rewrites raw, the textual assembly output for one source unit,
// injecting hook calls and returning the rewritten text, the number of
// hooks injected and the step map accumulated, starting step ids at
// startStepID. It never returns an error: unrecognised lines are passed
// through unchanged.
func (in *Instrumenter) Instrument(raw string, startStepID int) Result {
	if AlreadyInstrumented(raw) {
		logger.Logf(logger.Allow, "instrument", "refusing to instrument already-instrumented assembly")
		return Result{Text: raw, Steps: &StepMap{base: startStepID}}
	}

	steps := &StepMap{base: startStepID}

	var out strings.Builder
	out.WriteString(hookPrologue)

	userFiles := make(map[int]bool)
	var fn *perFunction
	hooks := 0

	lines := strings.Split(raw, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		kind := classify(trimmed)
		fields := strings.Fields(trimmed)

		switch kind {
		case kindDirective:
			if id, path, ok := parseDotFile(fields); ok {
				userFiles[id] = in.cfg.IsUserCode(path)
				out.WriteString(line)
				out.WriteString("\n")
				continue
			}

			if name, ok := parseDotFunctype(fields); ok {
				mangled := name
				readable := demangle(mangled)
				if in.cfg.IsMain(mangled) || in.cfg.IsMain(readable) {
					readable = "main"
				}
				fn = newPerFunction(readable, isDenied(mangled))
				out.WriteString(line)
				out.WriteString("\n")
				continue
			}

			if fileID, ln, prologueEnd, ok := parseDotLoc(fields); ok {
				if fn != nil && userFiles[fileID] {
					fn.currentLine = ln
				}
				if prologueEnd && fn != nil {
					fn.stackReady = true
					if !fn.skip && fn != nil && userFiles[fileID] {
						fn.pendingEmitEnter = true
					}
				}
				out.WriteString(line)
				out.WriteString("\n")
				continue
			}

			// any other directive: pass through unchanged
			out.WriteString(line)
			out.WriteString("\n")

		case kindEndFunction:
			if fn != nil && fn.entered && !fn.exitedExplicitly {
				fmt.Fprintf(&out, "\tcall %s\n", ExitHookName)
				hooks++
			}
			out.WriteString(line)
			out.WriteString("\n")
			fn = nil

		case kindInstruction:
			if fn != nil && !fn.stackReady {
				scanForFrameSetup(trimmed, fn)
			}

			if fn != nil && fn.pendingEmitEnter {
				fmt.Fprintf(&out, "\tpush i32 %d\n\tpush i32 %d\n\tcall %s\n", fn.frameSize, boolToSPDelta(fn.spDelta), EnterHookName)
				fn.pendingEmitEnter = false
				fn.entered = true
				hooks++
			}

			if fn != nil && !fn.skip && fn.entered && trimmed == "return" {
				fmt.Fprintf(&out, "\tcall %s\n", ExitHookName)
				hooks++
				// every source-level return path gets its own exit hook;
				// entered stays true so a later return in the same
				// function is still instrumented, and exitedExplicitly
				// suppresses the end_function fallback for this path
				fn.exitedExplicitly = true
			}

			if fn != nil && fn.stackReady && !fn.skip && !fn.instrumentedLines[fn.currentLine] && fn.currentLine > 0 {
				id := steps.add(StepEntry{Line: fn.currentLine, Function: fn.name})
				fn.instrumentedLines[fn.currentLine] = true
				fmt.Fprintf(&out, "\tpush i32 %d\n\tcall %s\n", id, StepHookName)
				hooks++
			}

			out.WriteString(line)
			out.WriteString("\n")

		default:
			out.WriteString(line)
			out.WriteString("\n")
		}
	}

	return Result{Text: out.String(), HooksInjected: hooks, Steps: steps}
}

func boolToSPDelta(b bool) int {
	if b {
		return 1
	}
	return 0
}

// scanForFrameSetup looks for the classic prologue shape of a stack-pointer
// adjustment -- an i32.const frame-size constant followed eventually by a
// global.set of the stack pointer global -- so the enter hook emitted once
// prologue_end is reached can carry (frameSize, spDelta) as payload.
func scanForFrameSetup(trimmed string, fn *perFunction) {
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "i32.const":
		if len(fields) >= 2 {
			if n, err := strconv.Atoi(fields[1]); err == nil && !fn.frameSizeKnown {
				fn.frameSize = n
				fn.frameSizeKnown = true
			}
		}
	case "global.set":
		if len(fields) >= 2 && strings.Contains(fields[1], "stack_pointer") {
			fn.spDelta = true
		}
	}
}

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

// Imported hook names: step(stepId), enter(frameSize, spDelta), exit().
const (
	StepHookName  = "step"
	EnterHookName = "enter"
	ExitHookName  = "exit"
)

// hookPrologue is prepended to every instrumented assembly unit exactly
// once, declaring the imported hook functions the injected calls invoke.
const hookPrologue = ".functype step (i32) -> ()\n" +
	".functype enter (i32, i32) -> ()\n" +
	".functype exit () -> ()\n"

// denylist names functions that are never instrumented even though they may
// appear under a user-code .loc: allocator wrappers, C++ runtime
// enter/exit thunks and operator new/delete overloads. None of these are
// "the student's code" in any useful sense, and stepping into them would
// surface runtime internals no one asked to debug.
var denylist = map[string]bool{
	"_Znwm":               true, // operator new(unsigned long)
	"_Znam":               true, // operator new[](unsigned long)
	"_ZdlPv":              true, // operator delete(void*)
	"_ZdaPv":              true, // operator delete[](void*)
	"__cxa_throw":         true,
	"__cxa_begin_catch":   true,
	"__cxa_end_catch":     true,
	"__cxa_allocate_exception": true,
	"__cxa_free_exception":     true,
	"_start":              true,
	"__wasm_call_ctors":   true,
}

func isDenied(mangled string) bool {
	return denylist[mangled]
}

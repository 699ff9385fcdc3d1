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

package instrument_test

import (
	"strings"
	"testing"

	"github.com/justinvassantachart/nova-sub000/config"
	"github.com/justinvassantachart/nova-sub000/instrument"
)

const sampleAssembly = `	.file 1 "user_code/main.cpp"
	.file 2 "sysroot/include/iostream"
	.functype _Z4main (i32) -> (i32)
main:
	.loc 1 2 0
	global.get  __stack_pointer
	i32.const   16
	i32.sub
	local.tee   $push0=, 0
	global.set  __stack_pointer
	.loc 1 2 0 prologue_end
	i32.const 0
	local.set 1
	.loc 1 3 5
	i32.const 5
	local.set 2
	.loc 2 99 1
	call $somelibcall
	.loc 1 4 5
	return
end_function
`

func instrumented(t *testing.T) instrument.Result {
	t.Helper()
	in := instrument.New(config.Default())
	return in.Instrument(sampleAssembly, 0)
}

func TestStepMapDensity(t *testing.T) {
	r := instrumented(t)
	if r.Steps.Len() == 0 {
		t.Fatal("expected at least one step")
	}
	for i := 0; i < r.Steps.Len(); i++ {
		if _, ok := r.Steps.Lookup(i); !ok {
			t.Fatalf("step map is not a dense prefix: missing id %d", i)
		}
	}
	if _, ok := r.Steps.Lookup(r.Steps.Len()); ok {
		t.Fatal("step map should not have an entry beyond its length")
	}
}

func TestUserCodeOnlyInstrumentation(t *testing.T) {
	r := instrumented(t)
	// the library call under file 2 must never have produced a step entry
	for i := 0; i < r.Steps.Len(); i++ {
		e, _ := r.Steps.Lookup(i)
		if e.Line == 99 {
			t.Fatalf("system-code line 99 should never be instrumented, got entry %+v", e)
		}
	}
}

func TestPrologueInvariant(t *testing.T) {
	r := instrumented(t)
	lines := strings.Split(r.Text, "\n")
	sawPrologueEnd := false
	for _, l := range lines {
		if strings.Contains(l, "prologue_end") {
			sawPrologueEnd = true
		}
		if !sawPrologueEnd && strings.Contains(l, "call step") {
			t.Fatal("step hook emitted before prologue_end")
		}
	}
}

func TestEnterExitBalance(t *testing.T) {
	r := instrumented(t)
	enters := strings.Count(r.Text, "call enter")
	exits := strings.Count(r.Text, "call exit")
	if enters != 1 {
		t.Fatalf("expected exactly one enter hook, got %d", enters)
	}
	if exits != 1 {
		t.Fatalf("expected exactly one exit hook (from the explicit return), got %d", exits)
	}
}

func TestEnterExitBalanceAcrossMultipleReturnPaths(t *testing.T) {
	src := `	.file 1 "user_code/main.cpp"
	.functype _Z4facti (i32) -> (i32)
fact:
	.loc 1 1 0
	global.get  __stack_pointer
	i32.const   16
	i32.sub
	local.tee   $push0=, 0
	global.set  __stack_pointer
	.loc 1 1 0 prologue_end
	.loc 1 1 10
	i32.const 1
	return
	.loc 1 1 30
	i32.const 2
	return
end_function
`
	r := instrument.New(config.Default()).Instrument(src, 0)
	enters := strings.Count(r.Text, "call enter")
	exits := strings.Count(r.Text, "call exit")
	if enters != 1 {
		t.Fatalf("expected exactly one enter hook, got %d", enters)
	}
	if exits != 2 {
		t.Fatalf("expected one exit hook per return path, got %d", exits)
	}
}

func TestIdempotence(t *testing.T) {
	r := instrumented(t)
	twice := instrument.New(config.Default()).Instrument(r.Text, r.Steps.Len())

	count := strings.Count(twice.Text, ".functype "+instrument.StepHookName+" ")
	if count != 1 {
		t.Fatalf("expected exactly one step hook functype declaration, got %d", count)
	}
	if twice.HooksInjected != 0 {
		t.Fatalf("re-instrumenting should inject no further hooks, got %d", twice.HooksInjected)
	}
}

func TestDenylistSkipsAllocatorWrapper(t *testing.T) {
	src := `	.file 1 "user_code/main.cpp"
	.functype _Znwm (i32) -> (i32)
	.loc 1 10 0 prologue_end
	i32.const 1
	return
end_function
`
	r := instrument.New(config.Default()).Instrument(src, 0)
	if strings.Contains(r.Text, "call enter") || strings.Contains(r.Text, "call exit") {
		t.Fatal("denylisted allocator wrapper should not be instrumented")
	}
	if r.Steps.Len() != 0 {
		t.Fatalf("denylisted function should contribute no step entries, got %d", r.Steps.Len())
	}
}

func TestMainAliasMapping(t *testing.T) {
	cfg := config.Default()
	cfg.MainAliases = append(cfg.MainAliases, "__main_argc_argv")
	src := `	.file 1 "user_code/main.cpp"
	.functype __main_argc_argv (i32, i32) -> (i32)
	.loc 1 1 0 prologue_end
	i32.const 0
	return
end_function
`
	r := instrument.New(cfg).Instrument(src, 0)
	e, ok := r.Steps.Lookup(0)
	if !ok {
		t.Fatal("expected a step entry")
	}
	if e.Function != "main" {
		t.Fatalf("expected aliased wrapper to be reported as main, got %q", e.Function)
	}
}

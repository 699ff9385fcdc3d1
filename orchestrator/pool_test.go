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

package orchestrator_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/justinvassantachart/nova-sub000/config"
	"github.com/justinvassantachart/nova-sub000/orchestrator"
)

const fakeAsm = `	.file 1 "user_code/main.cpp"
	.functype _Z1fv (i32) -> (i32)
main:
	.loc 1 1 0
	global.get  __stack_pointer
	i32.const   16
	i32.sub
	global.set  __stack_pointer
	.loc 1 1 0 prologue_end
	i32.const 0
	.loc 1 2 1
	return
end_function
`

type fakeCompiler struct {
	calls    int32
	failOn   string
	mu       sync.Mutex
	compiled []string
}

func (f *fakeCompiler) Compile(ctx context.Context, src orchestrator.Source, sysroot orchestrator.Sysroot) (string, string, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.compiled = append(f.compiled, src.Path)
	f.mu.Unlock()
	if src.Path == f.failOn {
		return "", "boom diagnostic", fmt.Errorf("simulated compile error")
	}
	return fakeAsm, "", nil
}

type fakeLinker struct {
	units map[string]string
}

func (f *fakeLinker) Link(ctx context.Context, units map[string]string) ([]byte, error) {
	f.units = units
	return []byte("linked-module"), nil
}

func sources(n int) []orchestrator.Source {
	var out []orchestrator.Source
	for i := 0; i < n; i++ {
		out = append(out, orchestrator.Source{Path: fmt.Sprintf("user_code/f%d.cpp", i), Content: []byte(fmt.Sprintf("int f%d() { return %d; }", i, i))})
	}
	return out
}

func TestBuildLinksAllUnits(t *testing.T) {
	compiler := &fakeCompiler{}
	linker := &fakeLinker{}
	pool := orchestrator.NewPool(config.Default(), compiler, linker, orchestrator.Sysroot{Fingerprint: "v1"})

	out, err := pool.Build(context.Background(), sources(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "linked-module" {
		t.Fatalf("unexpected module bytes: %q", out)
	}
	if len(linker.units) != 5 {
		t.Fatalf("expected 5 linked units, got %d", len(linker.units))
	}
}

func TestBuildCachesByContentHash(t *testing.T) {
	compiler := &fakeCompiler{}
	linker := &fakeLinker{}
	pool := orchestrator.NewPool(config.Default(), compiler, linker, orchestrator.Sysroot{Fingerprint: "v1"})

	src := sources(1)
	if _, err := pool.Build(context.Background(), src); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, err := pool.Build(context.Background(), src); err != nil {
		t.Fatalf("second build: %v", err)
	}

	if compiler.calls != 1 {
		t.Fatalf("expected one real compile (second build should hit cache), got %d", compiler.calls)
	}
	stats := pool.Stats()
	if stats.CacheHits != 1 {
		t.Fatalf("expected one cache hit, got %d", stats.CacheHits)
	}
}

func TestBuildAggregatesDiagnosticsOnFailure(t *testing.T) {
	compiler := &fakeCompiler{failOn: "user_code/f1.cpp"}
	linker := &fakeLinker{}
	pool := orchestrator.NewPool(config.Default(), compiler, linker, orchestrator.Sysroot{})

	_, err := pool.Build(context.Background(), sources(3))
	if err == nil {
		t.Fatal("expected an aggregated compile error")
	}
}

func TestStepIDsUniqueAcrossUnits(t *testing.T) {
	compiler := &fakeCompiler{}
	linker := &fakeLinker{}
	pool := orchestrator.NewPool(config.Default(), compiler, linker, orchestrator.Sysroot{})

	if _, err := pool.Build(context.Background(), sources(4)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for path, text := range linker.units {
		if seen[text] {
			t.Fatalf("two units produced byte-identical instrumented text (%s): step ids must differ across units", path)
		}
		seen[text] = true
	}
}

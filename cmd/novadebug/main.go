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

// Command novadebug drives the debug core's host-side pipeline from the
// command line: compile and instrument one or more C++ sources, link them
// into a debuggable WASM module, parse the result's DWARF info, and print
// a short summary. It exists for local iteration on the compile/DWARF
// pipeline without a browser in the loop -- the executor side (stepping
// through the linked module) only makes sense hosted inside a page running
// the produced module, which this binary does not attempt to do.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/justinvassantachart/nova-sub000/config"
	"github.com/justinvassantachart/nova-sub000/dwarf"
	"github.com/justinvassantachart/nova-sub000/logger"
	"github.com/justinvassantachart/nova-sub000/metrics"
	"github.com/justinvassantachart/nova-sub000/orchestrator"
)

func main() {
	dashboardAddr := flag.String("statsview", "", "address to serve the live statsview dashboard on (disabled if empty)")
	poolAddr := flag.String("pool-addr", "localhost:18067", "address to serve orchestrator pool-stats JSON on (only when -statsview is set)")
	clangBin := flag.String("clang", "clang++", "clang binary targeting wasm32-unknown-unknown")
	flag.Parse()

	sources, err := loadSources(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "usage: novadebug [flags] file.cpp [file.cpp ...]")
		os.Exit(2)
	}

	cfg := config.Default()
	compiler := &orchestrator.ClangCompiler{Bin: *clangBin}
	linker := &orchestrator.ClangLinker{Bin: *clangBin}
	pool := orchestrator.NewPool(cfg, compiler, linker, orchestrator.Sysroot{Fingerprint: "novadebug-cli"})

	if *dashboardAddr != "" {
		metrics.New(*dashboardAddr, *poolAddr, func() interface{} { return pool.Stats() }).Start()
		logger.Logf(logger.Allow, "novadebug", "stats dashboard on %s, pool stats on %s", *dashboardAddr, *poolAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	module, err := pool.Build(ctx, sources)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}

	info := dwarf.Parse(module, cfg.MaxTypeResolutionDepth)
	fmt.Printf("built %d-byte module from %d source file(s)\n", len(module), len(sources))
	fmt.Printf("debug info: %d source file(s), %d variable(s), %d named type(s), %d line-table row(s)\n",
		len(info.SourceFiles), len(info.Variables), len(info.Types), len(info.LineMap))
}

func loadSources(paths []string) ([]orchestrator.Source, error) {
	sources := make([]orchestrator.Source, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		sources = append(sources, orchestrator.Source{
			Path:    filepath.ToSlash(p),
			Content: content,
		})
	}
	return sources, nil
}

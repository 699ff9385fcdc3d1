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

package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/justinvassantachart/nova-sub000/config"
	"github.com/justinvassantachart/nova-sub000/instrument"
	"github.com/justinvassantachart/nova-sub000/logger"
)

// Source is one student source file.
type Source struct {
	Path    string
	Content []byte
}

// Sysroot bundles the immutable standard-library headers every compile
// shares, plus a fingerprint folded into the content-hash cache key so that
// a sysroot change invalidates every cached unit.
type Sysroot struct {
	Fingerprint string
	Headers     map[string][]byte
}

// Compiler turns one source into raw target assembly text. A real
// implementation shells out to a WASM-targeting C++ compiler (the way
// pkg/csource in the broader pack drives gcc/clang via exec.Command); tests
// supply a fake.
type Compiler interface {
	Compile(ctx context.Context, src Source, sysroot Sysroot) (asm string, diagnostics string, err error)
}

// Linker joins every instrumented assembly unit into the final debug
// module. path is the originating source path.
type Linker interface {
	Link(ctx context.Context, units map[string]string) ([]byte, error)
}

// PoolStats reports the orchestrator's live counters.
type PoolStats struct {
	QueueDepth  int
	InFlight    int
	CacheHits   int
	CacheMisses int
}

type cacheEntry struct {
	asm string
}

// Pool drives the compile -> instrument -> link pipeline for one build
//.
type Pool struct {
	cfg      config.Config
	compiler Compiler
	linker   Linker
	sysroot  Sysroot

	instrumenter *instrument.Instrumenter

	mu           sync.Mutex
	cache        map[string]cacheEntry
	stats        PoolStats
	nextStepBase int
	seeded       bool
	pchBuilt     bool

	cancel context.CancelFunc
}

// NewPool constructs a Pool ready to build. cfg configures instrumentation
// and the pool's worker cap.
func NewPool(cfg config.Config, compiler Compiler, linker Linker, sysroot Sysroot) *Pool {
	return &Pool{
		cfg:          cfg,
		compiler:     compiler,
		linker:       linker,
		sysroot:      sysroot,
		instrumenter: instrument.New(cfg),
		cache:        make(map[string]cacheEntry),
	}
}

// Build compiles, instruments and links every source, returning the final
// debug module bytes.
func (p *Pool) Build(ctx context.Context, sources []Source) ([]byte, error) {
	p.seedSysroot()
	p.buildPCH(ctx)

	buildCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()
	defer cancel()

	workers := poolSize(p.cfg.CompilePoolSize, len(sources))

	type outcome struct {
		path string
		text string
		err  error
	}
	results := make([]outcome, len(sources))

	jobs := make(chan int, len(sources))
	for i := range sources {
		jobs <- i
	}
	close(jobs)
	p.mu.Lock()
	p.stats.QueueDepth += len(sources)
	p.mu.Unlock()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				p.mu.Lock()
				p.stats.QueueDepth--
				p.mu.Unlock()
				select {
				case <-buildCtx.Done():
					results[idx] = outcome{path: sources[idx].Path, err: buildCtx.Err()}
					continue
				default:
				}
				results[idx] = p.buildOne(buildCtx, sources[idx], cancel)
			}
		}()
	}
	wg.Wait()

	units := make(map[string]string, len(sources))
	var diagnostics []string
	for _, r := range results {
		if r.err != nil {
			diagnostics = append(diagnostics, fmt.Sprintf("%s: %v", r.path, r.err))
			continue
		}
		units[r.path] = r.text
	}
	if len(diagnostics) > 0 {
		return nil, fmt.Errorf("orchestrator: compile failed:\n%s", strings.Join(diagnostics, "\n"))
	}

	return p.linker.Link(ctx, units)
}

func (p *Pool) buildOne(ctx context.Context, src Source, cancel context.CancelFunc) (outcome struct {
	path string
	text string
	err  error
}) {
	outcome.path = src.Path

	key := p.cacheKey(src)

	p.mu.Lock()
	entry, hit := p.cache[key]
	if hit {
		p.stats.CacheHits++
	} else {
		p.stats.InFlight++
	}
	p.mu.Unlock()

	asm := entry.asm
	if !hit {
		var diag string
		var err error
		asm, diag, err = p.compiler.Compile(ctx, src, p.sysroot)
		p.mu.Lock()
		p.stats.InFlight--
		p.mu.Unlock()
		if err != nil {
			cancel()
			if diag != "" {
				err = fmt.Errorf("%w\n%s", err, diag)
			}
			outcome.err = err
			return outcome
		}

		p.mu.Lock()
		p.cache[key] = cacheEntry{asm: asm}
		p.stats.CacheMisses++
		p.mu.Unlock()
	}

	p.mu.Lock()
	base := p.nextStepBase
	result := p.instrumenter.Instrument(asm, base)
	p.nextStepBase += result.Steps.Len()
	p.mu.Unlock()

	outcome.text = result.Text
	return outcome
}

// cacheKey fingerprints a source by the content hash of its body
// concatenated with the sysroot fingerprint.
func (p *Pool) cacheKey(src Source) string {
	h := sha256.New()
	h.Write(src.Content)
	h.Write([]byte(p.sysroot.Fingerprint))
	return hex.EncodeToString(h.Sum(nil))
}

// seedSysroot runs once per Pool, deduplicated across concurrent Build
// calls, and logs the sysroot's header count and fingerprint. It hands the
// headers to nothing itself: the compiler receives the sysroot with every
// Compile call.
func (p *Pool) seedSysroot() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seeded {
		return
	}
	p.seeded = true
	logger.Logf(logger.Allow, "orchestrator", "seeded sysroot (%d headers, fingerprint %s)", len(p.sysroot.Headers), p.sysroot.Fingerprint)
}

// buildPCH best-effort generates a precompiled header for the standard
// library sysroot. Failure is logged and otherwise ignored: a PCH is an
// optimisation, never a correctness requirement.
func (p *Pool) buildPCH(ctx context.Context) {
	p.mu.Lock()
	if p.pchBuilt {
		p.mu.Unlock()
		return
	}
	p.pchBuilt = true
	p.mu.Unlock()

	pchCompiler, ok := p.compiler.(PCHGenerator)
	if !ok {
		return
	}
	if err := pchCompiler.GeneratePCH(ctx, p.sysroot); err != nil {
		logger.Logf(logger.Allow, "orchestrator", "PCH generation skipped: %v", err)
	}
}

// PCHGenerator is an optional capability a Compiler may implement to
// produce a precompiled header ahead of the first real compile.
type PCHGenerator interface {
	GeneratePCH(ctx context.Context, sysroot Sysroot) error
}

// Stats reports the pool's live counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Close cancels any in-flight build.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	return ctx.Err()
}

func poolSize(configured, sourceCount int) int {
	n := configured
	if n <= 0 {
		n = 4
	}
	if sourceCount < n {
		n = sourceCount
	}
	if avail := runtime.NumCPU(); avail < n {
		n = avail
	}
	if n < 1 {
		n = 1
	}
	return n
}

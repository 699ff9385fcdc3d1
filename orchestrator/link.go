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
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// ClangLinker assembles and links every instrumented unit into one WASM
// module by invoking clang directly on the generated .s files -- the same
// toolchain ClangCompiler shells out to, just driven one stage further.
type ClangLinker struct {
	Bin     string
	WorkDir string
}

func (l *ClangLinker) bin() string {
	if l.Bin == "" {
		return "clang++"
	}
	return l.Bin
}

// Link assembles and links units (path -> instrumented assembly text) into
// a single WASM module exporting every defined symbol, so the hosting page
// can call whichever entry point it built against.
func (l *ClangLinker) Link(ctx context.Context, units map[string]string) ([]byte, error) {
	paths := make([]string, 0, len(units))
	for path := range units {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	workDir, err := os.MkdirTemp(l.WorkDir, "nova-link-")
	if err != nil {
		return nil, fmt.Errorf("orchestrator: creating link scratch dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	args := []string{
		"--target=wasm32-unknown-unknown",
		"-nostdlib",
		"-Wl,--no-entry",
		"-Wl,--export-all",
		"-g",
	}
	for i, path := range paths {
		asmPath := filepath.Join(workDir, fmt.Sprintf("unit%d.s", i))
		if err := os.WriteFile(asmPath, []byte(units[path]), 0o600); err != nil {
			return nil, fmt.Errorf("orchestrator: writing %s: %w", path, err)
		}
		args = append(args, asmPath)
	}

	outPath := filepath.Join(workDir, "out.wasm")
	args = append(args, "-o", outPath)

	cmd := exec.CommandContext(ctx, l.bin(), args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("orchestrator: link failed: %w: %s", err, out)
	}

	return os.ReadFile(outPath)
}

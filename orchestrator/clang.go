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
)

// ClangCompiler drives a real WASM-targeting clang binary, one invocation
// per source, writing textual assembly with line-table and debug-info
// directives -- the shape the instrumenter expects. It shells out to a real
// toolchain and captures combined output as the diagnostic text on
// failure.
type ClangCompiler struct {
	// Bin is the clang binary to invoke; defaults to "clang++".
	Bin string
	// WorkDir is a scratch directory for temporary source/output files.
	WorkDir string
	// ExtraFlags are appended after the fixed WASM/debug flags.
	ExtraFlags []string
}

func (c *ClangCompiler) bin() string {
	if c.Bin != "" {
		return c.Bin
	}
	return "clang++"
}

// Compile implements Compiler.
func (c *ClangCompiler) Compile(ctx context.Context, src Source, sysroot Sysroot) (string, string, error) {
	srcPath := filepath.Join(c.WorkDir, filepath.Base(src.Path))
	if err := os.WriteFile(srcPath, src.Content, 0o644); err != nil {
		return "", "", fmt.Errorf("orchestrator: writing scratch source: %w", err)
	}
	defer os.Remove(srcPath)

	outPath := srcPath + ".s"
	defer os.Remove(outPath)

	args := append(c.fixedFlags(), c.ExtraFlags...)
	args = append(args, "-o", outPath, srcPath)

	cmd := exec.CommandContext(ctx, c.bin(), args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", string(out), fmt.Errorf("orchestrator: %s failed: %w", c.bin(), err)
	}

	asm, err := os.ReadFile(outPath)
	if err != nil {
		return "", string(out), fmt.Errorf("orchestrator: reading compiler output: %w", err)
	}
	return string(asm), string(out), nil
}

func (c *ClangCompiler) fixedFlags() []string {
	return []string{"--target=wasm32-unknown-unknown", "-g", "-O0", "-S"}
}

// GeneratePCH implements PCHGenerator, best-effort: a failed PCH build is
// never fatal.
func (c *ClangCompiler) GeneratePCH(ctx context.Context, sysroot Sysroot) error {
	if len(sysroot.Headers) == 0 {
		return nil
	}
	umbrella := filepath.Join(c.WorkDir, "sysroot.hpp")
	var body []byte
	for name := range sysroot.Headers {
		body = append(body, []byte(fmt.Sprintf("#include <%s>\n", name))...)
	}
	if err := os.WriteFile(umbrella, body, 0o644); err != nil {
		return err
	}
	defer os.Remove(umbrella)

	cmd := exec.CommandContext(ctx, c.bin(), "--target=wasm32-unknown-unknown", "-x", "c++-header", umbrella, "-o", umbrella+".pch")
	defer os.Remove(umbrella + ".pch")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, out)
	}
	return nil
}

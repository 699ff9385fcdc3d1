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

// Package config holds the small set of values the hosting application
// supplies to the debug core. Nothing in this module reads global mutable
// configuration state; every component takes a Config (or a narrower slice
// of it) as an explicit constructor argument.
package config

// Config is the full set of tunables the debug core accepts. Zero value is
// not meaningful; always start from Default().
type Config struct {
	// UserCodePrefix is the path prefix (relative to the project root) that
	// marks a source file as "user code" rather than "system code".
	UserCodePrefix string

	// MainAliases lists the symbol names the instrumenter treats as
	// equivalent to "main" after linking. The canonical "main" is always
	// included even if omitted here.
	MainAliases []string

	// ControlRegionSlots is the number of 32-bit slots in the control region.
	ControlRegionSlots int

	// SnapshotCapacity is the maximum number of bytes the snapshot region
	// will mirror from the executor's linear memory.
	SnapshotCapacity int

	// MaxTypeResolutionDepth bounds type-name resolution and struct member recursion depth.
	MaxTypeResolutionDepth int

	// MaxHeapAllocations bounds allocation-tracker iteration.
	MaxHeapAllocations int

	// MaxArrayElements bounds how many elements a dynamic-array pretty
	// printer reads inline.
	MaxArrayElements int

	// MaxCallDepth is a depth cap for call-stack rendering. No package in
	// this module reads it.
	MaxCallDepth int

	// StepHistoryCapacity bounds how many past pause states bridge.History
	// retains for step-back.
	StepHistoryCapacity int

	// CompilePoolSize caps how many concurrent compile workers the
	// orchestrator spawns. Zero means "compute from runtime.NumCPU() and
	// source count".
	CompilePoolSize int
}

// Default returns the documented default values.
func Default() Config {
	return Config{
		UserCodePrefix:         "user_code",
		MainAliases:            []string{"__main_argc_argv", "main"},
		ControlRegionSlots:     256,
		SnapshotCapacity:       64 * 1024 * 1024,
		MaxTypeResolutionDepth: 10,
		MaxHeapAllocations:     1024,
		MaxArrayElements:       50,
		MaxCallDepth:           15,
		StepHistoryCapacity:    256,
		CompilePoolSize:        4,
	}
}

// IsUserCode reports whether a source path is classified as user code under
// this configuration.
func (c Config) IsUserCode(path string) bool {
	if path == "" {
		return false
	}
	if len(path) >= len(c.UserCodePrefix) && path[:len(c.UserCodePrefix)] == c.UserCodePrefix {
		return true
	}
	// a bare filename with no directory component is treated as a
	// single named user file
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			return false
		}
	}
	return true
}

// IsMain reports whether name should be treated as "main" per the configured
// alias table.
func (c Config) IsMain(name string) bool {
	if name == "main" {
		return true
	}
	for _, a := range c.MainAliases {
		if a == name {
			return true
		}
	}
	return false
}

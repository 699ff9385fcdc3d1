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

// Package metrics exposes runtime and compile-orchestrator health over
// HTTP: a go-echarts/statsview live dashboard for goroutine/heap/GC
// graphs, plus a small JSON endpoint reporting the orchestrator's
// PoolStats gauges for anything that wants to poll them programmatically.
package metrics

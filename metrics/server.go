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

package metrics

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-echarts/statsview"

	"github.com/justinvassantachart/nova-sub000/logger"
)

// PoolStatsFunc returns a point-in-time snapshot of the compile
// orchestrator's counters. orchestrator.Pool.Stats returns a PoolStats, not
// an interface{}, so callers wrap it in a closure (as cmd/novadebug does).
type PoolStatsFunc func() interface{}

// Server runs a statsview dashboard (goroutines, heap, GC) alongside a
// small JSON endpoint reporting the orchestrator's own gauges. The two
// listen on separate addresses since statsview owns its HTTP server
// outright.
type Server struct {
	viewer   *statsview.Viewer
	poolAddr string
	pool     PoolStatsFunc
}

// New builds a Server. dashboardAddr serves the statsview dashboard (e.g.
// "localhost:18066"); poolAddr serves /debug/pool as JSON. pool may be
// nil, in which case /debug/pool reports an empty object.
func New(dashboardAddr, poolAddr string, pool PoolStatsFunc) *Server {
	return &Server{
		viewer: statsview.New(
			statsview.WithAddr(dashboardAddr),
			statsview.WithInterval(time.Second),
		),
		poolAddr: poolAddr,
		pool:     pool,
	}
}

// Start launches the dashboard and the pool-stats endpoint in the
// background. It never blocks and never returns an error directly;
// failures (e.g. an address already in use) are logged, matching the rest
// of this module's "degrade, don't crash" stance on debug-only tooling.
func (s *Server) Start() {
	go s.viewer.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pool", s.handlePoolStats)
	go func() {
		if err := http.ListenAndServe(s.poolAddr, mux); err != nil {
			logger.Logf(logger.Allow, "metrics", "pool stats server on %s stopped: %v", s.poolAddr, err)
		}
	}()
}

func (s *Server) handlePoolStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.pool == nil {
		w.Write([]byte("{}"))
		return
	}
	if err := json.NewEncoder(w).Encode(s.pool()); err != nil {
		logger.Logf(logger.Allow, "metrics", "encoding pool stats: %v", err)
	}
}

// barry-smoke
// (C) 2026, the barry-smoke authors
//
// The barry-smoke authors and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package smoke

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Hughmann42/barry-smoke/internal/logger"
	"github.com/Hughmann42/barry-smoke/pkg/api"
)

const urlParamProbeName = "probeName"

// staleSweepFactor defines after how many missed intervals the prober
// reports itself unhealthy.
const staleSweepFactor = 2

func (s *Smoke) routes() []api.Route {
	return []api.Route{
		{Path: "/v1/results", Method: http.MethodGet, Handler: s.handleResults},
		{Path: "/v1/results/{" + urlParamProbeName + "}", Method: http.MethodGet, Handler: s.handleResult},
		{Path: "/healthz", Method: http.MethodGet, Handler: s.handleHealthz},
		{Path: "/metrics", Method: "Handle", Handler: s.metrics.Handler().ServeHTTP},
	}
}

// handleResults serves the latest result of every probe.
func (s *Smoke) handleResults(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.db.List()); err != nil {
		log.Error("Failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// handleResult serves the latest result of a single probe.
func (s *Smoke) handleResult(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	name := chi.URLParam(r, urlParamProbeName)
	res, ok := s.db.Get(name)
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Error("Failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// handleHealthz reports the prober's own liveness: ok while sweeps finish
// within the expected window.
func (s *Smoke) handleHealthz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	ok := false
	if last, done := s.db.LastSweep(); done {
		ok = time.Since(last) < staleSweepFactor*s.cfg.Probing.Interval
	}

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(map[string]bool{"ok": ok}); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

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

// Package smoke wires the probe runner, the suites, the result store and
// the results API together.
package smoke

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Hughmann42/barry-smoke/internal/httpclient"
	"github.com/Hughmann42/barry-smoke/internal/logger"
	"github.com/Hughmann42/barry-smoke/pkg/api"
	"github.com/Hughmann42/barry-smoke/pkg/config"
	"github.com/Hughmann42/barry-smoke/pkg/db"
	"github.com/Hughmann42/barry-smoke/pkg/metrics"
	"github.com/Hughmann42/barry-smoke/pkg/probe"
	"github.com/Hughmann42/barry-smoke/pkg/suite"
)

type Smoke struct {
	cfg     *config.Config
	runner  *probe.Runner
	db      db.DB
	api     api.API
	metrics metrics.Metrics

	// mu guards suites, which the remote loader may replace at runtime
	mu      sync.RWMutex
	suites  map[string]suite.Suite
	cSuites chan map[string]suite.Suite
}

// New creates a new smoke prober from the given config
func New(cfg *config.Config) *Smoke {
	return &Smoke{
		cfg:     cfg,
		db:      db.NewInMemory(),
		api:     api.New(cfg.Api),
		metrics: metrics.NewMetrics(),
		cSuites: make(chan map[string]suite.Suite, 1),
	}
}

// setup resolves the secret and the suites and prepares the runner.
// The selected suite must exist, and a suite demanding the shared secret
// aborts here, before any request is sent.
func (s *Smoke) setup(ctx context.Context) (suite.Suite, error) {
	if err := s.cfg.LoadSecret(ctx); err != nil {
		return suite.Suite{}, err
	}

	suites := suite.Builtin()
	if s.cfg.SuiteFilePath != "" {
		loaded, err := suite.LoadFile(ctx, s.cfg.SuiteFilePath)
		if err != nil {
			return suite.Suite{}, err
		}
		suites = suite.Merge(suites, loaded)
	}
	s.mu.Lock()
	s.suites = suites
	s.mu.Unlock()

	st, err := suite.Get(suites, s.cfg.SuiteName)
	if err != nil {
		return suite.Suite{}, err
	}
	if st.RequireSecret && s.cfg.Target.Secret == "" {
		return suite.Suite{}, config.ErrSecretRequired{Suite: st.Name}
	}

	s.runner = probe.NewRunner(s.cfg.Target)
	return st, nil
}

// Run executes the selected suite once, printing one line per probe to
// out. Individual FAIL and ERROR verdicts do not make the run fail; only
// configuration errors and malformed JSON in an ok-field probe do.
func (s *Smoke) Run(ctx context.Context, out io.Writer) error {
	log := logger.FromContext(ctx)

	st, err := s.setup(ctx)
	if err != nil {
		return err
	}
	ctx = httpclient.IntoContext(ctx, &http.Client{Timeout: s.cfg.Timeout})

	log.Debug("Running suite", "suite", st.Name, "target", s.cfg.Target.BaseURL)
	reporter := probe.NewReporter(out)
	if err := s.runner.Run(ctx, st.Cases, func(res probe.Result) {
		reporter.Report(res)
		s.db.Save(res)
	}); err != nil {
		return err
	}

	reporter.Summary()
	return nil
}

// Serve runs the suite on the configured interval and exposes the latest
// results and metrics over the API. Blocks until the context is done.
func (s *Smoke) Serve(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	if _, err := s.setup(ctx); err != nil {
		return err
	}
	ctx = httpclient.IntoContext(ctx, &http.Client{Timeout: s.cfg.Timeout})

	for _, c := range s.runner.GetMetricCollectors() {
		s.metrics.GetRegistry().MustRegister(c)
	}
	if err := s.api.RegisterRoutes(ctx, s.routes()...); err != nil {
		return err
	}

	cErr := make(chan error, 1)
	go func() {
		cErr <- s.api.Run(ctx)
	}()

	if s.cfg.HasSuiteLoader() {
		loader := config.NewHttpSuiteLoader(s.cfg, s.cSuites)
		go func() {
			if err := loader.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Suite loader stopped", "error", err)
			}
		}()
	}

	s.sweep(ctx)
	tick := time.NewTicker(s.cfg.Probing.Interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return errors.Join(ctx.Err(), s.api.Shutdown(ctx))
		case err := <-cErr:
			return err
		case suites := <-s.cSuites:
			s.updateSuites(ctx, suites)
		case <-tick.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs the selected suite once and stores the results. In serve
// mode a malformed ok-field body does not bring the prober down; the
// sweep is logged as aborted and retried on the next tick.
func (s *Smoke) sweep(ctx context.Context) {
	log := logger.FromContext(ctx)

	s.mu.RLock()
	st, err := suite.Get(s.suites, s.cfg.SuiteName)
	s.mu.RUnlock()
	if err != nil {
		log.Error("Selected suite vanished from the suite set", "error", err)
		return
	}

	if err := s.runner.Run(ctx, st.Cases, s.db.Save); err != nil {
		log.Error("Sweep aborted", "error", err)
		return
	}
	s.db.MarkSweep(time.Now())
	log.Debug("Finished sweep", "suite", st.Name)
}

// updateSuites overlays remotely loaded suites over the current set.
func (s *Smoke) updateSuites(ctx context.Context, suites map[string]suite.Suite) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	s.suites = suite.Merge(s.suites, suites)
	s.mu.Unlock()
	log.Info("Updated suites from remote loader", "count", len(suites))
}

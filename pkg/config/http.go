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

package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Hughmann42/barry-smoke/internal/helper"
	"github.com/Hughmann42/barry-smoke/internal/httpclient"
	"github.com/Hughmann42/barry-smoke/internal/logger"
	"github.com/Hughmann42/barry-smoke/pkg/suite"
)

// HttpSuiteLoader periodically fetches suite definitions from a remote
// endpoint, e.g. an internal config service, and pushes them to serve
// mode. A failed fetch is retried with backoff and otherwise skipped; the
// previously loaded suites stay active.
type HttpSuiteLoader struct {
	cfg     *Config
	cSuites chan<- map[string]suite.Suite
}

func NewHttpSuiteLoader(cfg *Config, cSuites chan<- map[string]suite.Suite) *HttpSuiteLoader {
	return &HttpSuiteLoader{
		cfg:     cfg,
		cSuites: cSuites,
	}
}

// Run fetches the remote suites on the configured interval until the
// context is canceled.
func (hl *HttpSuiteLoader) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx, "httpSuiteLoader")
	defer cancel()
	log := logger.FromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(hl.cfg.Loader.Http.Interval):
			var suites map[string]suite.Suite
			getSuitesRetry := helper.Retry(func(ctx context.Context) error {
				var err error
				suites, err = hl.GetSuites(ctx)
				return err
			}, hl.cfg.Loader.Http.RetryCfg)

			if err := getSuitesRetry(ctx); err != nil {
				log.Warn("Could not get remote suites", "error", err)
				continue
			}

			log.Info("Successfully got remote suites", "count", len(suites))
			hl.cSuites <- suites
		}
	}
}

// GetSuites fetches and parses the remote suite definitions once.
func (hl *HttpSuiteLoader) GetSuites(ctx context.Context) (map[string]suite.Suite, error) {
	log := logger.FromContext(ctx).With("url", hl.cfg.Loader.Http.Url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hl.cfg.Loader.Http.Url, http.NoBody)
	if err != nil {
		log.Error("Could not create http GET request", "error", err)
		return nil, err
	}
	if hl.cfg.Loader.Http.Token != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", hl.cfg.Loader.Http.Token))
	}

	res, err := httpclient.FromContext(ctx).Do(req) //nolint:bodyclose // closed in defer
	if err != nil {
		log.Error("Http get request failed", "error", err)
		return nil, err
	}
	defer func(b io.ReadCloser) {
		if cErr := b.Close(); cErr != nil {
			log.Error("Failed to close response body", "error", cErr)
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		log.Error("Http get request failed", "status", res.Status)
		return nil, fmt.Errorf("request failed, status is %s", res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Error("Could not read response body", "error", err)
		return nil, err
	}

	suites, err := suite.Parse(body)
	if err != nil {
		log.Error("Could not parse remote suites", "error", err)
		return nil, err
	}
	return suites, nil
}

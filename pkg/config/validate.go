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
	"net/url"

	"github.com/Hughmann42/barry-smoke/internal/logger"
)

// Validates the config
func (c *Config) Validate(ctx context.Context, fm *RunFlagsNameMapping) error {
	ctx, cancel := logger.NewContextWithLogger(ctx, "configValidation")
	defer cancel()
	log := logger.FromContext(ctx)

	ok := true
	u, err := url.Parse(c.Target.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		ok = false
		log.ErrorContext(ctx, "The base url is not a valid http(s) url",
			fm.BaseURL, c.Target.BaseURL)
	}

	if c.SuiteName == "" {
		ok = false
		log.ErrorContext(ctx, "A suite name must be set", fm.SuiteName, c.SuiteName)
	}

	if c.Timeout <= 0 {
		ok = false
		log.ErrorContext(ctx, "The probe timeout must be above 0 seconds",
			fm.Timeout, c.Timeout.String())
	}

	if c.HasSuiteLoader() {
		if _, err := url.ParseRequestURI(c.Loader.Http.Url); err != nil {
			ok = false
			log.ErrorContext(ctx, "The suite loader http url is not a valid url",
				fm.LoaderHttpUrl, c.Loader.Http.Url)
		}
		if c.Loader.Http.RetryCfg.Count < 1 || c.Loader.Http.RetryCfg.Count > 5 {
			ok = false
			log.ErrorContext(ctx, "The amount of suite loader http retries should be above 0 and below 6",
				fm.LoaderHttpRetryCount, c.Loader.Http.RetryCfg.Count)
		}
	}

	if !ok {
		return ErrConfigValidation
	}
	return nil
}

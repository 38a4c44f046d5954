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
	"os"

	"github.com/joho/godotenv"

	"github.com/Hughmann42/barry-smoke/internal/logger"
)

// SecretEnvVars are the environment variables checked, in order, for the
// shared signing secret. Different executor deployments historically used
// different names.
var SecretEnvVars = []string{"BARRY_SHARED_SECRET", "SHARED_SECRET"}

// LoadSecret resolves the shared secret into the target. If an env file is
// configured it is loaded first; variables already present in the
// environment win over the file.
func (c *Config) LoadSecret(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if c.EnvFile != "" {
		if err := godotenv.Load(c.EnvFile); err != nil {
			log.Error("Failed to load env file", "path", c.EnvFile, "error", err)
			return fmt.Errorf("failed to load env file %q: %w", c.EnvFile, err)
		}
		log.Debug("Loaded env file", "path", c.EnvFile)
	}

	for _, name := range SecretEnvVars {
		if v := os.Getenv(name); v != "" {
			c.Target.Secret = v
			return nil
		}
	}

	log.Debug("No shared secret configured, signed probes will be skipped")
	return nil
}

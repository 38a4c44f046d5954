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

package suite

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Hughmann42/barry-smoke/internal/logger"
)

// fileConfig is the schema of a suite file.
type fileConfig struct {
	Suites []Suite `yaml:"suites"`
}

// LoadFile reads additional suites from a YAML file. Loaded suites are
// validated and returned keyed by name.
func LoadFile(ctx context.Context, path string) (map[string]Suite, error) {
	log := logger.FromContext(ctx)
	log.Info("Reading suites from file", "file", path)

	b, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read suite file", "path", path, "error", err)
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	return Parse(b)
}

// Parse unmarshals and validates suites from YAML bytes.
func Parse(b []byte) (map[string]Suite, error) {
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse suite file: %w", err)
	}

	suites := make(map[string]Suite, len(cfg.Suites))
	for _, s := range cfg.Suites {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		suites[s.Name] = s
	}
	return suites, nil
}

// Merge overlays the given suites over the base set. Suites sharing a name
// replace the base suite entirely.
func Merge(base, overlay map[string]Suite) map[string]Suite {
	merged := make(map[string]Suite, len(base)+len(overlay))
	for name, s := range base {
		merged[name] = s
	}
	for name, s := range overlay {
		merged[name] = s
	}
	return merged
}

// Get resolves a suite by name.
func Get(suites map[string]Suite, name string) (Suite, error) {
	if s, ok := suites[name]; ok {
		return s, nil
	}

	known := make([]string, 0, len(suites))
	for n := range suites {
		known = append(known, n)
	}
	sort.Strings(known)
	return Suite{}, ErrUnknownSuite{Name: name, Known: known}
}

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
	"time"

	"github.com/Hughmann42/barry-smoke/internal/helper"
	"github.com/Hughmann42/barry-smoke/pkg/probe"
)

// DefaultBaseURL is used when neither the positional argument nor the flag
// names an executor instance.
const DefaultBaseURL = "http://localhost:8000"

type Config struct {
	// Target is the executor under probe.
	Target probe.Target
	// SuiteName selects the probe table to run.
	SuiteName string
	// SuiteFilePath optionally points to a YAML file with extra suites.
	SuiteFilePath string
	// EnvFile optionally points to a dotenv file read before the secret
	// is resolved from the environment.
	EnvFile string
	// Timeout applies to every outbound probe request.
	Timeout time.Duration

	Api     ApiConfig
	Probing ProbingConfig
	Loader  LoaderConfig
}

// ApiConfig is the configuration for the results API in serve mode
type ApiConfig struct {
	ListeningAddress string
}

// ProbingConfig is the serve-mode sweep configuration
type ProbingConfig struct {
	Interval time.Duration
}

// LoaderConfig is the configuration for the remote suite loader
type LoaderConfig struct {
	Http HttpLoaderConfig
}

// HttpLoaderConfig is the configuration
// for the specific http suite loader
type HttpLoaderConfig struct {
	Url      string
	Token    string
	Interval time.Duration
	RetryCfg helper.RetryConfig
}

// NewConfig creates a new Config
func NewConfig() *Config {
	return &Config{}
}

func (c *Config) SetBaseURL(baseURL string) {
	c.Target.BaseURL = baseURL
}

func (c *Config) SetSuiteName(name string) {
	c.SuiteName = name
}

func (c *Config) SetSuiteFilePath(path string) {
	c.SuiteFilePath = path
}

func (c *Config) SetEnvFile(path string) {
	c.EnvFile = path
}

// SetTimeout sets the probe request timeout
// timeout in seconds
func (c *Config) SetTimeout(timeout int) {
	c.Timeout = time.Duration(timeout) * time.Second
}

func (c *Config) SetApiAddress(address string) {
	c.Api.ListeningAddress = address
}

// SetProbeInterval sets the serve-mode sweep interval
// probeInterval in seconds
func (c *Config) SetProbeInterval(probeInterval int) {
	c.Probing.Interval = time.Duration(probeInterval) * time.Second
}

// SetLoaderHttpUrl sets the suite loader http url
func (c *Config) SetLoaderHttpUrl(url string) {
	c.Loader.Http.Url = url
}

// SetLoaderHttpToken sets the suite loader http token
func (c *Config) SetLoaderHttpToken(token string) {
	c.Loader.Http.Token = token
}

// SetLoaderInterval sets the suite loader interval
// loaderInterval in seconds
func (c *Config) SetLoaderInterval(loaderInterval int) {
	c.Loader.Http.Interval = time.Duration(loaderInterval) * time.Second
}

// SetLoaderHttpRetryCount sets the suite loader http retry count
func (c *Config) SetLoaderHttpRetryCount(retryCount int) {
	c.Loader.Http.RetryCfg.Count = retryCount
}

// SetLoaderHttpRetryDelay sets the suite loader http retry delay
// retryDelay in seconds
func (c *Config) SetLoaderHttpRetryDelay(retryDelay int) {
	c.Loader.Http.RetryCfg.Delay = time.Duration(retryDelay) * time.Second
}

// HasSuiteLoader reports whether a remote suite loader is configured.
func (c *Config) HasSuiteLoader() bool {
	return c.Loader.Http.Url != ""
}

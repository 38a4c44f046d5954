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

// Package suite defines named, ordered probe tables. Two suites are built
// in, mirroring the two revisions of the executor's API surface:
//
//   - smoke: the older surface (/healthz, the "tf" query parameter, v1
//     signatures). The shared secret is optional; without it the signed
//     probe is skipped.
//   - deep: the newer surface (/health with an "ok" body field, the
//     "timeframe" query parameter, v2 signatures, /status, /validate and
//     /limits). The shared secret is mandatory.
//
// Neither variant is authoritative; deployments differ, so both are kept.
package suite

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/google/uuid"

	"github.com/Hughmann42/barry-smoke/pkg/probe"
)

// probeSymbol is the instrument used by the data and intent probes. Any
// listed symbol works since intent probes always set dry_run.
const probeSymbol = "AAPL"

// Suite is a named, ordered probe table.
type Suite struct {
	Name string `yaml:"name" json:"name"`
	// RequireSecret makes a missing shared secret a fatal configuration
	// error: the run aborts before any request is sent.
	RequireSecret bool         `yaml:"requireSecret" json:"requireSecret"`
	Cases         []probe.Case `yaml:"cases" json:"cases"`
}

// Validate checks the suite for malformed cases.
func (s Suite) Validate() error {
	if s.Name == "" {
		return ErrUnnamedSuite
	}
	for _, c := range s.Cases {
		if c.Name == "" {
			return probe.ErrInvalidCase{Case: c.Path, Field: "name", Reason: "must not be empty"}
		}
		if c.Method == "" {
			return probe.ErrInvalidCase{Case: c.Name, Field: "method", Reason: "must not be empty"}
		}
		if len(c.Path) == 0 || c.Path[0] != '/' {
			return probe.ErrInvalidCase{Case: c.Name, Field: "path", Reason: "must start with '/'"}
		}
		if !slices.Contains([]probe.SignMode{probe.SignNone, probe.SignV1, probe.SignV2, probe.SignSecretHeader}, c.Sign) {
			return probe.ErrInvalidCase{Case: c.Name, Field: "sign", Reason: "unknown signing mode"}
		}
		if !slices.Contains([]probe.ClassifyMode{"", probe.ClassifyStatus, probe.ClassifyOKField}, c.Classify) {
			return probe.ErrInvalidCase{Case: c.Name, Field: "classify", Reason: "unknown classification mode"}
		}
	}
	return nil
}

// Builtin returns the built-in suites, keyed by name. The intent bodies are
// built once per call as literal JSON text; the same bytes are later used
// for signing and transmission.
func Builtin() map[string]Suite {
	return map[string]Suite{
		"smoke": {
			Name: "smoke",
			Cases: []probe.Case{
				{Name: "ROOT", Method: http.MethodGet, Path: "/"},
				{Name: "HEALTHZ", Method: http.MethodGet, Path: "/healthz"},
				{Name: "ACCOUNT", Method: http.MethodGet, Path: "/account"},
				{Name: "BARS", Method: http.MethodGet, Path: "/bars", Query: url.Values{
					"symbol": {probeSymbol},
					"tf":     {"15m"},
					"limit":  {"50"},
				}},
				{Name: "SNAPSHOT", Method: http.MethodGet, Path: "/snapshot", Query: url.Values{
					"symbol": {probeSymbol},
				}},
				{Name: "INTENT", Method: http.MethodPost, Path: "/intent", Sign: probe.SignV1,
					Body: qtyIntentBody(uuid.NewString())},
			},
		},
		"deep": {
			Name:          "deep",
			RequireSecret: true,
			Cases: []probe.Case{
				{Name: "HEALTH", Method: http.MethodGet, Path: "/health", Classify: probe.ClassifyOKField},
				{Name: "ACCOUNT", Method: http.MethodGet, Path: "/account"},
				{Name: "BARS", Method: http.MethodGet, Path: "/bars", Query: url.Values{
					"symbol":    {probeSymbol},
					"timeframe": {"15m"},
					"limit":     {"50"},
				}},
				{Name: "SNAPSHOT", Method: http.MethodGet, Path: "/snapshot", Query: url.Values{
					"symbol": {probeSymbol},
				}},
				{Name: "STATUS", Method: http.MethodGet, Path: "/status", Classify: probe.ClassifyOKField},
				{Name: "INTENT", Method: http.MethodPost, Path: "/intent", Sign: probe.SignV2,
					Body: notionalIntentBody(uuid.NewString())},
				{Name: "VALIDATE", Method: http.MethodPost, Path: "/validate", Sign: probe.SignSecretHeader,
					Body: qtyIntentBody(uuid.NewString())},
				{Name: "LIMITS", Method: http.MethodGet, Path: "/limits", Sign: probe.SignSecretHeader},
			},
		},
	}
}

// The intent bodies are assembled as string literals on purpose. Signing
// and sending must use the identical byte sequence, so the body is never
// round-tripped through a JSON encoder.

func qtyIntentBody(clientID string) string {
	return `{"symbol":"` + probeSymbol + `","side":"buy","qty":1,"type":"market",` +
		`"time_in_force":"day","dry_run":true,"client_id":"` + clientID + `",` +
		`"meta":{"source":"barry-smoke"}}`
}

func notionalIntentBody(clientID string) string {
	return `{"symbol":"` + probeSymbol + `","side":"buy","notional":25.0,"type":"market",` +
		`"time_in_force":"day","dry_run":true,"client_id":"` + clientID + `",` +
		`"meta":{"source":"barry-smoke"}}`
}

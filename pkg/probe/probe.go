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

// Package probe contains the probe table model and the sequential runner
// that executes a suite of probes against a Barry executor instance.
package probe

import (
	"net/url"
	"time"
)

// Verdict classifies the outcome of a single probe.
type Verdict string

const (
	// VerdictPass means the probe's success predicate held.
	VerdictPass Verdict = "PASS"
	// VerdictFail means the executor answered, but not with the expected
	// status or body.
	VerdictFail Verdict = "FAIL"
	// VerdictSkip means the probe was never sent, e.g. a signed probe
	// without a configured secret.
	VerdictSkip Verdict = "SKIP"
	// VerdictError means the request could not be completed at all.
	VerdictError Verdict = "ERROR"
)

// SignMode selects how a probe authenticates against the executor.
type SignMode string

const (
	// SignNone sends the request unauthenticated.
	SignNone SignMode = ""
	// SignV1 attaches X-Signature: hex(HMAC-SHA256(secret, body)).
	SignV1 SignMode = "v1"
	// SignV2 attaches X-Signature-V2 and X-Signature-Ts, binding a unix
	// timestamp to the body digest.
	SignV2 SignMode = "v2"
	// SignSecretHeader sends the shared secret verbatim in X-Exec-Secret.
	// Used by the executor's /validate and /limits endpoints.
	SignSecretHeader SignMode = "secret-header"
)

// ClassifyMode selects the success predicate of a probe.
type ClassifyMode string

const (
	// ClassifyStatus passes iff the HTTP status is 200. The response body
	// is not read.
	ClassifyStatus ClassifyMode = "status"
	// ClassifyOKField parses the response body as JSON and passes iff the
	// field "ok" is present and truthy. A body that is not valid JSON is
	// a fatal error, not a FAIL.
	ClassifyOKField ClassifyMode = "ok-field"
)

// Target is the executor instance under probe. It is constructed once at
// startup and never mutated.
type Target struct {
	// BaseURL is the executor's base URL, without a trailing slash.
	BaseURL string
	// Secret is the shared signing secret. May be empty, in which case
	// signed probes are skipped.
	Secret string
}

// Case is one entry of a probe table. Cases are plain data; the suite
// package defines them as explicit ordered tables so the execution
// sequence stays deterministic.
type Case struct {
	Name     string       `yaml:"name" json:"name"`
	Method   string       `yaml:"method" json:"method"`
	Path     string       `yaml:"path" json:"path"`
	Query    url.Values   `yaml:"query,omitempty" json:"query,omitempty"`
	Body     string       `yaml:"body,omitempty" json:"body,omitempty"`
	Sign     SignMode     `yaml:"sign,omitempty" json:"sign,omitempty"`
	Classify ClassifyMode `yaml:"classify,omitempty" json:"classify,omitempty"`
}

// URL renders the full request URL for the case against the given target.
func (c Case) URL(target Target) string {
	u := trimTrailingSlash(target.BaseURL) + c.Path
	if len(c.Query) > 0 {
		u += "?" + c.Query.Encode()
	}
	return u
}

// Signed reports whether the case needs the shared secret to be sent.
func (c Case) Signed() bool {
	return c.Sign != SignNone
}

// Result is the immutable outcome of one probe execution.
type Result struct {
	Name      string        `json:"name"`
	Verdict   Verdict       `json:"verdict"`
	Code      int           `json:"code,omitempty"`
	Detail    string        `json:"detail,omitempty"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

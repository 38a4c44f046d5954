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

package probe

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hughmann42/barry-smoke/pkg/signature"
)

const (
	testBaseURL = "https://executor.test"
	testBody    = `{"symbol":"AAPL","side":"buy","qty":1,"dry_run":true}`
)

func collect(t *testing.T, r *Runner, cases []Case) ([]Result, error) {
	t.Helper()
	var results []Result
	err := r.Run(context.Background(), cases, func(res Result) {
		results = append(results, res)
	})
	return results, err
}

func TestRunner_Run_StatusClassification(t *testing.T) {
	tests := []struct {
		name        string
		responder   httpmock.Responder
		wantVerdict Verdict
		wantCode    int
	}{
		{
			name:        "status 200 passes",
			responder:   httpmock.NewStringResponder(200, ""),
			wantVerdict: VerdictPass,
			wantCode:    200,
		},
		{
			name:        "status 503 fails",
			responder:   httpmock.NewStringResponder(503, ""),
			wantVerdict: VerdictFail,
			wantCode:    503,
		},
		{
			name:        "status 404 fails",
			responder:   httpmock.NewStringResponder(404, ""),
			wantVerdict: VerdictFail,
			wantCode:    404,
		},
		{
			name:        "transport error",
			responder:   httpmock.NewErrorResponder(errors.New("connection refused")),
			wantVerdict: VerdictError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Activate()
			defer httpmock.DeactivateAndReset()
			httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/healthz", tt.responder)

			r := NewRunner(Target{BaseURL: testBaseURL})
			results, err := collect(t, r, []Case{{Name: "HEALTHZ", Method: http.MethodGet, Path: "/healthz"}})

			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, "HEALTHZ", results[0].Name)
			assert.Equal(t, tt.wantVerdict, results[0].Verdict)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, results[0].Code)
			}
		})
	}
}

func TestRunner_Run_SequenceContinuesPastFailures(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	for _, path := range []string{"/", "/healthz", "/account", "/snapshot"} {
		httpmock.RegisterResponder(http.MethodGet, testBaseURL+path, httpmock.NewStringResponder(200, ""))
	}
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/bars", httpmock.NewStringResponder(503, ""))

	cases := []Case{
		{Name: "ROOT", Method: http.MethodGet, Path: "/"},
		{Name: "HEALTHZ", Method: http.MethodGet, Path: "/healthz"},
		{Name: "ACCOUNT", Method: http.MethodGet, Path: "/account"},
		{Name: "BARS", Method: http.MethodGet, Path: "/bars"},
		{Name: "SNAPSHOT", Method: http.MethodGet, Path: "/snapshot"},
	}

	r := NewRunner(Target{BaseURL: testBaseURL})
	results, err := collect(t, r, cases)
	require.NoError(t, err)
	require.Len(t, results, len(cases))

	// results arrive in table order
	for i, c := range cases {
		assert.Equal(t, c.Name, results[i].Name)
	}

	for _, res := range results {
		if res.Name == "BARS" {
			assert.Equal(t, VerdictFail, res.Verdict)
			assert.Equal(t, 503, res.Code)
			continue
		}
		assert.Equal(t, VerdictPass, res.Verdict, "probe %s", res.Name)
	}
}

func TestRunner_Run_QueryParameters(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	query := url.Values{"symbol": {"AAPL"}, "tf": {"15m"}, "limit": {"50"}}
	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/bars", query,
		httpmock.NewStringResponder(200, ""))

	r := NewRunner(Target{BaseURL: testBaseURL})
	results, err := collect(t, r, []Case{
		{Name: "BARS", Method: http.MethodGet, Path: "/bars", Query: query},
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, VerdictPass, results[0].Verdict)
}

func TestRunner_Run_SignedProbe(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	wantSig := "f80b20e05f4ac0b0acaecf3af1e05ac2e62a47c8c94ff4cd7acaa787aedaf781"
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/intent",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Content-Type") != "application/json" {
				return httpmock.NewStringResponse(415, ""), nil
			}
			if req.Header.Get(signature.HeaderV1) != wantSig {
				return httpmock.NewStringResponse(403, ""), nil
			}
			return httpmock.NewStringResponse(200, `{"status":"accepted"}`), nil
		})

	r := NewRunner(Target{BaseURL: testBaseURL, Secret: "testsecret"})
	results, err := collect(t, r, []Case{
		{Name: "INTENT", Method: http.MethodPost, Path: "/intent", Body: testBody, Sign: SignV1},
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, VerdictPass, results[0].Verdict)
}

func TestRunner_Run_SignedProbeV2(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/intent",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(signature.HeaderTs) != "1700000000" {
				return httpmock.NewStringResponse(403, ""), nil
			}
			want := "a300a93ee488dc9578393ece388e589d0b370cec3fdcca2e3b3264aaa8610b0d"
			if req.Header.Get(signature.HeaderV2) != want {
				return httpmock.NewStringResponse(403, ""), nil
			}
			return httpmock.NewStringResponse(200, ""), nil
		})

	r := NewRunner(Target{BaseURL: testBaseURL, Secret: "testsecret"})
	r.now = func() int64 { return 1700000000 }

	results, err := collect(t, r, []Case{
		{Name: "INTENT", Method: http.MethodPost, Path: "/intent", Body: testBody, Sign: SignV2},
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, VerdictPass, results[0].Verdict)
}

func TestRunner_Run_SecretHeaderProbe(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/limits",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("X-Exec-Secret") != "testsecret" {
				return httpmock.NewStringResponse(403, ""), nil
			}
			return httpmock.NewStringResponse(200, ""), nil
		})

	r := NewRunner(Target{BaseURL: testBaseURL, Secret: "testsecret"})
	results, err := collect(t, r, []Case{
		{Name: "LIMITS", Method: http.MethodGet, Path: "/limits", Sign: SignSecretHeader},
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, VerdictPass, results[0].Verdict)
}

func TestRunner_Run_SkipsSignedProbeWithoutSecret(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	r := NewRunner(Target{BaseURL: testBaseURL})
	results, err := collect(t, r, []Case{
		{Name: "INTENT", Method: http.MethodPost, Path: "/intent", Body: testBody, Sign: SignV1},
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, VerdictSkip, results[0].Verdict)
	assert.Equal(t, "no secret configured", results[0].Detail)
	// the request was never sent
	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestRunner_Run_OKFieldClassification(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantVerdict Verdict
	}{
		{name: "ok true", body: `{"ok": true, "dry_run": false}`, wantVerdict: VerdictPass},
		{name: "ok false", body: `{"ok": false}`, wantVerdict: VerdictFail},
		{name: "ok missing", body: `{"service": "barry-executor"}`, wantVerdict: VerdictFail},
		{name: "ok truthy number", body: `{"ok": 1}`, wantVerdict: VerdictPass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Activate()
			defer httpmock.DeactivateAndReset()
			httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/health",
				httpmock.NewStringResponder(200, tt.body))

			r := NewRunner(Target{BaseURL: testBaseURL})
			results, err := collect(t, r, []Case{
				{Name: "HEALTH", Method: http.MethodGet, Path: "/health", Classify: ClassifyOKField},
			})

			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, tt.wantVerdict, results[0].Verdict)
		})
	}
}

func TestRunner_Run_OKFieldMalformedJSONIsFatal(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	raw := "not json" + strings.Repeat("x", 300)
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/health",
		httpmock.NewStringResponder(200, raw))
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/account",
		httpmock.NewStringResponder(200, ""))

	r := NewRunner(Target{BaseURL: testBaseURL})
	results, err := collect(t, r, []Case{
		{Name: "HEALTH", Method: http.MethodGet, Path: "/health", Classify: ClassifyOKField},
		{Name: "ACCOUNT", Method: http.MethodGet, Path: "/account"},
	})

	var notJSON ErrNotJSON
	require.ErrorAs(t, err, &notJSON)
	assert.Equal(t, "HEALTH", notJSON.Case)
	assert.Len(t, notJSON.Raw, rawPreviewLimit, "raw preview is capped")
	assert.True(t, strings.HasPrefix(raw, notJSON.Raw))

	// the run aborts before the next case
	assert.Empty(t, results)
	info := httpmock.GetCallCountInfo()
	assert.Zero(t, info["GET "+testBaseURL+"/account"])
}

func TestCase_URL(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		c      Case
		want   string
	}{
		{
			name:   "plain path",
			target: Target{BaseURL: "http://localhost:8000"},
			c:      Case{Path: "/healthz"},
			want:   "http://localhost:8000/healthz",
		},
		{
			name:   "trailing slash on base url",
			target: Target{BaseURL: "http://localhost:8000/"},
			c:      Case{Path: "/healthz"},
			want:   "http://localhost:8000/healthz",
		},
		{
			name:   "query parameters are encoded",
			target: Target{BaseURL: "http://localhost:8000"},
			c:      Case{Path: "/snapshot", Query: url.Values{"symbol": {"AAPL"}}},
			want:   "http://localhost:8000/snapshot?symbol=AAPL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.URL(tt.target))
		})
	}
}

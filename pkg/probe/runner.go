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
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Hughmann42/barry-smoke/internal/httpclient"
	"github.com/Hughmann42/barry-smoke/internal/logger"
	"github.com/Hughmann42/barry-smoke/pkg/signature"
)

// rawPreviewLimit is the number of leading bytes of a non-JSON response
// body surfaced in the resulting error.
const rawPreviewLimit = 200

// Runner executes probe cases against a single target, strictly in table
// order, one blocking request at a time. Probes are never retried.
type Runner struct {
	target  Target
	metrics metrics

	// now is the timestamp source for v2 signatures, swapped in tests.
	now func() int64
}

// NewRunner creates a runner for the given target.
func NewRunner(target Target) *Runner {
	return &Runner{
		target:  target,
		metrics: newMetrics(),
		now:     func() int64 { return time.Now().Unix() },
	}
}

// Run executes the cases in order. Each result is handed to onResult as
// soon as it is produced, so a human watching the output sees one line per
// finished probe. The probe sequence continues past FAIL and ERROR
// verdicts; only a response-parse failure of an ok-field probe aborts the
// run and is returned as an [ErrNotJSON].
func (r *Runner) Run(ctx context.Context, cases []Case, onResult func(Result)) error {
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := r.execute(ctx, c)
		if err != nil {
			return err
		}
		r.metrics.record(res)
		onResult(res)
	}
	return nil
}

// execute runs a single probe case and classifies the outcome.
func (r *Runner) execute(ctx context.Context, c Case) (Result, error) {
	log := logger.FromContext(ctx).With("probe", c.Name)
	start := time.Now()

	result := func(v Verdict, code int, detail string) Result {
		return Result{
			Name:      c.Name,
			Verdict:   v,
			Code:      code,
			Detail:    detail,
			Duration:  time.Since(start),
			Timestamp: time.Now(),
		}
	}

	if c.Signed() && r.target.Secret == "" {
		log.Info("Skipping signed probe, no secret configured")
		return result(VerdictSkip, 0, "no secret configured"), nil
	}

	req, err := r.newRequest(ctx, c)
	if err != nil {
		log.Error("Failed to create request", "error", err)
		return result(VerdictError, 0, err.Error()), nil
	}

	resp, err := httpclient.FromContext(ctx).Do(req) //nolint:bodyclose // closed in defer
	if err != nil {
		log.Warn("Probe request failed", "error", err)
		return result(VerdictError, 0, err.Error()), nil
	}
	defer func(b io.ReadCloser) {
		if cErr := b.Close(); cErr != nil {
			log.Error("Failed to close response body", "error", cErr)
		}
	}(resp.Body)

	switch c.Classify {
	case ClassifyOKField:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Warn("Failed to read response body", "error", err)
			return result(VerdictError, resp.StatusCode, err.Error()), nil
		}

		var fields map[string]any
		if err := json.Unmarshal(body, &fields); err != nil {
			return Result{}, ErrNotJSON{Case: c.Name, Raw: preview(body), Err: err}
		}

		if !truthy(fields["ok"]) {
			log.Warn("Probe response body reports not ok", "status", resp.Status)
			return result(VerdictFail, resp.StatusCode, preview(body)), nil
		}
		return result(VerdictPass, resp.StatusCode, preview(body)), nil
	default:
		if resp.StatusCode != http.StatusOK {
			log.Warn("Probe returned non-200 status", "status", resp.Status)
			return result(VerdictFail, resp.StatusCode, ""), nil
		}
		return result(VerdictPass, resp.StatusCode, ""), nil
	}
}

// newRequest builds the HTTP request for a case, signing the body where the
// case demands it. The signed bytes are the exact bytes transmitted.
func (r *Runner) newRequest(ctx context.Context, c Case) (*http.Request, error) {
	var body io.Reader = http.NoBody
	if c.Body != "" {
		body = strings.NewReader(c.Body)
	}

	req, err := http.NewRequestWithContext(ctx, c.Method, c.URL(r.target), body)
	if err != nil {
		return nil, err
	}
	if c.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	secret := []byte(r.target.Secret)
	switch c.Sign {
	case SignV1:
		req.Header.Set(signature.HeaderV1, signature.Compute(secret, []byte(c.Body)))
	case SignV2:
		ts := r.now()
		req.Header.Set(signature.HeaderV2, signature.ComputeV2(secret, []byte(c.Body), ts))
		req.Header.Set(signature.HeaderTs, strconv.FormatInt(ts, 10))
	case SignSecretHeader:
		req.Header.Set("X-Exec-Secret", r.target.Secret)
	}

	return req, nil
}

// GetMetricCollectors exposes the runner's prometheus collectors for
// registration in serve mode.
func (r *Runner) GetMetricCollectors() []prometheus.Collector {
	return r.metrics.collectors()
}

// preview returns the leading bytes of a response body for diagnosis.
func preview(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > rawPreviewLimit {
		return s[:rawPreviewLimit]
	}
	return s
}

// truthy mirrors the executor's loose reading of the "ok" field: absent,
// null, false, 0 and "" are not ok, everything else is.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

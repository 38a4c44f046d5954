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
	"fmt"
	"io"
	"sync"
)

// Reporter prints one human-readable line per finished probe. Verdicts are
// informational only; the reporter never influences the process exit code.
type Reporter struct {
	mu sync.Mutex
	w  io.Writer

	passed  int
	failed  int
	skipped int
	errored int
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report prints the line for a single result, e.g. "BARS: FAIL (503)".
func (r *Reporter) Report(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch res.Verdict {
	case VerdictPass:
		r.passed++
		fmt.Fprintf(r.w, "%s: PASS\n", res.Name)
	case VerdictFail:
		r.failed++
		if res.Detail != "" {
			fmt.Fprintf(r.w, "%s: FAIL (%d) %s\n", res.Name, res.Code, res.Detail)
			return
		}
		fmt.Fprintf(r.w, "%s: FAIL (%d)\n", res.Name, res.Code)
	case VerdictSkip:
		r.skipped++
		fmt.Fprintf(r.w, "%s: SKIP (%s)\n", res.Name, res.Detail)
	case VerdictError:
		r.errored++
		fmt.Fprintf(r.w, "%s: ERROR (%s)\n", res.Name, res.Detail)
	}
}

// Summary prints an aggregate line after all probes finished.
func (r *Reporter) Summary() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "%d passed, %d failed, %d skipped, %d errored\n",
		r.passed, r.failed, r.skipped, r.errored)
}

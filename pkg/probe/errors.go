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

import "fmt"

// ErrNotJSON is returned when a probe with the ok-field predicate receives
// a response body that is not valid JSON. It carries a prefix of the raw
// body for diagnosis and aborts the run.
type ErrNotJSON struct {
	Case string
	Raw  string
	Err  error
}

func (e ErrNotJSON) Error() string {
	return fmt.Sprintf("probe %q: response body is not valid JSON: %v; raw body: %q", e.Case, e.Err, e.Raw)
}

func (e ErrNotJSON) Unwrap() error {
	return e.Err
}

// ErrInvalidCase is returned when a probe case in a suite is malformed.
type ErrInvalidCase struct {
	Case   string
	Field  string
	Reason string
}

func (e ErrInvalidCase) Error() string {
	return fmt.Sprintf("invalid field %q in probe case %q: %s", e.Field, e.Case, e.Reason)
}

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

package helper

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		fails     int
		rc        RetryConfig
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "success on first call",
			fails:     0,
			rc:        RetryConfig{Count: 2, Delay: time.Millisecond},
			wantCalls: 1,
			wantErr:   false,
		},
		{
			name:      "success after one retry",
			fails:     1,
			rc:        RetryConfig{Count: 2, Delay: time.Millisecond},
			wantCalls: 2,
			wantErr:   false,
		},
		{
			name:      "failure after exhausting retries",
			fails:     5,
			rc:        RetryConfig{Count: 2, Delay: time.Millisecond},
			wantCalls: 3,
			wantErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			effector := func(ctx context.Context) error {
				calls++
				if calls <= tt.fails {
					return errors.New("effector failed")
				}
				return nil
			}

			err := Retry(effector, tt.rc)(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Retry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("Retry() calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	effector := func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("effector failed")
	}

	err := Retry(effector, RetryConfig{Count: 3, Delay: time.Minute})(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("Retry() calls = %d, want 1", calls)
	}
}

func TestGetExpBackoff(t *testing.T) {
	tests := []struct {
		name      string
		initial   time.Duration
		iteration int
		want      time.Duration
	}{
		{name: "first iteration", initial: time.Second, iteration: 1, want: time.Second},
		{name: "second iteration", initial: time.Second, iteration: 2, want: 2 * time.Second},
		{name: "third iteration", initial: time.Second, iteration: 3, want: 4 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getExpBackoff(tt.initial, tt.iteration); got != tt.want {
				t.Errorf("getExpBackoff() = %v, want %v", got, tt.want)
			}
		})
	}
}

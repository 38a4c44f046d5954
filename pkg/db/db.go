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

package db

import (
	"sync"
	"time"

	"github.com/Hughmann42/barry-smoke/pkg/probe"
)

type DB interface {
	Save(result probe.Result)
	Get(name string) (result probe.Result, ok bool)
	List() map[string]probe.Result
	// MarkSweep records the completion time of a full probe sweep.
	MarkSweep(t time.Time)
	// LastSweep returns the completion time of the most recent sweep.
	LastSweep() (time.Time, bool)
}

var _ DB = (*InMemory)(nil)

// InMemory keeps the latest result per probe. Serve mode overwrites each
// entry on every sweep; history belongs to the metrics, not the store.
type InMemory struct {
	data sync.Map

	mu        sync.RWMutex
	lastSweep time.Time
}

// NewInMemory creates a new in-memory database
func NewInMemory() *InMemory {
	return &InMemory{}
}

func (i *InMemory) Save(result probe.Result) {
	i.data.Store(result.Name, result)
}

func (i *InMemory) Get(name string) (probe.Result, bool) {
	tmp, ok := i.data.Load(name)
	if !ok {
		return probe.Result{}, false
	}
	// this assertion should not fail, unless we have a bug somewhere
	return tmp.(probe.Result), true
}

// List returns a copy of the stored results
func (i *InMemory) List() map[string]probe.Result {
	results := make(map[string]probe.Result)
	i.data.Range(func(key, value any) bool {
		results[key.(string)] = value.(probe.Result)
		return true
	})
	return results
}

func (i *InMemory) MarkSweep(t time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.lastSweep = t
}

func (i *InMemory) LastSweep() (time.Time, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.lastSweep, !i.lastSweep.IsZero()
}

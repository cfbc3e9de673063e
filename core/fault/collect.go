// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fault

import "sync"

// One is the type for something that collects only the first error.
// One is safe to use from multiple goroutines.
type One struct {
	mu  sync.Mutex
	err error
}

// First returns the first error added to it.
func (o *One) First() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Collect records err if it is the first non-nil error seen.
func (o *One) Collect(err error) {
	if err == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return
	}
	o.err = err
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package app

import "context"

// Key names as delivered by the desktop toolkit.
const (
	KeyReturn = "Return"
	KeyEnter  = "KP_Enter"
)

// KeySubmits reports whether key submits the input: Enter submits, Shift+Enter
// inserts a newline.
func KeySubmits(key string, shift bool) bool {
	return (key == KeyReturn || key == KeyEnter) && !shift
}

// Queue is a Poster backed by a channel, for front-ends without their own
// UI thread. The owning goroutine runs posted functions with Next or Drain.
type Queue chan func()

// NewQueue returns a queue with room for n pending callbacks.
func NewQueue(n int) Queue { return make(Queue, n) }

// Post enqueues fn.
func (q Queue) Post(fn func()) { q <- fn }

// Next runs one posted callback, waiting for it if necessary.
func (q Queue) Next(ctx context.Context) error {
	select {
	case fn := <-q:
		fn()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain runs every callback already queued and returns how many ran.
func (q Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q:
			fn()
			n++
		default:
			return n
		}
	}
}

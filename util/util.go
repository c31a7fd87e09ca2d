/* Copyright 2018 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package util has the logging switch shared by the tools and the
// command line.
package util

import (
	"log"
	"sync/atomic"
)

var logging atomic.Bool

// Logging is a clumsy switch that affects what Logf does.  It returns
// the previous setting so that callers (tests, mostly) can restore it.
func Logging(on bool) bool {
	return logging.Swap(on)
}

// Logf is a silly utility function that calls log.Printf if logging
// is on.
func Logf(format string, args ...interface{}) {
	if !logging.Load() {
		return
	}
	log.Printf(format, args...)
}

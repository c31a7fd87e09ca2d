/* Copyright 2018-2026 Comcast Cable Communications Management, LLC
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

// Package interpreters collects the script interpreters a wf.Checker
// can use.
package interpreters

import (
	"github.com/Comcast/certres/interpreters/ecmascript"
	"github.com/Comcast/certres/interpreters/noop"
	"github.com/Comcast/certres/wf"
)

// Standard returns the usual interpreters by name.
func Standard() wf.InterpretersMap {
	is := wf.NewInterpretersMap()

	es := ecmascript.NewInterpreter()
	is["ecmascript"] = es
	is["ecmascript-5.1"] = es

	ext := ecmascript.NewInterpreter()
	ext.Extended = true
	is["ecmascript-ext"] = ext
	is["ecmascript-5.1-ext"] = ext
	is["goja"] = ext

	is["noop"] = noop.NewInterpreter()

	return is
}

// Disabled maps every standard name to a silent noop interpreter, so
// that documents with scripts still check when scripts are off.
func Disabled() wf.InterpretersMap {
	is := wf.NewInterpretersMap()
	off := &noop.Interpreter{Silent: true}
	for name := range Standard() {
		is[name] = off
	}
	return is
}

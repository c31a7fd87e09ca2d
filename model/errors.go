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

package model

import (
	"errors"
	"fmt"
)

// UnknownReference occurs when a name in a document doesn't refer to
// anything.
type UnknownReference struct {
	// What sort of thing the name should refer to.
	What string
	Name string

	// Where the name was used.
	Where string
}

func (e *UnknownReference) Error() string {
	return fmt.Sprintf("%s: unknown %s %q", e.Where, e.What, e.Name)
}

// DuplicateName occurs when two things in the same scope have the
// same name.
type DuplicateName struct {
	What  string
	Name  string
	Where string
}

func (e *DuplicateName) Error() string {
	return fmt.Sprintf("%s: duplicate %s %q", e.Where, e.What, e.Name)
}

var (
	// AmbiguousEvent occurs when a bare event name is declared by
	// more than one interface.
	AmbiguousEvent = errors.New("ambiguous event name; qualify it with its interface")

	// Invalid wraps struct validation failures.
	Invalid = errors.New("invalid document")
)

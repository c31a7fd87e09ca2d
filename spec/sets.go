/* Copyright 2026 Comcast Cable Communications Management, LLC
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

package spec

// MessageSet is an expression denoting a set of messages.
type MessageSet interface {
	isMessageSet()
}

// Extensional lists its messages.
type Extensional struct {
	Messages []*Message
}

// Universe is every message.
type Universe struct{}

// SetRef refers to a named set.
type SetRef struct {
	Set *NamedSet
}

// SetOp is a set-algebra operator.
type SetOp int

const (
	Union SetOp = iota
	Intersection
	Difference
)

func (op SetOp) String() string {
	switch op {
	case Union:
		return "union"
	case Intersection:
		return "inter"
	case Difference:
		return "diff"
	}
	return "unknown"
}

// Binary combines two sets.
type Binary struct {
	Op SetOp
	L  MessageSet
	R  MessageSet
}

// NamedSet gives a message set a name so that other sets can refer
// to it.
type NamedSet struct {
	Name string
	Set  MessageSet
}

func (Extensional) isMessageSet() {}
func (Universe) isMessageSet()    {}
func (SetRef) isMessageSet()      {}
func (Binary) isMessageSet()      {}

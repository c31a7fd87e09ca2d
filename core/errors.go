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

package core

// These errors distinguish "this input is malformed or out of scope"
// (ScopingViolation) from "nobody wrote a case for this"
// (UnsupportedConstruct).  Neither is retried.  A message that simply
// does not correspond to a connection is not an error at all; see
// ResolvedEventTopic.Status().

import (
	"errors"
	"fmt"

	"github.com/Comcast/certres/spec"
)

// UnsupportedConstruct occurs when a switch over targets, actors,
// endpoints, topics, message sets or node kinds meets a variant it has
// no case for.
type UnsupportedConstruct struct {
	What  string
	Value interface{}
}

func (e *UnsupportedConstruct) Error() string {
	return fmt.Sprintf("unsupported %s (%T)", e.What, e.Value)
}

// ScopingViolation occurs when a resolution precondition fails.
//
// For example, a component target given a message without exactly one
// world end, or a collection target given two world ends.
type ScopingViolation struct {
	Target spec.Target
	Reason string

	// Err is an optional cause.
	Err error
}

func (e *ScopingViolation) Error() string {
	msg := "scoping violation"
	if e.Target != nil {
		msg += " for " + spec.TargetKind(e.Target) + " target"
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ScopingViolation) Unwrap() error {
	return e.Err
}

var (
	// NoEnclosingScope occurs when a node is not contained (or
	// referenced) anywhere that could give it a world.
	NoEnclosingScope = errors.New("no enclosing scope")

	// WrongKind occurs when a node of one kind is given where
	// another kind is required.
	WrongKind = errors.New("wrong kind of node")
)

func violation(t spec.Target, reason string, err error) error {
	return &ScopingViolation{
		Target: t,
		Reason: reason,
		Err:    err,
	}
}

func unsupported(what string, x interface{}) error {
	return &UnsupportedConstruct{
		What:  what,
		Value: x,
	}
}

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

// Package wf checks specification groups for well-formedness.
//
// A Checker runs a set of named checks over a group's actors,
// diagrams and message sets, using a core.Resolver to find out what
// each message denotes in the architecture.  Problems come back as
// Diagnostics rather than errors: a check that cannot resolve a
// message records that and the pass carries on.
//
// Besides the built-in checks, a Checker can run Scripts, which are
// predicates over a JSON-ish view of each resolved message.  Scripts
// are executed by an Interpreter; see the interpreters package.
package wf

import (
	"fmt"
	"strings"
)

// Level is the severity of a Diagnostic.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

var levelNames = []string{
	Info:    "info",
	Warning: "warning",
	Error:   "error",
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLevel is the inverse of Level.String.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, s) {
			return Level(i), nil
		}
	}
	return Info, fmt.Errorf("unknown level %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(bs []byte) error {
	x, err := ParseLevel(string(bs))
	if err != nil {
		return err
	}
	*l = x
	return nil
}

// Diagnostic is one finding.
type Diagnostic struct {
	Level Level  `json:"level" yaml:"level"`
	Check string `json:"check" yaml:"check"`
	Group string `json:"group" yaml:"group"`

	// Diagram is empty for findings about the group as a whole.
	Diagram string `json:"diagram,omitempty" yaml:"diagram,omitempty"`

	// Message is the index of the message in the diagram, or -1.
	Message int `json:"message" yaml:"message"`

	Text string `json:"text" yaml:"text"`
}

func (d Diagnostic) String() string {
	where := d.Group
	if d.Diagram != "" {
		where += "/" + d.Diagram
	}
	if d.Message >= 0 {
		where += fmt.Sprintf("#%d", d.Message)
	}
	return fmt.Sprintf("%s [%s] %s: %s", d.Level, d.Check, where, d.Text)
}

// Worst gives the highest level among the diagnostics.  No
// diagnostics at all is Info.
func Worst(ds []Diagnostic) Level {
	worst := Info
	for _, d := range ds {
		if worst < d.Level {
			worst = d.Level
		}
	}
	return worst
}

// Count counts the diagnostics at the given level.
func Count(ds []Diagnostic, l Level) int {
	n := 0
	for _, d := range ds {
		if d.Level == l {
			n++
		}
	}
	return n
}

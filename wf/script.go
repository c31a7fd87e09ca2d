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

package wf

import (
	"context"
	"errors"
	"fmt"
)

var (
	// InterpreterNotFound occurs when a Script names an
	// interpreter that the Checker doesn't have.
	InterpreterNotFound = errors.New("interpreter not found")
)

// Interpreter can optionally compile and then execute the source of
// a Script.
type Interpreter interface {
	// Compile can make something that helps when Exec()ing the
	// code later.
	Compile(ctx context.Context, code interface{}) (interface{}, error)

	// Exec executes the code against the environment.  The
	// result of a previous Compile() might be provided.
	Exec(ctx context.Context, env map[string]interface{}, code interface{}, compiled interface{}) (*Execution, error)
}

// InterpretersMap maps interpreter names to interpreters.
type InterpretersMap map[string]Interpreter

func NewInterpretersMap() InterpretersMap {
	return make(InterpretersMap)
}

// Execution is what running a Script produced.
type Execution struct {
	// Result is whatever the script returned.  A false result
	// fails the predicate.  Anything else (including nothing)
	// passes.
	Result interface{}

	// Complaints are reasons the script gave for failing.
	Complaints []string
}

// Complain adds a complaint.
func (e *Execution) Complain(s string) {
	e.Complaints = append(e.Complaints, s)
}

// Failed reports whether the script returned false or complained.
func (e *Execution) Failed() bool {
	if b, is := e.Result.(bool); is && !b {
		return true
	}
	return 0 < len(e.Complaints)
}

// Script is a user-supplied predicate run against every message of
// every diagram.
type Script struct {
	Name        string      `json:"name" yaml:"name"`
	Interpreter string      `json:"interpreter,omitempty" yaml:"interpreter,omitempty"`
	Source      interface{} `json:"source" yaml:"source"`

	// Level is the level of the diagnostics the script's failures
	// produce.
	Level Level `json:"level" yaml:"level"`

	interpreter Interpreter
	compiled    interface{}
}

// DefaultInterpreter is used for Scripts that don't name one.
const DefaultInterpreter = "ecmascript"

// Compile finds the Script's interpreter and compiles the source.
func (s *Script) Compile(ctx context.Context, is InterpretersMap) error {
	name := s.Interpreter
	if name == "" {
		name = DefaultInterpreter
	}
	i, have := is[name]
	if !have {
		return fmt.Errorf("script %s: %s: %w", s.Name, name, InterpreterNotFound)
	}
	x, err := i.Compile(ctx, s.Source)
	if err != nil {
		return fmt.Errorf("script %s: %w", s.Name, err)
	}
	s.interpreter = i
	s.compiled = x
	return nil
}

// Exec runs the compiled Script.
func (s *Script) Exec(ctx context.Context, env map[string]interface{}) (*Execution, error) {
	if s.interpreter == nil {
		return nil, fmt.Errorf("script %s is not compiled", s.Name)
	}
	return s.interpreter.Exec(ctx, env, s.Source, s.compiled)
}

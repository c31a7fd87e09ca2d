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

// Package model reads documents describing an architecture and the
// specification groups written against it.
//
// A Document is plain YAML (or JSON).  Names refer to things:
// components by name within their package or parent, events by
// "Interface.event" or a bare event name, targets and component
// actors by a path "package::Module::Controller::Machine".  Build
// turns a Document into an arch.Graph and spec.Groups.
//
// Here's a small example:
//
//	name: robot
//	packages:
//	  - name: robot
//	    interfaces:
//	      - name: Sensors
//	        events: [{name: obstacle}]
//	    modules:
//	      - name: M
//	        platform: {name: P, uses: [Sensors]}
//	        controllers:
//	          - {name: C, uses: [Sensors]}
//	        connections:
//	          - {from: P.obstacle, to: C.obstacle}
//	groups:
//	  - name: G
//	    target: {kind: module, path: "robot::M"}
//	    actors: [{name: t, kind: target}, {name: w, kind: world}]
//	    diagrams:
//	      - name: D
//	        actors: [t, w]
//	        messages:
//	          - {from: w, to: t, event: obstacle}
package model

import (
	"github.com/Comcast/certres/core"
	"github.com/Comcast/certres/wf"
)

// Document is the top of a document.
type Document struct {
	Name     string     `json:"name" yaml:"name" validate:"required"`
	Packages []*Package `json:"packages" yaml:"packages" validate:"required,min=1,dive,required"`
	Groups   []*Group   `json:"groups,omitempty" yaml:"groups,omitempty" validate:"dive,required"`

	// Checks are scripted well-formedness predicates.
	Checks []*wf.Script `json:"checks,omitempty" yaml:"checks,omitempty" validate:"dive,required"`

	// Config, if given, replaces core.DefaultConfig().
	Config *core.Config `json:"config,omitempty" yaml:"config,omitempty"`
}

// Package is a namespace of interfaces, signatures and components.
type Package struct {
	Name       string       `json:"name" yaml:"name" validate:"required"`
	Interfaces []*Interface `json:"interfaces,omitempty" yaml:"interfaces,omitempty" validate:"dive,required"`
	Signatures []*Signature `json:"signatures,omitempty" yaml:"signatures,omitempty" validate:"dive,required"`

	// Platforms, Controllers and Machines are package-level
	// definitions, which modules and controllers can refer to.
	Platforms   []*Component `json:"platforms,omitempty" yaml:"platforms,omitempty" validate:"dive,required"`
	Controllers []*Component `json:"controllers,omitempty" yaml:"controllers,omitempty" validate:"dive,required"`
	Machines    []*Component `json:"machines,omitempty" yaml:"machines,omitempty" validate:"dive,required"`

	Modules []*Module `json:"modules,omitempty" yaml:"modules,omitempty" validate:"dive,required"`
}

// Interface is a named collection of event declarations.
type Interface struct {
	Name   string       `json:"name" yaml:"name" validate:"required"`
	Events []*EventDecl `json:"events" yaml:"events" validate:"dive,required"`
}

type EventDecl struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Signature is an operation signature.
type Signature struct {
	Name   string   `json:"name" yaml:"name" validate:"required"`
	Params []*Param `json:"params,omitempty" yaml:"params,omitempty" validate:"dive,required"`
}

type Param struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Component is a platform, controller, state machine or operation,
// either defined in place or referring to a package-level definition.
//
// A reference has Ref, optionally a Name for the instance, and
// nothing else.
type Component struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" validate:"required_without=Ref"`
	Ref  string `json:"ref,omitempty" yaml:"ref,omitempty"`

	// Kind distinguishes state machines ("stm", the default) from
	// operations among Machines.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty" validate:"omitempty,oneof=stm operation"`

	// Uses declares all the events of the named interfaces.
	Uses []string `json:"uses,omitempty" yaml:"uses,omitempty"`

	// Events declares individual events ("Interface.event").
	Events []string `json:"events,omitempty" yaml:"events,omitempty"`

	Provides []string `json:"provides,omitempty" yaml:"provides,omitempty"`

	// Machines and Connections are only for controllers.
	Machines    []*Component  `json:"machines,omitempty" yaml:"machines,omitempty" validate:"dive,required"`
	Connections []*Connection `json:"connections,omitempty" yaml:"connections,omitempty" validate:"dive,required"`
}

// IsRef reports whether the component refers to a definition.
func (c *Component) IsRef() bool {
	return c.Ref != ""
}

// Module is a module definition.
type Module struct {
	Name        string        `json:"name" yaml:"name" validate:"required"`
	Platform    *Component    `json:"platform,omitempty" yaml:"platform,omitempty"`
	Controllers []*Component  `json:"controllers,omitempty" yaml:"controllers,omitempty" validate:"dive,required"`
	Connections []*Connection `json:"connections,omitempty" yaml:"connections,omitempty" validate:"dive,required"`
}

// Connection wires "Node.event" to "Node.event".  A To without an
// event carries the From event.
type Connection struct {
	From          string `json:"from" yaml:"from" validate:"required,contains=."`
	To            string `json:"to" yaml:"to" validate:"required"`
	Bidirectional bool   `json:"bidirectional,omitempty" yaml:"bidirectional,omitempty"`
	Async         bool   `json:"async,omitempty" yaml:"async,omitempty"`
}

// Group is a specification group.
type Group struct {
	Name     string     `json:"name" yaml:"name" validate:"required"`
	Target   *Target    `json:"target" yaml:"target" validate:"required"`
	Actors   []*Actor   `json:"actors" yaml:"actors" validate:"dive,required"`
	Diagrams []*Diagram `json:"diagrams,omitempty" yaml:"diagrams,omitempty" validate:"dive,required"`
	Sets     []*Set     `json:"sets,omitempty" yaml:"sets,omitempty" validate:"dive,required"`
}

// Target kinds.
const (
	TargetModule       = "module"
	TargetController   = "controller"
	TargetStateMachine = "stm"
	TargetOperation    = "operation"
	TargetInModule     = "in-module"
	TargetInController = "in-controller"
)

type Target struct {
	Kind string `json:"kind" yaml:"kind" validate:"required,oneof=module controller stm operation in-module in-controller"`
	Path string `json:"path" yaml:"path" validate:"required"`
}

// Actor kinds.
const (
	ActorTarget    = "target"
	ActorWorld     = "world"
	ActorComponent = "component"
)

type Actor struct {
	Name string `json:"name" yaml:"name" validate:"required,ne=gate"`
	Kind string `json:"kind" yaml:"kind" validate:"required,oneof=target world component"`

	// Node is the path of the component a component actor stands
	// for.
	Node string `json:"node,omitempty" yaml:"node,omitempty" validate:"required_if=Kind component"`
}

type Diagram struct {
	Name     string     `json:"name" yaml:"name" validate:"required"`
	Actors   []string   `json:"actors" yaml:"actors"`
	Messages []*Message `json:"messages,omitempty" yaml:"messages,omitempty" validate:"dive,required"`
}

// Gate is the name of the boundary in a message end.
const Gate = "gate"

// Message names its ends by actor name or Gate.  It has either an
// Event (and maybe a ToEvent) or an Operation.
type Message struct {
	From      string   `json:"from" yaml:"from" validate:"required"`
	To        string   `json:"to" yaml:"to" validate:"required"`
	Event     string   `json:"event,omitempty" yaml:"event,omitempty" validate:"required_without=Operation,excluded_with=Operation"`
	ToEvent   string   `json:"toEvent,omitempty" yaml:"toEvent,omitempty" validate:"excluded_with=Operation"`
	Operation string   `json:"operation,omitempty" yaml:"operation,omitempty"`
	Args      []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// Set is a named message set.
type Set struct {
	Name    string `json:"name" yaml:"name" validate:"required"`
	SetExpr `yaml:",inline"`
}

// SetExpr is a message set expression.  Exactly one of Universe, Ref
// and Op applies; with none of them the expression is the listing of
// Messages (which may be empty).
type SetExpr struct {
	Universe bool       `json:"universe,omitempty" yaml:"universe,omitempty"`
	Ref      string     `json:"ref,omitempty" yaml:"ref,omitempty"`
	Op       string     `json:"op,omitempty" yaml:"op,omitempty" validate:"omitempty,oneof=union inter diff"`
	Left     *SetExpr   `json:"left,omitempty" yaml:"left,omitempty" validate:"required_with=Op"`
	Right    *SetExpr   `json:"right,omitempty" yaml:"right,omitempty" validate:"required_with=Op"`
	Messages []*Message `json:"messages,omitempty" yaml:"messages,omitempty" validate:"dive,required"`
}

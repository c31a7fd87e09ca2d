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

// Package spec holds specification graphs: the targets a
// specification is written against, the actors in its diagrams, and
// the messages those diagrams exchange.
//
// Targets, actors, endpoints, topics and message sets are closed sets
// of variants.  Each is a sealed interface (an unexported marker
// method), so code outside this package switches over the variants
// declared here and nothing else.
package spec

import "github.com/Comcast/certres/arch"

// Target is the architectural scope of a specification group.
//
// Component targets (Module, Controller, StateMachine, Operation)
// denote one node, or a module as a whole.  Collection targets
// (InModule, InController) denote the contents of a module or
// controller.
type Target interface {
	// Subject is the architecture node the target names.
	Subject() arch.NodeID

	isTarget()
}

type ModuleTarget struct{ Module arch.NodeID }
type ControllerTarget struct{ Controller arch.NodeID }
type StateMachineTarget struct{ StateMachine arch.NodeID }
type OperationTarget struct{ Operation arch.NodeID }
type InModuleTarget struct{ Module arch.NodeID }
type InControllerTarget struct{ Controller arch.NodeID }

func (t ModuleTarget) Subject() arch.NodeID       { return t.Module }
func (t ControllerTarget) Subject() arch.NodeID   { return t.Controller }
func (t StateMachineTarget) Subject() arch.NodeID { return t.StateMachine }
func (t OperationTarget) Subject() arch.NodeID    { return t.Operation }
func (t InModuleTarget) Subject() arch.NodeID     { return t.Module }
func (t InControllerTarget) Subject() arch.NodeID { return t.Controller }

func (ModuleTarget) isTarget()       {}
func (ControllerTarget) isTarget()   {}
func (StateMachineTarget) isTarget() {}
func (OperationTarget) isTarget()    {}
func (InModuleTarget) isTarget()     {}
func (InControllerTarget) isTarget() {}

// IsCollection reports whether the target denotes the contents of a
// module or controller.
func IsCollection(t Target) bool {
	switch t.(type) {
	case InModuleTarget, InControllerTarget:
		return true
	}
	return false
}

// TargetKind names the variant, for diagnostics and documents.
func TargetKind(t Target) string {
	switch t.(type) {
	case ModuleTarget:
		return "module"
	case ControllerTarget:
		return "controller"
	case StateMachineTarget:
		return "stm"
	case OperationTarget:
		return "operation"
	case InModuleTarget:
		return "components of module"
	case InControllerTarget:
		return "components of controller"
	}
	return "unknown"
}

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

import (
	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/spec"
)

// OutboundResolver finds the connections relevant to a target.
type OutboundResolver struct {
	g           *arch.Graph
	defs        *DefinitionResolver
	nodes       *NodeResolver
	controllers *ControllerResolver
	machines    *StateMachineResolver
}

func NewOutboundResolver(g *arch.Graph, defs *DefinitionResolver, nodes *NodeResolver, controllers *ControllerResolver, machines *StateMachineResolver) *OutboundResolver {
	return &OutboundResolver{
		g:           g,
		defs:        defs,
		nodes:       nodes,
		controllers: controllers,
		machines:    machines,
	}
}

// scope is the module or controller definition whose connections
// can touch the target.
func (r *OutboundResolver) scope(t spec.Target) (arch.NodeID, error) {
	var (
		owner arch.NodeID
		err   error
	)
	switch vv := t.(type) {
	case spec.ModuleTarget:
		owner, err = r.defs.normaliseKind(vv.Module, arch.KindModule)
	case spec.InModuleTarget:
		owner, err = r.defs.normaliseKind(vv.Module, arch.KindModule)
	case spec.ControllerTarget:
		owner, err = r.controllers.Module(vv.Controller)
	case spec.InControllerTarget:
		owner, err = r.defs.normaliseKind(vv.Controller, arch.KindController)
	case spec.StateMachineTarget:
		owner, err = r.machines.Controller(vv.StateMachine)
	case spec.OperationTarget:
		owner, err = r.machines.Controller(vv.Operation)
	default:
		return arch.NoNode, unsupported("target", t)
	}
	if err != nil {
		return arch.NoNode, violation(t, "finding connection scope", err)
	}
	return owner, nil
}

// Outbound gives the connections crossing the target's boundary.
//
// For a component target, those are the connections of the enclosing
// scope with one end among the target nodes and the other among the
// world nodes: module to platform, controller to platform or sibling,
// state machine to controller or sibling.  A collection target's
// boundary is its whole scope, so every connection there counts.
func (r *OutboundResolver) Outbound(t spec.Target) ([]*arch.Connection, error) {
	owner, err := r.scope(t)
	if err != nil {
		return nil, err
	}
	conns := r.g.ConnectionsOf(owner)
	if spec.IsCollection(t) {
		return conns, nil
	}

	inside, err := r.nodes.TargetNodes(t)
	if err != nil {
		return nil, err
	}
	outside, err := r.nodes.WorldNodes(t)
	if err != nil {
		return nil, err
	}

	acc := make([]*arch.Connection, 0, len(conns))
	for _, c := range conns {
		from, to, err := r.ends(c)
		if err != nil {
			return nil, err
		}
		if (inside.Contains(from) && outside.Contains(to)) ||
			(outside.Contains(from) && inside.Contains(to)) {
			acc = append(acc, c)
		}
	}
	return acc, nil
}

// Internal gives the connections between the components of a
// collection target.
func (r *OutboundResolver) Internal(t spec.Target) ([]*arch.Connection, error) {
	if !spec.IsCollection(t) {
		return nil, violation(t, "only collection targets have internal connections", nil)
	}
	owner, err := r.scope(t)
	if err != nil {
		return nil, err
	}
	return r.g.ConnectionsOf(owner), nil
}

// ends normalises both ends of a connection.
func (r *OutboundResolver) ends(c *arch.Connection) (arch.NodeID, arch.NodeID, error) {
	from, err := r.defs.Normalise(c.From)
	if err != nil {
		return arch.NoNode, arch.NoNode, err
	}
	to, err := r.defs.Normalise(c.To)
	if err != nil {
		return arch.NoNode, arch.NoNode, err
	}
	return from, to, nil
}

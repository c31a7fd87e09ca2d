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

// NodeSet is a set of definition nodes.  Order is the order in which
// nodes were found, which keeps results deterministic.
type NodeSet []arch.NodeID

// Contains reports membership.
func (s NodeSet) Contains(id arch.NodeID) bool {
	for _, x := range s {
		if x == id {
			return true
		}
	}
	return false
}

// With adds the node if it isn't there yet.
func (s NodeSet) With(id arch.NodeID) NodeSet {
	if s.Contains(id) {
		return s
	}
	return append(s, id)
}

// Without returns a new set lacking the given nodes.
func (s NodeSet) Without(ids ...arch.NodeID) NodeSet {
	acc := make(NodeSet, 0, len(s))
	for _, x := range s {
		if !NodeSet(ids).Contains(x) {
			acc = append(acc, x)
		}
	}
	return acc
}

// NodeResolver maps targets, actors and endpoints to the definition
// nodes they stand for.
type NodeResolver struct {
	g           *arch.Graph
	defs        *DefinitionResolver
	modules     *ModuleResolver
	controllers *ControllerResolver
	machines    *StateMachineResolver
}

// NewNodeResolver makes a NodeResolver from its collaborators.
func NewNodeResolver(g *arch.Graph, defs *DefinitionResolver, modules *ModuleResolver, controllers *ControllerResolver, machines *StateMachineResolver) *NodeResolver {
	return &NodeResolver{
		g:           g,
		defs:        defs,
		modules:     modules,
		controllers: controllers,
		machines:    machines,
	}
}

// TargetNodes gives the nodes that stand for the target itself.
//
// A module is represented by its controllers (the platform is the
// module's world).  The other component targets are their own node.
// Collection targets use the rule of the corresponding component
// target.
func (r *NodeResolver) TargetNodes(t spec.Target) (NodeSet, error) {
	switch vv := t.(type) {
	case spec.ModuleTarget:
		return r.moduleTargetNodes(t, vv.Module)
	case spec.InModuleTarget:
		return r.moduleTargetNodes(t, vv.Module)
	case spec.ControllerTarget:
		return r.single(t, vv.Controller, arch.KindController)
	case spec.InControllerTarget:
		return r.single(t, vv.Controller, arch.KindController)
	case spec.StateMachineTarget:
		return r.single(t, vv.StateMachine, arch.KindStateMachine)
	case spec.OperationTarget:
		return r.single(t, vv.Operation, arch.KindOperation)
	default:
		return nil, unsupported("target", t)
	}
}

func (r *NodeResolver) moduleTargetNodes(t spec.Target, module arch.NodeID) (NodeSet, error) {
	cs, err := r.modules.Controllers(module)
	if err != nil {
		return nil, violation(t, "resolving module", err)
	}
	return cs, nil
}

func (r *NodeResolver) single(t spec.Target, id arch.NodeID, kind arch.Kind) (NodeSet, error) {
	d, err := r.defs.normaliseKind(id, kind)
	if err != nil {
		return nil, violation(t, "resolving subject", err)
	}
	return NodeSet{d}, nil
}

// WorldNodes gives the complement of the target within its enclosing
// scope, never including the target's own node.
func (r *NodeResolver) WorldNodes(t spec.Target) (NodeSet, error) {
	switch vv := t.(type) {
	case spec.ModuleTarget:
		p, err := r.modules.Platform(vv.Module)
		if err != nil {
			return nil, violation(t, "resolving platform", err)
		}
		if p == arch.NoNode {
			return NodeSet{}, nil
		}
		return NodeSet{p}, nil

	case spec.InModuleTarget:
		p, err := r.modules.Platform(vv.Module)
		if err != nil {
			return nil, violation(t, "resolving platform", err)
		}
		cs, err := r.modules.Controllers(vv.Module)
		if err != nil {
			return nil, violation(t, "resolving controllers", err)
		}
		acc := NodeSet{}
		if p != arch.NoNode {
			acc = acc.With(p)
		}
		for _, c := range cs {
			acc = acc.With(c)
		}
		return acc, nil

	case spec.ControllerTarget:
		self, err := r.defs.normaliseKind(vv.Controller, arch.KindController)
		if err != nil {
			return nil, violation(t, "resolving controller", err)
		}
		m, err := r.controllers.Module(vv.Controller)
		if err != nil {
			return nil, violation(t, "finding module", err)
		}
		p, err := r.modules.Platform(m)
		if err != nil {
			return nil, violation(t, "resolving platform", err)
		}
		cs, err := r.modules.Controllers(m)
		if err != nil {
			return nil, violation(t, "resolving controllers", err)
		}
		acc := NodeSet{}
		if p != arch.NoNode {
			acc = acc.With(p)
		}
		for _, c := range cs {
			acc = acc.With(c)
		}
		return acc.Without(self), nil

	case spec.InControllerTarget:
		self, err := r.defs.normaliseKind(vv.Controller, arch.KindController)
		if err != nil {
			return nil, violation(t, "resolving controller", err)
		}
		ms, err := r.controllers.Machines(self)
		if err != nil {
			return nil, violation(t, "resolving machines", err)
		}
		acc := NodeSet{self}
		for _, m := range ms {
			acc = acc.With(m)
		}
		return acc, nil

	case spec.StateMachineTarget:
		return r.machineWorld(t, vv.StateMachine, arch.KindStateMachine)

	case spec.OperationTarget:
		return r.machineWorld(t, vv.Operation, arch.KindOperation)

	default:
		return nil, unsupported("target", t)
	}
}

func (r *NodeResolver) machineWorld(t spec.Target, id arch.NodeID, kind arch.Kind) (NodeSet, error) {
	self, err := r.defs.normaliseKind(id, kind)
	if err != nil {
		return nil, violation(t, "resolving subject", err)
	}
	c, err := r.machines.Controller(id)
	if err != nil {
		return nil, violation(t, "finding controller", err)
	}
	ms, err := r.controllers.Machines(c)
	if err != nil {
		return nil, violation(t, "resolving machines", err)
	}
	acc := NodeSet{c}
	for _, m := range ms {
		acc = acc.With(m)
	}
	return acc.Without(self), nil
}

// Actor gives the nodes an actor stands for under the target.
func (r *NodeResolver) Actor(a spec.Actor, t spec.Target) (NodeSet, error) {
	switch vv := a.(type) {
	case *spec.TargetActor:
		return r.TargetNodes(t)
	case *spec.World:
		return r.WorldNodes(t)
	case *spec.ComponentActor:
		d, err := r.defs.Normalise(vv.Node)
		if err != nil {
			return nil, err
		}
		return NodeSet{d}, nil
	default:
		return nil, unsupported("actor", a)
	}
}

// Endpoint gives the nodes a message end stands for in the context.
//
// A gate is the world of the target minus whatever the diagram's
// component actors already stand for.
func (r *NodeResolver) Endpoint(e spec.Endpoint, ctx spec.ResolveContext) (NodeSet, error) {
	switch vv := e.(type) {
	case spec.ActorEndpoint:
		return r.Actor(vv.Actor, ctx.Target)
	case spec.Gate:
		world, err := r.WorldNodes(ctx.Target)
		if err != nil {
			return nil, err
		}
		claimed := NodeSet{}
		for _, a := range ctx.Actors {
			ca, is := a.(*spec.ComponentActor)
			if !is {
				continue
			}
			d, err := r.defs.Normalise(ca.Node)
			if err != nil {
				return nil, err
			}
			claimed = claimed.With(d)
		}
		return world.Without(claimed...), nil
	default:
		return nil, unsupported("endpoint", e)
	}
}

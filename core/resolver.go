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
	"iter"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/spec"
)

// Config holds the few knobs resolution has.
type Config struct {
	// FollowSetReferences makes the SetAnalyser look through
	// references to named sets.
	FollowSetReferences bool `json:"followSetReferences" yaml:"followSetReferences"`

	// DeclaredSenderForBackwards makes the effective sender of a
	// backwards match between two named components the declared
	// from end instead of the declared to end.
	DeclaredSenderForBackwards bool `json:"declaredSenderForBackwards,omitempty" yaml:"declaredSenderForBackwards,omitempty"`
}

// DefaultConfig follows set references and keeps the direction-based
// sender rule.
func DefaultConfig() Config {
	return Config{
		FollowSetReferences: true,
	}
}

// Resolver wires the component resolvers together for one graph.
//
// The components are exported so that callers needing only one of
// them can use it directly.
type Resolver struct {
	Graph *arch.Graph

	Defs          *DefinitionResolver
	Modules       *ModuleResolver
	Controllers   *ControllerResolver
	StateMachines *StateMachineResolver
	Names         *NameResolver
	Nodes         *NodeResolver
	Outbound      *OutboundResolver
	Events        *EventResolver
	Topics        *TopicResolver
	Sets          *SetAnalyser
}

// NewResolver builds a Resolver for the graph.
func NewResolver(g *arch.Graph, cfg Config) *Resolver {
	defs := NewDefinitionResolver(g)
	modules := NewModuleResolver(g, defs)
	controllers := NewControllerResolver(g, defs)
	machines := NewStateMachineResolver(g, defs)
	nodes := NewNodeResolver(g, defs, modules, controllers, machines)
	outbound := NewOutboundResolver(g, defs, nodes, controllers, machines)
	events := NewEventResolver(g, defs, nodes, outbound)
	events.DeclaredSenderForBackwards = cfg.DeclaredSenderForBackwards

	return &Resolver{
		Graph:         g,
		Defs:          defs,
		Modules:       modules,
		Controllers:   controllers,
		StateMachines: machines,
		Names:         NewNameResolver(g),
		Nodes:         nodes,
		Outbound:      outbound,
		Events:        events,
		Topics:        NewTopicResolver(g, events),
		Sets:          &SetAnalyser{FollowRefs: cfg.FollowSetReferences},
	}
}

func (r *Resolver) ResolveTargetNodes(t spec.Target) (NodeSet, error) {
	return r.Nodes.TargetNodes(t)
}

func (r *Resolver) ResolveWorldNodes(t spec.Target) (NodeSet, error) {
	return r.Nodes.WorldNodes(t)
}

func (r *Resolver) ResolveActor(a spec.Actor, t spec.Target) (NodeSet, error) {
	return r.Nodes.Actor(a, t)
}

func (r *Resolver) ResolveEndpoint(e spec.Endpoint, ctx spec.ResolveContext) (NodeSet, error) {
	return r.Nodes.Endpoint(e, ctx)
}

func (r *Resolver) ResolveEvent(q EventQuery) (iter.Seq[ResolvedEvent], error) {
	return r.Events.Resolve(q)
}

func (r *Resolver) ResolveTopic(m *spec.Message, ctx spec.ResolveContext) (ResolvedTopic, error) {
	return r.Topics.Resolve(m, ctx)
}

func (r *Resolver) Analyse(s spec.MessageSet) Analysis {
	return r.Sets.Analyse(s)
}

// QualifiedName is NameResolver.Qualified.
func (r *Resolver) QualifiedName(id arch.NodeID) []string {
	return r.Names.Qualified(id)
}

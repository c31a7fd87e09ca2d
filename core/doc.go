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

// Package core resolves specifications against architectures.
//
// A specification talks about targets, actors and messages.  An
// architecture has nodes and connections.  Resolution maps the
// former onto the latter: which nodes does an actor (or a gate) stand
// for, and which connection (in which direction) does a message
// denote?
//
// The resolvers are layered.  The DefinitionResolver turns references
// into definitions.  The name resolvers (ModuleResolver,
// ControllerResolver, StateMachineResolver, NameResolver) walk
// containment.  The NodeResolver computes target, world, actor and
// endpoint node sets.  The OutboundResolver picks the connections that
// cross a target's boundary, and the EventResolver matches event
// topics against them.  The TopicResolver packages all that per
// message.  Separately, the SetAnalyser approximates whether a
// message set expression is empty or universal.
//
// Every resolver is a pure function of a frozen arch.Graph and its
// arguments.  Nothing here mutates, blocks or logs, so a Resolver can
// be shared by goroutines as long as nobody is still building the
// graph.
//
// To use this package, build an arch.Graph and some spec.Groups, make
// a Resolver with NewResolver(), and then ask it things.
package core

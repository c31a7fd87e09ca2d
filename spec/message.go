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

import "github.com/Comcast/certres/arch"

// Actor is a named party in a group's diagrams.  Actors are compared
// by identity, so always pass the pointers a Group owns.
type Actor interface {
	ActorName() string
	isActor()
}

// TargetActor stands for the target itself.
type TargetActor struct {
	Name string
}

// World stands for everything outside the target.
type World struct {
	Name string
}

// ComponentActor stands for one explicitly named architecture node.
// Only meaningful with collection targets.
type ComponentActor struct {
	Name string
	Node arch.NodeID
}

func (a *TargetActor) ActorName() string    { return a.Name }
func (a *World) ActorName() string          { return a.Name }
func (a *ComponentActor) ActorName() string { return a.Name }

func (*TargetActor) isActor()    {}
func (*World) isActor()          {}
func (*ComponentActor) isActor() {}

// Endpoint is one end of a message.
type Endpoint interface {
	isEndpoint()
}

// ActorEndpoint is an occurrence of an actor.
type ActorEndpoint struct {
	Actor Actor
}

// Gate is the boundary of a diagram.  For matching purposes it is
// the world, minus anything a live actor already stands for.
type Gate struct{}

func (ActorEndpoint) isEndpoint() {}
func (Gate) isEndpoint()          {}

// At makes an endpoint for an actor.
func At(a Actor) Endpoint {
	return ActorEndpoint{Actor: a}
}

// IsWorldish reports whether an endpoint is a gate or a world actor.
func IsWorldish(e Endpoint) bool {
	switch vv := e.(type) {
	case Gate:
		return true
	case ActorEndpoint:
		_, is := vv.Actor.(*World)
		return is
	}
	return false
}

// IsComponent reports whether an endpoint is a component actor.
func IsComponent(e Endpoint) bool {
	if ae, is := e.(ActorEndpoint); is {
		_, is = ae.Actor.(*ComponentActor)
		return is
	}
	return false
}

// EndpointName renders an endpoint for humans.
func EndpointName(e Endpoint) string {
	switch vv := e.(type) {
	case Gate:
		return "gate"
	case ActorEndpoint:
		if vv.Actor == nil {
			return "<nil>"
		}
		return vv.Actor.ActorName()
	}
	return "<unknown>"
}

// Topic is what a message is about.
type Topic interface {
	isTopic()
}

// EventTopic is an event, optionally paired with a different event
// at the receiving end.  A To of arch.NoEvent is a wildcard.
type EventTopic struct {
	From arch.EventID
	To   arch.EventID
}

// OperationTopic is an operation call.
type OperationTopic struct {
	Sig arch.SigID
}

func (EventTopic) isTopic()     {}
func (OperationTopic) isTopic() {}

// Message is a message between two ends.
type Message struct {
	From  Endpoint
	To    Endpoint
	Topic Topic
	Args  []string
}

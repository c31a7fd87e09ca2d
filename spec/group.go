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

// Diagram is a sequence of messages between a diagram's live actors.
type Diagram struct {
	Name     string
	Actors   []Actor
	Messages []*Message
}

// Group owns a Target, its actors, diagrams and named message sets.
type Group struct {
	Name     string
	Target   Target
	Actors   []Actor
	Diagrams []*Diagram
	Sets     []*NamedSet
}

// ResolveContext is the scope of every resolution call: the target
// and the actors live in one diagram.
type ResolveContext struct {
	Target Target
	Actors []Actor
}

// Context makes the ResolveContext for one of the group's diagrams.
func (g *Group) Context(d *Diagram) ResolveContext {
	return ResolveContext{
		Target: g.Target,
		Actors: d.Actors,
	}
}

// Owns reports whether the actor is one of the group's.
func (g *Group) Owns(a Actor) bool {
	for _, mine := range g.Actors {
		if mine == a {
			return true
		}
	}
	return false
}

// Actor finds an actor by name.
func (g *Group) Actor(name string) (Actor, bool) {
	for _, a := range g.Actors {
		if a.ActorName() == name {
			return a, true
		}
	}
	return nil, false
}

// Set finds a named message set.
func (g *Group) Set(name string) (*NamedSet, bool) {
	for _, s := range g.Sets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Live reports whether the actor takes part in the diagram.
func (d *Diagram) Live(a Actor) bool {
	for _, live := range d.Actors {
		if live == a {
			return true
		}
	}
	return false
}

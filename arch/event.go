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

package arch

// EventID indexes an Event in a Graph.
type EventID int

// NoEvent is the absent event.  As a connection's ToEvent it means
// the destination reuses the source event.
const NoEvent EventID = -1

// Event is an event declaration.
//
// An event can be an alias of another declaration (Of), which is how
// a node picks up an event provided by a shared interface.  Two event
// ids denote the same event if they alias the same declaration.
type Event struct {
	ID   EventID
	Name string
	Type string
	Of   EventID
}

// SigID indexes an OpSig in a Graph.
type SigID int

// Param is an operation parameter.
type Param struct {
	Name string
	Type string
}

// OpSig is an operation signature.
type OpSig struct {
	ID     SigID
	Name   string
	Params []Param
}

// ConnID indexes a Connection in a Graph.
type ConnID int

// Connection links (From, FromEvent) to (To, ToEvent).
type Connection struct {
	ID ConnID

	// Owner is the module or controller that declares this
	// connection.
	Owner NodeID

	From      NodeID
	FromEvent EventID
	To        NodeID

	// ToEvent is NoEvent when the destination reuses FromEvent.
	ToEvent EventID

	Bidirectional bool
	Async         bool
}

// DestEvent is the event at the To end.
func (c *Connection) DestEvent() EventID {
	if c.ToEvent == NoEvent {
		return c.FromEvent
	}
	return c.ToEvent
}

// CanonicalEvent follows aliases to the underlying declaration.
//
// Returns NoEvent for an invalid id.
func (g *Graph) CanonicalEvent(id EventID) EventID {
	// Aliases are only created against existing events, so the
	// chain is acyclic and bounded by len(g.events).
	for steps := 0; steps <= len(g.events); steps++ {
		e := g.Event(id)
		if e == nil {
			return NoEvent
		}
		if e.Of == NoEvent {
			return id
		}
		id = e.Of
	}
	return NoEvent
}

// SameEvent reports whether two event ids denote the same underlying
// declaration.  Invalid ids are never the same as anything.
func (g *Graph) SameEvent(a, b EventID) bool {
	ca := g.CanonicalEvent(a)
	if ca == NoEvent {
		return false
	}
	return ca == g.CanonicalEvent(b)
}

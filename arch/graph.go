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

// Package arch holds architecture graphs: modules, platforms,
// controllers, state machines and operations, the events they
// declare, and the connections between them.
//
// A Graph is an arena.  Nodes, events, signatures and connections are
// kept in tables and refer to each other by index, so a parent link
// is an index lookup rather than a pointer.  Once built, a Graph is
// meant to be read (concurrently, if you like) and never mutated.
package arch

import (
	"errors"
	"fmt"
)

// ContainmentError occurs when a node is added under a parent that
// cannot contain it.
type ContainmentError struct {
	Parent Kind
	Child  Kind
}

func (e *ContainmentError) Error() string {
	return fmt.Sprintf("a %s cannot contain a %s", e.Parent, e.Child)
}

// BadConnection occurs when a connection's ends are not visible from
// its owner.
type BadConnection struct {
	Owner  string
	Reason string
}

func (e *BadConnection) Error() string {
	return `bad connection in "` + e.Owner + `": ` + e.Reason
}

var (
	// UnknownNode is returned when an id isn't in the Graph.
	UnknownNode = errors.New("unknown node")

	// UnknownEvent is returned when an event id isn't in the Graph.
	UnknownEvent = errors.New("unknown event")

	// SecondPlatform is returned when a module already has a platform.
	SecondPlatform = errors.New("module already has a platform")

	// NotADefinition is returned when a reference is made to a
	// reference.
	NotADefinition = errors.New("reference target is not a definition")

	// NoParent is returned for a reference made at package level.
	NoParent = errors.New("a reference needs a parent")
)

// Graph is an architecture.
type Graph struct {
	nodes  []Node
	events []Event
	sigs   []OpSig
	conns  []Connection
}

// New makes an empty Graph.
func New() *Graph {
	return &Graph{}
}

// Node returns the node with the given id or nil.
//
// The returned pointer is invalidated by further construction.
func (g *Graph) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return &g.nodes[id]
}

// Event returns the event with the given id or nil.
func (g *Graph) Event(id EventID) *Event {
	if id < 0 || int(id) >= len(g.events) {
		return nil
	}
	return &g.events[id]
}

// Sig returns the operation signature with the given id or nil.
func (g *Graph) Sig(id SigID) *OpSig {
	if id < 0 || int(id) >= len(g.sigs) {
		return nil
	}
	return &g.sigs[id]
}

// Connection returns the connection with the given id or nil.
func (g *Graph) Connection(id ConnID) *Connection {
	if id < 0 || int(id) >= len(g.conns) {
		return nil
	}
	return &g.conns[id]
}

// NumNodes is the size of the node table.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumConnections is the size of the connection table.
func (g *Graph) NumConnections() int { return len(g.conns) }

// NumEvents is the size of the event table, aliases included.
func (g *Graph) NumEvents() int { return len(g.events) }

func (g *Graph) NumSigs() int { return len(g.sigs) }

// Roots gives the package-level nodes in the order they were added.
func (g *Graph) Roots() []NodeID {
	acc := make([]NodeID, 0, 8)
	for i := range g.nodes {
		if g.nodes[i].Parent == NoNode {
			acc = append(acc, NodeID(i))
		}
	}
	return acc
}

// ConnectionsOf gives the connections declared by a module or
// controller definition.
func (g *Graph) ConnectionsOf(owner NodeID) []*Connection {
	n := g.Node(owner)
	if n == nil {
		return nil
	}
	acc := make([]*Connection, 0, len(n.Connections))
	for _, cid := range n.Connections {
		acc = append(acc, &g.conns[cid])
	}
	return acc
}

// Platform finds the platform of a module (which may be a reference
// to a platform definition).  Returns NoNode if there isn't one.
func (g *Graph) Platform(module NodeID) NodeID {
	for _, kid := range g.ChildrenOfKind(module, KindPlatform) {
		return kid
	}
	return NoNode
}

// ChildrenOfKind filters a node's children by kind.
func (g *Graph) ChildrenOfKind(parent NodeID, kinds ...Kind) []NodeID {
	n := g.Node(parent)
	if n == nil {
		return nil
	}
	acc := make([]NodeID, 0, len(n.Children))
	for _, kid := range n.Children {
		k := g.nodes[kid].Kind
		for _, want := range kinds {
			if k == want {
				acc = append(acc, kid)
				break
			}
		}
	}
	return acc
}

// PackageOf walks up to the root and returns its package.
func (g *Graph) PackageOf(id NodeID) string {
	for steps := 0; steps <= len(g.nodes); steps++ {
		n := g.Node(id)
		if n == nil {
			return ""
		}
		if n.Parent == NoNode {
			return n.Package
		}
		id = n.Parent
	}
	return ""
}

// AddDefinition adds a definition of the given kind.
//
// A parent of NoNode makes a package-level definition.  Otherwise the
// parent must be a module or controller definition that can contain
// the kind.  Modules are always package-level.
func (g *Graph) AddDefinition(kind Kind, parent NodeID, pkg, name string) (NodeID, error) {
	if err := g.checkParent(kind, parent); err != nil {
		return NoNode, err
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{
		ID:      id,
		Kind:    kind,
		Name:    name,
		Package: pkg,
		Parent:  parent,
		Ref:     NoNode,
	})
	if parent != NoNode {
		g.nodes[parent].Children = append(g.nodes[parent].Children, id)
	}
	return id, nil
}

// AddReference adds a reference to def inside parent.  An empty name
// uses the definition's name.
func (g *Graph) AddReference(parent NodeID, def NodeID, name string) (NodeID, error) {
	d := g.Node(def)
	if d == nil {
		return NoNode, fmt.Errorf("reference to %d: %w", def, UnknownNode)
	}
	if d.IsReference() {
		return NoNode, fmt.Errorf("reference to %s: %w", d.Name, NotADefinition)
	}
	if parent == NoNode {
		return NoNode, fmt.Errorf("reference to %s: %w", d.Name, NoParent)
	}
	kind := d.Kind
	if name == "" {
		name = d.Name
	}
	if err := g.checkParent(kind, parent); err != nil {
		return NoNode, err
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{
		ID:     id,
		Kind:   kind,
		Name:   name,
		Parent: parent,
		Ref:    def,
	})
	g.nodes[parent].Children = append(g.nodes[parent].Children, id)
	return id, nil
}

func (g *Graph) checkParent(kind Kind, parent NodeID) error {
	if parent == NoNode {
		return nil
	}
	p := g.Node(parent)
	if p == nil {
		return fmt.Errorf("parent %d: %w", parent, UnknownNode)
	}
	if p.IsReference() || !canContain(p.Kind, kind) {
		return &ContainmentError{Parent: p.Kind, Child: kind}
	}
	if kind == KindPlatform && len(g.ChildrenOfKind(parent, KindPlatform)) > 0 {
		return fmt.Errorf("%s: %w", p.Name, SecondPlatform)
	}
	return nil
}

// AddEvent declares a new event.
func (g *Graph) AddEvent(name, typ string) EventID {
	id := EventID(len(g.events))
	g.events = append(g.events, Event{ID: id, Name: name, Type: typ, Of: NoEvent})
	return id
}

// AliasEvent makes a new event id standing for an existing
// declaration.
func (g *Graph) AliasEvent(of EventID) (EventID, error) {
	e := g.Event(of)
	if e == nil {
		return NoEvent, UnknownEvent
	}
	id := EventID(len(g.events))
	g.events = append(g.events, Event{ID: id, Name: e.Name, Type: e.Type, Of: of})
	return id, nil
}

// Declare attaches events to a definition.
func (g *Graph) Declare(node NodeID, events ...EventID) error {
	n := g.Node(node)
	if n == nil {
		return UnknownNode
	}
	if n.IsReference() {
		return fmt.Errorf("declaring events on %s: %w", n.Name, NotADefinition)
	}
	for _, e := range events {
		if g.Event(e) == nil {
			return UnknownEvent
		}
	}
	n.Events = append(n.Events, events...)
	return nil
}

// AddSig declares an operation signature.
func (g *Graph) AddSig(name string, params ...Param) SigID {
	id := SigID(len(g.sigs))
	g.sigs = append(g.sigs, OpSig{ID: id, Name: name, Params: params})
	return id
}

// Provide records that a definition provides an operation.
func (g *Graph) Provide(node NodeID, sig SigID) error {
	n := g.Node(node)
	if n == nil {
		return UnknownNode
	}
	if g.Sig(sig) == nil {
		return fmt.Errorf("unknown signature %d", sig)
	}
	n.Sigs = append(n.Sigs, sig)
	return nil
}

// Connect adds a connection declared by c.Owner, which must be a
// module or controller definition.  Each end must be a child of the
// owner or, for a controller, the owner itself.  c.ID is assigned.
func (g *Graph) Connect(c Connection) (ConnID, error) {
	owner := g.Node(c.Owner)
	if owner == nil {
		return -1, fmt.Errorf("connection owner: %w", UnknownNode)
	}
	if owner.IsReference() || (owner.Kind != KindModule && owner.Kind != KindController) {
		return -1, &BadConnection{Owner: owner.Name, Reason: "owner must be a module or controller definition"}
	}
	for _, end := range []NodeID{c.From, c.To} {
		n := g.Node(end)
		if n == nil {
			return -1, &BadConnection{Owner: owner.Name, Reason: "unknown end"}
		}
		if n.Parent != c.Owner && !(end == c.Owner && owner.Kind == KindController) {
			return -1, &BadConnection{Owner: owner.Name, Reason: n.Name + " is not visible here"}
		}
	}
	if g.Event(c.FromEvent) == nil {
		return -1, &BadConnection{Owner: owner.Name, Reason: "unknown from event"}
	}
	if c.ToEvent != NoEvent && g.Event(c.ToEvent) == nil {
		return -1, &BadConnection{Owner: owner.Name, Reason: "unknown to event"}
	}
	id := ConnID(len(g.conns))
	c.ID = id
	g.conns = append(g.conns, c)
	g.nodes[c.Owner].Connections = append(g.nodes[c.Owner].Connections, id)
	return id, nil
}

// Lookup finds a node by a path of names: package, root name, then
// child names.  An empty package matches roots declared without one.
func (g *Graph) Lookup(pkg string, path ...string) (NodeID, bool) {
	if len(path) == 0 {
		return NoNode, false
	}
	at := NoNode
	for _, root := range g.Roots() {
		n := &g.nodes[root]
		if n.Package == pkg && n.Name == path[0] {
			at = root
			break
		}
	}
	if at == NoNode {
		return NoNode, false
	}
	for _, name := range path[1:] {
		next := NoNode
		for _, kid := range g.nodes[at].Children {
			if g.nodes[kid].Name == name {
				next = kid
				break
			}
		}
		if next == NoNode {
			return NoNode, false
		}
		at = next
	}
	return at, true
}

// FindEvent finds an event declared by the given node's definition
// by name.
func (g *Graph) FindEvent(node NodeID, name string) (EventID, bool) {
	n := g.Node(node)
	if n == nil {
		return NoEvent, false
	}
	if n.IsReference() {
		n = g.Node(n.Ref)
		if n == nil {
			return NoEvent, false
		}
	}
	for _, e := range n.Events {
		if g.events[e].Name == name {
			return e, true
		}
	}
	return NoEvent, false
}

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

// Kind is the kind of a structural node.
type Kind int

const (
	KindModule Kind = iota
	KindPlatform
	KindController
	KindStateMachine
	KindOperation
)

var kindNames = []string{
	KindModule:       "module",
	KindPlatform:     "platform",
	KindController:   "controller",
	KindStateMachine: "stm",
	KindOperation:    "operation",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// NodeID indexes a Node in a Graph.
type NodeID int

// NoNode is the absent node (no parent, not a reference).
const NoNode NodeID = -1

// Node is a structural element of an architecture.
//
// A Node is either a definition or a reference to a definition
// elsewhere in the same Graph.  A reference carries its own instance
// Name and Parent but nothing else; events, children and connections
// belong to the definition.
type Node struct {
	ID   NodeID
	Kind Kind
	Name string

	// Package is the namespace of a root node.  Nodes with a
	// Parent inherit their package from their root.
	Package string

	// Parent is the module or controller containing this node, or
	// NoNode for a package-level definition.
	Parent NodeID

	// Ref is the referenced definition, or NoNode if this node is
	// itself a definition.
	Ref NodeID

	Children    []NodeID
	Events      []EventID
	Sigs        []SigID
	Connections []ConnID
}

// IsReference reports whether the node refers to a definition
// elsewhere.
func (n *Node) IsReference() bool {
	return n.Ref != NoNode
}

// canContain gives, for each kind, the kinds allowed as its parent.
// NoNode stands for "package level".
func canContain(parent Kind, child Kind) bool {
	switch child {
	case KindPlatform, KindController:
		return parent == KindModule
	case KindStateMachine, KindOperation:
		return parent == KindController
	}
	return false
}

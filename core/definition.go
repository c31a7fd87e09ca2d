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
	"fmt"

	"github.com/Comcast/certres/arch"
)

// DefinitionResolver normalises a reference-or-definition node to its
// definition.
type DefinitionResolver struct {
	g *arch.Graph
}

// NewDefinitionResolver makes a DefinitionResolver over the graph.
func NewDefinitionResolver(g *arch.Graph) *DefinitionResolver {
	return &DefinitionResolver{g: g}
}

// Normalise returns the definition of the given node: the node itself
// if it is a definition, or what it refers to.
func (r *DefinitionResolver) Normalise(id arch.NodeID) (arch.NodeID, error) {
	n := r.g.Node(id)
	if n == nil {
		return arch.NoNode, unsupported("node", id)
	}
	switch n.Kind {
	case arch.KindModule, arch.KindPlatform, arch.KindController, arch.KindStateMachine, arch.KindOperation:
	default:
		return arch.NoNode, unsupported("node kind", n.Kind)
	}
	if !n.IsReference() {
		return id, nil
	}
	d := r.g.Node(n.Ref)
	if d == nil || d.IsReference() || d.Kind != n.Kind {
		return arch.NoNode, unsupported("reference target", n.Ref)
	}
	return n.Ref, nil
}

// NormaliseAll normalises each node and removes duplicates, keeping
// the first occurrence's position.
func (r *DefinitionResolver) NormaliseAll(ids []arch.NodeID) (NodeSet, error) {
	acc := make(NodeSet, 0, len(ids))
	for _, id := range ids {
		d, err := r.Normalise(id)
		if err != nil {
			return nil, err
		}
		acc = acc.With(d)
	}
	return acc, nil
}

// normaliseKind is Normalise plus a check of the definition's kind.
func (r *DefinitionResolver) normaliseKind(id arch.NodeID, kinds ...arch.Kind) (arch.NodeID, error) {
	d, err := r.Normalise(id)
	if err != nil {
		return arch.NoNode, err
	}
	k := r.g.Node(d).Kind
	for _, want := range kinds {
		if k == want {
			return d, nil
		}
	}
	return arch.NoNode, fmt.Errorf("%s is a %s: %w", r.g.Node(d).Name, k, WrongKind)
}

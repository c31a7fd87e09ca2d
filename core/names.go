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
	"strings"

	"github.com/Comcast/certres/arch"
)

// enclosing finds the module or controller definition that contains
// def, walking containment from the roots.  A definition with a
// parent is contained by that parent.  A package-level definition is
// contained wherever it is first referenced from a parent of the
// given kind.
func enclosing(g *arch.Graph, def arch.NodeID, parentKind arch.Kind) (arch.NodeID, error) {
	n := g.Node(def)
	if n == nil {
		return arch.NoNode, unsupported("node", def)
	}
	if n.Parent != arch.NoNode {
		if p := g.Node(n.Parent); p.Kind == parentKind {
			return n.Parent, nil
		}
		return arch.NoNode, fmt.Errorf("%s: %w", n.Name, NoEnclosingScope)
	}

	found := arch.NoNode
	var walk func(at arch.NodeID, depth int)
	walk = func(at arch.NodeID, depth int) {
		if found != arch.NoNode || depth > g.NumNodes() {
			return
		}
		for _, kid := range g.Node(at).Children {
			k := g.Node(kid)
			if k.Ref == def && g.Node(at).Kind == parentKind {
				found = at
				return
			}
			walk(kid, depth+1)
		}
	}
	for _, root := range g.Roots() {
		walk(root, 0)
		if found != arch.NoNode {
			return found, nil
		}
	}
	return arch.NoNode, fmt.Errorf("%s: %w", n.Name, NoEnclosingScope)
}

// ModuleResolver answers questions about modules.
type ModuleResolver struct {
	g    *arch.Graph
	defs *DefinitionResolver
}

func NewModuleResolver(g *arch.Graph, defs *DefinitionResolver) *ModuleResolver {
	return &ModuleResolver{g: g, defs: defs}
}

// Platform is the module's platform definition, or NoNode.
func (r *ModuleResolver) Platform(module arch.NodeID) (arch.NodeID, error) {
	m, err := r.defs.normaliseKind(module, arch.KindModule)
	if err != nil {
		return arch.NoNode, err
	}
	p := r.g.Platform(m)
	if p == arch.NoNode {
		return arch.NoNode, nil
	}
	return r.defs.Normalise(p)
}

// Controllers are the module's controller definitions in declaration
// order.
func (r *ModuleResolver) Controllers(module arch.NodeID) (NodeSet, error) {
	m, err := r.defs.normaliseKind(module, arch.KindModule)
	if err != nil {
		return nil, err
	}
	return r.defs.NormaliseAll(r.g.ChildrenOfKind(m, arch.KindController))
}

// ControllerResolver answers questions about controllers.
type ControllerResolver struct {
	g    *arch.Graph
	defs *DefinitionResolver
}

func NewControllerResolver(g *arch.Graph, defs *DefinitionResolver) *ControllerResolver {
	return &ControllerResolver{g: g, defs: defs}
}

// Module finds the module definition containing the controller.
func (r *ControllerResolver) Module(controller arch.NodeID) (arch.NodeID, error) {
	c, err := r.defs.normaliseKind(controller, arch.KindController)
	if err != nil {
		return arch.NoNode, err
	}
	// A reference already knows where it lives.
	if n := r.g.Node(controller); n.IsReference() {
		return n.Parent, nil
	}
	return enclosing(r.g, c, arch.KindModule)
}

// Machines are the controller's state machine and operation
// definitions in declaration order.
func (r *ControllerResolver) Machines(controller arch.NodeID) (NodeSet, error) {
	c, err := r.defs.normaliseKind(controller, arch.KindController)
	if err != nil {
		return nil, err
	}
	return r.defs.NormaliseAll(r.g.ChildrenOfKind(c, arch.KindStateMachine, arch.KindOperation))
}

// StateMachineResolver answers questions about state machines and
// operations.
type StateMachineResolver struct {
	g    *arch.Graph
	defs *DefinitionResolver
}

func NewStateMachineResolver(g *arch.Graph, defs *DefinitionResolver) *StateMachineResolver {
	return &StateMachineResolver{g: g, defs: defs}
}

// Controller finds the controller definition containing the state
// machine or operation.
func (r *StateMachineResolver) Controller(machine arch.NodeID) (arch.NodeID, error) {
	s, err := r.defs.normaliseKind(machine, arch.KindStateMachine, arch.KindOperation)
	if err != nil {
		return arch.NoNode, err
	}
	if n := r.g.Node(machine); n.IsReference() {
		return n.Parent, nil
	}
	return enclosing(r.g, s, arch.KindController)
}

// NameResolver computes qualified names.
type NameResolver struct {
	g *arch.Graph
}

func NewNameResolver(g *arch.Graph) *NameResolver {
	return &NameResolver{g: g}
}

// Qualified gives the path of names leading to the node: package,
// module, controller, element (as far as they apply).
//
// A reference is named by where it sits.  A package-level definition
// is named by where it is first used, if it is used anywhere.
func (r *NameResolver) Qualified(id arch.NodeID) []string {
	acc := make([]string, 0, 4)
	at := id
	for steps := 0; steps <= r.g.NumNodes(); steps++ {
		n := r.g.Node(at)
		if n == nil {
			break
		}
		acc = append(acc, n.Name)
		parent := n.Parent
		if parent == arch.NoNode && !n.IsReference() {
			switch n.Kind {
			case arch.KindController, arch.KindPlatform:
				parent, _ = enclosing(r.g, at, arch.KindModule)
			case arch.KindStateMachine, arch.KindOperation:
				parent, _ = enclosing(r.g, at, arch.KindController)
			}
		}
		if parent == arch.NoNode {
			if n.Package != "" {
				acc = append(acc, n.Package)
			}
			break
		}
		at = parent
	}
	for i, j := 0, len(acc)-1; i < j; i, j = i+1, j-1 {
		acc[i], acc[j] = acc[j], acc[i]
	}
	return acc
}

// Joined is Qualified joined with the separator.
func (r *NameResolver) Joined(id arch.NodeID, sep string) string {
	return strings.Join(r.Qualified(id), sep)
}

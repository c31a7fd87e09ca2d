/* Copyright 2018 Comcast Cable Communications Management, LLC
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

package tools

import (
	"sort"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/core"
)

// ArchAnalysis summarizes an architecture and points out parts that
// look unfinished.
type ArchAnalysis struct {
	g *arch.Graph

	// Counts by kind, references not included.
	Modules       int
	Platforms     int
	Controllers   int
	StateMachines int
	Operations    int

	References    int
	Events        int
	Signatures    int
	Connections   int
	Bidirectional int
	Async         int

	// Unconnected are component instances that no connection of
	// their parent touches.
	Unconnected []string

	// UnusedDefinitions are package-level definitions (other than
	// modules) that nothing refers to.
	UnusedDefinitions []string

	// SilentEvents are declared events that no connection carries.
	SilentEvents []string

	ModulesWithoutPlatform []string
}

// Analyze counts things in the graph and looks for loose ends.
func Analyze(g *arch.Graph) (*ArchAnalysis, error) {
	names := core.NewNameResolver(g)
	a := ArchAnalysis{
		g:           g,
		Signatures:  g.NumSigs(),
		Connections: g.NumConnections(),
	}

	referenced := make(map[arch.NodeID]bool)
	touched := make(map[arch.NodeID]bool)
	carried := make(map[arch.EventID]bool)

	for i := 0; i < g.NumConnections(); i++ {
		c := g.Connection(arch.ConnID(i))
		touched[c.From], touched[c.To] = true, true
		carried[g.CanonicalEvent(c.FromEvent)] = true
		carried[g.CanonicalEvent(c.DestEvent())] = true
		if c.Bidirectional {
			a.Bidirectional++
		}
		if c.Async {
			a.Async++
		}
	}

	unconnected, unused, silent := make(map[string]bool), make(map[string]bool), make(map[string]bool)

	for i := 0; i < g.NumNodes(); i++ {
		n := g.Node(arch.NodeID(i))
		if n.IsReference() {
			a.References++
			referenced[n.Ref] = true
		} else {
			switch n.Kind {
			case arch.KindModule:
				a.Modules++
				if g.Platform(n.ID) == arch.NoNode {
					a.ModulesWithoutPlatform = append(a.ModulesWithoutPlatform, names.Joined(n.ID, "::"))
				}
			case arch.KindPlatform:
				a.Platforms++
			case arch.KindController:
				a.Controllers++
			case arch.KindStateMachine:
				a.StateMachines++
			case arch.KindOperation:
				a.Operations++
			}
		}
		if n.Parent != arch.NoNode && !touched[n.ID] {
			unconnected[names.Joined(n.ID, "::")] = true
		}
	}

	for i := 0; i < g.NumEvents(); i++ {
		e := g.Event(arch.EventID(i))
		if e.Of != arch.NoEvent {
			continue
		}
		a.Events++
		if !carried[e.ID] {
			silent[e.Name] = true
		}
	}

	for _, root := range g.Roots() {
		n := g.Node(root)
		if n.Kind != arch.KindModule && !referenced[root] {
			unused[n.Package+"::"+n.Name] = true
		}
	}

	a.Unconnected = keysToStringSlice(unconnected)
	a.UnusedDefinitions = keysToStringSlice(unused)
	a.SilentEvents = keysToStringSlice(silent)
	sort.Strings(a.ModulesWithoutPlatform)

	return &a, nil
}

// keysToStringSlice converts the keys from a map into a sorted slice
// of strings.
func keysToStringSlice(m map[string]bool) []string {
	list := make([]string, 0, len(m))
	for key := range m {
		list = append(list, key)
	}
	sort.Strings(list)
	return list
}

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

package wf

import (
	"strings"

	"github.com/Comcast/certres/core"
	"github.com/Comcast/certres/spec"
)

const (
	ActorMembership     = "actor-membership"
	ComponentActorScope = "component-actor-scope"
	WorldEnd            = "world-end"
	EventResolves       = "event-resolves"
	SetNonEmpty         = "set-nonempty"
)

type builtin struct {
	name string
	run  func(p *pass)
}

var builtins = []builtin{
	{ActorMembership, checkActorMembership},
	{ComponentActorScope, checkComponentActorScope},
	{WorldEnd, checkWorldEnd},
	{EventResolves, checkEventResolves},
	{SetNonEmpty, checkSetNonEmpty},
}

// Builtins names the built-in checks in the order they run.
func Builtins() []string {
	acc := make([]string, 0, len(builtins))
	for _, b := range builtins {
		acc = append(acc, b.name)
	}
	return acc
}

// IsBuiltin reports whether there's a built-in check with that name.
func IsBuiltin(name string) bool {
	for _, b := range builtins {
		if b.name == name {
			return true
		}
	}
	return false
}

// checkActorMembership: every actor a diagram uses is the group's and
// is live in that diagram.
func checkActorMembership(p *pass) {
	for _, d := range p.g.Diagrams {
		for _, a := range d.Actors {
			if !p.g.Owns(a) {
				p.add(Error, ActorMembership, d, -1, "actor %s is not one of the group's", a.ActorName())
			}
		}
		for i, m := range d.Messages {
			for _, e := range []spec.Endpoint{m.From, m.To} {
				ae, is := e.(spec.ActorEndpoint)
				if !is {
					continue
				}
				if ae.Actor == nil {
					p.add(Error, ActorMembership, d, i, "message end has no actor")
					continue
				}
				if !d.Live(ae.Actor) {
					p.add(Error, ActorMembership, d, i, "actor %s is not in the diagram", ae.Actor.ActorName())
				}
			}
		}
	}
}

// checkComponentActorScope: component actors only make sense for
// collection targets, and must stand for something in the target's
// world.
func checkComponentActorScope(p *pass) {
	r := p.c.Resolver
	t := p.g.Target
	for _, a := range p.g.Actors {
		ca, is := a.(*spec.ComponentActor)
		if !is {
			continue
		}
		if !spec.IsCollection(t) {
			p.add(Error, ComponentActorScope, nil, -1,
				"component actor %s needs a collection target, not a %s", ca.Name, spec.TargetKind(t))
			continue
		}
		world, err := r.ResolveWorldNodes(t)
		if err != nil {
			p.add(Error, ComponentActorScope, nil, -1, "%s", err)
			return
		}
		nodes, err := r.ResolveActor(ca, t)
		if err != nil {
			p.add(Error, ComponentActorScope, nil, -1, "component actor %s: %s", ca.Name, err)
			continue
		}
		for _, n := range nodes {
			if !world.Contains(n) {
				p.add(Error, ComponentActorScope, nil, -1,
					"component actor %s (%s) is not inside %s",
					ca.Name, r.Names.Joined(n, "::"), r.Names.Joined(t.Subject(), "::"))
			}
		}
	}
}

// checkWorldEnd: component targets need exactly one world end per
// message, and nothing goes from the world to the world.
func checkWorldEnd(p *pass) {
	collection := spec.IsCollection(p.g.Target)
	for _, d := range p.g.Diagrams {
		for i, m := range d.Messages {
			from, to := spec.IsWorldish(m.From), spec.IsWorldish(m.To)
			switch {
			case from && to:
				p.add(Error, WorldEnd, d, i, "message goes from the world to the world")
			case !collection && !from && !to:
				p.add(Error, WorldEnd, d, i, "message has no world end")
			}
		}
	}
}

// checkEventResolves: each event message should denote exactly one
// connection, and each operation message a known signature.
func checkEventResolves(p *pass) {
	r := p.c.Resolver
	for _, d := range p.g.Diagrams {
		ctx := p.g.Context(d)
		for i, m := range d.Messages {
			rt, err := r.ResolveTopic(m, ctx)
			if err != nil {
				p.add(Error, EventResolves, d, i, "%s", err)
				continue
			}
			et, is := rt.(core.ResolvedEventTopic)
			if !is {
				continue
			}
			switch et.Status() {
			case core.Unmatched:
				p.add(Error, EventResolves, d, i, "no connection carries %s from %s to %s",
					r.DescribeTopic(et.Query.Topic), spec.EndpointName(m.From), spec.EndpointName(m.To))
			case core.Ambiguous:
				descs := make([]string, 0, len(et.Events))
				for _, e := range et.Events {
					descs = append(descs, r.DescribeConnection(e.Connection)+" ("+e.Direction.String()+")")
				}
				p.add(Warning, EventResolves, d, i, "%s matches %d connections: %s",
					r.DescribeTopic(et.Query.Topic), len(et.Events), strings.Join(descs, "; "))
			}
		}
	}
}

// checkSetNonEmpty: a named set that is certainly empty is probably a
// mistake.
func checkSetNonEmpty(p *pass) {
	r := p.c.Resolver
	for _, s := range p.g.Sets {
		switch r.Analyse(s.Set) {
		case core.Empty:
			p.add(Warning, SetNonEmpty, nil, -1, "set %s is empty", s.Name)
		case core.Unknown:
			p.add(Info, SetNonEmpty, nil, -1, "cannot tell whether set %s is empty", s.Name)
		}
	}
}

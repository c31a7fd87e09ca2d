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

package model

import (
	"fmt"
	"strings"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/core"
	"github.com/Comcast/certres/spec"
	"github.com/Comcast/certres/wf"
)

// Built is what Build makes of a Document.
type Built struct {
	Doc     *Document
	Graph   *arch.Graph
	Groups  []*spec.Group
	Scripts []*wf.Script
	Config  core.Config
}

// Group finds a built group by name.
func (b *Built) Group(name string) (*spec.Group, bool) {
	for _, g := range b.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// Resolver makes a core.Resolver for the graph with the document's
// configuration.
func (b *Built) Resolver() *core.Resolver {
	return core.NewResolver(b.Graph, b.Config)
}

type builder struct {
	g *arch.Graph

	// ifaces maps "pkg::Interface" to the interface's events.
	ifaces map[string][]arch.EventID

	// events maps "pkg::Interface.event", "Interface.event" and
	// "event" to candidate declarations.
	events map[string][]arch.EventID

	// sigs maps "pkg::name" and "name" to signatures.
	sigs map[string][]arch.SigID

	// roots maps "pkg::Name" to package-level definitions and
	// modules.
	roots map[string]arch.NodeID

	// kids records the names used under each parent.
	kids map[arch.NodeID]map[string]bool
}

// Build makes the architecture graph and the specification groups
// described by the document.
//
// The document should have been validated.  Build checks that names
// refer to things and that containment and connections make sense.
// The first problem found is returned.
func Build(doc *Document) (*Built, error) {
	b := &builder{
		g:      arch.New(),
		ifaces: make(map[string][]arch.EventID),
		events: make(map[string][]arch.EventID),
		sigs:   make(map[string][]arch.SigID),
		roots:  make(map[string]arch.NodeID),
		kids:   make(map[arch.NodeID]map[string]bool),
	}

	seen := make(map[string]bool, len(doc.Packages))
	for _, p := range doc.Packages {
		if seen[p.Name] {
			return nil, &DuplicateName{What: "package", Name: p.Name, Where: doc.Name}
		}
		seen[p.Name] = true
		if err := b.declarations(p); err != nil {
			return nil, err
		}
	}

	// Package-level definitions can refer to each other across
	// packages, so each kind is done for all packages before the
	// next.
	passes := []struct {
		kind  arch.Kind
		comps func(p *Package) []*Component
	}{
		{arch.KindStateMachine, func(p *Package) []*Component { return p.Machines }},
		{arch.KindPlatform, func(p *Package) []*Component { return p.Platforms }},
		{arch.KindController, func(p *Package) []*Component { return p.Controllers }},
	}
	for _, pass := range passes {
		for _, p := range doc.Packages {
			for _, c := range pass.comps(p) {
				if c.IsRef() {
					return nil, fmt.Errorf("package %s: %s is a reference at package level", p.Name, c.Ref)
				}
				if _, err := b.component(p.Name, arch.NoNode, pass.kind, c, "package "+p.Name); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, p := range doc.Packages {
		for _, m := range p.Modules {
			if err := b.module(p.Name, m); err != nil {
				return nil, err
			}
		}
	}

	built := &Built{
		Doc:    doc,
		Graph:  b.g,
		Config: core.DefaultConfig(),
	}
	if doc.Config != nil {
		built.Config = *doc.Config
	}

	groups := make(map[string]bool, len(doc.Groups))
	for _, mg := range doc.Groups {
		if groups[mg.Name] {
			return nil, &DuplicateName{What: "group", Name: mg.Name, Where: doc.Name}
		}
		groups[mg.Name] = true
		sg, err := b.group(mg)
		if err != nil {
			return nil, err
		}
		built.Groups = append(built.Groups, sg)
	}

	checks := make(map[string]bool, len(doc.Checks))
	for _, s := range doc.Checks {
		if checks[s.Name] {
			return nil, &DuplicateName{What: "check", Name: s.Name, Where: doc.Name}
		}
		checks[s.Name] = true
		built.Scripts = append(built.Scripts, s)
	}

	return built, nil
}

func qualify(pkg, name string) string {
	if strings.Contains(name, "::") {
		return name
	}
	return pkg + "::" + name
}

// declarations adds the package's interfaces and signatures.
func (b *builder) declarations(p *Package) error {
	where := "package " + p.Name
	for _, i := range p.Interfaces {
		key := qualify(p.Name, i.Name)
		if _, have := b.ifaces[key]; have {
			return &DuplicateName{What: "interface", Name: i.Name, Where: where}
		}
		ids := make([]arch.EventID, 0, len(i.Events))
		names := make(map[string]bool, len(i.Events))
		for _, e := range i.Events {
			if names[e.Name] {
				return &DuplicateName{What: "event", Name: e.Name, Where: where + " interface " + i.Name}
			}
			names[e.Name] = true
			id := b.g.AddEvent(e.Name, e.Type)
			ids = append(ids, id)
			for _, k := range []string{key + "." + e.Name, i.Name + "." + e.Name, e.Name} {
				b.events[k] = append(b.events[k], id)
			}
		}
		b.ifaces[key] = ids
	}

	for _, s := range p.Signatures {
		key := qualify(p.Name, s.Name)
		if _, have := b.sigs[key]; have {
			return &DuplicateName{What: "signature", Name: s.Name, Where: where}
		}
		params := make([]arch.Param, 0, len(s.Params))
		for _, x := range s.Params {
			params = append(params, arch.Param{Name: x.Name, Type: x.Type})
		}
		id := b.g.AddSig(s.Name, params...)
		b.sigs[key] = append(b.sigs[key], id)
		b.sigs[s.Name] = append(b.sigs[s.Name], id)
	}
	return nil
}

// event finds the declaration a name stands for.  In a package, names
// are tried qualified by the package first.
func (b *builder) event(pkg, name, where string) (arch.EventID, error) {
	keys := []string{name}
	if pkg != "" && strings.Contains(name, ".") && !strings.Contains(name, "::") {
		keys = []string{qualify(pkg, name), name}
	}
	for _, k := range keys {
		switch ids := b.events[k]; len(ids) {
		case 0:
		case 1:
			return ids[0], nil
		default:
			return arch.NoEvent, fmt.Errorf("%s: %s: %w", where, name, AmbiguousEvent)
		}
	}
	return arch.NoEvent, &UnknownReference{What: "event", Name: name, Where: where}
}

func (b *builder) sig(pkg, name, where string) (arch.SigID, error) {
	keys := []string{name}
	if pkg != "" && !strings.Contains(name, "::") {
		keys = []string{qualify(pkg, name), name}
	}
	for _, k := range keys {
		switch ids := b.sigs[k]; len(ids) {
		case 0:
		case 1:
			return ids[0], nil
		default:
			return -1, fmt.Errorf("%s: signature %s is ambiguous", where, name)
		}
	}
	return -1, &UnknownReference{What: "signature", Name: name, Where: where}
}

// claim records a name under a parent (or at package level).
func (b *builder) claim(pkg string, parent arch.NodeID, name, what, where string) error {
	if parent == arch.NoNode {
		key := qualify(pkg, name)
		if _, have := b.roots[key]; have {
			return &DuplicateName{What: what, Name: name, Where: where}
		}
		return nil
	}
	names := b.kids[parent]
	if names == nil {
		names = make(map[string]bool)
		b.kids[parent] = names
	}
	if names[name] {
		return &DuplicateName{What: what, Name: name, Where: where}
	}
	names[name] = true
	return nil
}

// component adds a definition or reference of the given kind.
// Machines may override the kind to be operations.
func (b *builder) component(pkg string, parent arch.NodeID, kind arch.Kind, c *Component, where string) (arch.NodeID, error) {
	if kind == arch.KindStateMachine && c.Kind == TargetOperation {
		kind = arch.KindOperation
	}

	if c.IsRef() {
		def, have := b.roots[qualify(pkg, c.Ref)]
		if !have || b.g.Node(def).IsReference() || !sameFamily(b.g.Node(def).Kind, kind) {
			return arch.NoNode, &UnknownReference{What: kind.String(), Name: c.Ref, Where: where}
		}
		if 0 < len(c.Uses)+len(c.Events)+len(c.Provides)+len(c.Machines)+len(c.Connections) {
			return arch.NoNode, fmt.Errorf("%s: reference to %s cannot declare anything", where, c.Ref)
		}
		name := c.Name
		if name == "" {
			name = b.g.Node(def).Name
		}
		if err := b.claim(pkg, parent, name, kind.String(), where); err != nil {
			return arch.NoNode, err
		}
		id, err := b.g.AddReference(parent, def, name)
		if err != nil {
			return arch.NoNode, fmt.Errorf("%s: %w", where, err)
		}
		return id, nil
	}

	if err := b.claim(pkg, parent, c.Name, kind.String(), where); err != nil {
		return arch.NoNode, err
	}
	rootPkg := ""
	if parent == arch.NoNode {
		rootPkg = pkg
	}
	id, err := b.g.AddDefinition(kind, parent, rootPkg, c.Name)
	if err != nil {
		return arch.NoNode, fmt.Errorf("%s: %s: %w", where, c.Name, err)
	}
	if parent == arch.NoNode {
		b.roots[qualify(pkg, c.Name)] = id
	}

	here := where + " " + kind.String() + " " + c.Name
	if err := b.declare(pkg, id, c, here); err != nil {
		return arch.NoNode, err
	}

	if kind != arch.KindController {
		if 0 < len(c.Machines)+len(c.Connections) {
			return arch.NoNode, fmt.Errorf("%s: only controllers have machines and connections", here)
		}
		return id, nil
	}
	for _, m := range c.Machines {
		if _, err := b.component(pkg, id, arch.KindStateMachine, m, here); err != nil {
			return arch.NoNode, err
		}
	}
	for _, conn := range c.Connections {
		if err := b.connect(id, conn, here); err != nil {
			return arch.NoNode, err
		}
	}
	return id, nil
}

// sameFamily: a machine reference can refer to a state machine or an
// operation.
func sameFamily(have, want arch.Kind) bool {
	if have == want {
		return true
	}
	machine := func(k arch.Kind) bool {
		return k == arch.KindStateMachine || k == arch.KindOperation
	}
	return machine(have) && machine(want)
}

// declare attaches the events and signatures a component uses.
func (b *builder) declare(pkg string, id arch.NodeID, c *Component, where string) error {
	var decls []arch.EventID
	for _, name := range c.Uses {
		ids, have := b.ifaces[qualify(pkg, name)]
		if !have {
			return &UnknownReference{What: "interface", Name: name, Where: where}
		}
		decls = append(decls, ids...)
	}
	for _, name := range c.Events {
		e, err := b.event(pkg, name, where)
		if err != nil {
			return err
		}
		decls = append(decls, e)
	}
	for _, e := range decls {
		alias, err := b.g.AliasEvent(e)
		if err != nil {
			return err
		}
		if err = b.g.Declare(id, alias); err != nil {
			return err
		}
	}
	for _, name := range c.Provides {
		s, err := b.sig(pkg, name, where)
		if err != nil {
			return err
		}
		if err = b.g.Provide(id, s); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) module(pkg string, m *Module) error {
	where := "package " + pkg
	if err := b.claim(pkg, arch.NoNode, m.Name, "module", where); err != nil {
		return err
	}
	id, err := b.g.AddDefinition(arch.KindModule, arch.NoNode, pkg, m.Name)
	if err != nil {
		return err
	}
	b.roots[qualify(pkg, m.Name)] = id

	where += " module " + m.Name
	if m.Platform != nil {
		if _, err := b.component(pkg, id, arch.KindPlatform, m.Platform, where); err != nil {
			return err
		}
	}
	for _, c := range m.Controllers {
		if _, err := b.component(pkg, id, arch.KindController, c, where); err != nil {
			return err
		}
	}
	for _, conn := range m.Connections {
		if err := b.connect(id, conn, where); err != nil {
			return err
		}
	}
	return nil
}

// connect adds a connection owned by a module or controller.
func (b *builder) connect(owner arch.NodeID, c *Connection, where string) error {
	from, fe, err := b.end(owner, c.From, where)
	if err != nil {
		return err
	}
	if fe == arch.NoEvent {
		return fmt.Errorf("%s: connection from %s needs an event", where, c.From)
	}
	to, te, err := b.end(owner, c.To, where)
	if err != nil {
		return err
	}
	_, err = b.g.Connect(arch.Connection{
		Owner:         owner,
		From:          from,
		FromEvent:     fe,
		To:            to,
		ToEvent:       te,
		Bidirectional: c.Bidirectional,
		Async:         c.Async,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	return nil
}

// end parses "Node.event" or "Node".  Node is a child of the owner or
// the owner itself.
func (b *builder) end(owner arch.NodeID, s, where string) (arch.NodeID, arch.EventID, error) {
	name, event, hasEvent := strings.Cut(s, ".")
	node := arch.NoNode
	for _, kid := range b.g.Node(owner).Children {
		if b.g.Node(kid).Name == name {
			node = kid
			break
		}
	}
	if node == arch.NoNode && b.g.Node(owner).Name == name {
		node = owner
	}
	if node == arch.NoNode {
		return arch.NoNode, arch.NoEvent, &UnknownReference{What: "connection end", Name: name, Where: where}
	}
	if !hasEvent {
		return node, arch.NoEvent, nil
	}
	e, have := b.g.FindEvent(node, event)
	if !have {
		return arch.NoNode, arch.NoEvent, &UnknownReference{What: "event", Name: s, Where: where}
	}
	return node, e, nil
}

// lookup finds a node by its path "pkg::Root::Child...".
func (b *builder) lookup(path, where string) (arch.NodeID, error) {
	parts := strings.Split(path, "::")
	if len(parts) < 2 {
		return arch.NoNode, &UnknownReference{What: "path", Name: path, Where: where}
	}
	id, have := b.g.Lookup(parts[0], parts[1:]...)
	if !have {
		return arch.NoNode, &UnknownReference{What: "node", Name: path, Where: where}
	}
	return id, nil
}

func (b *builder) target(t *Target, where string) (spec.Target, error) {
	id, err := b.lookup(t.Path, where)
	if err != nil {
		return nil, err
	}
	var (
		want arch.Kind
		x    spec.Target
	)
	switch t.Kind {
	case TargetModule:
		want, x = arch.KindModule, spec.ModuleTarget{Module: id}
	case TargetInModule:
		want, x = arch.KindModule, spec.InModuleTarget{Module: id}
	case TargetController:
		want, x = arch.KindController, spec.ControllerTarget{Controller: id}
	case TargetInController:
		want, x = arch.KindController, spec.InControllerTarget{Controller: id}
	case TargetStateMachine:
		want, x = arch.KindStateMachine, spec.StateMachineTarget{StateMachine: id}
	case TargetOperation:
		want, x = arch.KindOperation, spec.OperationTarget{Operation: id}
	default:
		return nil, fmt.Errorf("%s: unknown target kind %q", where, t.Kind)
	}
	if have := b.g.Node(id).Kind; have != want {
		return nil, fmt.Errorf("%s: %s is a %s, not a %s", where, t.Path, have, want)
	}
	return x, nil
}

func (b *builder) group(mg *Group) (*spec.Group, error) {
	where := "group " + mg.Name
	t, err := b.target(mg.Target, where)
	if err != nil {
		return nil, err
	}
	sg := &spec.Group{
		Name:   mg.Name,
		Target: t,
	}

	for _, a := range mg.Actors {
		if _, have := sg.Actor(a.Name); have {
			return nil, &DuplicateName{What: "actor", Name: a.Name, Where: where}
		}
		var actor spec.Actor
		switch a.Kind {
		case ActorTarget:
			actor = &spec.TargetActor{Name: a.Name}
		case ActorWorld:
			actor = &spec.World{Name: a.Name}
		case ActorComponent:
			id, err := b.lookup(a.Node, where+" actor "+a.Name)
			if err != nil {
				return nil, err
			}
			actor = &spec.ComponentActor{Name: a.Name, Node: id}
		default:
			return nil, fmt.Errorf("%s: actor %s has unknown kind %q", where, a.Name, a.Kind)
		}
		sg.Actors = append(sg.Actors, actor)
	}

	diagrams := make(map[string]bool, len(mg.Diagrams))
	for _, md := range mg.Diagrams {
		if diagrams[md.Name] {
			return nil, &DuplicateName{What: "diagram", Name: md.Name, Where: where}
		}
		diagrams[md.Name] = true
		here := where + " diagram " + md.Name
		d := &spec.Diagram{Name: md.Name}
		for _, name := range md.Actors {
			a, have := sg.Actor(name)
			if !have {
				return nil, &UnknownReference{What: "actor", Name: name, Where: here}
			}
			d.Actors = append(d.Actors, a)
		}
		for i, mm := range md.Messages {
			m, err := b.message(sg, mm, fmt.Sprintf("%s message %d", here, i))
			if err != nil {
				return nil, err
			}
			d.Messages = append(d.Messages, m)
		}
		sg.Diagrams = append(sg.Diagrams, d)
	}

	// Sets can refer to each other in any order, so they are all
	// named before any is built.
	for _, ms := range mg.Sets {
		if _, have := sg.Set(ms.Name); have {
			return nil, &DuplicateName{What: "set", Name: ms.Name, Where: where}
		}
		sg.Sets = append(sg.Sets, &spec.NamedSet{Name: ms.Name})
	}
	for i, ms := range mg.Sets {
		x, err := b.setExpr(sg, &ms.SetExpr, where+" set "+ms.Name)
		if err != nil {
			return nil, err
		}
		sg.Sets[i].Set = x
	}

	return sg, nil
}

func (b *builder) endpoint(sg *spec.Group, name, where string) (spec.Endpoint, error) {
	if name == Gate {
		return spec.Gate{}, nil
	}
	a, have := sg.Actor(name)
	if !have {
		return nil, &UnknownReference{What: "actor", Name: name, Where: where}
	}
	return spec.At(a), nil
}

func (b *builder) message(sg *spec.Group, mm *Message, where string) (*spec.Message, error) {
	from, err := b.endpoint(sg, mm.From, where)
	if err != nil {
		return nil, err
	}
	to, err := b.endpoint(sg, mm.To, where)
	if err != nil {
		return nil, err
	}
	m := &spec.Message{
		From: from,
		To:   to,
		Args: mm.Args,
	}
	if mm.Operation != "" {
		s, err := b.sig("", mm.Operation, where)
		if err != nil {
			return nil, err
		}
		m.Topic = spec.OperationTopic{Sig: s}
		return m, nil
	}

	et := spec.EventTopic{To: arch.NoEvent}
	if et.From, err = b.event("", mm.Event, where); err != nil {
		return nil, err
	}
	if mm.ToEvent != "" {
		if et.To, err = b.event("", mm.ToEvent, where); err != nil {
			return nil, err
		}
	}
	m.Topic = et
	return m, nil
}

func (b *builder) setExpr(sg *spec.Group, x *SetExpr, where string) (spec.MessageSet, error) {
	switch {
	case x.Universe:
		return spec.Universe{}, nil
	case x.Ref != "":
		ns, have := sg.Set(x.Ref)
		if !have {
			return nil, &UnknownReference{What: "set", Name: x.Ref, Where: where}
		}
		return spec.SetRef{Set: ns}, nil
	case x.Op != "":
		if x.Left == nil || x.Right == nil {
			return nil, fmt.Errorf("%s: %s needs left and right", where, x.Op)
		}
		var op spec.SetOp
		switch x.Op {
		case "union":
			op = spec.Union
		case "inter":
			op = spec.Intersection
		case "diff":
			op = spec.Difference
		default:
			return nil, fmt.Errorf("%s: unknown set operation %q", where, x.Op)
		}
		l, err := b.setExpr(sg, x.Left, where)
		if err != nil {
			return nil, err
		}
		r, err := b.setExpr(sg, x.Right, where)
		if err != nil {
			return nil, err
		}
		return spec.Binary{Op: op, L: l, R: r}, nil
	default:
		acc := spec.Extensional{}
		for i, mm := range x.Messages {
			m, err := b.message(sg, mm, fmt.Sprintf("%s message %d", where, i))
			if err != nil {
				return nil, err
			}
			acc.Messages = append(acc.Messages, m)
		}
		return acc, nil
	}
}

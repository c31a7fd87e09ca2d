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
	"iter"
	"slices"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/spec"
)

// Direction says which way round a connection matched a message.
type Direction int

const (
	Forwards Direction = iota
	Backwards
)

func (d Direction) String() string {
	switch d {
	case Forwards:
		return "FORWARDS"
	case Backwards:
		return "BACKWARDS"
	}
	return "UNKNOWN"
}

// Reverse is the other direction.
func (d Direction) Reverse() Direction {
	if d == Forwards {
		return Backwards
	}
	return Forwards
}

// EventQuery asks which connections an event message denotes.
type EventQuery struct {
	Topic   spec.EventTopic
	From    spec.Endpoint
	To      spec.Endpoint
	Context spec.ResolveContext
}

// QueryFor makes the EventQuery for a message with an event topic.
func QueryFor(m *spec.Message, ctx spec.ResolveContext) (EventQuery, error) {
	et, is := m.Topic.(spec.EventTopic)
	if !is {
		return EventQuery{}, unsupported("event topic", m.Topic)
	}
	return EventQuery{
		Topic:   et,
		From:    m.From,
		To:      m.To,
		Context: ctx,
	}, nil
}

// ResolvedEvent is a connection matched to an event query.
type ResolvedEvent struct {
	Query      EventQuery
	Direction  Direction
	Connection *arch.Connection

	declaredSender bool
}

// EffectiveFrom is the end treated as the sender.
//
// If either end is the world (a gate or a world actor), the sender is
// the other end.  Otherwise it is the declared from end for a
// forwards match and the declared to end for a backwards match.
//
// Whether that last rule is right for backwards matches between two
// named components is an open question; Config.DeclaredSenderForBackwards
// switches to always using the declared from end.
func (r ResolvedEvent) EffectiveFrom() spec.Endpoint {
	if r.senderIsFrom() {
		return r.Query.From
	}
	return r.Query.To
}

// EffectiveTo is the end opposite EffectiveFrom.
func (r ResolvedEvent) EffectiveTo() spec.Endpoint {
	if r.senderIsFrom() {
		return r.Query.To
	}
	return r.Query.From
}

func (r ResolvedEvent) senderIsFrom() bool {
	q := r.Query
	switch {
	case spec.IsWorldish(q.From):
		return false
	case spec.IsWorldish(q.To):
		return true
	case r.Direction == Forwards || r.declaredSender:
		return true
	default:
		return false
	}
}

// EventMatchAttempt holds the node sets for one query and tries
// connections against them.
type EventMatchAttempt struct {
	g         *arch.Graph
	Topic     spec.EventTopic
	FromNodes NodeSet
	ToNodes   NodeSet
}

// candidate is a connection with its ends normalised.
type candidate struct {
	conn     *arch.Connection
	from, to arch.NodeID
}

// Try gives the directions (zero, one or both) in which the
// connection satisfies the attempt.
func (a *EventMatchAttempt) Try(c *arch.Connection, from, to arch.NodeID) []Direction {
	var acc []Direction
	if a.FromNodes.Contains(from) && a.ToNodes.Contains(to) &&
		a.eventsMatch(c.FromEvent, c.DestEvent()) {
		acc = append(acc, Forwards)
	}
	if c.Bidirectional &&
		a.FromNodes.Contains(to) && a.ToNodes.Contains(from) &&
		a.eventsMatch(c.DestEvent(), c.FromEvent) {
		acc = append(acc, Backwards)
	}
	return acc
}

// eventsMatch compares the events at the (sending, receiving) ends of
// a connection, as seen in the match direction, with the topic.  A
// topic without a To event accepts any receiving event.
func (a *EventMatchAttempt) eventsMatch(sending, receiving arch.EventID) bool {
	if !a.g.SameEvent(sending, a.Topic.From) {
		return false
	}
	if a.Topic.To == arch.NoEvent {
		return true
	}
	return a.g.SameEvent(receiving, a.Topic.To)
}

// EventResolver resolves event queries to connections.
type EventResolver struct {
	g        *arch.Graph
	defs     *DefinitionResolver
	nodes    *NodeResolver
	outbound *OutboundResolver

	// DeclaredSenderForBackwards: see ResolvedEvent.EffectiveFrom.
	DeclaredSenderForBackwards bool
}

func NewEventResolver(g *arch.Graph, defs *DefinitionResolver, nodes *NodeResolver, outbound *OutboundResolver) *EventResolver {
	return &EventResolver{
		g:        g,
		defs:     defs,
		nodes:    nodes,
		outbound: outbound,
	}
}

// candidates picks the connections a query is checked against.
func (r *EventResolver) candidates(q EventQuery) ([]*arch.Connection, error) {
	t := q.Context.Target
	fromWorld, toWorld := spec.IsWorldish(q.From), spec.IsWorldish(q.To)

	if !spec.IsCollection(t) {
		if fromWorld == toWorld {
			return nil, violation(t, "a message must have exactly one world end", nil)
		}
		if spec.IsComponent(q.From) || spec.IsComponent(q.To) {
			return nil, violation(t, "component actors need a collection target", nil)
		}
		return r.outbound.Outbound(t)
	}

	if fromWorld && toWorld {
		return nil, violation(t, "a message cannot go from the world to the world", nil)
	}
	if spec.IsComponent(q.From) && spec.IsComponent(q.To) {
		return r.outbound.Internal(t)
	}
	return r.outbound.Outbound(t)
}

// Attempt computes the node sets for a query.
func (r *EventResolver) Attempt(q EventQuery) (*EventMatchAttempt, error) {
	from, err := r.nodes.Endpoint(q.From, q.Context)
	if err != nil {
		return nil, err
	}
	to, err := r.nodes.Endpoint(q.To, q.Context)
	if err != nil {
		return nil, err
	}
	return &EventMatchAttempt{
		g:         r.g,
		Topic:     q.Topic,
		FromNodes: from,
		ToNodes:   to,
	}, nil
}

// Resolve gives the connections the query denotes.
//
// Errors (bad scoping, unsupported variants) come back immediately.
// The sequence itself is computed lazily; it can yield nothing (the
// message denotes no connection), one match, or several (the
// architecture is ambiguous).  Iterating again repeats the work.
func (r *EventResolver) Resolve(q EventQuery) (iter.Seq[ResolvedEvent], error) {
	if r.g.Event(q.Topic.From) == nil {
		return nil, unsupported("event topic", q.Topic)
	}
	conns, err := r.candidates(q)
	if err != nil {
		return nil, err
	}
	attempt, err := r.Attempt(q)
	if err != nil {
		return nil, err
	}

	cs := make([]candidate, 0, len(conns))
	for _, c := range conns {
		from, err := r.defs.Normalise(c.From)
		if err != nil {
			return nil, fmt.Errorf("connection %d: %w", c.ID, err)
		}
		to, err := r.defs.Normalise(c.To)
		if err != nil {
			return nil, fmt.Errorf("connection %d: %w", c.ID, err)
		}
		cs = append(cs, candidate{conn: c, from: from, to: to})
	}

	declared := r.DeclaredSenderForBackwards
	return func(yield func(ResolvedEvent) bool) {
		for _, c := range cs {
			for _, d := range attempt.Try(c.conn, c.from, c.to) {
				re := ResolvedEvent{
					Query:          q,
					Direction:      d,
					Connection:     c.conn,
					declaredSender: declared,
				}
				if !yield(re) {
					return
				}
			}
		}
	}, nil
}

// ResolveAll is Resolve collected into a slice.
func (r *EventResolver) ResolveAll(q EventQuery) ([]ResolvedEvent, error) {
	seq, err := r.Resolve(q)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

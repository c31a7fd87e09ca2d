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
	"slices"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/spec"
)

// MatchStatus classifies how many connections an event message
// resolved to.  None of these is an error.
type MatchStatus int

const (
	Unmatched MatchStatus = iota
	Matched
	Ambiguous
)

func (s MatchStatus) String() string {
	switch s {
	case Unmatched:
		return "unmatched"
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	}
	return "unknown"
}

// ResolvedTopic is the result of resolving a message's topic:
// either a ResolvedEventTopic or a ResolvedOperation.
type ResolvedTopic interface {
	isResolvedTopic()
}

// ResolvedEventTopic holds every connection an event message denotes.
type ResolvedEventTopic struct {
	Query  EventQuery
	Events []ResolvedEvent
}

// ResolvedOperation is an operation call.  Operations always flow
// from a component to the boundary, so there is nothing to match.
type ResolvedOperation struct {
	Message *spec.Message
	Sig     *arch.OpSig
}

func (ResolvedEventTopic) isResolvedTopic() {}
func (ResolvedOperation) isResolvedTopic()  {}

// Status says whether the topic matched no, one or several
// connections.
func (t ResolvedEventTopic) Status() MatchStatus {
	switch len(t.Events) {
	case 0:
		return Unmatched
	case 1:
		return Matched
	default:
		return Ambiguous
	}
}

// Unique returns the only match, if there is exactly one.
func (t ResolvedEventTopic) Unique() (ResolvedEvent, bool) {
	if len(t.Events) != 1 {
		return ResolvedEvent{}, false
	}
	return t.Events[0], true
}

// TopicResolver resolves the topic of a message.
type TopicResolver struct {
	g      *arch.Graph
	events *EventResolver
}

func NewTopicResolver(g *arch.Graph, events *EventResolver) *TopicResolver {
	return &TopicResolver{g: g, events: events}
}

// Resolve resolves the message's topic in the context.
func (r *TopicResolver) Resolve(m *spec.Message, ctx spec.ResolveContext) (ResolvedTopic, error) {
	switch vv := m.Topic.(type) {
	case spec.EventTopic:
		q, err := QueryFor(m, ctx)
		if err != nil {
			return nil, err
		}
		seq, err := r.events.Resolve(q)
		if err != nil {
			return nil, err
		}
		return ResolvedEventTopic{
			Query:  q,
			Events: slices.Collect(seq),
		}, nil
	case spec.OperationTopic:
		sig := r.g.Sig(vv.Sig)
		if sig == nil {
			return nil, unsupported("operation signature", vv.Sig)
		}
		return ResolvedOperation{
			Message: m,
			Sig:     sig,
		}, nil
	default:
		return nil, unsupported("topic", m.Topic)
	}
}

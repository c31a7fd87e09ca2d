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

// Package report summarizes how each message of a set of
// specification groups resolves, together with well-formedness
// diagnostics.
//
// A Report is plain data, so it can be written as JSON or YAML,
// stored, and rendered later without the architecture it came from.
package report

import (
	"context"
	"strings"

	"github.com/Comcast/certres/core"
	"github.com/Comcast/certres/spec"
	"github.com/Comcast/certres/wf"
)

type Report struct {
	Name        string          `json:"name" yaml:"name"`
	Groups      []*Group        `json:"groups" yaml:"groups"`
	Diagnostics []wf.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

type Group struct {
	Name string `json:"name" yaml:"name"`

	// Target is the target's kind and qualified name, like
	// "module robot::M".
	Target   string     `json:"target" yaml:"target"`
	Diagrams []*Diagram `json:"diagrams,omitempty" yaml:"diagrams,omitempty"`
}

type Diagram struct {
	Name string `json:"name" yaml:"name"`
	Rows []*Row `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// Row is one message.
type Row struct {
	Index int    `json:"index" yaml:"index"`
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Topic string `json:"topic" yaml:"topic"`

	// Status is "matched", "unmatched", "ambiguous" or "error".
	// Operation messages are always "matched".
	Status  string   `json:"status" yaml:"status"`
	Matches []*Match `json:"matches,omitempty" yaml:"matches,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// StatusError is the Status of a Row whose message didn't resolve.
const StatusError = "error"

// Match is a connection a message denotes.
type Match struct {
	Connection string `json:"connection" yaml:"connection"`
	Direction  string `json:"direction" yaml:"direction"`
	Sender     string `json:"sender" yaml:"sender"`
	Receiver   string `json:"receiver" yaml:"receiver"`
	Async      bool   `json:"async,omitempty" yaml:"async,omitempty"`
}

// Build resolves every message of the groups and, if the checker isn't
// nil, checks the groups.
//
// Resolution errors end up in the rows; Build itself doesn't fail.
func Build(ctx context.Context, name string, r *core.Resolver, groups []*spec.Group, c *wf.Checker) *Report {
	rep := &Report{
		Name:   name,
		Groups: make([]*Group, 0, len(groups)),
	}
	for _, g := range groups {
		rep.Groups = append(rep.Groups, buildGroup(r, g))
	}
	if c != nil {
		rep.Diagnostics = c.CheckAll(ctx, groups)
	}
	return rep
}

// Target renders a target as its kind and qualified name.
func Target(r *core.Resolver, t spec.Target) string {
	if t == nil {
		return "none"
	}
	return spec.TargetKind(t) + " " + r.Names.Joined(t.Subject(), "::")
}

func buildGroup(r *core.Resolver, g *spec.Group) *Group {
	rg := &Group{
		Name:     g.Name,
		Target:   Target(r, g.Target),
		Diagrams: make([]*Diagram, 0, len(g.Diagrams)),
	}
	for _, d := range g.Diagrams {
		rd := &Diagram{
			Name: d.Name,
			Rows: make([]*Row, 0, len(d.Messages)),
		}
		ctx := g.Context(d)
		for i, m := range d.Messages {
			rd.Rows = append(rd.Rows, row(r, ctx, i, m))
		}
		rg.Diagrams = append(rg.Diagrams, rd)
	}
	return rg
}

func row(r *core.Resolver, ctx spec.ResolveContext, i int, m *spec.Message) *Row {
	x := &Row{
		Index: i,
		From:  spec.EndpointName(m.From),
		To:    spec.EndpointName(m.To),
		Topic: r.DescribeTopic(m.Topic),
	}
	if ctx.Target == nil {
		x.Status, x.Error = StatusError, "group has no target"
		return x
	}
	rt, err := r.ResolveTopic(m, ctx)
	if err != nil {
		x.Status, x.Error = StatusError, err.Error()
		return x
	}
	switch vv := rt.(type) {
	case core.ResolvedEventTopic:
		x.Status = vv.Status().String()
		for _, e := range vv.Events {
			x.Matches = append(x.Matches, &Match{
				Connection: r.DescribeConnection(e.Connection),
				Direction:  e.Direction.String(),
				Sender:     spec.EndpointName(e.EffectiveFrom()),
				Receiver:   spec.EndpointName(e.EffectiveTo()),
				Async:      e.Connection.Async,
			})
		}
	case core.ResolvedOperation:
		x.Status = core.Matched.String()
	}
	return x
}

// Worst is the most severe diagnostic level, with rows that failed to
// resolve counting as errors.
func (rep *Report) Worst() wf.Level {
	worst := wf.Worst(rep.Diagnostics)
	for _, g := range rep.Groups {
		for _, d := range g.Diagrams {
			for _, x := range d.Rows {
				if x.Status == StatusError || x.Status == core.Unmatched.String() {
					return wf.Error
				}
			}
		}
	}
	return worst
}

// Rows counts rows by status.
func (rep *Report) Rows() map[string]int {
	acc := make(map[string]int)
	for _, g := range rep.Groups {
		for _, d := range g.Diagrams {
			for _, x := range d.Rows {
				acc[x.Status]++
			}
		}
	}
	return acc
}

// escape keeps table cells intact.
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

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
	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/core"
	"github.com/Comcast/certres/spec"
)

// MessageView renders a message and what it resolved to as plain
// maps and slices, which is what scripts see as _.message.
//
//	{
//	  "group": "G", "diagram": "D", "index": 0,
//	  "target": {"kind": "module", "name": "robot::M"},
//	  "from": "w", "to": "t", "args": [],
//	  "topic": {"kind": "event", "from": "obstacle", "to": null},
//	  "status": "matched",
//	  "matches": [{"connection": "...", "direction": "FORWARDS",
//	               "sender": "t", "receiver": "w", "async": false}],
//	  "error": "..."
//	}
//
// The resolved topic may be nil if resolution failed, in which case
// err should say why.
func MessageView(r *core.Resolver, g *spec.Group, d *spec.Diagram, i int, m *spec.Message, rt core.ResolvedTopic, err error) map[string]interface{} {
	args := make([]interface{}, 0, len(m.Args))
	for _, a := range m.Args {
		args = append(args, a)
	}

	view := map[string]interface{}{
		"group":   g.Name,
		"diagram": d.Name,
		"index":   i,
		"target": map[string]interface{}{
			"kind": spec.TargetKind(g.Target),
			"name": r.Names.Joined(g.Target.Subject(), "::"),
		},
		"from":  spec.EndpointName(m.From),
		"to":    spec.EndpointName(m.To),
		"args":  args,
		"topic": topicView(r.Graph, m.Topic),
	}
	if err != nil {
		view["error"] = err.Error()
	}

	switch vv := rt.(type) {
	case core.ResolvedEventTopic:
		view["status"] = vv.Status().String()
		matches := make([]interface{}, 0, len(vv.Events))
		for _, e := range vv.Events {
			matches = append(matches, map[string]interface{}{
				"connection": r.DescribeConnection(e.Connection),
				"direction":  e.Direction.String(),
				"sender":     spec.EndpointName(e.EffectiveFrom()),
				"receiver":   spec.EndpointName(e.EffectiveTo()),
				"async":      e.Connection.Async,
			})
		}
		view["matches"] = matches
	case core.ResolvedOperation:
		view["status"] = core.Matched.String()
		view["matches"] = []interface{}{}
	}

	return view
}

func topicView(g *arch.Graph, t spec.Topic) map[string]interface{} {
	switch vv := t.(type) {
	case spec.EventTopic:
		x := map[string]interface{}{
			"kind": "event",
			"from": nil,
			"to":   nil,
		}
		if e := g.Event(vv.From); e != nil {
			x["from"] = e.Name
		}
		if e := g.Event(vv.To); e != nil {
			x["to"] = e.Name
		}
		return x
	case spec.OperationTopic:
		x := map[string]interface{}{
			"kind": "operation",
		}
		if sig := g.Sig(vv.Sig); sig != nil {
			x["name"] = sig.Name
			params := make([]interface{}, 0, len(sig.Params))
			for _, p := range sig.Params {
				params = append(params, map[string]interface{}{
					"name": p.Name,
					"type": p.Type,
				})
			}
			x["params"] = params
		}
		return x
	}
	return map[string]interface{}{"kind": "unknown"}
}

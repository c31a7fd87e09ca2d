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
	"strings"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/spec"
)

// DescribeConnection renders a connection for diagnostics, naming its
// ends by qualified name.
func (r *Resolver) DescribeConnection(c *arch.Connection) string {
	if c == nil {
		return "<no connection>"
	}
	arrow := " -> "
	if c.Bidirectional {
		arrow = " <-> "
	}
	return r.Names.Joined(c.From, "::") + "." + r.eventName(c.FromEvent) +
		arrow +
		r.Names.Joined(c.To, "::") + "." + r.eventName(c.DestEvent())
}

// DescribeNodes renders a node set for diagnostics.
func (r *Resolver) DescribeNodes(s NodeSet) []string {
	acc := make([]string, 0, len(s))
	for _, id := range s {
		acc = append(acc, r.Names.Joined(id, "::"))
	}
	return acc
}

func (r *Resolver) eventName(id arch.EventID) string {
	if e := r.Graph.Event(id); e != nil {
		return e.Name
	}
	return "?"
}

// DescribeTopic renders a topic: "ev", "ev/toEv" or "sig(args)".
// Operation arguments are the parameter names.
func (r *Resolver) DescribeTopic(t spec.Topic) string {
	switch vv := t.(type) {
	case spec.EventTopic:
		s := r.eventName(vv.From)
		if r.Graph.Event(vv.To) != nil {
			s += "/" + r.eventName(vv.To)
		}
		return s
	case spec.OperationTopic:
		sig := r.Graph.Sig(vv.Sig)
		if sig == nil {
			return "?()"
		}
		names := make([]string, 0, len(sig.Params))
		for _, p := range sig.Params {
			names = append(names, p.Name)
		}
		return sig.Name + "(" + strings.Join(names, ", ") + ")"
	}
	return "?"
}

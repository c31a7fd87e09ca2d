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
	"fmt"
	"io"
	"strings"

	"github.com/Comcast/certres/core"
	"github.com/Comcast/certres/spec"
	"github.com/Comcast/certres/util"
)

type MermaidOpts struct {
	// ShowConnections adds a note to each event message naming
	// the connections it matched.
	ShowConnections bool `json:"showConnections"`

	// MarkUnmatched draws messages that matched nothing, or
	// failed to resolve, with a cross at the end.
	MarkUnmatched bool `json:"markUnmatched"`

	ShowArgs bool `json:"showArgs,omitempty"`
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) sequence
// diagram for the given diagram of the group.
//
// Messages over async connections get an open arrow.
//
// Mermaid closes the writer.
func Mermaid(r *core.Resolver, g *spec.Group, d *spec.Diagram, w io.WriteCloser, opts *MermaidOpts) error {
	if opts == nil {
		opts = &MermaidOpts{
			ShowConnections: true,
			MarkUnmatched:   true,
		}
	}

	util.Logf("tools.Mermaid processing %d messages", len(d.Messages))

	fmt.Fprintf(w, "sequenceDiagram\n")

	seen := make(map[string]bool)
	participant := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		fmt.Fprintf(w, "  participant %s\n", name)
	}
	for _, a := range d.Actors {
		participant(a.ActorName())
	}
	for _, m := range d.Messages {
		participant(spec.EndpointName(m.From))
		participant(spec.EndpointName(m.To))
	}

	ctx := g.Context(d)
	for i, m := range d.Messages {
		from, to := spec.EndpointName(m.From), spec.EndpointName(m.To)
		label := r.DescribeTopic(m.Topic)
		if opts.ShowArgs && 0 < len(m.Args) {
			label += " [" + strings.Join(m.Args, ", ") + "]"
		}

		arrow := "->>"
		var notes []string

		rt, err := r.ResolveTopic(m, ctx)
		switch vv := rt.(type) {
		case nil:
			util.Logf("tools.Mermaid message %d: %v", i, err)
			if opts.MarkUnmatched {
				arrow = "-x"
			}
			notes = append(notes, "error: "+err.Error())
		case core.ResolvedEventTopic:
			if vv.Status() == core.Unmatched && opts.MarkUnmatched {
				arrow = "-x"
			}
			for _, e := range vv.Events {
				if e.Connection.Async {
					arrow = "-)"
				}
				notes = append(notes, r.DescribeConnection(e.Connection))
			}
		}

		fmt.Fprintf(w, "  %s%s%s: %s\n", from, arrow, to, mermaidText(label))
		if opts.ShowConnections && 0 < len(notes) {
			over := from
			if to != from {
				over += "," + to
			}
			fmt.Fprintf(w, "  Note over %s: %s\n", over, mermaidText(strings.Join(notes, "<br/>")))
		}
	}

	fmt.Fprintf(w, "\n")
	util.Logf("tools.Mermaid done")

	return w.Close()
}

// mermaidText keeps a label on one line and away from Mermaid's
// comment and entity syntax.
var mermaidText = strings.NewReplacer(
	"\n", " ",
	"#", "#35;",
	";", "#59;",
).Replace

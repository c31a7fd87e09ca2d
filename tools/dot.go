/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
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

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/util"

	"gopkg.in/yaml.v2"
)

var kindColors = map[arch.Kind]string{
	arch.KindPlatform:     "#99ddc8",
	arch.KindController:   "#2d93ad",
	arch.KindStateMachine: "#52aa5e",
	arch.KindOperation:    "#bcf2db",
}

// Dot makes a Graphviz dot file for the architecture.  A really ugly
// dot file.
//
// Modules and controller definitions are clusters.  Each component is
// labeled with the events it declares.  Highlighted connections (say,
// the ones a diagram's messages matched) are red.
//
// Dot closes the writer.
func Dot(g *arch.Graph, w io.WriteCloser, highlight map[arch.ConnID]bool) error {
	util.Logf("tools.Dot processing %d nodes", g.NumNodes())

	fmt.Fprintf(w, "digraph G {\n")
	fmt.Fprintf(w, `  graph [compound=true,rankdir=LR,nodesep=0.3,ranksep=0.6]
  node [shape="record" style="rounded,filled"]
  edge [fontsize = "10"]
`)

	var cluster func(id arch.NodeID, indent string)

	node := func(id arch.NodeID, indent string) {
		n := g.Node(id)
		label := n.Name
		style := "rounded,filled"
		def := n
		if n.IsReference() {
			def = g.Node(n.Ref)
			label += " : " + def.Name
			style += ",dashed"
		}
		label = "<B>" + escangles(label) + "</B><BR/><I>" + n.Kind.String() + "</I>"
		if evs := eventsLabel(g, def); evs != "" {
			label += `<BR/><FONT POINT-SIZE="8">` + evs + `</FONT>`
		}
		fmt.Fprintf(w, "%s  n%d [shape=\"box\", style=\"%s\", fillcolor=\"%s\", label=<%s> ]\n",
			indent, id, style, kindColors[n.Kind], label)
	}

	cluster = func(id arch.NodeID, indent string) {
		n := g.Node(id)
		fmt.Fprintf(w, "%s  subgraph cluster_%d {\n", indent, id)
		fmt.Fprintf(w, "%s    label=\"%s %s\"\n", indent, n.Kind, escape(n.Name))
		if n.Kind == arch.KindController {
			// The controller's own end of its connections.
			node(id, indent+"  ")
		}
		for _, kid := range n.Children {
			k := g.Node(kid)
			if k.Kind == arch.KindController && !k.IsReference() {
				cluster(kid, indent+"  ")
			} else {
				node(kid, indent+"  ")
			}
		}
		fmt.Fprintf(w, "%s  }\n", indent)
	}

	for _, root := range g.Roots() {
		switch g.Node(root).Kind {
		case arch.KindModule, arch.KindController:
			cluster(root, "")
		default:
			node(root, "")
		}
	}

	for i := 0; i < g.NumConnections(); i++ {
		c := g.Connection(arch.ConnID(i))
		label := eventName(g, c.FromEvent)
		if c.ToEvent != arch.NoEvent && !g.SameEvent(c.FromEvent, c.ToEvent) {
			label += " / " + eventName(g, c.ToEvent)
		}
		color := "black"
		if highlight[c.ID] {
			color = "red"
		}
		dir := "forward"
		if c.Bidirectional {
			dir = "both"
		}
		style := "solid"
		if c.Async {
			style = "dashed"
		}
		fmt.Fprintf(w, "  n%d -> n%d [ color=\"%s\" dir=\"%s\" style=\"%s\" label=\"%s\" ]\n",
			c.From, c.To, color, dir, style, escape(label))
	}

	fmt.Fprintf(w, "}\n")
	return w.Close()
}

// eventsLabel renders the node's events as a YAML list, one line per
// event.
func eventsLabel(g *arch.Graph, n *arch.Node) string {
	if len(n.Events) == 0 {
		return ""
	}
	evs := make([]string, 0, len(n.Events))
	for _, e := range n.Events {
		ev := g.Event(e)
		if ev.Type != "" {
			evs = append(evs, ev.Name+": "+ev.Type)
		} else {
			evs = append(evs, ev.Name)
		}
	}
	bs, err := yaml.Marshal(evs)
	if err != nil {
		return escangles(err.Error())
	}
	s := strings.TrimRight(escangles(string(bs)), "\n")
	return strings.Replace(s, "\n", `<BR ALIGN="LEFT"/>`, -1) + `<BR ALIGN="LEFT"/>`
}

func eventName(g *arch.Graph, id arch.EventID) string {
	if e := g.Event(id); e != nil {
		return e.Name
	}
	return "?"
}

// PNG generates a PNG image based on output from Dot.
//
// This function with write two files: basename.dot and basename.png,
// where the basename is the given string.
func PNG(g *arch.Graph, basename string, highlight map[arch.ConnID]bool) (string, error) {
	dotname := basename + ".dot"
	pngname := basename + ".png"

	dotfile, err := os.Create(dotname)
	if err != nil {
		return pngname, err
	}
	if err := Dot(g, dotfile, highlight); err != nil {
		return pngname, err
	}
	cmd := "dot -Tpng " + dotname + " > " + pngname
	if err := exec.Command("bash", "-c", cmd).Run(); err != nil {
		return pngname, err
	}
	return pngname, nil
}

func escape(s string) string {
	return strings.Replace(s, `"`, `\"`, -1)
}

func escangles(s string) string {
	s = strings.Replace(s, "&", "&amp;", -1)
	s = strings.Replace(s, "<", "&lt;", -1)
	s = strings.Replace(s, ">", "&gt;", -1)
	return s
}

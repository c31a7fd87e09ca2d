package tools

import (
	"strings"
	"testing"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/core"
	"github.com/Comcast/certres/spec"
	"github.com/Comcast/certres/util/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMermaid(t *testing.T) {
	r := testutil.NewRobot()
	ta := &spec.TargetActor{Name: "t"}
	w := &spec.World{Name: "w"}
	ev := func(from, to spec.Endpoint, name string) *spec.Message {
		return &spec.Message{
			From:  from,
			To:    to,
			Topic: spec.EventTopic{From: r.Events[name], To: arch.NoEvent},
		}
	}
	d := &spec.Diagram{
		Name:   "D",
		Actors: []spec.Actor{ta, w},
		Messages: []*spec.Message{
			ev(spec.At(w), spec.At(ta), "obstacle"),
			ev(spec.At(ta), spec.At(w), "stop"),
			{
				From:  spec.At(ta),
				To:    spec.Gate{},
				Topic: spec.OperationTopic{Sig: r.Move},
				Args:  []string{"1"},
			},
		},
	}
	g := &spec.Group{
		Name:     "G",
		Target:   spec.ModuleTarget{Module: r.M},
		Actors:   []spec.Actor{ta, w},
		Diagrams: []*spec.Diagram{d},
	}
	res := core.NewResolver(r.G, core.DefaultConfig())

	var out closingBuffer
	require.NoError(t, Mermaid(res, g, d, &out, &MermaidOpts{
		ShowConnections: true,
		MarkUnmatched:   true,
		ShowArgs:        true,
	}))
	assert.True(t, out.closed)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"sequenceDiagram",
		"  participant t",
		"  participant w",
		"  participant gate",
		"  w->>t: obstacle",
		"  Note over w,t: robot::M::P.obstacle -> robot::M::C1.obstacle",
		"  t-xw: stop",
		"  t->>gate: moveCall(speed) [1]",
	}, lines)
}

func TestMermaidDefaults(t *testing.T) {
	o := testutil.NewObstacle(false)
	w := &spec.World{Name: "w"}
	d := &spec.Diagram{
		Name:   "D",
		Actors: []spec.Actor{w},
		Messages: []*spec.Message{{
			From:  spec.At(w),
			To:    spec.Gate{},
			Topic: spec.EventTopic{From: o.Obstacle, To: arch.NoEvent},
		}},
	}
	g := &spec.Group{
		Name:     "G",
		Target:   spec.ModuleTarget{Module: o.M},
		Actors:   []spec.Actor{w},
		Diagrams: []*spec.Diagram{d},
	}

	var out closingBuffer
	require.NoError(t, Mermaid(core.NewResolver(o.G, core.DefaultConfig()), g, d, &out, nil))
	s := out.String()
	// World to gate is a scoping violation.
	assert.Contains(t, s, "  w-xgate: obstacle\n")
	assert.Contains(t, s, "  Note over w,gate: error: ")
}

func TestMermaidText(t *testing.T) {
	assert.Equal(t, "a#59; b #35;1 c", mermaidText("a; b #1\nc"))
}

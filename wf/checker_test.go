package wf

import (
	"context"
	"testing"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/core"
	"github.com/Comcast/certres/spec"
	"github.com/Comcast/certres/util/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type robotGroup struct {
	r     *testutil.Robot
	t     *spec.TargetActor
	w     *spec.World
	group *spec.Group
}

func newRobotGroup() *robotGroup {
	r := testutil.NewRobot()
	t := &spec.TargetActor{Name: "t"}
	w := &spec.World{Name: "w"}
	return &robotGroup{
		r: r,
		t: t,
		w: w,
		group: &spec.Group{
			Name:   "G",
			Target: spec.ModuleTarget{Module: r.M},
			Actors: []spec.Actor{t, w},
		},
	}
}

func (rg *robotGroup) event(from, to spec.Endpoint, name string) *spec.Message {
	return &spec.Message{
		From:  from,
		To:    to,
		Topic: spec.EventTopic{From: rg.r.Events[name], To: arch.NoEvent},
	}
}

func (rg *robotGroup) diagram(name string, ms ...*spec.Message) *spec.Diagram {
	d := &spec.Diagram{
		Name:     name,
		Actors:   []spec.Actor{rg.t, rg.w},
		Messages: ms,
	}
	rg.group.Diagrams = append(rg.group.Diagrams, d)
	return d
}

func check(t *testing.T, rg *robotGroup, enable ...string) []Diagnostic {
	c := NewChecker(core.NewResolver(rg.r.G, core.DefaultConfig()))
	if 0 < len(enable) {
		require.NoError(t, c.Enable(enable...))
	}
	return c.CheckGroup(context.Background(), rg.group)
}

func TestWellFormedGroup(t *testing.T) {
	rg := newRobotGroup()
	rg.diagram("D",
		rg.event(spec.At(rg.w), spec.At(rg.t), "obstacle"),
		rg.event(spec.At(rg.t), spec.At(rg.w), "move"),
		rg.event(spec.At(rg.t), spec.Gate{}, "done"),
	)
	rg.group.Sets = []*spec.NamedSet{{Name: "all", Set: spec.Universe{}}}

	ds := check(t, rg)
	assert.Empty(t, ds)
	assert.Equal(t, Info, Worst(ds))
}

func TestUnmatchedAndWorldEnd(t *testing.T) {
	rg := newRobotGroup()
	rg.diagram("D",
		rg.event(spec.At(rg.w), spec.At(rg.t), "ack"),
		rg.event(spec.At(rg.t), spec.At(rg.t), "obstacle"),
		rg.event(spec.At(rg.w), spec.Gate{}, "obstacle"),
	)

	ds := check(t, rg, WorldEnd, EventResolves)
	require.Len(t, ds, 5)

	// world-end runs first.
	assert.Equal(t, WorldEnd, ds[0].Check)
	assert.Equal(t, 1, ds[0].Message)
	assert.Equal(t, WorldEnd, ds[1].Check)
	assert.Equal(t, 2, ds[1].Message)

	// The unmatched message, then the resolution errors.
	assert.Equal(t, EventResolves, ds[2].Check)
	assert.Equal(t, 0, ds[2].Message)
	assert.Contains(t, ds[2].Text, "no connection carries ack")
	assert.Contains(t, ds[3].Text, "scoping violation")
	assert.Contains(t, ds[4].Text, "scoping violation")

	assert.Equal(t, Error, Worst(ds))
	assert.Equal(t, 5, Count(ds, Error))
}

func TestAmbiguousIsWarning(t *testing.T) {
	o := testutil.NewObstacle(false)
	c := *o.G.Connection(o.Conn)
	_, err := o.G.Connect(c)
	require.NoError(t, err)

	tgt := &spec.TargetActor{Name: "t"}
	w := &spec.World{Name: "w"}
	g := &spec.Group{
		Name:   "G",
		Target: spec.ModuleTarget{Module: o.M},
		Actors: []spec.Actor{tgt, w},
		Diagrams: []*spec.Diagram{{
			Name:   "D",
			Actors: []spec.Actor{tgt, w},
			Messages: []*spec.Message{{
				From:  spec.At(w),
				To:    spec.At(tgt),
				Topic: spec.EventTopic{From: o.Obstacle, To: arch.NoEvent},
			}},
		}},
	}

	ds := NewChecker(core.NewResolver(o.G, core.DefaultConfig())).CheckGroup(context.Background(), g)
	require.Len(t, ds, 1)
	assert.Equal(t, Warning, ds[0].Level)
	assert.Contains(t, ds[0].Text, "matches 2 connections")
	assert.Equal(t, "warning [event-resolves] G/D#0: "+ds[0].Text, ds[0].String())
}

func TestActorMembership(t *testing.T) {
	rg := newRobotGroup()
	stranger := &spec.World{Name: "stranger"}
	d := rg.diagram("D", rg.event(spec.At(stranger), spec.At(rg.t), "obstacle"))
	d.Actors = []spec.Actor{rg.t}
	d2 := rg.diagram("D2")
	d2.Actors = append(d2.Actors, stranger)

	ds := check(t, rg, ActorMembership)
	require.Len(t, ds, 2)
	assert.Equal(t, "D", ds[0].Diagram)
	assert.Contains(t, ds[0].Text, "stranger is not in the diagram")
	assert.Equal(t, "D2", ds[1].Diagram)
	assert.Equal(t, -1, ds[1].Message)
	assert.Contains(t, ds[1].Text, "not one of the group's")
}

func TestComponentActorScope(t *testing.T) {
	rg := newRobotGroup()
	c1 := &spec.ComponentActor{Name: "c1", Node: rg.r.C1}
	s1 := &spec.ComponentActor{Name: "s1", Node: rg.r.S1}
	rg.group.Actors = append(rg.group.Actors, c1, s1)

	ds := check(t, rg, ComponentActorScope)
	require.Len(t, ds, 2)
	assert.Contains(t, ds[0].Text, "needs a collection target")

	rg.group.Target = spec.InModuleTarget{Module: rg.r.M}
	ds = check(t, rg, ComponentActorScope)
	require.Len(t, ds, 1)
	assert.Contains(t, ds[0].Text, "s1")
	assert.Contains(t, ds[0].Text, "is not inside robot::M")
}

func TestSetNonEmpty(t *testing.T) {
	rg := newRobotGroup()
	none := &spec.NamedSet{Name: "none", Set: spec.Extensional{}}
	rg.group.Sets = []*spec.NamedSet{
		none,
		{Name: "also-none", Set: spec.SetRef{Set: none}},
		{Name: "all", Set: spec.Universe{}},
		{Name: "maybe", Set: spec.Binary{Op: spec.Difference, L: spec.Universe{}, R: spec.Extensional{Messages: []*spec.Message{{}}}}},
	}

	ds := check(t, rg, SetNonEmpty)
	require.Len(t, ds, 3)
	assert.Equal(t, Warning, ds[0].Level)
	assert.Equal(t, Warning, ds[1].Level)
	assert.Equal(t, Info, ds[2].Level)
	assert.Contains(t, ds[2].Text, "maybe")
}

func TestEnableUnknown(t *testing.T) {
	c := NewChecker(nil)
	assert.ErrorIs(t, c.Enable("nope"), UnknownCheck)
	assert.Len(t, Builtins(), 5)
}

func TestNoTarget(t *testing.T) {
	g := &spec.Group{Name: "G"}
	ds := NewChecker(nil).CheckGroup(context.Background(), g)
	require.Len(t, ds, 1)
	assert.Equal(t, Error, ds[0].Level)
}

func TestLevelText(t *testing.T) {
	for _, l := range []Level{Info, Warning, Error} {
		bs, err := l.MarshalText()
		require.NoError(t, err)
		var back Level
		require.NoError(t, back.UnmarshalText(bs))
		assert.Equal(t, l, back)
	}
	_, err := ParseLevel("fatal")
	assert.Error(t, err)
}

package model

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/core"
	"github.com/Comcast/certres/interpreters"
	"github.com/Comcast/certres/wf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRobot(t *testing.T) *Built {
	doc, err := ReadFile("testdata/robot.yaml")
	require.NoError(t, err)
	built, err := Build(doc)
	require.NoError(t, err)
	return built
}

func TestParseStrict(t *testing.T) {
	_, err := Parse([]byte("name: x\npackages: [{name: p}]\ncolour: blue\n"))
	assert.Error(t, err)

	doc, err := Parse([]byte(`{"name": "x", "packages": [{"name": "p"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "x", doc.Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no name", "packages: [{name: p}]"},
		{"no packages", "name: x"},
		{"bad target kind", `
name: x
packages: [{name: p}]
groups:
  - name: g
    target: {kind: platform, path: "p::P"}
    actors: []
`},
		{"actor called gate", `
name: x
packages: [{name: p}]
groups:
  - name: g
    target: {kind: module, path: "p::M"}
    actors: [{name: gate, kind: world}]
`},
		{"component actor without node", `
name: x
packages: [{name: p}]
groups:
  - name: g
    target: {kind: in-module, path: "p::M"}
    actors: [{name: c, kind: component}]
`},
		{"event and operation", `
name: x
packages: [{name: p}]
groups:
  - name: g
    target: {kind: module, path: "p::M"}
    actors: [{name: t, kind: target}]
    diagrams:
      - name: d
        actors: [t]
        messages: [{from: t, to: gate, event: e, operation: o}]
`},
		{"connection without event", `
name: x
packages:
  - name: p
    modules:
      - name: M
        connections: [{from: P, to: C}]
`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc, err := Parse([]byte(test.src))
			require.NoError(t, err)
			err = Validate(doc)
			assert.True(t, errors.Is(err, Invalid), "%v", err)
		})
	}
}

func TestReadFileInlines(t *testing.T) {
	doc, err := ReadFile("testdata/robot.yaml")
	require.NoError(t, err)
	require.Len(t, doc.Checks, 1)
	assert.Equal(t, "sender-is-known", doc.Checks[0].Name)
	assert.Equal(t, wf.Warning, doc.Checks[0].Level)
	assert.Nil(t, doc.Config)
}

func TestBuildRobot(t *testing.T) {
	built := readRobot(t)
	g := built.Graph

	assert.Equal(t, 9, g.NumConnections())
	assert.Equal(t, core.DefaultConfig(), built.Config)

	m, have := g.Lookup("robot", "M")
	require.True(t, have)
	p := g.Platform(m)
	require.NotEqual(t, arch.NoNode, p)
	assert.True(t, g.Node(p).IsReference())
	assert.Equal(t, "P", g.Node(p).Name)

	o, have := g.Lookup("robot", "M", "C1", "O")
	require.True(t, have)
	assert.Equal(t, arch.KindOperation, g.Node(o).Kind)

	s2, have := g.Lookup("robot", "M", "C1", "S2")
	require.True(t, have)
	def, have := g.Lookup("robot", "S2")
	require.True(t, have)
	assert.Equal(t, def, g.Node(s2).Ref)

	require.Len(t, built.Groups, 2)
	inside, have := built.Group("inside")
	require.True(t, have)
	assert.Len(t, inside.Actors, 3)
	assert.Len(t, inside.Sets, 4)
	_, have = built.Group("nope")
	assert.False(t, have)
}

func TestResolveRobot(t *testing.T) {
	built := readRobot(t)
	r := built.Resolver()

	outside, _ := built.Group("outside")
	d := outside.Diagrams[0]
	ctx := outside.Context(d)

	rt, err := r.ResolveTopic(d.Messages[0], ctx)
	require.NoError(t, err)
	et, is := rt.(core.ResolvedEventTopic)
	require.True(t, is)
	re, unique := et.Unique()
	require.True(t, unique)
	assert.Equal(t, core.Forwards, re.Direction)
	assert.Equal(t, "robot::M::P.obstacle -> robot::M::C1.obstacle", r.DescribeConnection(re.Connection))
	assert.Equal(t, []string{"0.5"}, d.Messages[0].Args)

	rt, err = r.ResolveTopic(d.Messages[2], ctx)
	require.NoError(t, err)
	op, is := rt.(core.ResolvedOperation)
	require.True(t, is)
	assert.Equal(t, "moveCall", op.Sig.Name)

	inside, _ := built.Group("inside")
	d = inside.Diagrams[0]
	ctx = inside.Context(d)
	for i, m := range d.Messages {
		rt, err := r.ResolveTopic(m, ctx)
		require.NoError(t, err, "message %d", i)
		assert.Equal(t, core.Matched, rt.(core.ResolvedEventTopic).Status(), "message %d", i)
	}

	rest, _ := inside.Set("rest")
	none, _ := inside.Set("none")
	acks, _ := inside.Set("acks")
	assert.Equal(t, core.Universal, r.Analyse(rest.Set))
	assert.Equal(t, core.Empty, r.Analyse(none.Set))
	assert.Equal(t, core.Inhabited, r.Analyse(acks.Set))
}

func TestCheckRobot(t *testing.T) {
	built := readRobot(t)
	c := wf.NewChecker(built.Resolver())
	c.Scripts = built.Scripts
	c.Interpreters = interpreters.Standard()

	diags := c.CheckAll(context.Background(), built.Groups)
	assert.Equal(t, 0, wf.Count(diags, wf.Error), "%v", diags)
	require.Equal(t, 1, wf.Count(diags, wf.Warning), "%v", diags)
	assert.Equal(t, wf.Warning, wf.Worst(diags))
}

func build(t *testing.T, src string) error {
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	require.NoError(t, Validate(doc))
	_, err = Build(doc)
	return err
}

func TestBuildDuplicates(t *testing.T) {
	tests := []struct {
		name, src, what string
	}{
		{"package", `
name: x
packages: [{name: p}, {name: p}]
`, "package"},
		{"interface", `
name: x
packages:
  - name: p
    interfaces: [{name: I, events: []}, {name: I, events: []}]
`, "interface"},
		{"module", `
name: x
packages:
  - name: p
    platforms: [{name: M}]
    modules: [{name: M}]
`, "module"},
		{"controller", `
name: x
packages:
  - name: p
    modules:
      - name: M
        controllers: [{name: C}, {name: C}]
`, "controller"},
		{"set", `
name: x
packages:
  - name: p
    modules: [{name: M}]
groups:
  - name: g
    target: {kind: module, path: "p::M"}
    actors: []
    sets: [{name: s}, {name: s, universe: true}]
`, "set"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := build(t, test.src)
			var dup *DuplicateName
			require.True(t, errors.As(err, &dup), "%v", err)
			assert.Equal(t, test.what, dup.What)
		})
	}
}

func TestBuildUnknownReferences(t *testing.T) {
	tests := []struct {
		name, src, what string
	}{
		{"interface", `
name: x
packages:
  - name: p
    modules:
      - name: M
        controllers: [{name: C, uses: [Nope]}]
`, "interface"},
		{"definition", `
name: x
packages:
  - name: p
    modules:
      - name: M
        controllers: [{ref: Nope}]
`, "controller"},
		{"connection end", `
name: x
packages:
  - name: p
    interfaces: [{name: I, events: [{name: e}]}]
    modules:
      - name: M
        controllers: [{name: C, uses: [I]}]
        connections: [{from: C.e, to: D.e}]
`, "connection end"},
		{"event", `
name: x
packages:
  - name: p
    interfaces: [{name: I, events: [{name: e}]}]
    modules:
      - name: M
        platform: {name: P, uses: [I]}
        controllers: [{name: C}]
        connections: [{from: P.e, to: C.e}]
`, "event"},
		{"target", `
name: x
packages: [{name: p}]
groups:
  - name: g
    target: {kind: module, path: "p::M"}
    actors: []
`, "node"},
		{"actor", `
name: x
packages:
  - name: p
    modules: [{name: M}]
groups:
  - name: g
    target: {kind: module, path: "p::M"}
    actors: [{name: t, kind: target}]
    diagrams: [{name: d, actors: [t, w]}]
`, "actor"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := build(t, test.src)
			var unknown *UnknownReference
			require.True(t, errors.As(err, &unknown), "%v", err)
			assert.Equal(t, test.what, unknown.What)
		})
	}
}

func TestBuildAmbiguousEvent(t *testing.T) {
	src := `
name: x
packages:
  - name: p
    interfaces:
      - {name: I, events: [{name: e}]}
      - {name: J, events: [{name: e}]}
    modules: [{name: M}]
groups:
  - name: g
    target: {kind: module, path: "p::M"}
    actors: [{name: t, kind: target}, {name: w, kind: world}]
    diagrams:
      - name: d
        actors: [t, w]
        messages: [{from: w, to: t, event: %s}]
`
	err := build(t, fmt.Sprintf(src, "e"))
	assert.True(t, errors.Is(err, AmbiguousEvent), "%v", err)

	assert.NoError(t, build(t, fmt.Sprintf(src, "J.e")))
	assert.NoError(t, build(t, fmt.Sprintf(src, "p::I.e")))
}

func TestBuildTargetKind(t *testing.T) {
	err := build(t, `
name: x
packages:
  - name: p
    modules: [{name: M}]
groups:
  - name: g
    target: {kind: controller, path: "p::M"}
    actors: []
`)
	assert.Error(t, err)
}

func TestBuildConfig(t *testing.T) {
	doc, err := Parse([]byte(`
name: x
packages: [{name: p}]
config:
  followSetReferences: false
  declaredSenderForBackwards: true
`))
	require.NoError(t, err)
	built, err := Build(doc)
	require.NoError(t, err)
	assert.False(t, built.Config.FollowSetReferences)
	assert.True(t, built.Config.DeclaredSenderForBackwards)
	assert.True(t, built.Resolver().Events.DeclaredSenderForBackwards)
}

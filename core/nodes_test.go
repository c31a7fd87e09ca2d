package core

import (
	"errors"
	"testing"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/spec"
	"github.com/Comcast/certres/util/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalise(t *testing.T) {
	r := testutil.NewRobot()
	defs := NewDefinitionResolver(r.G)

	for ref, def := range map[arch.NodeID]arch.NodeID{
		r.PRef:  r.P,
		r.C2Ref: r.C2,
		r.S2Ref: r.S2,
		r.C1:    r.C1,
	} {
		got, err := defs.Normalise(ref)
		require.NoError(t, err)
		assert.Equal(t, def, got, "normalising %s", r.G.Node(ref).Name)
	}

	_, err := defs.Normalise(arch.NodeID(1000))
	var uc *UnsupportedConstruct
	assert.True(t, errors.As(err, &uc))

	all, err := defs.NormaliseAll([]arch.NodeID{r.C2Ref, r.C1, r.C2})
	require.NoError(t, err)
	assert.Equal(t, NodeSet{r.C2, r.C1}, all)
}

func TestQualifiedNames(t *testing.T) {
	r := testutil.NewRobot()
	names := NewNameResolver(r.G)

	assert.Equal(t, []string{"robot", "M"}, names.Qualified(r.M))
	assert.Equal(t, []string{"robot", "M", "C1", "S1"}, names.Qualified(r.S1))
	assert.Equal(t, []string{"robot", "M", "C1", "S2"}, names.Qualified(r.S2Ref))
	// Package-level definitions are named where they are used.
	assert.Equal(t, []string{"robot", "M", "C1", "S2"}, names.Qualified(r.S2))
	assert.Equal(t, []string{"robot", "M", "C2", "S3"}, names.Qualified(r.S3))
	assert.Equal(t, "robot::M::P", names.Joined(r.P, "::"))
}

func TestEnclosingScopes(t *testing.T) {
	r := testutil.NewRobot()
	defs := NewDefinitionResolver(r.G)
	controllers := NewControllerResolver(r.G, defs)
	machines := NewStateMachineResolver(r.G, defs)

	m, err := controllers.Module(r.C2)
	require.NoError(t, err)
	assert.Equal(t, r.M, m)

	c, err := machines.Controller(r.S2)
	require.NoError(t, err)
	assert.Equal(t, r.C1, c)

	c, err = machines.Controller(r.S3)
	require.NoError(t, err)
	assert.Equal(t, r.C2, c)

	orphan, err := r.G.AddDefinition(arch.KindController, arch.NoNode, "robot", "Orphan")
	require.NoError(t, err)
	_, err = controllers.Module(orphan)
	assert.True(t, errors.Is(err, NoEnclosingScope))
}

func TestTargetAndWorldNodes(t *testing.T) {
	r := testutil.NewRobot()
	res := NewResolver(r.G, DefaultConfig())

	tests := []struct {
		name   string
		target spec.Target
		nodes  NodeSet
		world  NodeSet
	}{
		{
			name:   "module",
			target: spec.ModuleTarget{Module: r.M},
			nodes:  NodeSet{r.C1, r.C2},
			world:  NodeSet{r.P},
		},
		{
			name:   "components of module",
			target: spec.InModuleTarget{Module: r.M},
			nodes:  NodeSet{r.C1, r.C2},
			world:  NodeSet{r.P, r.C1, r.C2},
		},
		{
			name:   "controller",
			target: spec.ControllerTarget{Controller: r.C1},
			nodes:  NodeSet{r.C1},
			world:  NodeSet{r.P, r.C2},
		},
		{
			name:   "controller by reference",
			target: spec.ControllerTarget{Controller: r.C2Ref},
			nodes:  NodeSet{r.C2},
			world:  NodeSet{r.P, r.C1},
		},
		{
			name:   "package-level controller",
			target: spec.ControllerTarget{Controller: r.C2},
			nodes:  NodeSet{r.C2},
			world:  NodeSet{r.P, r.C1},
		},
		{
			name:   "components of controller",
			target: spec.InControllerTarget{Controller: r.C1},
			nodes:  NodeSet{r.C1},
			world:  NodeSet{r.C1, r.S1, r.S2, r.O},
		},
		{
			name:   "state machine",
			target: spec.StateMachineTarget{StateMachine: r.S1},
			nodes:  NodeSet{r.S1},
			world:  NodeSet{r.C1, r.S2, r.O},
		},
		{
			name:   "package-level state machine",
			target: spec.StateMachineTarget{StateMachine: r.S2},
			nodes:  NodeSet{r.S2},
			world:  NodeSet{r.C1, r.S1, r.O},
		},
		{
			name:   "operation",
			target: spec.OperationTarget{Operation: r.O},
			nodes:  NodeSet{r.O},
			world:  NodeSet{r.C1, r.S1, r.S2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nodes, err := res.ResolveTargetNodes(tc.target)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.nodes, nodes)

			world, err := res.ResolveWorldNodes(tc.target)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.world, world)

			if !spec.IsCollection(tc.target) {
				for _, n := range nodes {
					assert.False(t, world.Contains(n), "world contains the target")
				}
			}
		})
	}
}

func TestWrongKindTarget(t *testing.T) {
	r := testutil.NewRobot()
	res := NewResolver(r.G, DefaultConfig())

	_, err := res.ResolveTargetNodes(spec.ModuleTarget{Module: r.C1})
	var sv *ScopingViolation
	require.True(t, errors.As(err, &sv), "got %v", err)
	assert.True(t, errors.Is(err, WrongKind))

	_, err = res.ResolveWorldNodes(spec.StateMachineTarget{StateMachine: r.C1})
	assert.True(t, errors.As(err, &sv))

	_, err = res.ResolveTargetNodes(nil)
	var uc *UnsupportedConstruct
	assert.True(t, errors.As(err, &uc))
}

func TestActorsAndGate(t *testing.T) {
	r := testutil.NewRobot()
	res := NewResolver(r.G, DefaultConfig())
	target := spec.InModuleTarget{Module: r.M}
	c1 := &spec.ComponentActor{Name: "c1", Node: r.C1}
	plat := &spec.ComponentActor{Name: "p", Node: r.PRef}

	ns, err := res.ResolveActor(plat, target)
	require.NoError(t, err)
	assert.Equal(t, NodeSet{r.P}, ns)

	ns, err = res.ResolveActor(&spec.World{Name: "w"}, target)
	require.NoError(t, err)
	assert.ElementsMatch(t, NodeSet{r.P, r.C1, r.C2}, ns)

	ctx := spec.ResolveContext{Target: target, Actors: []spec.Actor{c1, plat}}
	ns, err = res.ResolveEndpoint(spec.Gate{}, ctx)
	require.NoError(t, err)
	assert.Equal(t, NodeSet{r.C2}, ns)

	// Actors not in the diagram do not claim anything.
	ctx.Actors = []spec.Actor{c1}
	ns, err = res.ResolveEndpoint(spec.Gate{}, ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, NodeSet{r.P, r.C2}, ns)
}

func TestOutbound(t *testing.T) {
	r := testutil.NewRobot()
	res := NewResolver(r.G, DefaultConfig())

	ids := func(cs []*arch.Connection) []arch.ConnID {
		acc := make([]arch.ConnID, 0, len(cs))
		for _, c := range cs {
			acc = append(acc, c.ID)
		}
		return acc
	}

	tests := []struct {
		name   string
		target spec.Target
		want   []arch.ConnID
	}{
		{"module", spec.ModuleTarget{Module: r.M}, []arch.ConnID{r.ObstacleIn, r.MoveOut, r.DoneStop}},
		{"controller", spec.ControllerTarget{Controller: r.C1}, []arch.ConnID{r.ObstacleIn, r.MoveOut, r.AckBetween}},
		{"state machine", spec.StateMachineTarget{StateMachine: r.S1}, []arch.ConnID{r.ObstacleDown, r.MoveUp, r.AckStm}},
		{"referenced state machine", spec.StateMachineTarget{StateMachine: r.S2Ref}, []arch.ConnID{r.AckStm, r.StopUp, r.OpAck}},
		{"components of module", spec.InModuleTarget{Module: r.M}, []arch.ConnID{r.ObstacleIn, r.MoveOut, r.AckBetween, r.DoneStop}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cs, err := res.Outbound.Outbound(tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(cs))
		})
	}

	cs, err := res.Outbound.Internal(spec.InControllerTarget{Controller: r.C1})
	require.NoError(t, err)
	assert.Len(t, cs, 5)

	_, err = res.Outbound.Internal(spec.ModuleTarget{Module: r.M})
	var sv *ScopingViolation
	assert.True(t, errors.As(err, &sv))
}

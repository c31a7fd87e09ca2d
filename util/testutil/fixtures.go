package testutil

import (
	"github.com/Comcast/certres/arch"
)

// Obstacle is the smallest interesting architecture: module M with
// platform P and controller C, both declaring the shared event
// obstacle, and one connection P.obstacle -> C.obstacle.
type Obstacle struct {
	G        *arch.Graph
	M, P, C  arch.NodeID
	Obstacle arch.EventID // the shared declaration
	Conn     arch.ConnID
}

// NewObstacle builds the Obstacle architecture.  The connection is
// bidirectional if asked.
func NewObstacle(bidirectional bool) *Obstacle {
	g := arch.New()
	o := &Obstacle{G: g}

	o.Obstacle = g.AddEvent("obstacle", "")
	o.M = must(g.AddDefinition(arch.KindModule, arch.NoNode, "robot", "M"))
	o.P = must(g.AddDefinition(arch.KindPlatform, o.M, "", "P"))
	o.C = must(g.AddDefinition(arch.KindController, o.M, "", "C"))

	pe := must(g.AliasEvent(o.Obstacle))
	ce := must(g.AliasEvent(o.Obstacle))
	must(0, g.Declare(o.P, pe))
	must(0, g.Declare(o.C, ce))

	o.Conn = must(g.Connect(arch.Connection{
		Owner:         o.M,
		From:          o.P,
		FromEvent:     pe,
		To:            o.C,
		ToEvent:       ce,
		Bidirectional: bidirectional,
	}))
	return o
}

// Robot is a fuller architecture exercising references, package-level
// definitions, bidirectional and cross-event connections at both the
// module and the controller level.
//
//	module M
//	  platform P   (ref to package-level P)
//	  controller C1 (defined in M)
//	    stm S1      (defined in C1)
//	    stm S2      (ref to package-level S2)
//	    operation O (defined in C1)
//	  controller C2 (ref to package-level C2)
//	    stm S3      (defined in C2)
//
//	M:  P.obstacle -> C1.obstacle
//	    C1.move -> P.move
//	    C1.ack <-> C2.ack
//	    C2.done -> P.stop
//	C1: C1.obstacle -> S1.obstacle
//	    S1.move -> C1.move
//	    S1.ack <-> S2.ack
//	    S2.stop -> C1.stop
//	    O.ack -> S2.ack
type Robot struct {
	G *arch.Graph

	M                 arch.NodeID
	P, PRef           arch.NodeID
	C1                arch.NodeID
	C2, C2Ref         arch.NodeID
	S1, S2, S2Ref, S3 arch.NodeID
	O                 arch.NodeID
	Events            map[string]arch.EventID
	Move              arch.SigID
	ObstacleIn        arch.ConnID
	MoveOut           arch.ConnID
	AckBetween        arch.ConnID
	DoneStop          arch.ConnID
	ObstacleDown      arch.ConnID
	MoveUp            arch.ConnID
	AckStm            arch.ConnID
	StopUp            arch.ConnID
	OpAck             arch.ConnID
}

// NewRobot builds the Robot architecture.
func NewRobot() *Robot {
	g := arch.New()
	r := &Robot{
		G:      g,
		Events: make(map[string]arch.EventID),
	}

	for _, name := range []string{"obstacle", "move", "stop", "ack", "done"} {
		r.Events[name] = g.AddEvent(name, "")
	}
	r.Move = g.AddSig("moveCall", arch.Param{Name: "speed", Type: "real"})

	declare := func(n arch.NodeID, names ...string) map[string]arch.EventID {
		acc := make(map[string]arch.EventID, len(names))
		for _, name := range names {
			e := must(g.AliasEvent(r.Events[name]))
			must(0, g.Declare(n, e))
			acc[name] = e
		}
		return acc
	}

	r.P = must(g.AddDefinition(arch.KindPlatform, arch.NoNode, "robot", "P"))
	pe := declare(r.P, "obstacle", "move", "stop")
	must(0, g.Provide(r.P, r.Move))

	r.C2 = must(g.AddDefinition(arch.KindController, arch.NoNode, "robot", "C2"))
	c2e := declare(r.C2, "ack", "done")

	r.S2 = must(g.AddDefinition(arch.KindStateMachine, arch.NoNode, "robot", "S2"))
	s2e := declare(r.S2, "ack", "stop")

	r.M = must(g.AddDefinition(arch.KindModule, arch.NoNode, "robot", "M"))
	r.PRef = must(g.AddReference(r.M, r.P, ""))
	r.C1 = must(g.AddDefinition(arch.KindController, r.M, "", "C1"))
	c1e := declare(r.C1, "obstacle", "move", "stop", "ack")
	r.C2Ref = must(g.AddReference(r.M, r.C2, ""))

	r.S1 = must(g.AddDefinition(arch.KindStateMachine, r.C1, "", "S1"))
	s1e := declare(r.S1, "obstacle", "move", "ack")
	r.S2Ref = must(g.AddReference(r.C1, r.S2, ""))
	r.O = must(g.AddDefinition(arch.KindOperation, r.C1, "", "O"))
	oe := declare(r.O, "ack")

	r.S3 = must(g.AddDefinition(arch.KindStateMachine, r.C2, "", "S3"))
	declare(r.S3, "ack")

	connect := func(owner, from arch.NodeID, fe arch.EventID, to arch.NodeID, te arch.EventID, bidi bool) arch.ConnID {
		return must(g.Connect(arch.Connection{
			Owner:         owner,
			From:          from,
			FromEvent:     fe,
			To:            to,
			ToEvent:       te,
			Bidirectional: bidi,
		}))
	}

	r.ObstacleIn = connect(r.M, r.PRef, pe["obstacle"], r.C1, c1e["obstacle"], false)
	r.MoveOut = connect(r.M, r.C1, c1e["move"], r.PRef, pe["move"], false)
	r.AckBetween = connect(r.M, r.C1, c1e["ack"], r.C2Ref, c2e["ack"], true)
	r.DoneStop = connect(r.M, r.C2Ref, c2e["done"], r.PRef, pe["stop"], false)

	r.ObstacleDown = connect(r.C1, r.C1, c1e["obstacle"], r.S1, s1e["obstacle"], false)
	r.MoveUp = connect(r.C1, r.S1, s1e["move"], r.C1, c1e["move"], false)
	r.AckStm = connect(r.C1, r.S1, s1e["ack"], r.S2Ref, s2e["ack"], true)
	r.StopUp = connect(r.C1, r.S2Ref, s2e["stop"], r.C1, c1e["stop"], false)
	r.OpAck = connect(r.C1, r.O, oe["ack"], r.S2Ref, arch.NoEvent, false)

	return r
}

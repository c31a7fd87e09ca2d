package core

import (
	"testing"

	"github.com/Comcast/certres/spec"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestSetCombinators(t *testing.T) {
	all := []Analysis{Unknown, Empty, Inhabited, Universal}

	for _, x := range all {
		assert.Equal(t, Universal, UnionOf(x, Universal), "union with universal, %s", x)
		assert.Equal(t, Empty, IntersectionOf(x, Empty), "intersection with empty, %s", x)
		assert.Equal(t, Empty, DifferenceOf(x, Universal), "difference with universal, %s", x)
		assert.Equal(t, x, DifferenceOf(x, Empty), "difference with empty, %s", x)
	}

	assert.Equal(t, Inhabited, UnionOf(Inhabited, Unknown))
	assert.Equal(t, Empty, UnionOf(Empty, Empty))
	assert.Equal(t, Unknown, UnionOf(Empty, Unknown))
	assert.Equal(t, Inhabited, IntersectionOf(Universal, Inhabited))
	assert.Equal(t, Unknown, IntersectionOf(Inhabited, Inhabited))
	assert.Equal(t, Unknown, DifferenceOf(Universal, Inhabited))
}

func TestSetAnalyser(t *testing.T) {
	one := spec.Extensional{Messages: []*spec.Message{{}}}
	none := spec.Extensional{}
	named := &spec.NamedSet{Name: "none", Set: none}

	tests := []struct {
		name   string
		set    spec.MessageSet
		follow bool
		want   Analysis
	}{
		{"empty listing", none, false, Empty},
		{"listing", one, false, Inhabited},
		{"universe", spec.Universe{}, false, Universal},
		{"universe minus anything", spec.Binary{Op: spec.Difference, L: spec.Universe{}, R: one}, false, Unknown},
		{"anything minus universe", spec.Binary{Op: spec.Difference, L: one, R: spec.Universe{}}, false, Empty},
		{"union", spec.Binary{Op: spec.Union, L: none, R: one}, false, Inhabited},
		{"unfollowed ref", spec.SetRef{Set: named}, false, Unknown},
		{"followed ref", spec.SetRef{Set: named}, true, Empty},
		{"dangling ref", spec.SetRef{}, true, Unknown},
		{"nil", nil, true, Unknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := &SetAnalyser{FollowRefs: tc.follow}
			assert.Equal(t, tc.want, a.Analyse(tc.set))
		})
	}

	t.Run("cycle", func(t *testing.T) {
		loop := &spec.NamedSet{Name: "loop"}
		loop.Set = spec.Binary{Op: spec.Union, L: none, R: spec.SetRef{Set: loop}}
		a := &SetAnalyser{FollowRefs: true}
		assert.Equal(t, Unknown, a.Analyse(spec.SetRef{Set: loop}))
	})
}

// universe is the concrete universe the soundness property works in:
// three messages, as bits of a mask.
const universe = 0x7

// program builds a set expression and its concrete denotation from a
// list of instructions run on a stack.
func program(code []uint8) (spec.MessageSet, uint8) {
	msgs := []*spec.Message{{Args: []string{"a"}}, {Args: []string{"b"}}, {Args: []string{"c"}}}

	type entry struct {
		set  spec.MessageSet
		bits uint8
	}
	var stack []entry
	pop := func() entry {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return e
	}

	for _, b := range code {
		switch b % 6 {
		case 0:
			mask := (b >> 3) & universe
			var listed []*spec.Message
			for i, m := range msgs {
				if mask&(1<<i) != 0 {
					listed = append(listed, m)
				}
			}
			stack = append(stack, entry{spec.Extensional{Messages: listed}, mask})
		case 1:
			stack = append(stack, entry{spec.Universe{}, universe})
		case 2, 3, 4:
			if len(stack) < 2 {
				continue
			}
			r, l := pop(), pop()
			e := entry{}
			switch b % 6 {
			case 2:
				e = entry{spec.Binary{Op: spec.Union, L: l.set, R: r.set}, l.bits | r.bits}
			case 3:
				e = entry{spec.Binary{Op: spec.Intersection, L: l.set, R: r.set}, l.bits & r.bits}
			case 4:
				e = entry{spec.Binary{Op: spec.Difference, L: l.set, R: r.set}, l.bits &^ r.bits}
			}
			stack = append(stack, e)
		case 5:
			if len(stack) == 0 {
				continue
			}
			top := pop()
			ref := spec.SetRef{Set: &spec.NamedSet{Name: "ref", Set: top.set}}
			stack = append(stack, entry{ref, top.bits})
		}
	}

	if len(stack) == 0 {
		return spec.Extensional{}, 0
	}
	acc := pop()
	for len(stack) > 0 {
		l := pop()
		acc = entry{spec.Binary{Op: spec.Union, L: l.set, R: acc.set}, l.bits | acc.bits}
	}
	return acc.set, acc.bits
}

func TestSetAnalysisSoundness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	sound := func(follow bool) func([]uint8) bool {
		return func(code []uint8) bool {
			set, bits := program(code)
			a := &SetAnalyser{FollowRefs: follow}
			switch a.Analyse(set) {
			case Empty:
				return bits == 0
			case Universal:
				return bits == universe
			case Inhabited:
				return bits != 0
			}
			return true
		}
	}

	properties.Property("analysis is sound following references", prop.ForAll(
		sound(true),
		gen.SliceOf(gen.UInt8()),
	))
	properties.Property("analysis is sound without following references", prop.ForAll(
		sound(false),
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}

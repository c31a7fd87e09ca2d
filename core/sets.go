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

import "github.com/Comcast/certres/spec"

// Analysis is an abstract value for a set of messages.
//
// Empty and Universal are only ever claimed when true.  Inhabited
// means "not empty", and the set might in fact be universal.  Unknown
// means no sound conclusion, which is not the same as Empty.
type Analysis int

const (
	Unknown Analysis = iota
	Empty
	Inhabited
	Universal
)

func (a Analysis) String() string {
	switch a {
	case Empty:
		return "empty"
	case Inhabited:
		return "inhabited"
	case Universal:
		return "universal"
	}
	return "unknown"
}

// UnionOf combines analyses of the operands of a union.
func UnionOf(l, r Analysis) Analysis {
	switch {
	case l == Universal || r == Universal:
		return Universal
	case l == Inhabited || r == Inhabited:
		return Inhabited
	case l == Empty && r == Empty:
		return Empty
	}
	return Unknown
}

// IntersectionOf combines analyses of the operands of an
// intersection.
func IntersectionOf(l, r Analysis) Analysis {
	switch {
	case l == Universal && r == Universal:
		return Universal
	case (l == Universal && r == Inhabited) || (l == Inhabited && r == Universal):
		return Inhabited
	case l == Empty || r == Empty:
		return Empty
	}
	return Unknown
}

// DifferenceOf combines analyses of the operands of l \ r.
func DifferenceOf(l, r Analysis) Analysis {
	switch r {
	case Universal:
		return Empty
	case Empty:
		return l
	}
	return Unknown
}

// SetAnalyser approximates the emptiness and universality of message
// set expressions without enumerating them.
type SetAnalyser struct {
	// FollowRefs makes a reference to a named set analyse that
	// set.  Otherwise references are Unknown.
	FollowRefs bool
}

// Analyse analyses the expression.
//
// A nil expression is Unknown.  So is a cycle of references, since the
// recursion never bottoms out in anything sound.
func (a *SetAnalyser) Analyse(s spec.MessageSet) Analysis {
	return a.analyse(s, nil)
}

func (a *SetAnalyser) analyse(s spec.MessageSet, visiting map[*spec.NamedSet]bool) Analysis {
	switch vv := s.(type) {
	case spec.Extensional:
		if len(vv.Messages) == 0 {
			return Empty
		}
		return Inhabited
	case spec.Universe:
		return Universal
	case spec.SetRef:
		if !a.FollowRefs || vv.Set == nil || visiting[vv.Set] {
			return Unknown
		}
		if visiting == nil {
			visiting = make(map[*spec.NamedSet]bool)
		}
		visiting[vv.Set] = true
		x := a.analyse(vv.Set.Set, visiting)
		delete(visiting, vv.Set)
		return x
	case spec.Binary:
		l := a.analyse(vv.L, visiting)
		r := a.analyse(vv.R, visiting)
		switch vv.Op {
		case spec.Union:
			return UnionOf(l, r)
		case spec.Intersection:
			return IntersectionOf(l, r)
		case spec.Difference:
			return DifferenceOf(l, r)
		}
		return Unknown
	default:
		return Unknown
	}
}

/* Copyright 2026 Comcast Cable Communications Management, LLC
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

package wf

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/Comcast/certres/core"
	"github.com/Comcast/certres/spec"
)

// UnknownCheck is returned by Enable for a name that isn't a
// built-in check.
var UnknownCheck = errors.New("unknown check")

// Checker runs checks over specification groups.
type Checker struct {
	Resolver *core.Resolver

	// Enabled names the built-in checks to run.  Nil runs all of
	// them.
	Enabled []string

	// Scripts run after the built-in checks.  They need
	// Interpreters.
	Scripts      []*Script
	Interpreters InterpretersMap

	Debug bool
}

// NewChecker makes a Checker running every built-in check and no
// scripts.
func NewChecker(r *core.Resolver) *Checker {
	return &Checker{
		Resolver:     r,
		Interpreters: NewInterpretersMap(),
	}
}

func (c *Checker) logf(format string, args ...interface{}) {
	if c.Debug {
		log.Printf("wf.Checker "+format, args...)
	}
}

// Enable restricts the Checker to the named built-in checks.
func (c *Checker) Enable(names ...string) error {
	for _, name := range names {
		if !IsBuiltin(name) {
			return fmt.Errorf("%s: %w", name, UnknownCheck)
		}
	}
	c.Enabled = names
	return nil
}

func (c *Checker) enabled(name string) bool {
	return c.Enabled == nil || slices.Contains(c.Enabled, name)
}

// pass accumulates the diagnostics for one group.
type pass struct {
	c   *Checker
	g   *spec.Group
	acc []Diagnostic
}

func (p *pass) add(l Level, check string, d *spec.Diagram, i int, format string, args ...interface{}) {
	diag := Diagnostic{
		Level:   l,
		Check:   check,
		Group:   p.g.Name,
		Message: i,
		Text:    fmt.Sprintf(format, args...),
	}
	if d != nil {
		diag.Diagram = d.Name
	}
	p.c.logf("%s", diag)
	p.acc = append(p.acc, diag)
}

// CheckGroup runs the enabled checks and then the scripts over the
// group.
//
// The context only matters to scripts.
func (c *Checker) CheckGroup(ctx context.Context, g *spec.Group) []Diagnostic {
	p := &pass{c: c, g: g}
	c.logf("checking group %s", g.Name)

	if g.Target == nil {
		p.add(Error, "target", nil, -1, "group has no target")
		return p.acc
	}

	for _, b := range builtins {
		if !c.enabled(b.name) {
			continue
		}
		b.run(p)
	}

	if 0 < len(c.Scripts) {
		c.runScripts(ctx, p)
	}

	return p.acc
}

// CheckAll checks each group in turn.
func (c *Checker) CheckAll(ctx context.Context, gs []*spec.Group) []Diagnostic {
	var acc []Diagnostic
	for _, g := range gs {
		if err := ctx.Err(); err != nil {
			acc = append(acc, Diagnostic{
				Level:   Error,
				Check:   "context",
				Group:   g.Name,
				Message: -1,
				Text:    err.Error(),
			})
			break
		}
		acc = append(acc, c.CheckGroup(ctx, g)...)
	}
	return acc
}

func (c *Checker) runScripts(ctx context.Context, p *pass) {
	ready := make([]*Script, 0, len(c.Scripts))
	for _, s := range c.Scripts {
		if err := s.Compile(ctx, c.Interpreters); err != nil {
			p.add(Error, scriptCheck(s), nil, -1, "%s", err)
			continue
		}
		ready = append(ready, s)
	}

	r := c.Resolver
	for _, d := range p.g.Diagrams {
		ctxt := p.g.Context(d)
		for i, m := range d.Messages {
			rt, err := r.ResolveTopic(m, ctxt)
			view := MessageView(r, p.g, d, i, m, rt, err)
			for _, s := range ready {
				env := map[string]interface{}{
					"message": view,
				}
				exe, err := s.Exec(ctx, env)
				if err != nil {
					p.add(Error, scriptCheck(s), d, i, "%s", err)
					continue
				}
				if !exe.Failed() {
					continue
				}
				if len(exe.Complaints) == 0 {
					p.add(s.Level, scriptCheck(s), d, i, "predicate failed")
				}
				for _, complaint := range exe.Complaints {
					p.add(s.Level, scriptCheck(s), d, i, "%s", complaint)
				}
			}
		}
	}
}

func scriptCheck(s *Script) string {
	return "script:" + s.Name
}

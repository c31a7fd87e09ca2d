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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Comcast/certres/arch"
	"github.com/Comcast/certres/core"
	"github.com/Comcast/certres/interpreters"
	"github.com/Comcast/certres/model"
	"github.com/Comcast/certres/report"
	"github.com/Comcast/certres/spec"
	"github.com/Comcast/certres/storage/bolt"
	"github.com/Comcast/certres/tools"
	"github.com/Comcast/certres/util"
	"github.com/Comcast/certres/wf"

	"github.com/jsccast/yaml"
)

var Mods = map[string]Mod{
	"check":   &Checker{},
	"resolve": &Resolver{},
	"sets":    &SetsMod{},
	"graph":   &Grapher{},
	"seq":     &Sequencer{},
	"html":    &HTMLMod{},
	"analyze": &Analyzer{},
	"store":   &StoreMod{},
	"show":    &ShowMod{},
}

var (
	// CheckFailed is returned by check when a diagnostic reaches
	// the failure level.
	CheckFailed = errors.New("check failed")

	NoSuchGroup   = errors.New("no such group")
	NoSuchDiagram = errors.New("no such diagram")
)

// Env is where a Mod reads and writes.
type Env struct {
	In  io.Reader
	Out io.Writer
}

type Mod interface {
	F(*Env) error
	Doc() string
	Flags() *flag.FlagSet
}

// Input is the document flags most Mods share.
type Input struct {
	Filename string
	Verbose  bool
}

func (in *Input) flags(fs *flag.FlagSet) {
	fs.StringVar(&in.Filename, "i", "", "document filename (default stdin)")
	fs.BoolVar(&in.Verbose, "v", false, "verbose logging")
}

// load reads, validates and builds the document.
func (in *Input) load(env *Env) (*model.Built, error) {
	util.Logging(in.Verbose)

	var (
		doc *model.Document
		err error
	)
	if in.Filename == "" {
		dir, _ := os.Getwd()
		doc, err = model.Read(env.In, dir)
	} else {
		doc, err = model.ReadFile(in.Filename)
	}
	if err != nil {
		return nil, err
	}
	util.Logf("certtool read document %s", doc.Name)
	return model.Build(doc)
}

// emit writes x as YAML.  x goes through JSON first so that its JSON
// tags and text marshalers apply.
func emit(w io.Writer, x interface{}) error {
	js, err := json.Marshal(x)
	if err != nil {
		return err
	}
	var generic interface{}
	if err = json.Unmarshal(js, &generic); err != nil {
		return err
	}
	bs, err := yaml.Marshal(&generic)
	if err != nil {
		return err
	}
	_, err = w.Write(bs)
	return err
}

// checker makes a wf.Checker for the document's checks.
func checker(built *model.Built, enable string, scripts, debug bool) (*wf.Checker, error) {
	c := wf.NewChecker(built.Resolver())
	c.Debug = debug
	if enable != "" {
		if err := c.Enable(strings.Split(enable, ",")...); err != nil {
			return nil, err
		}
	}
	if scripts {
		c.Scripts = built.Scripts
		c.Interpreters = interpreters.Standard()
	} else {
		c.Interpreters = interpreters.Disabled()
	}
	return c, nil
}

func findDiagram(built *model.Built, group, diagram string) (*spec.Group, *spec.Diagram, error) {
	g, have := built.Group(group)
	if !have {
		return nil, nil, fmt.Errorf("%s: %w", group, NoSuchGroup)
	}
	if diagram == "" && 0 < len(g.Diagrams) {
		return g, g.Diagrams[0], nil
	}
	for _, d := range g.Diagrams {
		if d.Name == diagram {
			return g, d, nil
		}
	}
	return nil, nil, fmt.Errorf("%s/%s: %w", group, diagram, NoSuchDiagram)
}

// nopCloser lets stdout go where an io.WriteCloser is needed.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func create(env *Env, filename string) (io.WriteCloser, error) {
	if filename == "" || filename == "-" {
		return nopCloser{env.Out}, nil
	}
	return os.Create(filename)
}

type Checker struct {
	Input
	Enable  string
	Scripts bool
	FailOn  string
}

func (m *Checker) Doc() string {
	return "Runs the well-formedness checks and writes the diagnostics."
}

func (m *Checker) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	m.flags(fs)
	fs.StringVar(&m.Enable, "c", "", "comma-separated built-in checks (default all)")
	fs.BoolVar(&m.Scripts, "s", true, "run the document's scripted checks")
	fs.StringVar(&m.FailOn, "fail", "error", "fail if any diagnostic is at least this level")
	return fs
}

func (m *Checker) F(env *Env) error {
	failOn, err := wf.ParseLevel(m.FailOn)
	if err != nil {
		return err
	}
	built, err := m.load(env)
	if err != nil {
		return err
	}
	c, err := checker(built, m.Enable, m.Scripts, m.Verbose)
	if err != nil {
		return err
	}
	diags := c.CheckAll(context.Background(), built.Groups)
	if err = emit(env.Out, diags); err != nil {
		return err
	}
	if 0 < len(diags) && failOn <= wf.Worst(diags) {
		return fmt.Errorf("%d diagnostics at %s or worse: %w", countAtLeast(diags, failOn), failOn, CheckFailed)
	}
	return nil
}

func countAtLeast(ds []wf.Diagnostic, l wf.Level) int {
	n := 0
	for _, d := range ds {
		if l <= d.Level {
			n++
		}
	}
	return n
}

type Resolver struct {
	Input
	Markdown bool
}

func (m *Resolver) Doc() string {
	return "Resolves every message and writes the report (without checks)."
}

func (m *Resolver) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	m.flags(fs)
	fs.BoolVar(&m.Markdown, "md", false, "write Markdown instead of YAML")
	return fs
}

func (m *Resolver) F(env *Env) error {
	built, err := m.load(env)
	if err != nil {
		return err
	}
	rep := report.Build(context.Background(), built.Doc.Name, built.Resolver(), built.Groups, nil)
	if m.Markdown {
		return rep.Markdown(env.Out)
	}
	return emit(env.Out, rep)
}

type SetsMod struct {
	Input
}

func (m *SetsMod) Doc() string {
	return "Analyses each named message set: empty, inhabited, universal or unknown."
}

func (m *SetsMod) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("sets", flag.ContinueOnError)
	m.flags(fs)
	return fs
}

func (m *SetsMod) F(env *Env) error {
	built, err := m.load(env)
	if err != nil {
		return err
	}
	r := built.Resolver()
	acc := make(map[string]map[string]string, len(built.Groups))
	for _, g := range built.Groups {
		sets := make(map[string]string, len(g.Sets))
		for _, s := range g.Sets {
			sets[s.Name] = r.Analyse(s.Set).String()
		}
		acc[g.Name] = sets
	}
	return emit(env.Out, acc)
}

type Grapher struct {
	Input
	OutputFilename string
	Group          string
	PNG            string
}

func (m *Grapher) Doc() string {
	return "Writes the architecture as Graphviz dot, with a group's matched connections in red."
}

func (m *Grapher) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("graph", flag.ContinueOnError)
	m.flags(fs)
	fs.StringVar(&m.OutputFilename, "o", "arch.dot", "output filename (- for stdout)")
	fs.StringVar(&m.Group, "g", "", "group whose matched connections to highlight")
	fs.StringVar(&m.PNG, "png", "", "basename for basename.dot and basename.png (needs Graphviz)")
	return fs
}

func (m *Grapher) F(env *Env) error {
	built, err := m.load(env)
	if err != nil {
		return err
	}
	highlight := make(map[arch.ConnID]bool)
	if m.Group != "" {
		g, have := built.Group(m.Group)
		if !have {
			return fmt.Errorf("%s: %w", m.Group, NoSuchGroup)
		}
		matched(built.Resolver(), g, highlight)
	}
	if m.PNG != "" {
		filename, err := tools.PNG(built.Graph, m.PNG, highlight)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Out, filename)
		return nil
	}
	w, err := create(env, m.OutputFilename)
	if err != nil {
		return err
	}
	return tools.Dot(built.Graph, w, highlight) // Will Close w.
}

// matched adds the connections the group's messages match.
func matched(r *core.Resolver, g *spec.Group, acc map[arch.ConnID]bool) {
	for _, d := range g.Diagrams {
		ctx := g.Context(d)
		for _, msg := range d.Messages {
			rt, err := r.ResolveTopic(msg, ctx)
			if err != nil {
				util.Logf("certtool graph: %v", err)
				continue
			}
			if et, is := rt.(core.ResolvedEventTopic); is {
				for _, e := range et.Events {
					acc[e.Connection.ID] = true
				}
			}
		}
	}
}

type Sequencer struct {
	Input
	OutputFilename string
	Group          string
	Diagram        string
	Args           bool
}

func (m *Sequencer) Doc() string {
	return "Writes a diagram as a Mermaid sequence diagram annotated with its connections."
}

func (m *Sequencer) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("seq", flag.ContinueOnError)
	m.flags(fs)
	fs.StringVar(&m.OutputFilename, "o", "-", "output filename (- for stdout)")
	fs.StringVar(&m.Group, "g", "", "group")
	fs.StringVar(&m.Diagram, "d", "", "diagram (default the group's first)")
	fs.BoolVar(&m.Args, "a", false, "show message arguments")
	return fs
}

func (m *Sequencer) F(env *Env) error {
	built, err := m.load(env)
	if err != nil {
		return err
	}
	g, d, err := findDiagram(built, m.Group, m.Diagram)
	if err != nil {
		return err
	}
	w, err := create(env, m.OutputFilename)
	if err != nil {
		return err
	}
	return tools.Mermaid(built.Resolver(), g, d, w, &tools.MermaidOpts{
		ShowConnections: true,
		MarkUnmatched:   true,
		ShowArgs:        m.Args,
	})
}

type HTMLMod struct {
	Input
	OutputFilename string
	CSS            string
	Report         string
}

func (m *HTMLMod) Doc() string {
	return "Resolves and checks the document and writes the report as an HTML page."
}

func (m *HTMLMod) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("html", flag.ContinueOnError)
	m.flags(fs)
	fs.StringVar(&m.OutputFilename, "o", "-", "output filename (- for stdout)")
	fs.StringVar(&m.CSS, "css", "", "comma-separated stylesheet URLs")
	fs.StringVar(&m.Report, "r", "", "render this saved YAML report instead of checking a document")
	return fs
}

func (m *HTMLMod) F(env *Env) error {
	var css []string
	if m.CSS != "" {
		css = strings.Split(m.CSS, ",")
	}
	w, err := create(env, m.OutputFilename)
	if err != nil {
		return err
	}
	if m.Report != "" {
		if err = tools.ReadAndRenderReportPage(m.Report, css, w); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	}
	built, err := m.load(env)
	if err != nil {
		w.Close()
		return err
	}
	rep, err := fullReport(built, m.Verbose)
	if err != nil {
		w.Close()
		return err
	}
	if err = tools.RenderReportPage(rep, w, css); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func fullReport(built *model.Built, debug bool) (*report.Report, error) {
	c, err := checker(built, "", true, debug)
	if err != nil {
		return nil, err
	}
	return report.Build(context.Background(), built.Doc.Name, c.Resolver, built.Groups, c), nil
}

type Analyzer struct {
	Input
}

func (m *Analyzer) Doc() string {
	return "Counts the parts of the architecture and lists loose ends."
}

func (m *Analyzer) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	m.flags(fs)
	return fs
}

func (m *Analyzer) F(env *Env) error {
	built, err := m.load(env)
	if err != nil {
		return err
	}
	a, err := tools.Analyze(built.Graph)
	if err != nil {
		return err
	}
	return emit(env.Out, a)
}

// DB is the flag for the report database.
type DB struct {
	Filename string
}

func (db *DB) flags(fs *flag.FlagSet) {
	fs.StringVar(&db.Filename, "db", "reports.db", "report database filename")
}

func (db *DB) open(ctx context.Context, debug bool) (*bolt.Storage, error) {
	if dir := filepath.Dir(db.Filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	s, err := bolt.NewStorage(db.Filename)
	if err != nil {
		return nil, err
	}
	s.Debug = debug
	if err = s.Open(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

type StoreMod struct {
	Input
	DB
}

func (m *StoreMod) Doc() string {
	return "Resolves and checks the document and stores the report under the document's name."
}

func (m *StoreMod) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("store", flag.ContinueOnError)
	m.Input.flags(fs)
	m.DB.flags(fs)
	return fs
}

func (m *StoreMod) F(env *Env) error {
	built, err := m.load(env)
	if err != nil {
		return err
	}
	rep, err := fullReport(built, m.Verbose)
	if err != nil {
		return err
	}
	ctx := context.Background()
	s, err := m.open(ctx, m.Verbose)
	if err != nil {
		return err
	}
	defer s.Close(ctx)
	if err = s.WriteReport(ctx, rep); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "stored %s\n", rep.Name)
	return nil
}

type ShowMod struct {
	DB
	Name     string
	Markdown bool
	Remove   bool
}

func (m *ShowMod) Doc() string {
	return "Lists the stored reports, or writes (or removes) the one named by -n."
}

func (m *ShowMod) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	m.DB.flags(fs)
	fs.StringVar(&m.Name, "n", "", "report name")
	fs.BoolVar(&m.Markdown, "md", false, "write Markdown instead of YAML")
	fs.BoolVar(&m.Remove, "rm", false, "remove the report")
	return fs
}

func (m *ShowMod) F(env *Env) error {
	ctx := context.Background()
	s, err := m.open(ctx, false)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	if m.Name == "" {
		names, err := s.ListReports(ctx)
		if err != nil {
			return err
		}
		return emit(env.Out, names)
	}
	if m.Remove {
		return s.RemReport(ctx, m.Name)
	}
	rep, err := s.GetReport(ctx, m.Name)
	if err != nil {
		return err
	}
	if m.Markdown {
		return rep.Markdown(env.Out)
	}
	return emit(env.Out, rep)
}

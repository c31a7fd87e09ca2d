package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Comcast/certres/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const robot = "../../model/testdata/robot.yaml"

func run(t *testing.T, in string, mod Mod, args ...string) (string, error) {
	t.Helper()
	require.NoError(t, mod.Flags().Parse(args))
	var out bytes.Buffer
	err := mod.F(&Env{
		In:  strings.NewReader(in),
		Out: &out,
	})
	return out.String(), err
}

func TestCheck(t *testing.T) {
	out, err := run(t, "", &Checker{}, "-i", robot)
	require.NoError(t, err)
	assert.Contains(t, out, "set none is empty")

	_, err = run(t, "", &Checker{}, "-i", robot, "-fail", "warning")
	assert.True(t, errors.Is(err, CheckFailed), "%v", err)

	_, err = run(t, "", &Checker{}, "-i", robot, "-c", "no-such-check")
	assert.Error(t, err)
}

func TestStdin(t *testing.T) {
	doc := `
name: tiny
packages:
  - name: p
    interfaces:
      - {name: I, events: [{name: e}]}
    modules:
      - name: M
        platform: {name: P, uses: [I]}
        controllers: [{name: C, uses: [I]}]
        connections: [{from: P.e, to: C.e}]
groups:
  - name: G
    target: {kind: module, path: "p::M"}
    actors: [{name: t, kind: target}, {name: w, kind: world}]
    diagrams:
      - {name: D, actors: [t, w], messages: [{from: w, to: t, event: e}]}
`
	out, err := run(t, doc, &Resolver{})
	require.NoError(t, err)
	assert.Contains(t, out, "status: matched")
	assert.Contains(t, out, "connection: p::M::P.e -> p::M::C.e")
}

func TestResolveMarkdown(t *testing.T) {
	out, err := run(t, "", &Resolver{}, "-i", robot, "-md")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# robot\n"))
}

func TestSets(t *testing.T) {
	out, err := run(t, "", &SetsMod{}, "-i", robot)
	require.NoError(t, err)
	assert.Contains(t, out, "rest: universal")
	assert.Contains(t, out, "none: empty")
	assert.Contains(t, out, "acks: inhabited")
}

func TestGraph(t *testing.T) {
	out, err := run(t, "", &Grapher{}, "-i", robot, "-o", "-", "-g", "outside")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph G {")
	assert.Contains(t, out, `color="red"`)

	_, err = run(t, "", &Grapher{}, "-i", robot, "-o", "-", "-g", "nope")
	assert.True(t, errors.Is(err, NoSuchGroup))
}

func TestSeq(t *testing.T) {
	out, err := run(t, "", &Sequencer{}, "-i", robot, "-g", "inside", "-d", "handshake")
	require.NoError(t, err)
	assert.Contains(t, out, "sequenceDiagram")
	assert.Contains(t, out, "c1->>c2: ack")
	assert.Contains(t, out, "c2-)w: done/stop")

	_, err = run(t, "", &Sequencer{}, "-i", robot, "-g", "inside", "-d", "nope")
	assert.True(t, errors.Is(err, NoSuchDiagram))
}

func TestHTML(t *testing.T) {
	out, err := run(t, "", &HTMLMod{}, "-i", robot, "-css", "a.css")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>robot</title>")
	assert.Contains(t, out, `<link href="a.css" rel="stylesheet">`)

	out, err = run(t, "", &HTMLMod{}, "-r", "../../tools/testdata/report.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>robot</title>")
}

func TestAnalyze(t *testing.T) {
	out, err := run(t, "", &Analyzer{}, "-i", robot)
	require.NoError(t, err)
	assert.Contains(t, out, "robot::M::C2::S3")
}

func TestStoreAndShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "reports.db")

	out, err := run(t, "", &StoreMod{}, "-i", robot, "-db", db)
	require.NoError(t, err)
	assert.Equal(t, "stored robot\n", out)

	out, err = run(t, "", &ShowMod{}, "-db", db)
	require.NoError(t, err)
	assert.Equal(t, "- robot\n", out)

	out, err = run(t, "", &ShowMod{}, "-db", db, "-n", "robot", "-md")
	require.NoError(t, err)
	assert.Contains(t, out, "## Diagnostics")

	_, err = run(t, "", &ShowMod{}, "-db", db, "-n", "robot", "-rm")
	require.NoError(t, err)

	_, err = run(t, "", &ShowMod{}, "-db", db, "-n", "robot")
	assert.True(t, errors.Is(err, storage.NotFound), "%v", err)
}

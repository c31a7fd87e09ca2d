package tools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Comcast/certres/wf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReport(t *testing.T) {
	rep, err := ReadReport("testdata/report.yaml")
	require.NoError(t, err)
	assert.Equal(t, "robot", rep.Name)
	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, wf.Error, rep.Diagnostics[0].Level)
	assert.Equal(t, "t", rep.Groups[0].Diagrams[0].Rows[0].Matches[0].Sender)
}

func TestRenderReportHTML(t *testing.T) {
	t.Run("fragment", func(t *testing.T) {
		rep, err := ReadReport("testdata/report.yaml")
		require.NoError(t, err)
		var out bytes.Buffer
		require.NoError(t, RenderReportHTML(rep, &out))
		s := out.String()
		assert.True(t, strings.HasPrefix(s, `<div class="report">`))
		assert.Contains(t, s, "<h1>robot</h1>")
		assert.Contains(t, s, "<table>")
		assert.Contains(t, s, "<code>obstacle</code>")
	})

	t.Run("page", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, ReadAndRenderReportPage("testdata/report.yaml", []string{"report.css"}, &out))
		s := out.String()
		assert.Contains(t, s, "<title>robot</title>")
		assert.Contains(t, s, `<link href="report.css" rel="stylesheet">`)
		assert.Contains(t, s, `var thisReport = {"name":"robot"`)
		assert.True(t, strings.HasSuffix(strings.TrimSpace(s), "</html>"))
	})
}

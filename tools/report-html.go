/* Copyright 2018 Comcast Cable Communications Management, LLC
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

package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"

	"github.com/Comcast/certres/report"

	md "github.com/russross/blackfriday/v2"
	"gopkg.in/yaml.v2"
)

// RenderReportHTML writes the report's Markdown rendering as HTML.
func RenderReportHTML(rep *report.Report, out io.Writer) error {
	var buf bytes.Buffer
	if err := rep.Markdown(&buf); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "<div class=\"report\">\n%s</div>\n", md.Run(buf.Bytes()))
	return err
}

// RenderReportPage writes a complete HTML page for the report.
//
// The report itself is embedded as JSON in the variable thisReport
// for any scripts the page might want.
func RenderReportPage(rep *report.Report, out io.Writer, cssFiles []string) error {
	if cssFiles == nil {
		cssFiles = []string{"/static/report.css"}
	}

	js, err := json.Marshal(rep)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
  <script>
  var thisReport = %s;
  </script>
`, html.EscapeString(rep.Name), js)

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", html.EscapeString(cssFile))
	}

	fmt.Fprintf(out, `
  </head>
  <body>
`)

	if err = RenderReportHTML(rep, out); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, `
  </body>
</html>
`)
	return err
}

// ReadReport reads a report written as YAML or JSON.
func ReadReport(filename string) (*report.Report, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var rep report.Report
	if err = yaml.Unmarshal(bs, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func ReadAndRenderReportPage(filename string, cssFiles []string, out io.Writer) error {
	rep, err := ReadReport(filename)
	if err != nil {
		return err
	}
	return RenderReportPage(rep, out, cssFiles)
}

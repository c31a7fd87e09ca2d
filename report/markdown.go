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

package report

import (
	"fmt"
	"io"
	"strings"
)

// Markdown writes the report with a section per group, a table per
// diagram and a list of diagnostics.
func (rep *Report) Markdown(w io.Writer) error {
	var b strings.Builder
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	f("# %s", rep.Name)
	f("")
	counts := rep.Rows()
	f("%d matched, %d unmatched, %d ambiguous, %d errors; worst diagnostic: %s",
		counts["matched"], counts["unmatched"], counts["ambiguous"], counts[StatusError],
		rep.Worst())
	f("")

	for _, g := range rep.Groups {
		f("## %s", g.Name)
		f("")
		f("Target: `%s`", g.Target)
		f("")
		for _, d := range g.Diagrams {
			f("### %s", d.Name)
			f("")
			if len(d.Rows) == 0 {
				f("No messages.")
				f("")
				continue
			}
			f("| # | from | to | topic | status | connections |")
			f("|---|---|---|---|---|---|")
			for _, x := range d.Rows {
				f("| %d | %s | %s | `%s` | %s | %s |",
					x.Index, escape(x.From), escape(x.To), escape(x.Topic), x.Status, cell(x))
			}
			f("")
		}
	}

	if 0 < len(rep.Diagnostics) {
		f("## Diagnostics")
		f("")
		for _, d := range rep.Diagnostics {
			f("- %s", escape(d.String()))
		}
		f("")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func cell(x *Row) string {
	if x.Error != "" {
		return escape(x.Error)
	}
	acc := make([]string, 0, len(x.Matches))
	for _, m := range x.Matches {
		s := fmt.Sprintf("`%s` %s (%s sends)", m.Connection, m.Direction, m.Sender)
		if m.Async {
			s += " async"
		}
		acc = append(acc, escape(s))
	}
	return strings.Join(acc, "<br>")
}

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

package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Comcast/certres/report"
	"github.com/Comcast/certres/wf"
)

// Exercise runs a Storage through writing, reading, listing,
// replacing and removing reports.  Implementations call it from their
// tests.
func Exercise(t *testing.T, s Storage) {
	ctx := context.Background()

	a := &report.Report{
		Name: "a",
		Groups: []*report.Group{
			{Name: "G1", Target: "module p::M"},
			{Name: "G2", Target: "controller p::C", Diagrams: []*report.Diagram{{
				Name: "D",
				Rows: []*report.Row{{Index: 0, From: "w", To: "t", Topic: "e", Status: "matched"}},
			}}},
		},
		Diagnostics: []wf.Diagnostic{{Level: wf.Warning, Check: "set-nonempty", Group: "G1", Message: -1, Text: "set s is empty"}},
	}
	b := &report.Report{Name: "b"}

	for _, rep := range []*report.Report{b, a} {
		if err := s.WriteReport(ctx, rep); err != nil {
			t.Fatal(err)
		}
	}

	names, err := s.ListReports(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("listed %v", names)
	}

	got, err := s.GetReport(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Groups) != 2 || got.Groups[0].Name != "G1" || got.Groups[1].Name != "G2" {
		t.Fatalf("groups %#v", got.Groups)
	}
	if rows := got.Groups[1].Diagrams[0].Rows; len(rows) != 1 || rows[0].Status != "matched" {
		t.Fatalf("rows %#v", rows)
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0].Level != wf.Warning {
		t.Fatalf("diagnostics %#v", got.Diagnostics)
	}

	// Replacing drops the old groups.
	if err = s.WriteReport(ctx, &report.Report{Name: "a", Groups: []*report.Group{{Name: "G3"}}}); err != nil {
		t.Fatal(err)
	}
	if got, err = s.GetReport(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if len(got.Groups) != 1 || got.Groups[0].Name != "G3" || len(got.Diagnostics) != 0 {
		t.Fatalf("replaced %#v", got)
	}

	if err = s.RemReport(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err = s.GetReport(ctx, "a"); !errors.Is(err, NotFound) {
		t.Fatalf("got %v after removal", err)
	}
	if err = s.RemReport(ctx, "a"); !errors.Is(err, NotFound) {
		t.Fatalf("removed twice: %v", err)
	}
}

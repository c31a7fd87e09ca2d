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

// Package storage persists resolution reports.
package storage

import (
	"context"
	"errors"

	"github.com/Comcast/certres/report"
)

// NotFound is returned for a report that isn't stored.
var NotFound = errors.New("report not found")

// Storage is a persistence interface for Reports, which are keyed by
// name.
type Storage interface {
	// WriteReport replaces any report with the same name.
	WriteReport(ctx context.Context, rep *report.Report) error

	GetReport(ctx context.Context, name string) (*report.Report, error)

	// ListReports gives the names of the stored reports in order.
	ListReports(ctx context.Context) ([]string, error)

	RemReport(ctx context.Context, name string) error
}

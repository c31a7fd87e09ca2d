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
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/Comcast/certres/report"
)

// MemStorage keeps reports in memory, serialized so that callers
// can't share them by accident.
type MemStorage struct {
	sync.Mutex
	reports map[string][]byte
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		reports: make(map[string][]byte),
	}
}

func (s *MemStorage) WriteReport(ctx context.Context, rep *report.Report) error {
	js, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	s.Lock()
	s.reports[rep.Name] = js
	s.Unlock()
	return nil
}

func (s *MemStorage) GetReport(ctx context.Context, name string) (*report.Report, error) {
	s.Lock()
	js, have := s.reports[name]
	s.Unlock()
	if !have {
		return nil, fmt.Errorf("%s: %w", name, NotFound)
	}
	var rep report.Report
	if err := json.Unmarshal(js, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (s *MemStorage) ListReports(ctx context.Context) ([]string, error) {
	s.Lock()
	acc := make([]string, 0, len(s.reports))
	for name := range s.reports {
		acc = append(acc, name)
	}
	s.Unlock()
	slices.Sort(acc)
	return acc, nil
}

func (s *MemStorage) RemReport(ctx context.Context, name string) error {
	s.Lock()
	defer s.Unlock()
	if _, have := s.reports[name]; !have {
		return fmt.Errorf("%s: %w", name, NotFound)
	}
	delete(s.reports, name)
	return nil
}

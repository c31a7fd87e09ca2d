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

// Package bolt is a storage.Storage backed by a BoltDB file.
//
// Each report gets a bucket named after it.  The bucket has a header
// entry (the report without its groups) and an entry per group, so a
// large report is never one huge value.
package bolt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Comcast/certres/report"
	"github.com/Comcast/certres/storage"

	bolt "go.etcd.io/bbolt"
)

var headerKey = []byte("header")

// groupKey keeps groups in report order, since bolt sorts keys.
func groupKey(i int) []byte {
	return []byte(fmt.Sprintf("group/%06d", i))
}

type Storage struct {
	Debug    bool
	filename string
	db       *bolt.DB
}

func NewStorage(filename string) (*Storage, error) {
	return &Storage{
		filename: filename,
	}, nil
}

func (s *Storage) Open(ctx context.Context) error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}

	db, err := bolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.db.Close()
}

func (s *Storage) logf(format string, args ...interface{}) {
	if s.Debug {
		log.Printf("BoltDB Storage."+format, args...)
	}
}

func (s *Storage) WriteReport(ctx context.Context, rep *report.Report) error {
	s.logf("WriteReport %s", rep.Name)

	header, err := json.Marshal(&report.Report{
		Name:        rep.Name,
		Diagnostics: rep.Diagnostics,
	})
	if err != nil {
		return err
	}
	groups := make([][]byte, 0, len(rep.Groups))
	for _, g := range rep.Groups {
		js, err := json.Marshal(g)
		if err != nil {
			return err
		}
		groups = append(groups, js)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		name := []byte(rep.Name)
		if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucket(name)
		if err != nil {
			return err
		}
		if err = b.Put(headerKey, header); err != nil {
			return err
		}
		for i, js := range groups {
			if err = b.Put(groupKey(i), js); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) GetReport(ctx context.Context, name string) (*report.Report, error) {
	s.logf("GetReport %s", name)
	var rep report.Report
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(name))
		if b == nil {
			return fmt.Errorf("%s: %w", name, storage.NotFound)
		}
		if err := json.Unmarshal(b.Get(headerKey), &rep); err != nil {
			return err
		}
		rep.Groups = make([]*report.Group, 0, b.Stats().KeyN)
		c := b.Cursor()
		prefix := []byte("group/")
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var g report.Group
			if err := json.Unmarshal(v, &g); err != nil {
				return err
			}
			rep.Groups = append(rep.Groups, &g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logf("GetReport %s found %d groups", name, len(rep.Groups))
	return &rep, nil
}

func (s *Storage) ListReports(ctx context.Context) ([]string, error) {
	var acc []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			acc = append(acc, string(name))
			return nil
		})
	})
	return acc, err
}

func (s *Storage) RemReport(ctx context.Context, name string) error {
	s.logf("RemReport %s", name)
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(name))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return fmt.Errorf("%s: %w", name, storage.NotFound)
		}
		return err
	})
}

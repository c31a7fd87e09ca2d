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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Comcast/certres/util"
)

var inlinePattern = regexp.MustCompile(`(?s)(.*?)(%inline *\("([^"]*)"\))`)

// MaxInlineDepth bounds nested inlining, which would otherwise loop
// forever on a file that inlines itself.
var MaxInlineDepth = 8

// InlineTooDeep is returned when inlining nests beyond
// MaxInlineDepth.
var InlineTooDeep = errors.New("inlining nested too deeply")

// Inline replaces '%inline("NAME")' with f(NAME).
//
// The replacement isn't itself inlined; see InlineNested.
func Inline(bs []byte, f func(string) ([]byte, error)) ([]byte, error) {
	i := 0
	acc := make([]byte, 0, len(bs))
	for {
		part := inlinePattern.FindSubmatch(bs[i:])
		if part == nil {
			acc = append(acc, bs[i:]...)
			break
		}
		i += len(part[0])
		acc = append(acc, part[1]...)
		replacement, err := f(string(part[3]))
		if err != nil {
			return nil, err
		}
		util.Logf("tools.Inline inlining %s (%d bytes)", part[3], len(replacement))
		acc = append(acc, replacement...)
	}

	return acc, nil
}

// InlineNested is Inline applied to replacements too, up to
// MaxInlineDepth levels.
func InlineNested(bs []byte, f func(string) ([]byte, error)) ([]byte, error) {
	var nested func(bs []byte, depth int) ([]byte, error)
	nested = func(bs []byte, depth int) ([]byte, error) {
		if MaxInlineDepth < depth {
			return nil, InlineTooDeep
		}
		return Inline(bs, func(name string) ([]byte, error) {
			bs, err := f(name)
			if err != nil {
				return nil, err
			}
			return nested(bs, depth+1)
		})
	}
	return nested(bs, 0)
}

// dirReader reads inlined files relative to a directory.
func dirReader(dir string) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		bs, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("inlining %s: %w", name, err)
		}
		return bs, nil
	}
}

// ReadFileWithInlines is a replacement for os.ReadFile that adds
// automatic InlineNested()ing based on the directory obtained from the
// filename.
//
// '%inline("NAME")' is replaced with ReadFile(NAME).
func ReadFileWithInlines(filename string) ([]byte, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return InlineNested(bs, dirReader(filepath.Dir(filename)))
}

// ReadAllWithInlines is a replacement for io.ReadAll that adds
// automatic InlineNested()ing based on the given directory.
//
// '%inline("NAME")' is replaced with ReadFile(NAME).
func ReadAllWithInlines(in io.Reader, dir string) ([]byte, error) {
	bs, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	return InlineNested(bs, dirReader(dir))
}

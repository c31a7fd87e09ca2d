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

package model

import (
	"fmt"
	"io"

	"github.com/Comcast/certres/tools"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// validate is a singleton validator instance
var validate = validator.New()

// Parse reads a document.  Unknown fields are errors.
//
// JSON is YAML, so this function handles both.
func Parse(bs []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(bs, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &doc, nil
}

// Validate checks the document's structure: required names, known
// kinds and the like.  It doesn't check that names refer to
// anything; Build does that.
func Validate(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("nil document: %w", Invalid)
	}
	if err := validate.Struct(doc); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to something a
// document author can act on.  Only the first error is reported.
func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return fmt.Errorf("%w: %s", Invalid, err)
	}

	e := verrs[0]
	where := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", Invalid, where)
	case "required_without":
		return fmt.Errorf("%w: %s is required without %s", Invalid, where, e.Param())
	case "required_if", "required_with":
		return fmt.Errorf("%w: %s is required with %s", Invalid, where, e.Param())
	case "excluded_with":
		return fmt.Errorf("%w: %s cannot be given with %s", Invalid, where, e.Param())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of [%s], not %q", Invalid, where, e.Param(), e.Value())
	case "min":
		return fmt.Errorf("%w: %s needs at least %s", Invalid, where, e.Param())
	default:
		return fmt.Errorf("%w: %s failed %s", Invalid, where, e.Tag())
	}
}

// Read parses and validates a document, with '%inline("NAME")'
// replaced by the contents of NAME in the directory dir.
func Read(in io.Reader, dir string) (*Document, error) {
	bs, err := tools.ReadAllWithInlines(in, dir)
	if err != nil {
		return nil, err
	}
	return parseAndValidate(bs)
}

// ReadFile is Read for a file, with inlined files relative to it.
func ReadFile(filename string) (*Document, error) {
	bs, err := tools.ReadFileWithInlines(filename)
	if err != nil {
		return nil, err
	}
	return parseAndValidate(bs)
}

func parseAndValidate(bs []byte) (*Document, error) {
	doc, err := Parse(bs)
	if err != nil {
		return nil, err
	}
	if err = Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

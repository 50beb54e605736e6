// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package manifest

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var schema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned by Validate when a manifest does not match the
// schema.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("manifest does not match schema:")
	for _, fe := range e.Errors {
		sb.WriteString(" " + fe.Field + ": " + fe.Message + ";")
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Validate checks an encoded manifest against the manifest schema.
func Validate(b []byte) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("loading manifest schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return fmt.Errorf("validating manifest: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return verr
}

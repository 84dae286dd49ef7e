// Package schema gates normalized jobs on the unified job schema.
package schema

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"sjsage522/jobaggregator/internal/model"
)

//go:embed job.schema.json
var jobSchema []byte

// RequiredFields must be present and non-empty on every job leaving the collector
var RequiredFields = []string{"id", "url", "source", "title", "company"}

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

func loadSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jobSchema))
	})
	return compiled, compileErr
}

// ValidationError lists the fields of a job that failed the schema
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	parts := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return "invalid job: " + strings.Join(parts, "; ")
}

// Fields returns the distinct failing field names, required fields first
func (ve *ValidationError) Fields() []string {
	var fields []string
	for _, f := range RequiredFields {
		if ve.has(f) {
			fields = append(fields, f)
		}
	}
	for _, e := range ve.Errors {
		if !slices.Contains(fields, e.Field) {
			fields = append(fields, e.Field)
		}
	}
	return fields
}

func (ve *ValidationError) has(field string) bool {
	for _, e := range ve.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

// ValidateJob checks job against the unified schema. It returns a
// *ValidationError when the job is invalid.
func ValidateJob(job model.Job) error {
	s, err := loadSchema()
	if err != nil {
		return fmt.Errorf("failed to load job schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(job))
	if err != nil {
		return fmt.Errorf("failed to validate job: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if desc.Type() == "required" {
			if property, ok := desc.Details()["property"].(string); ok {
				field = property
			}
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// Package schemas validates raw extraction-service responses against the
// JSON Schema of the active schema version. Schemas are embedded at compile
// time so the validated shape ships with the binary.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/rfp-shredder/internal/types"
)

//go:embed *.json
var schemaFiles embed.FS

var (
	compiled   = make(map[types.SchemaVersion]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// ValidationError reports every schema violation found in a response.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("response schema validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks a raw response document against the schema for the given
// version. It returns a *ValidationError when the document is well-formed
// JSON but violates the schema.
func Validate(version types.SchemaVersion, document []byte) error {
	schema, err := load(version)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to validate response: %w", err)
	}

	if !result.Valid() {
		ve := &ValidationError{}
		for _, desc := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return ve
	}

	return nil
}

// load compiles and caches the schema for a version.
func load(version types.SchemaVersion) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[version]; ok {
		return schema, nil
	}

	filename := string(version) + ".json"
	data, err := schemaFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("no schema for version %q: %w", version, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", filename, err)
	}

	compiled[version] = schema
	return schema, nil
}

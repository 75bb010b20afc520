package theme

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/theme.schema.json
var schemaJSON string

var (
	compiledSchema *gojsonschema.Schema
	schemaErr      error
	schemaOnce     sync.Once
)

// ValidationError lists every schema violation found in a theme document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid theme: %s", strings.Join(e.Problems, "; "))
}

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	})
	return compiledSchema, schemaErr
}

// Validate checks a decoded document against the embedded theme schema.
func Validate(root *Node) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("compile theme schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(root.Interface()))
	if err != nil {
		return fmt.Errorf("validate theme: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	sort.Strings(problems)
	return &ValidationError{Problems: problems}
}

// Package schemacheck validates decoded documents against embedded JSON
// schemas and reports problems by dotted field path.
package schemacheck

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled JSON schema.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// MustCompile compiles src and panics if it is not a valid schema. Meant for
// schemas embedded at build time.
func MustCompile(name, src string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("schemacheck: compile %s schema: %v", name, err))
	}
	return &Schema{name: name, schema: s}
}

// Issues returns one "path: problem" line per violation, sorted. A nil
// slice means doc is valid.
func (s *Schema) Issues(doc any) ([]string, error) {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", s.name, err)
	}
	if result.Valid() {
		return nil, nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		issues = append(issues, describe(re))
	}
	sort.Strings(issues)
	return issues, nil
}

// Check wraps the issues found in doc into a single error matching kind.
func (s *Schema) Check(doc any, kind error) error {
	issues, err := s.Issues(doc)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("%w: invalid %s: %s", kind, s.name, strings.Join(issues, "; "))
}

func describe(re gojsonschema.ResultError) string {
	path := re.Field()
	if path == gojsonschema.STRING_CONTEXT_ROOT {
		path = ""
	}
	if re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			return join(path, prop) + ": is required"
		}
	}
	if path == "" {
		path = "document"
	}
	return path + ": " + re.Description()
}

func join(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

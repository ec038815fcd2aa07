package input

import (
	_ "embed"

	"github.com/metalagman/droneplug/internal/schemacheck"
)

//go:embed payload.schema.json
var payloadSchemaJSON string

var payloadSchema = schemacheck.MustCompile("payload", payloadSchemaJSON)

// Validate checks that repo, build, workspace and vargs are all present
// objects. Problems are reported by field path, e.g. "build.number".
func (in ResolvedInput) Validate() error {
	return payloadSchema.Check(map[string]any(in), ErrMalformedInput)
}

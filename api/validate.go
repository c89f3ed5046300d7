package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"
)

// Request-shape schemas for the mutating endpoints. Field-level rules
// (division names, prefix windows, time ordering) are checked by the
// handlers after the shape passes.

const createProjectSchemaJSON = `{
	"type": "object",
	"required": ["title"],
	"properties": {
		"title": {"type": "string"},
		"division": {"type": "string"},
		"prefix": {"type": ["integer", "string", "null"]}
	}
}`

const createEntrySchemaJSON = `{
	"type": "object",
	"required": ["project_id", "start_time", "end_time"],
	"properties": {
		"project_id": {"type": "integer"},
		"start_time": {"type": "string"},
		"end_time": {"type": "string"},
		"notes": {"type": ["string", "null"]},
		"travel_morning": {"type": "boolean"},
		"travel_afternoon": {"type": "boolean"}
	}
}`

var (
	createProjectSchema = mustSchema(createProjectSchemaJSON)
	createEntrySchema   = mustSchema(createEntrySchemaJSON)
)

func mustSchema(raw string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(raw), rs); err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return rs
}

// validateShape checks a request body against a schema and returns the first
// violation as a caller-facing message.
func validateShape(ctx context.Context, rs *jsonschema.Schema, body []byte) error {
	keyErrs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		return fmt.Errorf("invalid request body")
	}
	if len(keyErrs) > 0 {
		return fmt.Errorf("%s", keyErrs[0].Error())
	}
	return nil
}

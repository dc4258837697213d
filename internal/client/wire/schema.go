package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrMalformed reports a response body that does not have the expected shape.
var ErrMalformed = errors.New("malformed response body")

const todoListSchemaJSON = `{
  "type": "object",
  "required": ["todos"],
  "properties": {
    "todos": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["id", "title", "person", "done"],
        "properties": {
          "id":     {"$ref": "#/$defs/id"},
          "title":  {"$ref": "#/$defs/string"},
          "person": {"$ref": "#/$defs/string"},
          "done":   {"type": "object", "required": ["value"], "properties": {"value": {"type": "boolean"}}}
        }
      }
    }
  },
  "$defs": {
    "id":     {"type": "object", "required": ["value"], "properties": {"value": {"type": ["integer", "null"]}}},
    "string": {"type": "object", "required": ["value"], "properties": {"value": {"type": "string"}}}
  }
}`

const userListSchemaJSON = `{
  "type": "object",
  "required": ["users"],
  "properties": {
    "users": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["id", "name", "email", "phone_number"],
        "properties": {
          "id":           {"$ref": "#/$defs/id"},
          "name":         {"$ref": "#/$defs/string"},
          "email":        {"$ref": "#/$defs/string"},
          "phone_number": {"type": "object", "required": ["value"], "properties": {"value": {"type": ["string", "number", "boolean", "null"]}}}
        }
      }
    }
  },
  "$defs": {
    "id":     {"type": "object", "required": ["value"], "properties": {"value": {"type": ["integer", "null"]}}},
    "string": {"type": "object", "required": ["value"], "properties": {"value": {"type": "string"}}}
  }
}`

var (
	todoListSchema = jsonschema.MustCompileString("https://tasktracker.local/todo-list.schema.json", todoListSchemaJSON)
	userListSchema = jsonschema.MustCompileString("https://tasktracker.local/user-list.schema.json", userListSchemaJSON)
)

// validate checks body against schema. Any failure wraps ErrMalformed.
func validate(schema *jsonschema.Schema, body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformed, describe(err))
	}
	return nil
}

// describe returns the first leaf cause of a schema validation error.
func describe(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := strings.TrimPrefix(ve.InstanceLocation, "/")
	if loc == "" {
		return ve.Message
	}
	return loc + ": " + ve.Message
}

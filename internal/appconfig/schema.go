// internal/appconfig/schema.go
package appconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema constrains the JSON config file so typos surface at load time
// instead of silently falling back to defaults.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "iter":      {"type": "integer", "minimum": 1},
    "execcount": {"type": "integer", "minimum": 1},
    "case":      {"type": "string"},
    "timemode":  {"type": "string", "enum": ["cpu-clock", "wall-clock"]},
    "verbose":   {"type": "boolean"},
    "option":    {"type": "string"},
    "output":    {"type": "string", "minLength": 1},
    "dir":       {"type": "string"},
    "pattern":   {"type": "string", "minLength": 1},
    "debug":     {"type": "boolean"},
    "logFile":   {"type": "string"}
  }
}`

// ValidateFile checks a config file against the embedded schema.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return ValidateBytes(data)
}

// ValidateBytes checks raw config JSON against the embedded schema.
func ValidateBytes(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}

package config

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-signal-engine/pkg/errors"
)

// Schema returns the JSON schema of the config file format.
func Schema() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	r.Mapper = func(t reflect.Type) *jsonschema.Schema {
		if t == reflect.TypeOf(time.Duration(0)) {
			return &jsonschema.Schema{
				Type:        "string",
				Description: "Go duration, e.g. 5m or 15m0s",
			}
		}

		return nil
	}

	schema := r.Reflect(&Config{}) //nolint:exhaustruct // Empty config for schema generation

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to marshal config schema", err)
	}

	return string(schemaBytes), nil
}

package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRecord wraps schema violations reported by ValidateJSON.
var ErrInvalidRecord = errors.New("invalid profile record")

// Schema returns the JSON schema of a Record. Only presence is checked: the
// five required keys must be non-empty strings, currentSoftware may be empty.
func Schema() map[string]interface{} {
	props := make(map[string]interface{}, len(Fields))
	var required []string
	for _, f := range Fields {
		p := map[string]interface{}{"type": "string"}
		if f.Required() {
			p["minLength"] = 1
		}
		props[f.Key()] = p
		required = append(required, f.Key())
	}
	return map[string]interface{}{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// ValidateJSON checks a JSON document against the Record schema.
func ValidateJSON(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing record JSON: %w", err)
	}
	return validate(doc)
}

func validate(doc interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(Schema())
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(errs, "; "))
	}
	return nil
}

// LoadRecord reads a profile from a .json, .yaml or .yml file and validates it.
func LoadRecord(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("reading profile file: %w", err)
	}
	if len(data) == 0 {
		return Record{}, fmt.Errorf("file is empty")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		// Round-trip through a generic map so the schema sees YAML documents
		// exactly as it would see JSON ones.
		var doc map[string]interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Record{}, fmt.Errorf("parsing profile YAML: %w", err)
		}
		data, err = json.Marshal(doc)
		if err != nil {
			return Record{}, fmt.Errorf("converting profile YAML: %w", err)
		}
	}

	if err := ValidateJSON(data); err != nil {
		return Record{}, err
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decoding profile: %w", err)
	}
	return r, nil
}

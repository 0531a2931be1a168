// Package document loads webhook messages from YAML or JSON files.
package document

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/qri-io/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/dynoinc/slackhook/message"
)

//go:embed message.schema.json
var schemaJSON []byte

var loadSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(schemaJSON, rs); err != nil {
		return nil, fmt.Errorf("unmarshalling message schema: %w", err)
	}
	return rs, nil
})

type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown document format: %q", s)
	}
}

// FormatOf guesses the format from the file extension, defaulting to JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ValidationError lists every schema violation of a document.
type ValidationError struct {
	Errors []jsonschema.KeyError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ke := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", ke.PropertyPath, ke.Message))
	}
	return "invalid message document: " + strings.Join(msgs, "; ")
}

func Load(ctx context.Context, path string, format Format) (message.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return message.Message{}, fmt.Errorf("read document: %w", err)
	}

	if format == FormatAuto {
		format = FormatOf(path)
	}

	m, err := Parse(ctx, data, format)
	if err != nil {
		return message.Message{}, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse validates data against the message schema and decodes it.
func Parse(ctx context.Context, data []byte, format Format) (message.Message, error) {
	if format == FormatYAML {
		var err error
		data, err = yamlToJSON(data)
		if err != nil {
			return message.Message{}, err
		}
	}

	rs, err := loadSchema()
	if err != nil {
		return message.Message{}, err
	}

	keyErrs, err := rs.ValidateBytes(ctx, data)
	if err != nil {
		return message.Message{}, fmt.Errorf("validating document: %w", err)
	}
	if len(keyErrs) > 0 {
		return message.Message{}, &ValidationError{Errors: keyErrs}
	}

	m, err := message.Parse(data)
	if err != nil {
		return message.Message{}, fmt.Errorf("decoding message: %w", err)
	}

	return m, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var parsed any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}

	marshaled, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("marshalling json: %w", err)
	}

	return marshaled, nil
}

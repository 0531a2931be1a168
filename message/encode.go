package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dynoinc/slackhook/mrkdwn"
)

var ErrMissingField = errors.New("missing required field")

func missingField(entity, field string) error {
	return fmt.Errorf("%s: %q: %w", entity, field, ErrMissingField)
}

// escapable is implemented by every entity carrying user-visible text that
// Slack requires to be escaped. The list returned is the single place that
// decides which fields are escaped for that entity.
type escapable interface {
	escapableFields() []*string
}

// escape rewrites the escapable fields of e in place. Callers pass a copy.
func escape(e escapable) {
	for _, f := range e.escapableFields() {
		if *f != "" {
			*f = mrkdwn.Escape(*f)
		}
	}
}

// encode marshals v without HTML escaping so that URLs in fields outside the
// escapable set keep their raw '&'.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func unmarshalEnum[T ~string](b []byte, kind string, allowed ...T) (T, error) {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return "", fmt.Errorf("failed to unmarshal %s: %w", kind, err)
	}

	for _, v := range allowed {
		if string(v) == s {
			return v, nil
		}
	}

	return "", fmt.Errorf("unknown %s: %q", kind, s)
}

// Bool returns a pointer to v, for the tri-state flags on Message and Field.
func Bool(v bool) *bool {
	return &v
}

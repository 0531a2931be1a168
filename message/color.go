package message

import (
	"encoding/json"
	"fmt"
)

type colorKind uint8

const (
	colorNone colorKind = iota
	colorGood
	colorWarning
	colorDanger
	colorCustom
)

// Color is either one of Slack's named attachment colors or a custom hex
// value. The zero Color means no color and is omitted from the payload.
type Color struct {
	kind colorKind
	hex  string
}

var (
	ColorGood    = Color{kind: colorGood}
	ColorWarning = Color{kind: colorWarning}
	ColorDanger  = Color{kind: colorDanger}
)

// CustomColor carries hex verbatim. It is not validated or normalized, so
// both "#009688" and "009688" are sent as given.
func CustomColor(hex string) Color {
	if hex == "" {
		return Color{}
	}
	return Color{kind: colorCustom, hex: hex}
}

// ParseColor maps the named colors to their variants and anything else
// non-empty to a custom color.
func ParseColor(s string) Color {
	switch s {
	case "":
		return Color{}
	case "good":
		return ColorGood
	case "warning":
		return ColorWarning
	case "danger":
		return ColorDanger
	default:
		return CustomColor(s)
	}
}

func (c Color) IsZero() bool {
	return c.kind == colorNone
}

// Hex returns the carried value of a custom color.
func (c Color) Hex() (string, bool) {
	return c.hex, c.kind == colorCustom
}

func (c Color) String() string {
	switch c.kind {
	case colorGood:
		return "good"
	case colorWarning:
		return "warning"
	case colorDanger:
		return "danger"
	case colorCustom:
		return c.hex
	default:
		return ""
	}
}

func (c Color) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}

func (c *Color) UnmarshalJSON(b []byte) error {
	var v *string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("failed to unmarshal color: %w", err)
	}

	if v == nil {
		*c = Color{}
		return nil
	}

	*c = ParseColor(*v)
	return nil
}

// Package mrkdwn formats and escapes text for Slack's message markup.
package mrkdwn

import (
	"fmt"
	"strings"
)

type Format int

const (
	Pre Format = iota
	Code
	Italic
	Bold
	Strike
)

var formatNames = map[Format]string{
	Pre:    "pre",
	Code:   "code",
	Italic: "italic",
	Bold:   "bold",
	Strike: "strike",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat is the inverse of Format.String.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(name, s) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown markdown format: %q", s)
}

// Apply wraps text in the delimiters of the given format.
// Unknown formats return text unchanged.
func Apply(text string, format Format) string {
	switch format {
	case Pre:
		return "```" + text + "```"
	case Code:
		return "`" + text + "`"
	case Italic:
		return "_" + text + "_"
	case Bold:
		return "*" + text + "*"
	case Strike:
		return "~" + text + "~"
	default:
		return text
	}
}

// Slack requires exactly three characters to be converted to HTML entities.
// '&' is listed first so the entities produced for '<' and '>' are not escaped again.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Escape converts &, < and > to their HTML entities. It is not idempotent:
// escaping "&amp;" again yields "&amp;amp;", so call it once, right before encoding.
func Escape(text string) string {
	return escaper.Replace(text)
}

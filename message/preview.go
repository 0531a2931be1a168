package message

import (
	"net/url"
)

// DefaultBuilderURL is Slack's message builder, which renders the JSON passed
// in its msg query parameter.
const DefaultBuilderURL = "https://api.slack.com/docs/messages/builder?msg="

// PreviewUnavailable is returned by PreviewURL when m cannot be encoded.
const PreviewUnavailable = "Unable to url encode the message JSON"

// PreviewURL returns a link that renders m in the message builder at base.
// An empty base uses DefaultBuilderURL.
func PreviewURL(m Message, base string) string {
	if base == "" {
		base = DefaultBuilderURL
	}

	payload, err := m.JSON()
	if err != nil {
		return PreviewUnavailable
	}

	return base + url.QueryEscape(string(payload))
}

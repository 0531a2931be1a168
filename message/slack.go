package message

import (
	"encoding/json"
	"fmt"

	"github.com/slack-go/slack"
)

// ToSlack converts m into slack-go's webhook type, for callers already
// posting with slack.PostWebhook. The conversion goes through the wire format,
// so text arrives escaped. It is lossy: mrkdwn is dropped, unset booleans
// become false and option groups keep only their text.
func (m Message) ToSlack() (*slack.WebhookMessage, error) {
	payload, err := m.JSON()
	if err != nil {
		return nil, fmt.Errorf("encoding message: %w", err)
	}

	var wm slack.WebhookMessage
	if err := json.Unmarshal(payload, &wm); err != nil {
		return nil, fmt.Errorf("decoding slack webhook message: %w", err)
	}

	return &wm, nil
}

// FromSlack converts a slack-go webhook message. Text is taken as already
// escaped and is not unescaped.
//
// The usual required-field checks apply, so menus whose options have no
// description are rejected, and so are option groups: slack-go models a group
// as a label with nested options, which has no value or description. In
// particular FromSlack(ToSlack(m)) fails when m has option groups.
func FromSlack(wm *slack.WebhookMessage) (Message, error) {
	payload, err := json.Marshal(wm)
	if err != nil {
		return Message{}, fmt.Errorf("encoding slack webhook message: %w", err)
	}

	m, err := Parse(payload)
	if err != nil {
		return Message{}, fmt.Errorf("decoding message: %w", err)
	}

	return m, nil
}

// Package message models Slack incoming-webhook messages and their legacy
// attachments, and encodes them to the JSON payload Slack expects.
//
// Encoding escapes &, < and > in the user-visible text fields. Decoding does
// not unescape; a decoded message re-encoded will be escaped a second time.
package message

import (
	"encoding/json"
)

type ResponseType string

const (
	// ResponseInChannel shows the message to everyone in the channel.
	ResponseInChannel ResponseType = "in_channel"
	// ResponseEphemeral shows the message only to the user who triggered it.
	ResponseEphemeral ResponseType = "ephemeral"
)

func (r *ResponseType) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, "response type", ResponseInChannel, ResponseEphemeral)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Message is the payload posted to a webhook. Either Text or at least one
// attachment should be set; this is not checked.
type Message struct {
	Text string `json:"text,omitzero"`
	// Slack renders at most 20 attachments.
	Attachments []Attachment `json:"attachments,omitempty"`
	// ThreadTimestamp is the ts of the parent message when replying in a thread.
	ThreadTimestamp string       `json:"thread_ts,omitzero"`
	ResponseType    ResponseType `json:"response_type,omitzero"`
	// Only meaningful in responses to interactive actions.
	ReplaceOriginal *bool `json:"replace_original,omitempty"`
	DeleteOriginal  *bool `json:"delete_original,omitempty"`
	Markdown        *bool `json:"mrkdwn,omitempty"`
}

func (m *Message) escapableFields() []*string {
	return []*string{&m.Text}
}

func (m Message) MarshalJSON() ([]byte, error) {
	type wire Message
	escape(&m)
	return encode(wire(m))
}

// JSON returns the webhook payload for m.
func (m Message) JSON() ([]byte, error) {
	return encode(m)
}

// Parse decodes a webhook payload. Required fields of nested actions,
// confirmations and options are enforced.
func Parse(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, err
	}
	return m, nil
}

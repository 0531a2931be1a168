package message

import (
	"encoding/json"
	"fmt"
)

type ActionType string

const (
	ActionButton ActionType = "button"
	ActionSelect ActionType = "select"
)

func (t *ActionType) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, "action type", ActionButton, ActionSelect)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type Style string

const (
	StyleDefault Style = "default"
	StylePrimary Style = "primary"
	StyleDanger  Style = "danger"
)

func (s *Style) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, "action style", StyleDefault, StylePrimary, StyleDanger)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type DataSource string

const (
	DataSourceDefault      DataSource = "default"
	DataSourceStatic       DataSource = "static"
	DataSourceUsers        DataSource = "users"
	DataSourceChannels     DataSource = "channels"
	DataSourceConversation DataSource = "conversation"
	DataSourceExternal     DataSource = "external"
)

func (d *DataSource) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, "data source",
		DataSourceDefault,
		DataSourceStatic,
		DataSourceUsers,
		DataSourceChannels,
		DataSourceConversation,
		DataSourceExternal,
	)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Action is a message button or menu. Name, Text and Type are required.
type Action struct {
	Name    string        `json:"name"`
	Text    string        `json:"text"`
	Type    ActionType    `json:"type"`
	Value   string        `json:"value,omitzero"`
	Confirm *Confirmation `json:"confirm,omitempty"`
	// Style only applies to buttons.
	Style Style `json:"style,omitzero"`
	// Options, OptionGroups, DataSource, SelectedOptions and MinQueryLength
	// only apply to menus. Slack accepts at most 100 options per menu.
	Options         []Option   `json:"options,omitempty"`
	OptionGroups    []Option   `json:"option_groups,omitempty"`
	DataSource      DataSource `json:"data_source,omitzero"`
	SelectedOptions []Option   `json:"selected_options,omitempty"`
	// MinQueryLength defaults to 1 on Slack's side when omitted.
	MinQueryLength int `json:"min_query_length,omitzero"`
}

func (a *Action) escapableFields() []*string {
	return []*string{&a.Name, &a.Text, &a.Value}
}

func (a Action) MarshalJSON() ([]byte, error) {
	type wire Action
	escape(&a)
	return encode(wire(a))
}

func (a *Action) UnmarshalJSON(b []byte) error {
	type wire Action
	var w struct {
		wire
		Name *string     `json:"name"`
		Text *string     `json:"text"`
		Type *ActionType `json:"type"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("decoding action: %w", err)
	}

	switch {
	case w.Name == nil:
		return missingField("action", "name")
	case w.Text == nil:
		return missingField("action", "text")
	case w.Type == nil:
		return missingField("action", "type")
	}

	*a = Action(w.wire)
	a.Name, a.Text, a.Type = *w.Name, *w.Text, *w.Type
	return nil
}

// Confirmation is the dialog shown before an action fires. Text is required.
type Confirmation struct {
	Title string `json:"title,omitzero"`
	Text  string `json:"text"`
	// Slack shows "Okay" and "Cancel" when these are omitted.
	OkText      string `json:"ok_text,omitzero"`
	DismissText string `json:"dismiss_text,omitzero"`
}

func (c *Confirmation) escapableFields() []*string {
	return []*string{&c.Title, &c.Text, &c.OkText, &c.DismissText}
}

func (c Confirmation) MarshalJSON() ([]byte, error) {
	type wire Confirmation
	escape(&c)
	return encode(wire(c))
}

func (c *Confirmation) UnmarshalJSON(b []byte) error {
	type wire Confirmation
	var w struct {
		wire
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("decoding confirmation: %w", err)
	}

	if w.Text == nil {
		return missingField("confirmation", "text")
	}

	*c = Confirmation(w.wire)
	c.Text = *w.Text
	return nil
}

// Option is one entry of a menu. All fields are required and none are escaped.
type Option struct {
	Text        string `json:"text"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

func (o *Option) UnmarshalJSON(b []byte) error {
	var w struct {
		Text        *string `json:"text"`
		Value       *string `json:"value"`
		Description *string `json:"description"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("decoding option: %w", err)
	}

	switch {
	case w.Text == nil:
		return missingField("option", "text")
	case w.Value == nil:
		return missingField("option", "value")
	case w.Description == nil:
		return missingField("option", "description")
	}

	*o = Option{Text: *w.Text, Value: *w.Value, Description: *w.Description}
	return nil
}

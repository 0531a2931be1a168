package message

type AttachmentType string

// AttachmentTypeDefault is the only attachment type Slack accepts, even for menus.
const AttachmentTypeDefault AttachmentType = "default"

func (t *AttachmentType) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, "attachment type", AttachmentTypeDefault)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Attachment is a legacy secondary content block. Attachments house message
// buttons and menus.
type Attachment struct {
	Title      string `json:"title,omitzero"`
	TitleLink  string `json:"title_link,omitzero"`
	Pretext    string `json:"pretext,omitzero"`
	Text       string `json:"text,omitzero"`
	AuthorName string `json:"author_name,omitzero"`
	// AuthorLink and AuthorIcon only render when AuthorName is set.
	AuthorLink string `json:"author_link,omitzero"`
	AuthorIcon string `json:"author_icon,omitzero"`
	ImageURL   string `json:"image_url,omitzero"`
	ThumbURL   string `json:"thumb_url,omitzero"`
	Color      Color  `json:"color,omitzero"`
	// At most 5 actions are rendered per attachment.
	Actions []Action `json:"actions,omitempty"`
	Fields  []Field  `json:"fields,omitempty"`
	// CallbackID identifies the attachment's buttons to the action URL.
	// Required by Slack when Actions is set.
	CallbackID string         `json:"callback_id,omitzero"`
	Fallback   string         `json:"fallback,omitzero"`
	Type       AttachmentType `json:"attachment_type,omitzero"`
	Footer     string         `json:"footer,omitzero"`
	FooterIcon string         `json:"footer_icon,omitzero"`
	// Timestamp is seconds since the epoch and is passed through unchanged.
	Timestamp float64 `json:"ts,omitzero"`
}

func (a *Attachment) escapableFields() []*string {
	return []*string{&a.Title, &a.Pretext, &a.Text, &a.AuthorName}
}

func (a Attachment) MarshalJSON() ([]byte, error) {
	type wire Attachment
	escape(&a)
	return encode(wire(a))
}

// Field is displayed in a table inside the attachment.
type Field struct {
	Title string `json:"title,omitzero"`
	Value string `json:"value,omitzero"`
	// Short fields are rendered side by side.
	Short *bool `json:"short,omitempty"`
}

func (f *Field) escapableFields() []*string {
	return []*string{&f.Title, &f.Value}
}

func (f Field) MarshalJSON() ([]byte, error) {
	type wire Field
	escape(&f)
	return encode(wire(f))
}

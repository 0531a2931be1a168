package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionRoundtripRequiredOnly(t *testing.T) {
	in := Action{Name: "approve", Text: "Approve", Type: ActionButton}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"approve","text":"Approve","type":"button"}`, string(b))

	var out Action
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
	assert.Empty(t, out.Value)
	assert.Nil(t, out.Confirm)
	assert.Empty(t, out.Style)
	assert.Nil(t, out.Options)
	assert.Nil(t, out.OptionGroups)
	assert.Empty(t, out.DataSource)
	assert.Nil(t, out.SelectedOptions)
	assert.Zero(t, out.MinQueryLength)
}

func TestActionDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		missing string
	}{
		{name: "missing type", input: `{"name":"a","text":"b"}`, missing: "type"},
		{name: "missing name", input: `{"text":"b","type":"button"}`, missing: "name"},
		{name: "missing text", input: `{"name":"a","type":"button"}`, missing: "text"},
		{name: "null type", input: `{"name":"a","text":"b","type":null}`, missing: "type"},
		{name: "empty", input: `{}`, missing: "name"},
		{name: "unknown type", input: `{"name":"a","text":"b","type":"link"}`},
		{name: "numeric name", input: `{"name":1,"text":"b","type":"button"}`},
		{name: "numeric type", input: `{"name":"a","text":"b","type":2}`},
		{name: "unknown style", input: `{"name":"a","text":"b","type":"button","style":"loud"}`},
		{name: "unknown data source", input: `{"name":"a","text":"b","type":"select","data_source":"files"}`},
		{name: "not an object", input: `"button"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var a Action
			err := json.Unmarshal([]byte(tc.input), &a)
			require.Error(t, err)
			assert.Equal(t, Action{}, a)

			if tc.missing != "" {
				assert.ErrorIs(t, err, ErrMissingField)
				assert.Contains(t, err.Error(), `"`+tc.missing+`"`)
			} else {
				assert.NotErrorIs(t, err, ErrMissingField)
			}
		})
	}
}

func TestActionDecodeEnums(t *testing.T) {
	for _, ds := range []DataSource{
		DataSourceDefault,
		DataSourceStatic,
		DataSourceUsers,
		DataSourceChannels,
		DataSourceConversation,
		DataSourceExternal,
	} {
		var a Action
		input := `{"name":"a","text":"b","type":"select","data_source":"` + string(ds) + `"}`
		require.NoError(t, json.Unmarshal([]byte(input), &a), ds)
		assert.Equal(t, ds, a.DataSource)
	}

	for _, style := range []Style{StyleDefault, StylePrimary, StyleDanger} {
		var a Action
		input := `{"name":"a","text":"b","type":"button","style":"` + string(style) + `"}`
		require.NoError(t, json.Unmarshal([]byte(input), &a), style)
		assert.Equal(t, style, a.Style)
	}
}

func TestConfirmationDecode(t *testing.T) {
	var c Confirmation
	require.NoError(t, json.Unmarshal([]byte(`{"text":"Really?","title":"Delete","ok_text":"Yes","dismiss_text":"No"}`), &c))
	assert.Equal(t, Confirmation{Title: "Delete", Text: "Really?", OkText: "Yes", DismissText: "No"}, c)

	err := json.Unmarshal([]byte(`{"title":"Delete"}`), &c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "confirmation")

	err = json.Unmarshal([]byte(`{"text":false}`), &c)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingField)
}

func TestOptionDecode(t *testing.T) {
	var o Option
	require.NoError(t, json.Unmarshal([]byte(`{"text":"A","value":"a","description":""}`), &o))
	assert.Equal(t, Option{Text: "A", Value: "a"}, o)

	tests := []struct {
		input   string
		missing string
	}{
		{input: `{"value":"a","description":"d"}`, missing: "text"},
		{input: `{"text":"A","description":"d"}`, missing: "value"},
		{input: `{"text":"A","value":"a"}`, missing: "description"},
	}
	for _, tc := range tests {
		t.Run(tc.missing, func(t *testing.T) {
			var o Option
			err := json.Unmarshal([]byte(tc.input), &o)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), `"`+tc.missing+`"`)
		})
	}
}

func TestOptionIsNotEscaped(t *testing.T) {
	b, err := json.Marshal(Option{Text: "<A>", Value: "a&b", Description: "d"})
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, map[string]string{"text": "<A>", "value": "a&b", "description": "d"}, got)
}

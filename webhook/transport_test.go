package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynoinc/slackhook/message"
)

func TestHTTPTransportSuccess(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "/services/T/B/X", r.URL.Path)

		var err error
		gotBody, err = io.ReadAll(r.Body)
		assert.NoError(t, err)

		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(server.Close)

	resp, err := NewHTTPTransport().Do(t.Context(), &Request{
		Method: http.MethodPost,
		URL:    server.URL + "/services/T/B/X",
		Body:   []byte(`{"text":"hi"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(resp.Body))
	assert.JSONEq(t, `{"text":"hi"}`, string(gotBody))
}

func TestHTTPTransportStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid_payload\n"))
	}))
	t.Cleanup(server.Close)

	resp, err := NewHTTPTransport().Do(t.Context(), &Request{Method: http.MethodPost, URL: server.URL})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, err.Error(), "invalid_payload")

	var statusErr slack.StatusCodeError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
}

func TestHTTPTransportKeepsCallerHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
	}))
	t.Cleanup(server.Close)

	_, err := NewHTTPTransport().Do(t.Context(), &Request{
		Method: http.MethodPost,
		URL:    server.URL,
		Header: http.Header{"Content-Type": {"text/plain"}, "X-Test": {"yes"}},
	})
	require.NoError(t, err)
}

func TestClientSendOverHTTP(t *testing.T) {
	received := make(chan []byte, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- body
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.URL = server.URL
	client, err := New(cfg)
	require.NoError(t, err)

	_, err = client.Send(t.Context(), message.Message{
		Text: "a < b",
		Attachments: []message.Attachment{{
			TitleLink: "https://example.com/?a=1&b=2",
			Color:     message.ColorDanger,
		}},
	})
	require.NoError(t, err)

	body := <-received
	assert.Equal(t, `{"text":"a &lt; b","attachments":[{"title_link":"https://example.com/?a=1&b=2","color":"danger"}]}`, string(body))
}

func TestClientSendOverHTTPTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	cfg := DefaultConfig()
	cfg.URL = server.URL
	cfg.Timeout = 50 * time.Millisecond
	client, err := New(cfg)
	require.NoError(t, err)

	_, err = client.Send(context.Background(), message.Message{Text: "slow"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestHTTPTransportHonorsRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	start := time.Now()
	_, err := NewHTTPTransport().Do(context.Background(), &Request{
		Method:  http.MethodPost,
		URL:     server.URL,
		Body:    []byte(`{"text":"slow"}`),
		Timeout: 50 * time.Millisecond,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "https://hooks.slack.com/...", redactURL("https://hooks.slack.com/services/T/B/SECRET"))
	assert.Equal(t, "<redacted>", redactURL("not a url"))
	assert.Equal(t, "<redacted>", redactURL(""))
}

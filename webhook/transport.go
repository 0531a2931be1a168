package webhook

//go:generate go tool mockgen -source=transport.go -destination=mocks/transport.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxResponseBody bounds how much of a webhook response is kept. Slack answers
// with "ok" or a short error code.
const maxResponseBody = 64 << 10

// Transport performs a single HTTP call. It must honor ctx cancellation and
// must not retry.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

type Request struct {
	Method string
	URL    string
	// Header is nil for webhook sends; transports may add their own defaults.
	Header http.Header
	Body   []byte
	// Timeout bounds the whole call, response body included. Zero leaves only
	// the ctx deadline.
	Timeout time.Duration
}

func (r *Request) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("method", r.Method),
		slog.String("url", redactURL(r.URL)),
		slog.Duration("timeout", r.Timeout),
		slog.String("body", string(r.Body)),
	)
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) LogValue() slog.Value {
	if r == nil {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(
		slog.Int("status", r.StatusCode),
		slog.String("body", string(r.Body)),
	)
}

// redactURL keeps scheme and host only; webhook paths carry the secret token.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "<redacted>"
	}
	return u.Scheme + "://" + u.Host + "/..."
}

// HTTPTransport posts with net/http. Responses outside 2xx are returned
// together with an error wrapping slack.StatusCodeError.
type HTTPTransport struct {
	Client *http.Client
}

func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		Client: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}
	if httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		statusErr := slack.StatusCodeError{Code: httpResp.StatusCode, Status: httpResp.Status}
		if detail := strings.TrimSpace(string(body)); detail != "" {
			return resp, fmt.Errorf("%w: %s", statusErr, detail)
		}
		return resp, statusErr
	}

	return resp, nil
}

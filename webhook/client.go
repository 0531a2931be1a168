// Package webhook posts messages to a Slack incoming webhook.
//
// A Client performs exactly one POST per Send with a per-request timeout and
// never retries; retry policy belongs to the caller.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/dynoinc/slackhook/internal/telemetry"
	"github.com/dynoinc/slackhook/message"
)

var (
	// ErrNoWebhookURL is returned before any network call when Config.URL is empty.
	ErrNoWebhookURL = errors.New("no webhook url configured")
	ErrTimeout      = errors.New("webhook request timed out")
)

const defaultConcurrency = 4

type Client struct {
	cfg         Config
	transport   Transport
	logger      *slog.Logger
	tracer      trace.Tracer
	registerer  prometheus.Registerer
	metrics     *metrics
	concurrency int
}

type Option func(*Client)

func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer("github.com/dynoinc/slackhook/webhook") }
}

// WithRegisterer registers the client's metrics. Clients sharing a registerer
// share the collectors.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(c *Client) { c.registerer = r }
}

// WithConcurrency bounds the number of in-flight requests of SendAll.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MessageBuilderURL == "" {
		cfg.MessageBuilderURL = message.DefaultBuilderURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:         cfg,
		logger:      slog.Default(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		c.transport = NewHTTPTransport()
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer("github.com/dynoinc/slackhook/webhook")
	}

	m, err := newMetrics(c.registerer)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}
	c.metrics = m

	return c, nil
}

func (c *Client) Config() Config {
	return c.cfg
}

// Send posts msg to the configured webhook. On a non-2xx answer the response
// is returned along with the error.
func (c *Client) Send(ctx context.Context, msg message.Message) (resp *Response, err error) {
	ctx, span := c.tracer.Start(ctx, "webhook.send", trace.WithAttributes(
		telemetry.WebhookHostKey.String(webhookHost(c.cfg.URL)),
		telemetry.MessageAttachmentsKey.Int(len(msg.Attachments)),
		telemetry.ForceTraceKey.Bool(c.cfg.Logging),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		c.metrics.observe(err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if c.cfg.URL == "" {
		c.logger.WarnContext(ctx, "no webhook url specified, please set a webhook url")
		return nil, ErrNoWebhookURL
	}

	body, err := msg.JSON()
	if err != nil {
		return nil, fmt.Errorf("encoding message: %w", err)
	}
	span.SetAttributes(telemetry.MessageSizeKey.Int(len(body)))

	req := &Request{
		Method:  http.MethodPost,
		URL:     c.cfg.URL,
		Body:    body,
		Timeout: c.cfg.Timeout,
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if c.cfg.Logging {
		c.logger.InfoContext(ctx, "will perform request", "request", req)
	}

	resp, err = c.transport.Do(ctx, req)

	if c.cfg.Logging {
		c.logger.InfoContext(ctx, "did retrieve response", "request", req, "response", resp, "error", err)
	}

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return resp, fmt.Errorf("posting message: %w: %w", ErrTimeout, err)
		}
		return resp, fmt.Errorf("posting message: %w", err)
	}

	return resp, nil
}

// SendAll sends every message independently. The returned slice has one
// entry per message, in order; a failed send does not cancel the others.
func (c *Client) SendAll(ctx context.Context, msgs ...message.Message) []error {
	errs := make([]error, len(msgs))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, msg := range msgs {
		g.Go(func() error {
			_, errs[i] = c.Send(ctx, msg)
			return nil
		})
	}
	_ = g.Wait()

	return errs
}

// PreviewURL links to the message builder configured for c.
func (c *Client) PreviewURL(msg message.Message) string {
	return message.PreviewURL(msg, c.cfg.MessageBuilderURL)
}

func webhookHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

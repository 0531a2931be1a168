package telemetry

import "go.opentelemetry.io/otel/attribute"

// Attribute keys for slackhook spans. Prefer the OpenTelemetry semantic
// conventions (https://opentelemetry.io/docs/specs/semconv/) where one exists.
const (
	// Webhook attributes
	WebhookHostKey = attribute.Key("slackhook.webhook.host")

	// Message attributes
	MessageAttachmentsKey = attribute.Key("slackhook.message.attachments")
	MessageSizeKey        = attribute.Key("slackhook.message.size")

	// ForceTraceKey samples the span regardless of the configured rate. The
	// webhook client sets it when request logging is on.
	ForceTraceKey = attribute.Key("force_trace")
)

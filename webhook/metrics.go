package webhook

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSent     = "sent"
	outcomeFailed   = "failed"
	outcomeTimeout  = "timeout"
	outcomeRejected = "rejected"
)

type metrics struct {
	messages *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slackhook",
			Name:      "messages_total",
			Help:      "Messages handed to the webhook client, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "slackhook",
			Name:      "send_duration_seconds",
			Help:      "Time spent posting a message to the webhook.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if reg == nil {
		return m, nil
	}

	if err := reg.Register(m.messages); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		m.messages = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(m.duration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		m.duration = are.ExistingCollector.(prometheus.Histogram)
	}

	return m, nil
}

func (m *metrics) observe(err error, elapsed time.Duration) {
	outcome := outcomeSent
	switch {
	case errors.Is(err, ErrNoWebhookURL):
		m.messages.WithLabelValues(outcomeRejected).Inc()
		return
	case errors.Is(err, ErrTimeout):
		outcome = outcomeTimeout
	case err != nil:
		outcome = outcomeFailed
	}

	m.messages.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

package webhook

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"github.com/dynoinc/slackhook/message"
)

const DefaultTimeout = 10 * time.Second

// Config is set once at startup and only read afterwards.
type Config struct {
	// URL is the incoming-webhook endpoint. Sends fail with ErrNoWebhookURL while it is empty.
	URL               string        `envconfig:"WEBHOOK_URL" validate:"omitempty,url"`
	Logging           bool          `default:"false"`
	Timeout           time.Duration `default:"10s" validate:"gt=0"`
	MessageBuilderURL string        `split_words:"true" default:"https://api.slack.com/docs/messages/builder?msg=" validate:"omitempty,url"`
}

func DefaultConfig() Config {
	return Config{
		Timeout:           DefaultTimeout,
		MessageBuilderURL: message.DefaultBuilderURL,
	}
}

// LoadConfig reads the configuration from the environment, e.g.
// SLACKHOOK_WEBHOOK_URL and SLACKHOOK_TIMEOUT for the prefix "slackhook".
func LoadConfig(prefix string) (Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, fmt.Errorf("processing environment variables: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

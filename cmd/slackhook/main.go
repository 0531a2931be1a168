package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	sdkTrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/dynoinc/slackhook/internal/telemetry"
	"github.com/dynoinc/slackhook/webhook"
)

const envPrefix = "slackhook"

type Config struct {
	webhook.Config
	Telemetry telemetry.Config

	LogLevel slog.Level `split_words:"true" default:"info"`

	// Error reporting
	SentryDSN string `envconfig:"SENTRY_DSN"`

	// MetricsFile receives the send metrics in Prometheus text format on exit.
	MetricsFile string `split_words:"true"`
}

// app carries the state shared by the subcommands of one invocation.
type app struct {
	cfg      Config
	client   *webhook.Client
	registry *prometheus.Registry
	tp       *sdkTrace.TracerProvider
	sentry   bool

	url     string
	timeout time.Duration
	verbose bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	if err != nil && a.sentry {
		sentry.CaptureException(err)
	}
	a.close()

	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "slackhook",
		Short:         "Send messages to a Slack incoming webhook",
		Version:       versioninfo.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.url, "url", "", "webhook URL, overrides SLACKHOOK_WEBHOOK_URL")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "request timeout, overrides SLACKHOOK_TIMEOUT")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests and responses")

	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		if cmd != root {
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nEnvironment:")
		_ = envconfig.Usagef(envPrefix, &Config{}, cmd.OutOrStdout(), envconfig.DefaultTableFormat)
	})

	root.AddCommand(
		newSendCmd(a),
		newPreviewCmd(a),
		newValidateCmd(a),
		newVersionCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	if err := envconfig.Process(envPrefix, &a.cfg); err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		a.cfg.URL = a.url
	}
	if flags.Changed("timeout") {
		a.cfg.Timeout = a.timeout
	}
	if flags.Changed("verbose") {
		a.cfg.Logging = a.verbose
	}

	logger := slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      a.cfg.LogLevel,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
	slog.DebugContext(ctx, "running version", "version", versioninfo.Short())

	if a.cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:     a.cfg.SentryDSN,
			Release: versioninfo.Short(),
		}); err != nil {
			return fmt.Errorf("initializing sentry: %w", err)
		}
		a.sentry = true
	}

	tp, err := telemetry.NewTracerProvider(ctx, a.cfg.Telemetry)
	if err != nil {
		return err
	}
	a.tp = tp

	a.registry = prometheus.NewRegistry()
	client, err := webhook.New(a.cfg.Config,
		webhook.WithLogger(logger),
		webhook.WithTracerProvider(tp),
		webhook.WithRegisterer(a.registry),
	)
	if err != nil {
		return fmt.Errorf("setting up webhook client: %w", err)
	}
	a.client = client

	return nil
}

// close flushes everything set up by setup. It runs whether or not the
// command succeeded.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.tp != nil {
		if err := a.tp.Shutdown(ctx); err != nil {
			slog.WarnContext(ctx, "shutting down tracer provider", "error", err)
		}
	}

	if a.registry != nil && a.cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.registry); err != nil {
			slog.WarnContext(ctx, "writing metrics file", "path", a.cfg.MetricsFile, "error", err)
		}
	}

	if a.sentry {
		sentry.Flush(2 * time.Second)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Skips the configuration and client setup of the root command.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versioninfo.Short())
		},
	}
}

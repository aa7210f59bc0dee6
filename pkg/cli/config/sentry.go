package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tapnote/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Sentry struct {
	dsn string
	env string
}

func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN",
			Category:    "Sentry",
			Sources:     cli.EnvVars("TAPNOTE_SENTRY_DSN"),
			Destination: &x.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Category:    "Sentry",
			Sources:     cli.EnvVars("TAPNOTE_SENTRY_ENV"),
			Destination: &x.env,
		},
	}
}

func (x Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dsn", x.dsn),
		slog.String("env", x.env),
	)
}

func (x *Sentry) IsConfigured() bool {
	return x.dsn != ""
}

func (x *Sentry) Configure() error {
	if !x.IsConfigured() {
		logging.Default().Debug("Sentry is not configured")
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.env,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize sentry")
	}
	return nil
}

// Flush waits for buffered events to be sent.
func (x *Sentry) Flush() {
	if x.IsConfigured() {
		sentry.Flush(2 * time.Second)
	}
}

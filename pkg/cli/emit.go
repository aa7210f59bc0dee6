package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tapnote/pkg/cli/config"
	"github.com/secmon-lab/tapnote/pkg/domain/model/tap"
	"github.com/secmon-lab/tapnote/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdEmit() *cli.Command {
	var (
		outputCfg      config.Output
		kind           string
		pattern        string
		message        string
		invalidMatches []string
	)

	flags := joinFlags(
		outputCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "kind",
				Aliases:     []string{"k"},
				Usage:       "Notification kind [Matched|NotMatched|InvalidMatch]",
				Required:    true,
				Destination: &kind,
			},
			&cli.StringFlag{
				Name:        "pattern",
				Aliases:     []string{"p"},
				Usage:       "Tap pattern that raised the notification",
				Required:    true,
				Destination: &pattern,
			},
			&cli.StringFlag{
				Name:        "message",
				Aliases:     []string{"m"},
				Usage:       "Reason of an InvalidMatch notification",
				Destination: &message,
			},
			&cli.StringSliceFlag{
				Name:        "invalid-match",
				Aliases:     []string{"i"},
				Usage:       "Component ID that matched but cannot be tapped (repeatable)",
				Destination: &invalidMatches,
			},
		},
	)

	return &cli.Command{
		Name:  "emit",
		Usage: "Emit one tap notification",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			notifier, err := outputCfg.Configure(c.Root().Writer)
			if err != nil {
				return err
			}

			rec := tap.Record{
				Kind:           tap.Kind(kind),
				Pattern:        types.TapPattern(pattern),
				Message:        message,
				InvalidMatches: invalidMatches,
			}
			n, err := rec.Build()
			if err != nil {
				return err
			}

			if err := notify(ctx, notifier, n); err != nil {
				return goerr.Wrap(err, "failed to emit notification", goerr.V("kind", kind))
			}
			return nil
		},
	}
}

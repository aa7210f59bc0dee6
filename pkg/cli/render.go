package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tapnote/pkg/cli/config"
	"github.com/secmon-lab/tapnote/pkg/domain/model/errs"
	"github.com/secmon-lab/tapnote/pkg/domain/model/tap"
	"github.com/secmon-lab/tapnote/pkg/utils/logging"
	"github.com/secmon-lab/tapnote/pkg/utils/safe"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func cmdRender() *cli.Command {
	var (
		outputCfg config.Output
		inputFile string
	)

	flags := joinFlags(
		outputCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "YAML or JSON file with a list of notification records (default: stdin)",
				Sources:     cli.EnvVars("TAPNOTE_INPUT"),
				Destination: &inputFile,
			},
		},
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Render a list of tap notification records",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			notifier, err := outputCfg.Configure(c.Root().Writer)
			if err != nil {
				return err
			}

			records, err := readRecords(ctx, inputFile, c.Root().Reader)
			if err != nil {
				return err
			}

			notifications := make([]tap.Notification, 0, len(records))
			for i, rec := range records {
				n, err := rec.Build()
				if err != nil {
					return goerr.Wrap(err, "invalid notification record", goerr.V("index", i))
				}
				notifications = append(notifications, n)
			}

			for _, n := range notifications {
				if err := notify(ctx, notifier, n); err != nil {
					return goerr.Wrap(err, "failed to render notification", goerr.V("pattern", n.Pattern()))
				}
			}

			logging.From(ctx).Debug("rendered notifications", "count", len(notifications))
			return nil
		},
	}
}

// readRecords decodes records from inputFile, or from stdin when inputFile is
// empty. An empty document yields no records.
func readRecords(ctx context.Context, inputFile string, stdin io.Reader) ([]tap.Record, error) {
	reader := stdin
	if inputFile != "" {
		// #nosec G304 -- This is a CLI tool that intentionally reads user-specified files
		file, err := os.Open(inputFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open input file", goerr.V("path", inputFile))
		}
		defer safe.Close(ctx, file)
		reader = file
	}

	var records []tap.Record
	if err := yaml.NewDecoder(reader).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to decode notification records",
			goerr.V("path", inputFile),
			goerr.T(errs.TagValidation))
	}
	return records, nil
}

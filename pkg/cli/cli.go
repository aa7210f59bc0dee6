package cli

import (
	"context"
	"io"
	"os"

	"github.com/secmon-lab/tapnote/pkg/cli/config"
	"github.com/secmon-lab/tapnote/pkg/domain/model/errs"
	"github.com/secmon-lab/tapnote/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string) error {
	return newApp(os.Stdin, os.Stdout).Run(ctx, args)
}

func newApp(r io.Reader, w io.Writer) *app {
	return &app{reader: r, writer: w}
}

type app struct {
	reader io.Reader
	writer io.Writer
}

func (x *app) Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		closer    func()
	)

	cmd := &cli.Command{
		Name:   "tapnote",
		Usage:  "Render tap pattern notifications",
		Reader: x.reader,
		Writer: x.writer,
		Flags:  joinFlags(loggerCfg.Flags(), sentryCfg.Flags()),
		// component IDs may contain commas
		DisableSliceFlagSeparator: true,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			closer = f
			if err != nil {
				return ctx, err
			}

			if err := sentryCfg.Configure(); err != nil {
				return ctx, err
			}

			logging.Default().Debug("base options", "logger", loggerCfg, "sentry", sentryCfg)
			return logging.With(ctx, logging.Default()), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			sentryCfg.Flush()
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdEmit(),
			cmdRender(),
			cmdSchema(),
		},
	}

	if err := cmd.Run(ctx, args); err != nil {
		errs.Handle(ctx, err)
		return err
	}

	return nil
}

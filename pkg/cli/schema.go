package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tapnote/pkg/controller/graphql"
	"github.com/urfave/cli/v3"
)

func cmdSchema() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the GraphQL schema of tap notifications",
		Action: func(ctx context.Context, c *cli.Command) error {
			if _, err := graphql.NewSchema(); err != nil {
				return err
			}
			if _, err := io.WriteString(c.Root().Writer, graphql.SDL()); err != nil {
				return goerr.Wrap(err, "failed to write schema")
			}
			return nil
		},
	}
}

package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tapnote/pkg/controller/graphql"
	"github.com/secmon-lab/tapnote/pkg/domain/interfaces"
	"github.com/secmon-lab/tapnote/pkg/domain/model/errs"
	"github.com/secmon-lab/tapnote/pkg/service/notifier"
	"github.com/urfave/cli/v3"
	"github.com/vektah/gqlparser/v2"
)

const (
	FormatConsole = "console"
	FormatLog     = "log"
	FormatGraphQL = "graphql"
)

// Output selects where notifications are delivered.
type Output struct {
	format    string
	query     string
	queryFile string
}

func (x *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Category:    "output",
			Usage:       "Output format [console|log|graphql]",
			Value:       FormatConsole,
			Sources:     cli.EnvVars("TAPNOTE_FORMAT"),
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "query",
			Category:    "output",
			Usage:       "GraphQL query used with --format graphql",
			Sources:     cli.EnvVars("TAPNOTE_QUERY"),
			Destination: &x.query,
		},
		&cli.StringFlag{
			Name:        "query-file",
			Category:    "output",
			Usage:       "File containing the GraphQL query used with --format graphql",
			Sources:     cli.EnvVars("TAPNOTE_QUERY_FILE"),
			Destination: &x.queryFile,
		},
	}
}

func (x Output) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("format", x.format),
		slog.Int("query_length", len(x.query)),
		slog.String("query_file", x.queryFile),
	)
}

// Configure builds the notifier for the selected format writing to w.
func (x *Output) Configure(w io.Writer) (interfaces.TapNotifier, error) {
	switch x.format {
	case FormatConsole:
		return notifier.NewConsole(w), nil

	case FormatLog:
		return notifier.NewLogger(), nil

	case FormatGraphQL:
		presenter, err := graphql.NewPresenter()
		if err != nil {
			return nil, err
		}

		query, err := x.loadQuery()
		if err != nil {
			return nil, err
		}
		if query == "" {
			query = graphql.DefaultQuery
		}
		if _, errList := gqlparser.LoadQuery(presenter.Schema(), query); len(errList) > 0 {
			return nil, goerr.Wrap(errList, "invalid GraphQL query",
				goerr.T(errs.TagInvalidRequest),
				goerr.V("query", query))
		}

		return notifier.NewGraphQL(w, presenter, graphql.Request{Query: query}), nil
	}

	return nil, goerr.Wrap(errs.ErrUnknownFormat, "failed to configure output",
		goerr.V("format", x.format),
		goerr.T(errs.TagInvalidRequest))
}

func (x *Output) loadQuery() (string, error) {
	if x.query != "" && x.queryFile != "" {
		return "", goerr.New("--query and --query-file are mutually exclusive", goerr.T(errs.TagInvalidRequest))
	}
	if x.queryFile == "" {
		return x.query, nil
	}

	raw, err := os.ReadFile(filepath.Clean(x.queryFile))
	if err != nil {
		return "", goerr.Wrap(err, "failed to read query file", goerr.V("path", x.queryFile))
	}
	return string(raw), nil
}

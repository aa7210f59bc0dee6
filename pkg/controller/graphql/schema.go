package graphql

import (
	_ "embed"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tapnote/pkg/domain/model/errs"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphql
var schemaSDL string

// SDL returns the schema definition served by the presenter.
func SDL() string {
	return schemaSDL
}

// NewSchema parses and validates the embedded schema.
func NewSchema() (*ast.Schema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{
		Name:  "schema.graphql",
		Input: schemaSDL,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load GraphQL schema", goerr.T(errs.TagGraphQL))
	}
	return schema, nil
}

// DefaultQuery selects every field exposed for an EventNotification.
const DefaultQuery = `query TapNotification {
  tapNotification {
    message
    notification {
      __typename
      ... on Matched {
        pattern
      }
      ... on NotMatched {
        pattern
      }
      ... on InvalidMatch {
        pattern
        invalidMatches
      }
    }
  }
}`

const (
	typeEventNotification = "EventNotification"
	typeNameField         = "__typename"
)

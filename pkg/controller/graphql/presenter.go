package graphql

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/99designs/gqlgen/graphql"
	"github.com/secmon-lab/tapnote/pkg/domain/model/tap"
	"github.com/secmon-lab/tapnote/pkg/utils/logging"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
)

// Request is a GraphQL operation to run against a notification.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Presenter renders EventNotification as the payload of a GraphQL response.
// Only fields declared in the schema can be selected. Root fields returning
// EventNotification all resolve to the notification being presented.
type Presenter struct {
	schema *ast.Schema
}

func NewPresenter() (*Presenter, error) {
	schema, err := NewSchema()
	if err != nil {
		return nil, err
	}
	return &Presenter{schema: schema}, nil
}

// Schema returns the parsed schema.
func (x *Presenter) Schema() *ast.Schema {
	return x.schema
}

// Present runs req against ev. An empty query is replaced by DefaultQuery.
// When any error occurs, the response has null data and the errors.
// Introspection (__schema, __type) is not answered and yields an error; the
// SDL is available from SDL().
func (x *Presenter) Present(ctx context.Context, req Request, ev *tap.EventNotification) *graphql.Response {
	if req.Query == "" {
		req.Query = DefaultQuery
	}

	doc, errList := gqlparser.LoadQuery(x.schema, req.Query)
	if len(errList) > 0 {
		return &graphql.Response{Errors: errList}
	}

	var op *ast.OperationDefinition
	if req.OperationName == "" && len(doc.Operations) == 1 {
		op = doc.Operations[0]
	} else if req.OperationName != "" {
		op = doc.Operations.ForName(req.OperationName)
	}
	if op == nil {
		if req.OperationName == "" {
			return errorResponse(gqlerror.Errorf("operation name is required when the document has multiple operations"))
		}
		return errorResponse(gqlerror.Errorf("operation %s not found", req.OperationName))
	}

	vars, err := validator.VariableValues(x.schema, op, req.Variables)
	if err != nil {
		return errorResponse(toGQLError(err))
	}

	ec := &execContext{
		ctx:    ctx,
		schema: x.schema,
		opCtx: &graphql.OperationContext{
			RawQuery:      req.Query,
			Variables:     vars,
			OperationName: op.Name,
			Doc:           doc,
			Operation:     op,
		},
		ev: ev,
	}
	data := ec.marshalOperation(op)
	if len(ec.errors) > 0 {
		logging.From(ctx).Debug("failed to present notification",
			slog.String("operation", op.Name),
			slog.Any("errors", ec.errors),
		)
		return &graphql.Response{Errors: ec.errors}
	}

	var buf bytes.Buffer
	data.MarshalGQL(&buf)
	return &graphql.Response{Data: buf.Bytes()}
}

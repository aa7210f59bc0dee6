package notifier

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tapnote/pkg/controller/graphql"
	"github.com/secmon-lab/tapnote/pkg/domain/interfaces"
	"github.com/secmon-lab/tapnote/pkg/domain/model/errs"
	"github.com/secmon-lab/tapnote/pkg/domain/model/tap"
)

// GraphQL writes each notification as one line of JSON holding the GraphQL
// response produced for the configured request.
type GraphQL struct {
	w         io.Writer
	presenter *graphql.Presenter
	req       graphql.Request
}

var _ interfaces.TapNotifier = (*GraphQL)(nil)

func NewGraphQL(w io.Writer, presenter *graphql.Presenter, req graphql.Request) *GraphQL {
	return &GraphQL{
		w:         w,
		presenter: presenter,
		req:       req,
	}
}

func (n *GraphQL) NotifyTap(ctx context.Context, ev *tap.EventNotification) error {
	resp := n.presenter.Present(ctx, n.req, ev)
	if len(resp.Errors) > 0 {
		return goerr.Wrap(resp.Errors, "failed to present notification",
			goerr.V("pattern", ev.Notification().Pattern()),
			goerr.T(errs.TagGraphQL))
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal GraphQL response")
	}
	if _, err := n.w.Write(append(raw, '\n')); err != nil {
		return goerr.Wrap(err, "failed to write GraphQL response")
	}
	return nil
}

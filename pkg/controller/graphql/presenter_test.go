package graphql_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tapnote/pkg/controller/graphql"
	"github.com/secmon-lab/tapnote/pkg/domain/model/tap"
	"github.com/stretchr/testify/require"
)

func newPresenter(t *testing.T) *graphql.Presenter {
	t.Helper()
	p, err := graphql.NewPresenter()
	gt.NoError(t, err).Required()
	return p
}

func TestSchema(t *testing.T) {
	schema, err := graphql.NewSchema()
	gt.NoError(t, err).Required()

	t.Run("variant message is not exposed", func(t *testing.T) {
		for _, name := range []string{"Matched", "NotMatched", "InvalidMatch"} {
			def := schema.Types[name]
			gt.V(t, def).NotNil()
			gt.V(t, def.Fields.ForName("pattern")).NotNil()
			gt.V(t, def.Fields.ForName("message")).Nil()
		}
		gt.V(t, schema.Types["InvalidMatch"].Fields.ForName("invalidMatches")).NotNil()
	})

	t.Run("notification is a union of three types", func(t *testing.T) {
		union := schema.Types["Notification"]
		gt.V(t, union).NotNil()
		gt.A(t, schema.GetPossibleTypes(union)).Length(3)
	})

	t.Run("wrapper exposes message and notification", func(t *testing.T) {
		def := schema.Types["EventNotification"]
		gt.V(t, def.Fields.ForName("message")).NotNil()
		gt.V(t, def.Fields.ForName("notification")).NotNil()
	})
}

func TestPresenter_DefaultQuery(t *testing.T) {
	p := newPresenter(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		n      tap.Notification
		expect string
	}{
		{
			name: "matched",
			n:    tap.NewMatched("kafka_sink"),
			expect: `{"tapNotification":{
				"message":"[tap] Pattern 'kafka_sink' successfully matched.",
				"notification":{"__typename":"Matched","pattern":"kafka_sink"}}}`,
		},
		{
			name: "not matched",
			n:    tap.NewNotMatched("http_*"),
			expect: `{"tapNotification":{
				"message":"[tap] Pattern 'http_*' failed to match: will retry on configuration reload.",
				"notification":{"__typename":"NotMatched","pattern":"http_*"}}}`,
		},
		{
			name: "invalid match",
			n:    tap.NewInvalidMatch("Cannot tap source 'stdin' for output events.", "stdin*", []string{"stdin"}),
			expect: `{"tapNotification":{
				"message":"Cannot tap source 'stdin' for output events.",
				"notification":{"__typename":"InvalidMatch","pattern":"stdin*","invalidMatches":["stdin"]}}}`,
		},
		{
			name: "invalid match without invalid matches",
			n:    tap.NewInvalidMatch("", "x", nil),
			expect: `{"tapNotification":{
				"message":"",
				"notification":{"__typename":"InvalidMatch","pattern":"x","invalidMatches":[]}}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := p.Present(ctx, graphql.Request{}, tap.NewEventNotification(tc.n))
			gt.A(t, resp.Errors).Length(0)
			require.JSONEq(t, tc.expect, string(resp.Data))
		})
	}
}

func TestPresenter_Selection(t *testing.T) {
	p := newPresenter(t)
	ctx := context.Background()
	invalid := tap.NewEventNotification(tap.NewInvalidMatch("bad", "in*", []string{"in_a", "in_b"}))
	matched := tap.NewEventNotification(tap.NewMatched("kafka_sink"))

	t.Run("aliases and named fragments", func(t *testing.T) {
		query := `query {
			n: tapNotification {
				kind: __typename
				text: message
				notification { ...Invalid }
			}
		}
		fragment Invalid on InvalidMatch { ids: invalidMatches }`

		resp := p.Present(ctx, graphql.Request{Query: query}, invalid)
		gt.A(t, resp.Errors).Length(0)
		require.JSONEq(t, `{"n":{"kind":"EventNotification","text":"bad","notification":{"ids":["in_a","in_b"]}}}`, string(resp.Data))

		resp = p.Present(ctx, graphql.Request{Query: query}, matched)
		gt.A(t, resp.Errors).Length(0)
		require.JSONEq(t, `{"n":{"kind":"EventNotification","text":"[tap] Pattern 'kafka_sink' successfully matched.","notification":{}}}`, string(resp.Data))
	})

	t.Run("fragments on the union apply to every member", func(t *testing.T) {
		query := `{ tapNotification { notification { ... on Notification { __typename } } } }`
		resp := p.Present(ctx, graphql.Request{Query: query}, matched)
		gt.A(t, resp.Errors).Length(0)
		require.JSONEq(t, `{"tapNotification":{"notification":{"__typename":"Matched"}}}`, string(resp.Data))
	})

	t.Run("fields with the same response key are merged", func(t *testing.T) {
		query := `{ tapNotification { notification {
			... on InvalidMatch { pattern }
			... on InvalidMatch { invalidMatches }
		} } }`
		resp := p.Present(ctx, graphql.Request{Query: query}, invalid)
		gt.A(t, resp.Errors).Length(0)
		require.JSONEq(t, `{"tapNotification":{"notification":{"pattern":"in*","invalidMatches":["in_a","in_b"]}}}`, string(resp.Data))
	})

	t.Run("root typename", func(t *testing.T) {
		resp := p.Present(ctx, graphql.Request{Query: `{ __typename }`}, matched)
		gt.A(t, resp.Errors).Length(0)
		require.JSONEq(t, `{"__typename":"Query"}`, string(resp.Data))
	})
}

func TestPresenter_Variables(t *testing.T) {
	p := newPresenter(t)
	ctx := context.Background()
	ev := tap.NewEventNotification(tap.NewNotMatched("file_*"))

	t.Run("subscription with variables", func(t *testing.T) {
		req := graphql.Request{
			Query: `subscription Watch($patterns: [String!]!) {
				tapNotifications(patterns: $patterns) { message }
			}`,
			Variables: map[string]any{"patterns": []any{"file_*"}},
		}
		resp := p.Present(ctx, req, ev)
		gt.A(t, resp.Errors).Length(0)
		require.JSONEq(t, `{"tapNotifications":{"message":"[tap] Pattern 'file_*' failed to match: will retry on configuration reload."}}`, string(resp.Data))
	})

	t.Run("missing required variable", func(t *testing.T) {
		req := graphql.Request{
			Query: `subscription Watch($patterns: [String!]!) {
				tapNotifications(patterns: $patterns) { message }
			}`,
		}
		resp := p.Present(ctx, req, ev)
		gt.A(t, resp.Errors).Longer(0)
		gt.V(t, string(resp.Data)).Equal("")
	})

	t.Run("skip and include", func(t *testing.T) {
		query := `query Q($withMessage: Boolean!) {
			tapNotification {
				message @include(if: $withMessage)
				notification { __typename @skip(if: true) ... on NotMatched { pattern } }
			}
		}`

		resp := p.Present(ctx, graphql.Request{Query: query, Variables: map[string]any{"withMessage": false}}, ev)
		gt.A(t, resp.Errors).Length(0)
		require.JSONEq(t, `{"tapNotification":{"notification":{"pattern":"file_*"}}}`, string(resp.Data))

		resp = p.Present(ctx, graphql.Request{Query: query, Variables: map[string]any{"withMessage": true}}, ev)
		gt.A(t, resp.Errors).Length(0)
		require.JSONEq(t, `{"tapNotification":{"message":"[tap] Pattern 'file_*' failed to match: will retry on configuration reload.","notification":{"pattern":"file_*"}}}`, string(resp.Data))
	})
}

func TestPresenter_Errors(t *testing.T) {
	p := newPresenter(t)
	ctx := context.Background()
	ev := tap.NewEventNotification(tap.NewMatched("kafka_sink"))

	t.Run("variant message cannot be selected", func(t *testing.T) {
		query := `{ tapNotification { notification { ... on Matched { message } } } }`
		resp := p.Present(ctx, graphql.Request{Query: query}, ev)
		gt.A(t, resp.Errors).Longer(0)
		gt.S(t, resp.Errors.Error()).Contains("message")

		raw, err := json.Marshal(resp)
		gt.NoError(t, err).Required()
		gt.S(t, string(raw)).Contains(`"data":null`).NotContains("successfully matched")
	})

	t.Run("introspection is rejected", func(t *testing.T) {
		for _, query := range []string{
			`{ __type(name: "Matched") { name } }`,
			`{ __schema { queryType { name } } }`,
		} {
			resp := p.Present(ctx, graphql.Request{Query: query}, ev)
			gt.A(t, resp.Errors).Length(1)
			gt.S(t, resp.Errors[0].Message).Contains("introspection")
			gt.V(t, string(resp.Data)).Equal("")
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		resp := p.Present(ctx, graphql.Request{Query: `{ tapNotification { `}, ev)
		gt.A(t, resp.Errors).Longer(0)
	})

	t.Run("no notification", func(t *testing.T) {
		resp := p.Present(ctx, graphql.Request{}, nil)
		gt.A(t, resp.Errors).Length(1)
		gt.S(t, resp.Errors[0].Message).Contains("no notification")
	})

	t.Run("operation selection", func(t *testing.T) {
		query := `query A { tapNotification { message } } query B { __typename }`

		resp := p.Present(ctx, graphql.Request{Query: query}, ev)
		gt.A(t, resp.Errors).Length(1)

		resp = p.Present(ctx, graphql.Request{Query: query, OperationName: "C"}, ev)
		gt.A(t, resp.Errors).Length(1)

		resp = p.Present(ctx, graphql.Request{Query: query, OperationName: "B"}, ev)
		gt.A(t, resp.Errors).Length(0)
		require.JSONEq(t, `{"__typename":"Query"}`, string(resp.Data))
	})
}

func TestPresenter_MessageMatchesUnion(t *testing.T) {
	p := newPresenter(t)
	ctx := context.Background()

	for _, n := range []tap.Notification{
		tap.NewMatched("a"),
		tap.NewNotMatched("b"),
		tap.NewInvalidMatch("c", "c*", []string{"c1"}),
	} {
		ev := tap.NewEventNotification(n)
		resp := p.Present(ctx, graphql.Request{Query: `{ tapNotification { message } }`}, ev)
		gt.A(t, resp.Errors).Length(0)

		var data struct {
			TapNotification struct {
				Message string `json:"message"`
			} `json:"tapNotification"`
		}
		gt.NoError(t, json.Unmarshal(resp.Data, &data)).Required()
		gt.V(t, data.TapNotification.Message).Equal(tap.String(n))
	}
}

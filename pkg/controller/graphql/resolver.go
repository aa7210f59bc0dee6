package graphql

import (
	"context"

	"github.com/99designs/gqlgen/graphql"
	"github.com/secmon-lab/tapnote/pkg/domain/model/tap"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

const typeNotification = "Notification"

// execContext carries the state of one operation against one notification.
// Errors are accumulated; any error makes the whole response data null.
type execContext struct {
	ctx    context.Context
	schema *ast.Schema
	opCtx  *graphql.OperationContext
	ev     *tap.EventNotification
	errors gqlerror.List
}

func (x *execContext) errorf(path ast.Path, format string, args ...any) {
	x.errors = append(x.errors, gqlerror.ErrorPathf(path, format, args...))
}

// object marshals fields collected for an object satisfying the given types.
// resolve returns the value of one field.
func (x *execContext) object(set ast.SelectionSet, satisfies []string, resolve func(f graphql.CollectedField) graphql.Marshaler) graphql.Marshaler {
	fields := graphql.CollectFields(x.opCtx, set, satisfies)
	out := graphql.NewFieldSet(fields)
	for i, f := range fields {
		out.Values[i] = resolve(f)
	}
	out.Dispatch(x.ctx)
	return out
}

func (x *execContext) rootType(op ast.Operation) *ast.Definition {
	switch op {
	case ast.Query:
		return x.schema.Query
	case ast.Subscription:
		return x.schema.Subscription
	case ast.Mutation:
		return x.schema.Mutation
	}
	return nil
}

func (x *execContext) marshalOperation(op *ast.OperationDefinition) graphql.Marshaler {
	root := x.rootType(op.Operation)
	if root == nil {
		x.errorf(nil, "schema does not support %s operations", op.Operation)
		return graphql.Null
	}

	return x.object(op.SelectionSet, []string{root.Name}, func(f graphql.CollectedField) graphql.Marshaler {
		path := ast.Path{ast.PathName(f.Alias)}

		switch {
		case f.Name == typeNameField:
			return graphql.MarshalString(root.Name)
		case f.Name == "__schema" || f.Name == "__type":
			x.errorf(path, "introspection field %s is not supported, use the schema SDL instead", f.Name)
			return graphql.Null
		case f.Definition != nil && f.Definition.Type.Name() == typeEventNotification:
			return x.marshalEventNotification(f.Selections, path)
		}

		x.errorf(path, "field %s.%s cannot be resolved", root.Name, f.Name)
		return graphql.Null
	})
}

func (x *execContext) marshalEventNotification(set ast.SelectionSet, path ast.Path) graphql.Marshaler {
	if x.ev == nil || x.ev.Notification() == nil {
		x.errorf(path, "no notification to present")
		return graphql.Null
	}

	return x.object(set, []string{typeEventNotification}, func(f graphql.CollectedField) graphql.Marshaler {
		switch f.Name {
		case typeNameField:
			return graphql.MarshalString(typeEventNotification)
		case "message":
			return graphql.MarshalString(x.ev.Message())
		case "notification":
			return x.marshalNotification(x.ev.Notification(), f.Selections, appendPath(path, f.Alias))
		}

		x.errorf(appendPath(path, f.Alias), "field %s.%s is not exposed", typeEventNotification, f.Name)
		return graphql.Null
	})
}

func (x *execContext) marshalNotification(n tap.Notification, set ast.SelectionSet, path ast.Path) graphql.Marshaler {
	return tap.Visit[graphql.Marshaler](n, &notificationMarshaler{
		ec:   x,
		set:  set,
		path: path,
	})
}

// notificationMarshaler is the allow-list of fields exposed per notification
// type. The stored message of a notification is never exposed here; it is
// only reachable through EventNotification.message.
type notificationMarshaler struct {
	ec   *execContext
	set  ast.SelectionSet
	path ast.Path
}

func (m *notificationMarshaler) Matched(x tap.Matched) graphql.Marshaler {
	return m.object(tap.KindMatched, func(name string) (graphql.Marshaler, bool) {
		switch name {
		case "pattern":
			return graphql.MarshalString(x.Pattern().String()), true
		}
		return nil, false
	})
}

func (m *notificationMarshaler) NotMatched(x tap.NotMatched) graphql.Marshaler {
	return m.object(tap.KindNotMatched, func(name string) (graphql.Marshaler, bool) {
		switch name {
		case "pattern":
			return graphql.MarshalString(x.Pattern().String()), true
		}
		return nil, false
	})
}

func (m *notificationMarshaler) InvalidMatch(x tap.InvalidMatch) graphql.Marshaler {
	return m.object(tap.KindInvalidMatch, func(name string) (graphql.Marshaler, bool) {
		switch name {
		case "pattern":
			return graphql.MarshalString(x.Pattern().String()), true
		case "invalidMatches":
			matches := x.InvalidMatches()
			arr := make(graphql.Array, 0, len(matches))
			for _, id := range matches {
				arr = append(arr, graphql.MarshalString(id))
			}
			return arr, true
		}
		return nil, false
	})
}

func (m *notificationMarshaler) object(kind tap.Kind, resolve func(name string) (graphql.Marshaler, bool)) graphql.Marshaler {
	satisfies := []string{kind.String(), typeNotification}
	return m.ec.object(m.set, satisfies, func(f graphql.CollectedField) graphql.Marshaler {
		if f.Name == typeNameField {
			return graphql.MarshalString(kind.String())
		}

		v, ok := resolve(f.Name)
		if !ok {
			m.ec.errorf(appendPath(m.path, f.Alias), "field %s.%s is not exposed", kind, f.Name)
			return graphql.Null
		}
		return v
	})
}

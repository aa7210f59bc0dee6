package graphql

import (
	"errors"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

func toGQLError(err error) *gqlerror.Error {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		return gqlErr
	}
	return gqlerror.Errorf("%s", err.Error())
}

func errorResponse(errs ...*gqlerror.Error) *graphql.Response {
	return &graphql.Response{Errors: gqlerror.List(errs)}
}

func appendPath(path ast.Path, key string) ast.Path {
	out := make(ast.Path, len(path), len(path)+1)
	copy(out, path)
	return append(out, ast.PathName(key))
}

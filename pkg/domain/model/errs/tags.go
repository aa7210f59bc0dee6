package errs

import "github.com/m-mizutani/goerr/v2"

var (
	// Input errors
	TagValidation     = goerr.NewTag("validation")
	TagInvalidRequest = goerr.NewTag("invalid_request")

	// Presentation errors
	TagGraphQL = goerr.NewTag("graphql")

	TagInternal = goerr.NewTag("internal")
)

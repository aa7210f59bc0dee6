package errs

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tapnote/pkg/utils/logging"
)

// Handle logs err and reports it to Sentry. Sentry capture is a no-op when the
// client has not been initialized.
func Handle(ctx context.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[CRITICAL] slog crashed during error handling: original_error=%s, slog_panic=%v\n",
				err.Error(), r)
		}
	}()

	logAttrs := []any{slog.Any("error", err)}
	logger := logging.From(ctx)

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		for k, v := range goerr.Values(err) {
			scope.SetExtra(k, v)
		}
	})
	if evID := hub.CaptureException(err); evID != nil {
		logAttrs = append(logAttrs, slog.Any("sentry.id", evID))
	}

	logger.Error("Error: "+err.Error(), logAttrs...)
}

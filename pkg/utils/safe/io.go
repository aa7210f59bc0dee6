package safe

import (
	"context"
	"io"

	"github.com/secmon-lab/tapnote/pkg/utils/logging"
)

// Close closes closer and logs the error instead of returning it.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", logging.ErrAttr(err))
	}
}

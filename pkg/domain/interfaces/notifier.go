package interfaces

import (
	"context"

	"github.com/secmon-lab/tapnote/pkg/domain/model/tap"
)

// TapNotifier delivers tap notifications to an operator facing output.
// Implementations can output notifications to console, logs, or a GraphQL
// response stream.
type TapNotifier interface {
	// NotifyTap is called once per match state transition of a tap pattern.
	NotifyTap(ctx context.Context, ev *tap.EventNotification) error
}

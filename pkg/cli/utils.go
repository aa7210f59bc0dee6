package cli

import (
	"context"

	"github.com/secmon-lab/tapnote/pkg/domain/interfaces"
	"github.com/secmon-lab/tapnote/pkg/domain/model/tap"
	"github.com/secmon-lab/tapnote/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, flag := range flags {
		result = append(result, flag...)
	}
	return result
}

// notify wraps n and hands it to the notifier.
func notify(ctx context.Context, notifier interfaces.TapNotifier, n tap.Notification) error {
	ev := tap.NewEventNotification(n)
	logging.From(ctx).Debug("notify tap", "notification", ev)
	return notifier.NotifyTap(ctx, ev)
}

package notifier

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/tapnote/pkg/domain/interfaces"
	"github.com/secmon-lab/tapnote/pkg/domain/model/tap"
	"github.com/secmon-lab/tapnote/pkg/utils/logging"
)

// Logger emits tap notifications as structured log records using the logger
// in the context. Matched is logged at info level, the others at warn level.
type Logger struct{}

var _ interfaces.TapNotifier = (*Logger)(nil)

func NewLogger() *Logger {
	return &Logger{}
}

func (n *Logger) NotifyTap(ctx context.Context, ev *tap.EventNotification) error {
	level := tap.Visit[slog.Level](ev.Notification(), levelVisitor{})
	logging.From(ctx).Log(ctx, level, ev.Message(), slog.Any("notification", ev))
	return nil
}

type levelVisitor struct{}

func (levelVisitor) Matched(tap.Matched) slog.Level           { return slog.LevelInfo }
func (levelVisitor) NotMatched(tap.NotMatched) slog.Level     { return slog.LevelWarn }
func (levelVisitor) InvalidMatch(tap.InvalidMatch) slog.Level { return slog.LevelWarn }

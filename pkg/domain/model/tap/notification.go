package tap

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/secmon-lab/tapnote/pkg/domain/types"
)

// Notification is a notification regarding events observation. It is
// implemented only by Matched, NotMatched and InvalidMatch.
type Notification interface {
	// Pattern returns the pattern that raised the notification.
	Pattern() types.TapPattern

	dispatch(d dispatcher)
}

// Matched means a component was found that matched the provided pattern.
type Matched struct {
	message string
	pattern types.TapPattern
}

func NewMatched(pattern types.TapPattern) Matched {
	return Matched{
		message: fmt.Sprintf("[tap] Pattern '%s' successfully matched.", pattern),
		pattern: pattern,
	}
}

func (x Matched) Pattern() types.TapPattern { return x.pattern }
func (x Matched) String() string            { return x.message }
func (x Matched) dispatch(d dispatcher)     { d.matched(x) }

// NotMatched means there isn't currently a component that matches the
// pattern. The message promises a retry, so producers must evaluate the
// pattern again on every configuration reload.
type NotMatched struct {
	message string
	pattern types.TapPattern
}

func NewNotMatched(pattern types.TapPattern) NotMatched {
	return NotMatched{
		message: fmt.Sprintf("[tap] Pattern '%s' failed to match: will retry on configuration reload.", pattern),
		pattern: pattern,
	}
}

func (x NotMatched) Pattern() types.TapPattern { return x.pattern }
func (x NotMatched) String() string            { return x.message }
func (x NotMatched) dispatch(d dispatcher)     { d.notMatched(x) }

// InvalidMatch means the pattern matched source(s) which cannot be tapped for
// inputs or sink(s) which cannot be tapped for outputs. The message is
// supplied by the caller because only the caller knows why the match is
// invalid.
type InvalidMatch struct {
	message        string
	pattern        types.TapPattern
	invalidMatches []string
}

// NewInvalidMatch stores its arguments as given. Neither the message nor the
// list of invalid matches is validated.
func NewInvalidMatch(message string, pattern types.TapPattern, invalidMatches []string) InvalidMatch {
	return InvalidMatch{
		message:        message,
		pattern:        pattern,
		invalidMatches: slices.Clone(invalidMatches),
	}
}

func (x InvalidMatch) Pattern() types.TapPattern { return x.pattern }
func (x InvalidMatch) String() string            { return x.message }
func (x InvalidMatch) dispatch(d dispatcher)     { d.invalidMatch(x) }

// InvalidMatches returns a copy of the component IDs that matched the pattern
// but are not eligible for the requested tap direction.
func (x InvalidMatch) InvalidMatches() []string {
	return slices.Clone(x.invalidMatches)
}

// String returns the message stored in the notification.
func String(n Notification) string {
	return Visit[string](n, messageVisitor{})
}

type messageVisitor struct{}

func (messageVisitor) Matched(x Matched) string           { return x.message }
func (messageVisitor) NotMatched(x NotMatched) string     { return x.message }
func (messageVisitor) InvalidMatch(x InvalidMatch) string { return x.message }

// EventNotification hoists the message up from Notification so that it can be
// queried next to the tagged payload.
type EventNotification struct {
	notification Notification
}

func NewEventNotification(n Notification) *EventNotification {
	return &EventNotification{notification: n}
}

// Notification returns the wrapped notification unchanged.
func (x *EventNotification) Notification() Notification {
	return x.notification
}

// Message returns the human-readable message of the wrapped notification.
func (x *EventNotification) Message() string {
	return String(x.notification)
}

func (x *EventNotification) LogValue() slog.Value {
	return slog.GroupValue(Visit[[]slog.Attr](x.notification, logVisitor{})...)
}

type logVisitor struct{}

func (logVisitor) Matched(x Matched) []slog.Attr {
	return []slog.Attr{
		slog.String("kind", KindMatched.String()),
		slog.String("pattern", x.pattern.String()),
	}
}

func (logVisitor) NotMatched(x NotMatched) []slog.Attr {
	return []slog.Attr{
		slog.String("kind", KindNotMatched.String()),
		slog.String("pattern", x.pattern.String()),
	}
}

func (logVisitor) InvalidMatch(x InvalidMatch) []slog.Attr {
	return []slog.Attr{
		slog.String("kind", KindInvalidMatch.String()),
		slog.String("pattern", x.pattern.String()),
		slog.Any("invalid_matches", x.InvalidMatches()),
	}
}

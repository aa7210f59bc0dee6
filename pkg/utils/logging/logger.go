package logging

import (
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/clog/hooks"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
)

type Format int

const (
	FormatConsole Format = iota + 1
	FormatJSON
)

var formatNames = map[string]Format{
	"console": FormatConsole,
	"json":    FormatJSON,
}

// ParseFormat converts a format name (console or json) to Format.
func ParseFormat(name string) (Format, error) {
	f, ok := formatNames[name]
	if !ok {
		return 0, goerr.New("invalid log format", goerr.V("format", name))
	}
	return f, nil
}

var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel converts a level name to slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	l, ok := levelNames[name]
	if !ok {
		return 0, goerr.New("invalid log level", goerr.V("level", name))
	}
	return l, nil
}

var (
	defaultLogger = slog.Default()
	loggerMutex   sync.Mutex
)

func Default() *slog.Logger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	return defaultLogger
}

func Quiet() {
	SetDefault(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func goerrNoStacktrace(_ []string, attr slog.Attr) *clog.HandleAttr {
	goErr, ok := attr.Value.Any().(*goerr.Error)
	if !ok {
		return nil
	}

	var attrs []any
	for k, v := range goErr.Values() {
		attrs = append(attrs, slog.Any(k, v))
	}
	attrs = append(attrs, slog.Any("cause", goErr.Error()))
	newAttr := slog.Group(attr.Key, attrs...)

	return &clog.HandleAttr{
		NewAttr: &newAttr,
	}
}

func New(w io.Writer, level slog.Level, format Format, stacktrace bool) *slog.Logger {
	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldName("dsn"),
	)

	attrHook := hooks.GoErr()
	if !stacktrace {
		attrHook = goerrNoStacktrace
	}

	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		}))
	}

	return slog.New(clog.New(
		clog.WithWriter(w),
		clog.WithLevel(level),
		clog.WithReplaceAttr(filter),
		clog.WithAttrHook(attrHook),
		clog.WithColorMap(&clog.ColorMap{
			Level: map[slog.Level]*color.Color{
				slog.LevelDebug: color.New(color.FgGreen, color.Bold),
				slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
				slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
				slog.LevelError: color.New(color.FgRed, color.Bold),
			},
			LevelDefault: color.New(color.FgBlue, color.Bold),
			Time:         color.New(color.FgWhite),
			Message:      color.New(color.FgHiWhite),
			AttrKey:      color.New(color.FgHiCyan),
			AttrValue:    color.New(color.FgHiWhite),
		}),
	))
}

func SetDefault(logger *slog.Logger) {
	loggerMutex.Lock()
	defaultLogger = logger
	loggerMutex.Unlock()
}

func ErrAttr(err error) slog.Attr { return slog.Any("error", err) }

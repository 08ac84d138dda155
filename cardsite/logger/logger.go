package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeHTTP   LogType = "HTTP"
	TypeDB     LogType = "DB"
	TypeWS     LogType = "WS"
	TypeEvent  LogType = "EVT"
	TypeSystem LogType = "SYS"
	TypeError  LogType = "ERR"
)

// Options configures the console handler.
type Options struct {
	App    string
	Level  slog.Leveler
	Output io.Writer
}

type CustomHandler struct {
	app    string
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewHandler(opts Options) *CustomHandler {
	if opts.App == "" {
		opts.App = "Indigestion"
	}
	if opts.Level == nil {
		opts.Level = slog.LevelDebug
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &CustomHandler{
		app:   opts.App,
		level: opts.Level,
		out:   opts.Output,
		mu:    &sync.Mutex{},
	}
}

// New picks the console handler or slog's JSON handler based on format.
func New(app, format string, level slog.Level, addSource bool) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     level,
			AddSource: addSource,
		})).With(slog.String("app", app))
	}
	return slog.New(NewHandler(Options{App: app, Level: level}))
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	timestamp := r.Time.Format("15:04:05")
	if r.Time.IsZero() {
		timestamp = time.Now().Format("15:04:05")
	}

	levelColor, levelText := levelStyle(r.Level)
	fields := collect(h.attrs, &r)

	message := r.Message
	if r.Level >= slog.LevelError {
		location := fields.errorLocation
		if location == "" {
			location = sourceLocation(r.PC)
		}
		if location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if fields.errorDetails != "" {
			message = fmt.Sprintf("%s: %s", message, fields.errorDetails)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s] [%s] [%s%s%s] [%s] %s",
		colorWhite, h.app, timestamp, levelColor, levelText, colorWhite, fields.logType, message)
	prefix := strings.Join(h.groups, ".")
	for _, a := range fields.rest {
		key := a.Key
		if prefix != "" {
			key = prefix + "." + key
		}
		fmt.Fprintf(&b, " %s=%v", key, a.Value)
	}
	b.WriteString(colorReset)
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level >= slog.LevelError:
		return colorRed, "ERROR"
	case level >= slog.LevelWarn:
		return colorYellow, "WARN"
	case level >= slog.LevelInfo:
		return colorGreen, "INFO"
	default:
		return colorPurple, "DEBUG"
	}
}

type recordFields struct {
	logType       LogType
	errorDetails  string
	errorLocation string
	rest          []slog.Attr
}

func collect(handlerAttrs []slog.Attr, r *slog.Record) recordFields {
	f := recordFields{logType: TypeSystem}
	visit := func(a slog.Attr) bool {
		switch a.Key {
		case "type":
			f.logType = typeFor(a.Value.String())
		case "error":
			f.errorDetails = fmt.Sprintf("%v", a.Value.Any())
		case "error_location":
			f.errorLocation = a.Value.String()
		default:
			f.rest = append(f.rest, a)
		}
		return true
	}
	for _, a := range handlerAttrs {
		visit(a)
	}
	r.Attrs(visit)
	// Errors below error level still deserve to be seen.
	if f.errorDetails != "" && r.Level < slog.LevelError {
		f.rest = append(f.rest, slog.String("error", f.errorDetails))
	}
	return f
}

func typeFor(v string) LogType {
	switch v {
	case "http":
		return TypeHTTP
	case "db":
		return TypeDB
	case "ws":
		return TypeWS
	case "event":
		return TypeEvent
	case "error":
		return TypeError
	}
	return TypeSystem
}

func sourceLocation(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}

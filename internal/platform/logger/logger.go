// Package logger provides a zerolog wrapper with opinionated defaults and
// run-scoped logging support
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"shelfwatch/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	Level        string
	Format       string
	Service      string
	Component    string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string

	// File enables a rotating JSON file sink next to the primary writer
	File           string
	FileMaxMB      int
	FileMaxAgeDays int
}

// FromEnv builds Options using the logging-free raw config view
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:          strings.ToLower(rc.Get("LEVEL", "info")),
		Format:         strings.ToLower(rc.Get("FORMAT", "console")),
		Service:        rc.Get("SERVICE", "shelfwatch"),
		Component:      rc.Get("COMPONENT", ""),
		WithCaller:     rc.GetBool("CALLER", false),
		SampleEvery:    rc.GetInt("SAMPLE_EVERY", 0),
		File:           rc.Get("FILE", ""),
		FileMaxMB:      rc.GetInt("FILE_MAX_MB", 50),
		FileMaxAgeDays: rc.GetInt("FILE_MAX_AGE_DAYS", 28),
	}
}

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger]
	inited atomic.Bool
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Get returns the process-wide root logger, initializing it from env on first use
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// Init configures zerolog and builds the root logger, only the first call wins
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		log := build(opt).Level(parseLevel(opt.Level))
		root.Store(&log)
		inited.Store(true)
	})
}

// build assembles writers and static fields; split out so tests can build without the once guard
func build(opt Options) zerolog.Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	if fw := fileWriter(opt); fw != nil {
		w = zerolog.MultiLevelWriter(w, fw)
	}

	ctx := zerolog.New(w).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		ctx = ctx.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		ctx = ctx.Str("service", opt.Service)
	}
	if opt.Component != "" {
		ctx = ctx.Str("component", opt.Component)
	}
	for k, v := range opt.StaticFields {
		ctx = ctx.Str(k, v)
	}

	log := ctx.Logger()
	if opt.WithCaller {
		log = log.With().Caller().Logger()
	}
	if opt.SampleEvery > 1 {
		log = log.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return log
}

// fileWriter returns a rotating sink when LOG_FILE is set
func fileWriter(opt Options) io.Writer {
	if strings.TrimSpace(opt.File) == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   opt.File,
		MaxSize:    opt.FileMaxMB,
		MaxAge:     opt.FileMaxAgeDays,
		MaxBackups: 5,
		Compress:   true,
	}
}

// parseLevel supports string-only levels
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

type ctxKey struct{ name string }

var (
	keyRequestID = ctxKey{"request_id"}
	keyRunID     = ctxKey{"run_id"}
	keyCategory  = ctxKey{"category"}
)

// WithRequest annotates ctx with the inbound request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	return ctx
}

// WithRun annotates ctx with the report run id and, when known, the category
func WithRun(ctx context.Context, runID, category string) context.Context {
	if runID != "" {
		ctx = context.WithValue(ctx, keyRunID, runID)
	}
	if category != "" {
		ctx = context.WithValue(ctx, keyCategory, category)
	}
	return ctx
}

// C returns a child logger enriched from ctx (request_id, run_id, category)
func C(ctx context.Context) *Logger {
	builder := Get().With()
	for _, k := range []ctxKey{keyRequestID, keyRunID, keyCategory} {
		if s, ok := ctx.Value(k).(string); ok && s != "" {
			builder = builder.Str(k.name, s)
		}
	}
	ll := builder.Logger()
	return &ll
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}

package store

import (
	"context"
	"time"

	"shelfwatch/internal/platform/store/pg"
)

// traceSink forwards query timings to a tracer; zero value is silent
type traceSink struct {
	tracer pg.QueryTracer
	slowUS int64
}

func newTraceSink(tr pg.QueryTracer, slowMs int) traceSink {
	return traceSink{tracer: tr, slowUS: int64(slowMs) * 1000}
}

func (t traceSink) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	t.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      t.slowUS >= 0 && elapsedUS >= t.slowUS,
	})
}

package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/syssam/dlog/dialect"
)

// QueryStats counts the statements sent through a StatsDriver.
type QueryStats struct {
	TotalQueries  atomic.Int64
	TotalExecs    atomic.Int64
	TotalDuration atomic.Int64 // nanoseconds
	SlowQueries   atomic.Int64
	Errors        atomic.Int64
}

// Stats returns a snapshot of the counters.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// StatsSnapshot is a point-in-time copy of QueryStats.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgQueryDuration returns the mean duration over queries and execs.
func (s StatsSnapshot) AvgQueryDuration() time.Duration {
	n := s.TotalQueries + s.TotalExecs
	if n == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(n)
}

// LogValue implements slog.LogValuer.
func (s StatsSnapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("queries", s.TotalQueries),
		slog.Int64("execs", s.TotalExecs),
		slog.Duration("duration", s.TotalDuration),
		slog.Duration("avg", s.AvgQueryDuration()),
		slog.Int64("slow", s.SlowQueries),
		slog.Int64("errors", s.Errors),
	)
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf("queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgQueryDuration(), s.SlowQueries, s.Errors)
}

// SlowQueryHook is called for every statement slower than the threshold.
type SlowQueryHook func(ctx context.Context, query string, args []any, duration time.Duration)

// StatsDriver counts the statements of a Driver and reports slow ones.
// Catalog reads that bypass Query, such as those issued by atlas through
// the embedded QueryContext, are not counted.
type StatsDriver struct {
	*Driver
	stats     QueryStats
	threshold time.Duration
	onSlow    SlowQueryHook
}

// StatsOption configures a StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the duration above which a statement is slow.
// Default is 500ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) {
		s.threshold = d
	}
}

// WithSlowQueryHook sets the hook called for slow statements.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsDriver) {
		s.onSlow = hook
	}
}

// WithSlowQueryLog reports slow statements as warnings on logger.
func WithSlowQueryLog(logger *slog.Logger) StatsOption {
	return WithSlowQueryHook(func(ctx context.Context, query string, args []any, duration time.Duration) {
		logger.WarnContext(ctx, "slow catalog query", "duration", duration, "query", query, "args", args)
	})
}

// NewStatsDriver wraps drv. The options are fixed for the driver's life.
//
//	drv, _ := sql.Open("sqlserver", dsn)
//	stats := sql.NewStatsDriver(drv, sql.WithSlowQueryLog(logger))
//	tvs, err := inspect.New(stats).Tables(ctx)
//	logger.Info("inspected", "stats", stats.QueryStats().Stats())
func NewStatsDriver(drv *Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{Driver: drv, threshold: 500 * time.Millisecond}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryStats returns the live counters.
func (d *StatsDriver) QueryStats() *QueryStats { return &d.stats }

// SlowThreshold returns the slow statement threshold.
func (d *StatsDriver) SlowThreshold() time.Duration { return d.threshold }

// Query runs a query and counts it.
func (d *StatsDriver) Query(ctx context.Context, query string, args, v any) error {
	return d.measure(ctx, &d.stats.TotalQueries, query, args, func() error {
		return d.Driver.Query(ctx, query, args, v)
	})
}

// Exec runs a statement and counts it.
func (d *StatsDriver) Exec(ctx context.Context, query string, args, v any) error {
	return d.measure(ctx, &d.stats.TotalExecs, query, args, func() error {
		return d.Driver.Exec(ctx, query, args, v)
	})
}

func (d *StatsDriver) measure(ctx context.Context, counter *atomic.Int64, query string, args any, run func() error) error {
	start := time.Now()
	err := run()
	elapsed := time.Since(start)

	counter.Add(1)
	d.stats.TotalDuration.Add(int64(elapsed))
	if err != nil {
		d.stats.Errors.Add(1)
	}
	if elapsed > d.threshold {
		d.stats.SlowQueries.Add(1)
		if d.onSlow != nil {
			argv, _ := args.([]any)
			d.onSlow(ctx, query, argv, elapsed)
		}
	}
	return err
}

// DebugDriver logs every statement of a Driver at debug level.
type DebugDriver struct {
	*Driver
	logger *slog.Logger
}

// NewDebugDriver wraps drv. A nil logger uses slog.Default.
func NewDebugDriver(drv *Driver, logger *slog.Logger) *DebugDriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebugDriver{Driver: drv, logger: logger}
}

// Query logs and runs a query.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	d.logger.DebugContext(ctx, "query", "dialect", d.Dialect(), "sql", query, "args", args)
	return d.Driver.Query(ctx, query, args, v)
}

// Exec logs and runs a statement.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	d.logger.DebugContext(ctx, "exec", "dialect", d.Dialect(), "sql", query, "args", args)
	return d.Driver.Exec(ctx, query, args, v)
}

var (
	_ dialect.Driver = (*StatsDriver)(nil)
	_ dialect.Driver = (*DebugDriver)(nil)
)

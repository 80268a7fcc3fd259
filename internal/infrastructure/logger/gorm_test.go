package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func traceQuery(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestNewGormLogger_Defaults(t *testing.T) {
	l, _ := newObservedGormLogger(gormlogger.Info)

	assert.Equal(t, gormlogger.Info, l.level)
	assert.Equal(t, 200*time.Millisecond, l.slowThreshold)
	assert.True(t, l.skipRecordNotFound)
}

func TestNewGormLogger_Options(t *testing.T) {
	l, _ := newObservedGormLogger(gormlogger.Warn,
		WithSlowThreshold(time.Second),
		WithRecordNotFoundLogging(),
	)

	assert.Equal(t, time.Second, l.slowThreshold)
	assert.False(t, l.skipRecordNotFound)
}

func TestGormLogger_LogModeClones(t *testing.T) {
	l, _ := newObservedGormLogger(gormlogger.Info)

	clone, ok := l.LogMode(gormlogger.Error).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Error, clone.level)
	assert.Equal(t, gormlogger.Info, l.level)
}

func TestGormLogger_MessageLevels(t *testing.T) {
	l, recorded := newObservedGormLogger(gormlogger.Info)
	ctx := context.Background()

	l.Info(ctx, "migrating %s", "receipts")
	l.Warn(ctx, "stale index on %s", "receipts")
	l.Error(ctx, "constraint violated")

	logs := recorded.All()
	require.Len(t, logs, 3)
	assert.Equal(t, "migrating receipts", logs[0].Message)
	assert.Equal(t, zapcore.WarnLevel, logs[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, logs[2].Level)
}

func TestGormLogger_SilentSuppressesEverything(t *testing.T) {
	l, recorded := newObservedGormLogger(gormlogger.Silent)
	ctx := context.Background()

	l.Info(ctx, "hidden")
	l.Trace(ctx, time.Now(), traceQuery("SELECT 1", 1), nil)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_TraceError(t *testing.T) {
	l, recorded := newObservedGormLogger(gormlogger.Error)

	l.Trace(context.Background(), time.Now(), traceQuery("INSERT INTO receipts", 0), errors.New("duplicate key"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "SQL Error", logs[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
}

func TestGormLogger_TraceSkipsRecordNotFound(t *testing.T) {
	l, recorded := newObservedGormLogger(gormlogger.Error)

	l.Trace(context.Background(), time.Now(), traceQuery("SELECT * FROM receipts WHERE id = ?", 0), gormlogger.ErrRecordNotFound)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_TraceLogsRecordNotFoundWhenEnabled(t *testing.T) {
	l, recorded := newObservedGormLogger(gormlogger.Error, WithRecordNotFoundLogging())

	l.Trace(context.Background(), time.Now(), traceQuery("SELECT * FROM receipts WHERE id = ?", 0), gormlogger.ErrRecordNotFound)

	require.Len(t, recorded.All(), 1)
}

func TestGormLogger_TraceSlowQuery(t *testing.T) {
	l, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

	begin := time.Now().Add(-time.Second)
	l.Trace(context.Background(), begin, traceQuery("SELECT * FROM bookings", 42), nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "SLOW SQL")
}

func TestGormLogger_TraceSlowWarningDisabledByZeroThreshold(t *testing.T) {
	l, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(0))

	begin := time.Now().Add(-time.Second)
	l.Trace(context.Background(), begin, traceQuery("SELECT * FROM bookings", 42), nil)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_TraceDebugQuery(t *testing.T) {
	l, recorded := newObservedGormLogger(gormlogger.Info)

	l.Trace(context.Background(), time.Now(), traceQuery("SELECT * FROM clients", 5), nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "SQL Query", logs[0].Message)

	fields := logs[0].ContextMap()
	assert.Equal(t, "SELECT * FROM clients", fields["sql"])
	assert.EqualValues(t, 5, fields["rows"])
}

func TestGormLogger_TraceCarriesRequestID(t *testing.T) {
	l, recorded := newObservedGormLogger(gormlogger.Info)
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-abc123")

	l.Trace(ctx, time.Now(), traceQuery("SELECT 1", 1), nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "req-abc123", logs[0].ContextMap()["request_id"])
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"", gormlogger.Warn},
		{"trace", gormlogger.Warn},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapGormLogLevel(tt.in), "level %q", tt.in)
	}
}

var _ gormlogger.Interface = (*GormLogger)(nil)

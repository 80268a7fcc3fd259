package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferLogger() (*zap.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	encoderConfig := zapcore.EncoderConfig{
		LevelKey:    "level",
		MessageKey:  "msg",
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	return zap.New(core), &buf
}

func TestWithContext(t *testing.T) {
	logger, err := New(&Config{Level: "debug", Format: "console", Output: "stderr"})
	require.NoError(t, err)

	ctx := WithContext(context.Background(), logger)
	got := FromContext(ctx)
	assert.Equal(t, logger, got)
}

func TestFromContextMissing(t *testing.T) {
	got := FromContext(context.Background())
	assert.NotNil(t, got, "missing logger must fall back to a no-op")
}

func TestWithRequestID(t *testing.T) {
	logger, buf := newBufferLogger()

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))

	enriched.Info("hello")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
}

func TestWithAgencyID(t *testing.T) {
	logger, buf := newBufferLogger()

	ctx, enriched := WithAgencyID(context.Background(), logger, "agency-1")
	assert.Equal(t, "agency-1", GetAgencyID(ctx))

	enriched.Info("hello")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "agency-1", entry["agency_id"])
}

func TestWithUserID(t *testing.T) {
	logger, _ := newBufferLogger()

	ctx, _ := WithUserID(context.Background(), logger, "user-9")
	assert.Equal(t, "user-9", GetUserID(ctx))
}

func TestL(t *testing.T) {
	logger, buf := newBufferLogger()

	ctx := WithContext(context.Background(), logger)
	ctx = context.WithValue(ctx, RequestIDKey, "req-7")
	ctx = context.WithValue(ctx, AgencyIDKey, "agency-7")
	ctx = context.WithValue(ctx, UserIDKey, "user-7")

	L(ctx).Info("scoped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-7", entry["request_id"])
	assert.Equal(t, "agency-7", entry["agency_id"])
	assert.Equal(t, "user-7", entry["user_id"])
}

func TestLWithoutValues(t *testing.T) {
	logger, buf := newBufferLogger()

	L(WithContext(context.Background(), logger)).Info("bare")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasRequest := entry["request_id"]
	assert.False(t, hasRequest)
}

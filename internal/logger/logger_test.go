package logger

import (
	"context"
	"testing"

	"passreset/internal/config"
	"passreset/internal/reqctx"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"alice@example.com": "a***@example.com",
		"a@x.com":           "a***@x.com",
		"no-at-sign":        "***",
		"@x.com":            "***",
		"":                  "***",
	}
	for in, want := range cases {
		assert.Equal(t, want, MaskEmail(in), in)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestWithCtx(t *testing.T) {
	InitLogger(&config.Config{Log: "dev", LogLevel: "debug"})
	defer func() { _ = Log.Sync() }()

	assert.Same(t, Log, WithCtx(context.Background()))

	ctx := reqctx.WithRequestID(context.Background(), "rid-1")
	assert.NotSame(t, Log, WithCtx(ctx))
}

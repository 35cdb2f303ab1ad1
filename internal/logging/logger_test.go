package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, "heist-trivia", "production", "warn")

	logger.Info().Msg("dropped")
	logger.Warn().Str("room_code", "AB12").Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "heist-trivia", line["app"])
	assert.Equal(t, "production", line["env"])
	assert.Equal(t, "AB12", line["room_code"])
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, "a", "production", "chatty")

	logger.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	logger.Info().Msg("shown")
	assert.NotZero(t, buf.Len())
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, "a", "production", "info")

	ctx := IntoContext(context.Background(), logger)
	fromCtx := FromContext(ctx)
	fromCtx.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")

	nop := FromContext(context.Background())
	nop.Info().Msg("nop")
	assert.NotContains(t, buf.String(), "nop")
}

func TestFromContextOrFallsBack(t *testing.T) {
	var fallback, scoped bytes.Buffer
	base := newWithWriter(&fallback, "a", "production", "info")

	fromFallback := FromContextOr(context.Background(), base)
	fromFallback.Info().Msg("from fallback")
	assert.Contains(t, fallback.String(), "from fallback")

	ctx := IntoContext(context.Background(), newWithWriter(&scoped, "a", "production", "info"))
	fromRequest := FromContextOr(ctx, base)
	fromRequest.Info().Msg("from request")
	assert.Contains(t, scoped.String(), "from request")
	assert.NotContains(t, fallback.String(), "from request")
}

package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/budget-ledger/logging"
)

func TestNew_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.WithComponent(logging.New(logging.Config{Level: "debug", Format: "json", Out: &buf}), "api")

	logger.Debug().Str("category", "Food").Msg("category created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "api", entry["component"])
	assert.Equal(t, "Food", entry["category"])
	assert.Equal(t, "category created", entry["message"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: "WARN", Format: "json", Out: &buf})

	logger.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger := logging.New(logging.Config{Level: "chatty", Format: "json", Out: &bytes.Buffer{}})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNew_TextFormatIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: "info", Format: "text", Out: &buf})
	logger.Info().Msg("ledger saved")

	assert.Contains(t, buf.String(), "ledger saved")
	assert.False(t, json.Valid(buf.Bytes()))
}

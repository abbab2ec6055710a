package obs

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "json", "WARN")
	require.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	logger.Info().Msg("dropped")
	require.Zero(t, buf.Len())
	logger.Warn().Msg("kept")
	require.Contains(t, buf.String(), `"service":"shipledger"`)

	require.Equal(t, zerolog.InfoLevel, newLogger(&buf, "json", "verbose").GetLevel())

	buf.Reset()
	console := newLogger(&buf, "console", "info")
	console.Info().Msg("hello")
	require.NotContains(t, buf.String(), `"message"`)
	require.Contains(t, buf.String(), "hello")
}

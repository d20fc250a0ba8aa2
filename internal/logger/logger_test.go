package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDefaultsEmptyFields(t *testing.T) {
	require.NoError(t, Setup(LogConfig{}))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetupInvalidLevel(t *testing.T) {
	assert.Error(t, Setup(LogConfig{Level: "loud"}))
}

func TestWithComponentTagsEvents(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	lg := WithComponent("calculator")
	lg.Info().Msg("derived")

	assert.Contains(t, buf.String(), `"component":"calculator"`)
	assert.Contains(t, buf.String(), `"derived"`)
}

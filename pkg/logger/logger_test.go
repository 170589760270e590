package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	Init("production", "warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Init("production", "nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	Init("production", "")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

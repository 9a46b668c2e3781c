package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{name: "debug level", level: "debug"},
		{name: "info level", level: "info"},
		{name: "warn level", level: "warn"},
		{name: "warning alias", level: "warning"},
		{name: "error level", level: "error"},
		{name: "unknown falls back to info", level: "verbose"},
		{name: "empty falls back to info", level: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level)
			require.NotNil(t, logger)
			require.NotNil(t, logger.Logger)
		})
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	require.NotNil(t, logger)
}

func TestWith(t *testing.T) {
	logger := Default()
	child := logger.With("session_id", "abc")
	require.NotNil(t, child)
	assert.NotSame(t, logger, child)
}

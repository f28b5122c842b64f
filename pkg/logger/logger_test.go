package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// Un nivel desconocido o vacío cae a info en lugar de fallar el arranque.
func TestParseLevel_FallbackAInfo(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"WARN", zerolog.WarnLevel},
		{"  Error  ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verboso", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseLevel(tc.in), "nivel %q", tc.in)
	}
}

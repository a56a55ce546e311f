package textwidth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatedSequence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no sequence", "plain text", ""},
		{"single colour", "\x1b[31mred", "\x1b[31m"},
		{"later colour wins", "\x1b[31mred\x1b[32mgreen", "\x1b[32m"},
		{"reset clears", "\x1b[1;31mred\x1b[0m", "\x1b[0m"},
		{"empty params reset", "\x1b[31m\x1b[m", "\x1b[0m"},
		{"attributes accumulate", "\x1b[1m\x1b[4mx\x1b[34m", "\x1b[1;4;34m"},
		{"background kept over foreground change", "\x1b[31;44mx\x1b[33m", "\x1b[33;44m"},
		{"bright colours", "\x1b[92m\x1b[103m", "\x1b[92;103m"},
		{"default foreground", "\x1b[31;42mx\x1b[39m", "\x1b[42m"},
		{"default background", "\x1b[31;42mx\x1b[49m", "\x1b[31m"},
		{"normal intensity", "\x1b[1;2;31m\x1b[22m", "\x1b[31m"},
		{"not underlined", "\x1b[4;7m\x1b[24m", "\x1b[7m"},
		{"extended colour", "\x1b[38;5;208mx", "\x1b[38;5;208m"},
		{"truecolour background", "\x1b[48;2;10;20;30;1m", "\x1b[1;48;2;10;20;30m"},
		{"reset then style", "\x1b[0m\x1b[1;33m", "\x1b[1;33m"},
		{"ignores cursor sequences", "\x1b[2K\x1b[35m", "\x1b[35m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculatedSequence(tt.input))
		})
	}
}

package scoresdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"today":         ModeToday,
		"all-time":      ModeAllTime,
		"daily-winners": ModeDailyWinners,
		"":              ModeToday,
		"ALL-TIME":      ModeToday,
		"weekly":        ModeToday,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseMode(in), "ParseMode(%q)", in)
	}
}

func TestModeString(t *testing.T) {
	for _, m := range []Mode{ModeToday, ModeAllTime, ModeDailyWinners} {
		assert.Equal(t, m, ParseMode(m.String()))
	}
	assert.Equal(t, "today", Mode(42).String())
}

package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	cases := map[string]time.Time{
		"2025-03-15T09:00:00Z":      time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
		"2025-03-15T15:00:00+06:00": time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
		"2025-03-15T09:30":          time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC),
		"2025-03-15 09:30:10":       time.Date(2025, 3, 15, 9, 30, 10, 0, time.UTC),
		" 2025-03-15 ":              time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		got, err := ParseDateTime(raw)
		require.NoError(t, err, raw)
		assert.True(t, want.Equal(got), "%s: got %s", raw, got)
		assert.Equal(t, time.UTC, got.Location())
	}

	for _, bad := range []string{"", "15/03/2025", "2025-13-01", "tomorrow"} {
		_, err := ParseDateTime(bad)
		assert.Error(t, err, bad)
	}
}

package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, Countdown{Days: 2, Hours: 3, Minutes: 4, Seconds: 5},
		Remaining(now.Add(2*24*time.Hour+3*time.Hour+4*time.Minute+5*time.Second), now))

	// sub-second remainders are dropped
	assert.Equal(t, Countdown{Seconds: 1}, Remaining(now.Add(1900*time.Millisecond), now))

	assert.Equal(t, Countdown{Expired: true}, Remaining(now, now))
	assert.Equal(t, Countdown{Expired: true}, Remaining(now.Add(500*time.Millisecond), now))
	assert.True(t, Remaining(now.Add(-time.Hour), now).Expired)
}

package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"skb_backend/internals/helpers/apperror"
)

func TestAdmit(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	before := now.Add(-time.Second)
	exact := now
	after := now.Add(time.Hour)
	yes := func(context.Context) (bool, error) { return true, nil }
	no := func(context.Context) (bool, error) { return false, nil }
	broken := func(context.Context) (bool, error) { return false, errors.New("db") }

	tests := []struct {
		name string
		w    Window
		dup  DuplicateFunc
		want apperror.Kind
	}{
		{"closed beats everything", Window{Open: false, Deadline: &before, Max: 1, Current: 1}, yes, apperror.KindRegistrationClosed},
		{"deadline passed", Window{Open: true, Deadline: &before, Max: 1, Current: 1}, yes, apperror.KindDeadlinePassed},
		{"deadline instant still open", Window{Open: true, Deadline: &exact, Max: 2, Current: 1}, no, ""},
		{"full", Window{Open: true, Deadline: &after, Max: 2, Current: 2}, yes, apperror.KindTournamentFull},
		{"duplicate", Window{Open: true, Deadline: &after, Max: 2, Current: 1}, yes, apperror.KindDuplicateRegistration},
		{"unlimited", Window{Open: true, Max: 0, Current: 500}, no, ""},
		{"lookup failure", Window{Open: true}, broken, apperror.KindInternal},
		{"no duplicate check", Window{Open: true, Max: 3, Current: 2}, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Admit(context.Background(), tt.w, now, tt.dup)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, apperror.KindOf(err))
		})
	}
}

func TestAdmit_DuplicateCheckedLast(t *testing.T) {
	called := false
	spy := func(context.Context) (bool, error) {
		called = true
		return false, nil
	}
	err := Admit(context.Background(), Window{Open: true, Max: 1, Current: 1}, time.Now(), spy)
	assert.True(t, apperror.Is(err, apperror.KindTournamentFull))
	assert.False(t, called)
}

func TestReleaseAndOutcome(t *testing.T) {
	assert.Equal(t, 0, Release(0))
	assert.Equal(t, 0, Release(-3))
	assert.Equal(t, 4, Release(5))

	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "TOURNAMENT_FULL", Outcome(apperror.TournamentFull("x")))
	assert.Equal(t, "INTERNAL_ERROR", Outcome(errors.New("x")))
}

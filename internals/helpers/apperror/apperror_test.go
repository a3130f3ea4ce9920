package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type stateErr string

func (e stateErr) Error() string    { return "pg: " + string(e) }
func (e stateErr) SQLState() string { return string(e) }

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, StatusOf(KindValidation))
	assert.Equal(t, http.StatusNotFound, StatusOf(KindNotFound))
	for _, k := range []Kind{KindDuplicateKey, KindRegistrationClosed, KindDeadlinePassed, KindTournamentFull, KindDuplicateRegistration} {
		assert.Equal(t, http.StatusConflict, StatusOf(k), k)
	}
	assert.Equal(t, http.StatusUnauthorized, StatusOf(KindUnauthorized))
	assert.Equal(t, http.StatusForbidden, StatusOf(KindForbidden))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(KindInternal))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("register: %w", TournamentFull("tournament is full"))
	assert.Equal(t, KindTournamentFull, KindOf(err))
	assert.True(t, Is(err, KindTournamentFull))
	assert.False(t, Is(nil, KindTournamentFull))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestFromDB(t *testing.T) {
	assert.Nil(t, FromDB(nil, ""))

	dup := FromDB(&pq.Error{Code: "23505"}, "skb id already exists")
	assert.Equal(t, KindDuplicateKey, KindOf(dup))
	assert.Equal(t, "skb id already exists", dup.(*Error).Message)

	assert.Equal(t, "record already exists", FromDB(stateErr("23505"), "").(*Error).Message)
	assert.Equal(t, KindValidation, KindOf(FromDB(stateErr("23503"), "")))
	assert.Equal(t, KindValidation, KindOf(FromDB(stateErr("23514"), "")))
	assert.Equal(t, KindInternal, KindOf(FromDB(errors.New("conn reset"), "")))

	nf := NotFound("gone")
	assert.Same(t, nf, FromDB(nf, ""))

	wrapped := Internal(errors.New("cause"))
	assert.ErrorContains(t, wrapped, "cause")
	assert.Equal(t, map[string][]string{"photo": {"bad"}}, Field("photo", "bad").Fields)
}

package seeds

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skb_backend/internals/features/members/dto"
	helper "skb_backend/internals/helpers"
)

func TestSampleDataIsValid(t *testing.T) {
	admin := uuid.New()

	members, err := SampleMembers()
	require.NoError(t, err)
	assert.Len(t, members, 5)

	notices, err := SampleNotices(admin)
	require.NoError(t, err)
	assert.Len(t, notices, 7)
	tournaments := 0
	for _, n := range notices {
		assert.Zero(t, n.CurrentParticipants)
		assert.Equal(t, &admin, n.CreatedBy)
		if n.IsTournament() {
			tournaments++
			assert.NotNil(t, n.RegistrationDeadline)
		}
	}
	assert.Equal(t, 2, tournaments)

	images, err := SampleGallery(admin)
	require.NoError(t, err)
	assert.Len(t, images, 6)

	ts, err := SampleTournaments(admin)
	require.NoError(t, err)
	require.Len(t, ts, 2)
	assert.True(t, ts[0].RegistrationDeadline.Before(ts[0].StartDate))
}

func TestFakeMembersPassValidation(t *testing.T) {
	members := FakeMembers(gofakeit.New(42), 25, 6)
	require.Len(t, members, 25)
	assert.Equal(t, "SKB0006", *members[0].SkbID)

	for _, m := range members {
		req := dto.CreateMemberRequest{
			Name:             m.Name,
			FatherName:       m.FatherName,
			MotherName:       m.MotherName,
			PresentAddress:   m.PresentAddress,
			PermanentAddress: m.PermanentAddress,
			Mobile:           m.Mobile,
			DateOfBirth:      m.DateOfBirth.Format(dto.DateLayout),
			Email:            m.Email,
			Gender:           m.Gender,
			BloodGroup:       m.BloodGroup,
			Religion:         m.Religion,
			Profession:       m.Profession,
			Nationality:      m.Nationality,
			Belt:             m.Belt,
		}
		req.Normalize()
		assert.Empty(t, helper.ValidateStruct(req), m.Name)
	}
}

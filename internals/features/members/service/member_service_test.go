package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skb_backend/internals/features/members/dto"
	"skb_backend/internals/features/members/service"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/apperror"
	"skb_backend/internals/seeds"
	"skb_backend/internals/testutils"
)

var today = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newSampleService(t *testing.T) (*service.Service, *testutils.MemberRepo) {
	t.Helper()
	sample, err := seeds.SampleMembers()
	require.NoError(t, err)
	require.Len(t, sample, 5)
	repo := testutils.NewMemberRepo(sample...)
	repo.SetSequence(5)
	return service.New(repo).WithClock(func() time.Time { return today }), repo
}

func ptr[T any](v T) *T { return &v }

func validCreate() dto.CreateMemberRequest {
	return dto.CreateMemberRequest{
		Name:             "Tanvir Ahmed",
		FatherName:       "Jamal Ahmed",
		MotherName:       "Ruksana Ahmed",
		PresentAddress:   "12 Mohakhali, Dhaka",
		PermanentAddress: "7 Khulna Road, Khulna",
		Mobile:           "01811223344",
		DateOfBirth:      "2001-05-17",
		Email:            "Tanvir@Example.com ",
		Gender:           "male",
		BloodGroup:       "O-",
		Religion:         "Islam",
		Profession:       "Student",
	}
}

func TestList_BeltAndSearchOnSampleDataset(t *testing.T) {
	svc, _ := newSampleService(t)

	got, pg, err := svc.List(context.Background(), dto.ListMemberQuery{Belt: "Blue", Search: "akt"}, helper.NewPaging(1, 10, 10), true)
	require.NoError(t, err)

	items, ok := got.([]dto.MemberResponse)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "Rashida Akter", items[0].Name)
	assert.EqualValues(t, 1, pg.Total)
	assert.Equal(t, 1, pg.TotalPages)
}

func TestList_NewestFirstAndPaged(t *testing.T) {
	svc, _ := newSampleService(t)

	got, pg, err := svc.List(context.Background(), dto.ListMemberQuery{}, helper.NewPaging(1, 2, 10), true)
	require.NoError(t, err)
	items := got.([]dto.MemberResponse)
	require.Len(t, items, 2)
	assert.Equal(t, "Mohammad Ali", items[0].Name)
	assert.Equal(t, "Rashida Akter", items[1].Name)
	assert.EqualValues(t, 5, pg.Total)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
}

func TestList_PublicProjectionHidesInactive(t *testing.T) {
	svc, repo := newSampleService(t)
	ctx := context.Background()

	all, _, err := svc.List(ctx, dto.ListMemberQuery{Search: "SKB0003"}, helper.NewPaging(1, 10, 10), true)
	require.NoError(t, err)
	ahmed := all.([]dto.MemberResponse)[0]
	_, err = svc.Update(ctx, ahmed.ID, dto.UpdateMemberRequest{IsActive: ptr(false)})
	require.NoError(t, err)

	got, pg, err := svc.List(ctx, dto.ListMemberQuery{IsActive: ptr(false)}, helper.NewPaging(1, 10, 10), false)
	require.NoError(t, err)
	public, ok := got.([]dto.PublicMemberResponse)
	require.True(t, ok)
	assert.Len(t, public, 0)
	assert.EqualValues(t, 0, pg.Total)

	_, err = svc.Get(ctx, ahmed.ID, false)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	m, err := repo.FindByID(ctx, ahmed.ID)
	require.NoError(t, err)
	assert.False(t, m.IsActive)
}

func TestList_UnknownBeltRejected(t *testing.T) {
	svc, _ := newSampleService(t)
	_, _, err := svc.List(context.Background(), dto.ListMemberQuery{Belt: "Purple"}, helper.NewPaging(1, 10, 10), true)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestCreate_GeneratesSkbIDAndDefaults(t *testing.T) {
	svc, _ := newSampleService(t)

	resp, err := svc.Create(context.Background(), validCreate(), false)
	require.NoError(t, err)
	require.NotNil(t, resp.SkbID)
	assert.Equal(t, "SKB0006", *resp.SkbID)
	assert.Equal(t, "tanvir@example.com", resp.Email)
	assert.Equal(t, "White", resp.Belt)
	assert.Equal(t, "Bangladeshi", resp.Nationality)
	assert.Equal(t, "2025-06-01", resp.JoinDate)
	assert.Equal(t, "2001-05-17", resp.DateOfBirth)
	assert.True(t, resp.IsActive)
}

func TestCreate_SkipsSequenceValuesAlreadyTaken(t *testing.T) {
	svc, repo := newSampleService(t)
	repo.SetSequence(3)

	resp, err := svc.Create(context.Background(), validCreate(), false)
	require.NoError(t, err)
	assert.Equal(t, "SKB0006", *resp.SkbID)
}

func TestCreate_SelfRegistrationCannotPickPrivilegedFields(t *testing.T) {
	svc, _ := newSampleService(t)
	req := validCreate()
	req.SkbID = ptr("SKB0001")
	req.Belt = "Black Belt (5th Dan)"
	req.IsActive = ptr(false)

	resp, err := svc.Create(context.Background(), req, false)
	require.NoError(t, err)
	assert.Equal(t, "SKB0006", *resp.SkbID)
	assert.Equal(t, "White", resp.Belt)
	assert.True(t, resp.IsActive)
}

func TestCreate_AdminDuplicateSkbID(t *testing.T) {
	svc, _ := newSampleService(t)
	req := validCreate()
	req.SkbID = ptr("skb0001")

	_, err := svc.Create(context.Background(), req, true)
	assert.True(t, apperror.Is(err, apperror.KindDuplicateKey), "got %v", err)
}

func TestCreate_FieldErrors(t *testing.T) {
	svc, _ := newSampleService(t)
	req := validCreate()
	req.Mobile = "01711"
	req.Gender = "unknown"
	req.BloodGroup = "C+"
	req.Email = "nope"

	_, err := svc.Create(context.Background(), req, true)
	require.True(t, apperror.Is(err, apperror.KindValidation))
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	for _, f := range []string{"mobile", "gender", "blood_group", "email"} {
		assert.Contains(t, ae.Fields, f)
	}

	req = validCreate()
	req.DateOfBirth = "2030-01-01"
	_, err = svc.Create(context.Background(), req, true)
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "date_of_birth")
}

func TestUpdateAndDelete(t *testing.T) {
	svc, repo := newSampleService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validCreate(), true)
	require.NoError(t, err)

	resp, err := svc.Update(ctx, created.ID, dto.UpdateMemberRequest{Belt: ptr("Yellow"), Achievements: ptr("  Dhaka junior kata bronze ")})
	require.NoError(t, err)
	assert.Equal(t, "Yellow", resp.Belt)
	require.NotNil(t, resp.Achievements)
	assert.Equal(t, "Dhaka junior kata bronze", *resp.Achievements)

	_, err = svc.Update(ctx, created.ID, dto.UpdateMemberRequest{Belt: ptr("Violet")})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	assert.Error(t, err)
	assert.True(t, apperror.Is(svc.Delete(ctx, created.ID), apperror.KindNotFound))
}

func TestFormatSkbID(t *testing.T) {
	assert.Equal(t, "SKB0001", service.FormatSkbID(1))
	assert.Equal(t, "SKB12345", service.FormatSkbID(12345))
}


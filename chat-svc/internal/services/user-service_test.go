package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	folder string
	name   string
	data   []byte
}

func (f *fakeUploader) UploadBytes(_ context.Context, folder, filename string, b []byte) (string, error) {
	f.folder, f.name, f.data = folder, filename, b
	return "https://res.example.com/" + folder + "/" + filename + ".jpg", nil
}

func applicantInput() dto.CreateApplicantProfile {
	return dto.CreateApplicantProfile{
		Name: "Ada",
		ApplicantProfileFields: dto.ApplicantProfileFields{
			Role:               domain.YearFreshman,
			WhyBC:              "I like consulting",
			RelevantExperience: "Case club",
			Interests:          []string{" Strategy ", "tech", "strategy", ""},
		},
	}
}

func memberFields() dto.MemberProfileFields {
	return dto.MemberProfileFields{
		Year:             domain.YearSenior,
		Major:            "Economics",
		SemestersInBC:    4,
		AreasOfExpertise: []string{"finance"},
		Bio:              "VP of consulting",
	}
}

func TestCreateApplicantProfile(t *testing.T) {
	e := newTestEnv(t)
	u := e.newUser(t, "ada", "")

	p, err := e.userSvc.CreateApplicantProfile(u.ID, applicantInput())
	require.NoError(t, err)
	assert.Equal(t, []string{"Strategy", "tech"}, p.Interests)
	assert.False(t, p.HasBeenMatched)
	assert.Equal(t, "Ada", p.User.Name)
	assert.Equal(t, domain.UserTypeApplicant, p.User.UserType)
	assert.True(t, p.User.HasCompletedSetup)

	_, err = e.userSvc.CreateApplicantProfile(u.ID, applicantInput())
	assert.ErrorIs(t, err, ErrProfileExists)

	bad := applicantInput()
	bad.Role = "Professor"
	other := e.newUser(t, "other", "")
	_, err = e.userSvc.CreateApplicantProfile(other.ID, bad)
	kind, _ := KindOf(err)
	assert.Equal(t, KindValidation, kind)
}

func TestUpdateApplicantProfile(t *testing.T) {
	e := newTestEnv(t)
	u := e.newUser(t, "ada", "")
	_, err := e.userSvc.CreateApplicantProfile(u.ID, applicantInput())
	require.NoError(t, err)

	name := "Ada L."
	why := "  changed  "
	p, err := e.userSvc.UpdateApplicantProfile(u.ID, dto.UpdateApplicantProfile{Name: &name, WhyBC: &why})
	require.NoError(t, err)
	assert.Equal(t, "changed", p.WhyBC)
	assert.Equal(t, "Ada L.", p.User.Name)
	assert.Equal(t, "Case club", p.RelevantExperience)
}

func TestSelectRole_MemberNeedsWhitelist(t *testing.T) {
	e := newTestEnv(t)
	admin := e.newAdmin(t)
	u := e.newUser(t, "bob", "")

	_, err := e.userSvc.SelectRole(u.ID, dto.SelectRole{UserType: domain.UserTypeBCMember})
	require.ErrorIs(t, err, ErrNotWhitelisted)

	_, err = e.adminSvc.AddWhitelist(admin.ID, dto.WhitelistAdd{Email: u.Email})
	require.NoError(t, err)

	out, err := e.userSvc.SelectRole(u.ID, dto.SelectRole{UserType: domain.UserTypeBCMember})
	require.NoError(t, err)
	require.NotNil(t, out.UserType)
	assert.Equal(t, domain.UserTypeBCMember, *out.UserType)

	_, err = e.userSvc.SelectRole(u.ID, dto.SelectRole{UserType: domain.UserTypeApplicant})
	assert.ErrorIs(t, err, ErrRoleAlreadySet)

	_, err = e.userSvc.SelectRole(u.ID, dto.SelectRole{UserType: "admin"})
	kind, _ := KindOf(err)
	assert.Equal(t, KindValidation, kind)
}

func TestCreateMemberProfile_WhitelistedIsUnapproved(t *testing.T) {
	e := newTestEnv(t)
	admin := e.newAdmin(t)
	u := e.newUser(t, "carol", "")
	in := dto.CreateMemberProfile{Name: "Carol", MemberProfileFields: memberFields()}

	_, err := e.userSvc.CreateMemberProfile(u.ID, in)
	require.ErrorIs(t, err, ErrNotWhitelisted)

	_, err = e.adminSvc.AddWhitelist(admin.ID, dto.WhitelistAdd{Email: "CAROL@berkeley.edu"})
	require.NoError(t, err)

	p, err := e.userSvc.CreateMemberProfile(u.ID, in)
	require.NoError(t, err)
	assert.False(t, p.IsApproved)
	assert.Equal(t, domain.UserTypeBCMember, p.User.UserType)

	// not discoverable until approved
	x, _ := e.newApplicant(t, "x")
	resp, err := e.swipeSvc.Discover(x.ID)
	require.NoError(t, err)
	assert.Empty(t, memberUserIDs(resp))

	st, err := e.userSvc.WhitelistStatus(u.ID)
	require.NoError(t, err)
	assert.True(t, st.Whitelisted)
	assert.True(t, st.HasProfile)
	assert.False(t, st.IsApproved)
}

func TestCreateMemberProfile_ApplicantCannot(t *testing.T) {
	e := newTestEnv(t)
	admin := e.newAdmin(t)
	x, _ := e.newApplicant(t, "x")
	_, err := e.adminSvc.AddWhitelist(admin.ID, dto.WhitelistAdd{Email: x.Email})
	require.NoError(t, err)

	_, err = e.userSvc.CreateMemberProfile(x.ID, dto.CreateMemberProfile{Name: "X", MemberProfileFields: memberFields()})
	assert.ErrorIs(t, err, ErrWrongUserType)
}

func TestJoinWithInvite(t *testing.T) {
	e := newTestEnv(t)
	admin := e.newAdmin(t)
	code, err := e.adminSvc.CreateInviteCode(admin.ID, dto.InviteCodeCreate{MaxUses: 1})
	require.NoError(t, err)

	st, err := e.userSvc.CheckInviteCode(code.Code)
	require.NoError(t, err)
	assert.True(t, st.Valid)

	u := e.newUser(t, "dan", "")
	p, err := e.userSvc.JoinWithInvite(u.ID, dto.JoinWithInvite{InviteCode: code.Code, MemberProfileFields: memberFields()})
	require.NoError(t, err)
	assert.False(t, p.IsApproved)
	assert.Equal(t, domain.UserTypeBCMember, p.User.UserType)

	// single use code is spent
	st, err = e.userSvc.CheckInviteCode(code.Code)
	require.NoError(t, err)
	assert.False(t, st.Valid)

	v := e.newUser(t, "eve", "")
	_, err = e.userSvc.JoinWithInvite(v.ID, dto.JoinWithInvite{InviteCode: code.Code, MemberProfileFields: memberFields()})
	require.ErrorIs(t, err, ErrInviteCodeInvalid)
	_, found, err := e.members.FindByUserID(v.ID)
	require.NoError(t, err)
	assert.False(t, found, "failed join must roll back the profile")

	_, err = e.userSvc.JoinWithInvite(v.ID, dto.JoinWithInvite{InviteCode: "NOPE", MemberProfileFields: memberFields()})
	assert.ErrorIs(t, err, ErrInviteCodeInvalid)
}

func TestResetProfile_RemovesEverything(t *testing.T) {
	e := newTestEnv(t)
	admin := e.newAdmin(t)
	x, xp := e.newApplicant(t, "x")
	y, _ := e.newMember(t, "y", true)
	m := e.pendingMatch(t, x, y)
	_, err := e.matchSvc.Confirm(admin.ID, m.ID, dto.MatchAction{})
	require.NoError(t, err)
	_, err = e.messageSvc.Post(y.ID, m.ID, dto.SendMessage{Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, e.userSvc.ResetProfile(x.ID))

	_, found, err := e.applicants.FindByID(xp.ID)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = e.matches.FindByID(m.ID)
	require.NoError(t, err)
	assert.False(t, found)

	var swipes, messages int64
	require.NoError(t, e.db.Model(&domain.Swipe{}).Where("swiper_id = ? OR target_id = ?", x.ID, x.ID).Count(&swipes).Error)
	require.NoError(t, e.db.Model(&domain.Message{}).Where("match_id = ?", m.ID).Count(&messages).Error)
	assert.Zero(t, swipes)
	assert.Zero(t, messages)

	me, err := e.userSvc.GetMe(x.ID)
	require.NoError(t, err)
	assert.Nil(t, me.UserType)
	assert.False(t, me.HasCompletedSetup)
	assert.Nil(t, me.Profile)

	// the member side keeps its profile and can be swiped again
	_, found, err = e.members.FindByUserID(y.ID)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestGetMe_EmbedsProfile(t *testing.T) {
	e := newTestEnv(t)
	x, xp := e.newApplicant(t, "x")

	me, err := e.userSvc.GetMe(x.ID)
	require.NoError(t, err)
	p, ok := me.Profile.(*domain.ApplicantProfile)
	require.True(t, ok)
	assert.Equal(t, xp.ID, p.ID)

	_, err = e.userSvc.GetMe(4242)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUploadPhoto(t *testing.T) {
	e := newTestEnv(t)
	up := &fakeUploader{}
	e.userSvc = NewUserService(e.tx, e.users, e.applicants, e.members, e.swipes, e.matches, e.messages, e.whitelist, e.invites, up)
	u := e.newUser(t, "pic", "")

	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: 100, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := e.userSvc.UploadPhoto(context.Background(), u.ID, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, photoFolder, up.folder)
	assert.NotEmpty(t, up.data)
	assert.Contains(t, out.PhotoURL, up.name)

	me, err := e.userSvc.GetMe(u.ID)
	require.NoError(t, err)
	assert.Equal(t, out.PhotoURL, me.PhotoURL)

	_, err = e.userSvc.UploadPhoto(context.Background(), u.ID, []byte("not an image"))
	kind, _ := KindOf(err)
	assert.Equal(t, KindValidation, kind)
}

func TestCheckInviteCode_Expired(t *testing.T) {
	e := newTestEnv(t)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, e.invites.Create(&domain.InviteCode{Code: "OLD", CreatedBy: 1, IsActive: true, ExpiresAt: &past}))

	st, err := e.userSvc.CheckInviteCode("OLD")
	require.NoError(t, err)
	assert.False(t, st.Valid)
}

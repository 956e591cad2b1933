package services

import (
	"sync"
	"testing"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwipe_MutualLikeCreatesPendingMatch(t *testing.T) {
	tests := []struct {
		name           string
		applicantFirst bool
	}{
		{name: "applicant likes first", applicantFirst: true},
		{name: "member likes first", applicantFirst: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEnv(t)
			x, xp := e.newApplicant(t, "x")
			y, yp := e.newMember(t, "y", true)

			first, second := x, y
			if !tc.applicantFirst {
				first, second = y, x
			}

			resp := e.like(t, first, second)
			assert.False(t, resp.MatchCreated)
			assert.Nil(t, resp.Match)

			resp = e.like(t, second, first)
			require.True(t, resp.MatchCreated)
			require.NotNil(t, resp.Match)
			assert.Equal(t, string(domain.MatchStatusPending), resp.Match.Status)
			assert.Equal(t, xp.ID, resp.Match.Applicant.ID)
			assert.Equal(t, yp.ID, resp.Match.Member.ID)

			assert.False(t, e.reloadApplicant(t, xp.ID).HasBeenMatched)

			n, err := e.matches.Count(nil)
			require.NoError(t, err)
			assert.EqualValues(t, 1, n)
			assert.Len(t, e.notifier.created, 1)
		})
	}
}

func TestSwipe_SecondSwipeOnSamePairFails(t *testing.T) {
	for _, second := range []string{"like", "pass"} {
		t.Run(second, func(t *testing.T) {
			e := newTestEnv(t)
			x, _ := e.newApplicant(t, "x")
			y, _ := e.newMember(t, "y", true)

			_, err := e.swipeSvc.Swipe(x.ID, dto.SwipeRequest{TargetID: y.ID, Direction: "pass"})
			require.NoError(t, err)

			_, err = e.swipeSvc.Swipe(x.ID, dto.SwipeRequest{TargetID: y.ID, Direction: second})
			require.ErrorIs(t, err, ErrAlreadySwiped)

			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, KindAlreadyExists, kind)
		})
	}
}

func TestSwipe_ConcurrentDuplicateKeepsOneSwipe(t *testing.T) {
	e := newTestEnv(t)
	a, _ := e.newApplicant(t, "a")
	b, _ := e.newMember(t, "b", true)

	const callers = 2
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, callers)
	req := dto.SwipeRequest{TargetID: b.ID, Direction: "like"}

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = e.swipeSvc.Swipe(a.ID, req)
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrAlreadySwiped):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, dup)

	var n int64
	require.NoError(t, e.db.Model(&domain.Swipe{}).Where("swiper_id = ? AND target_id = ?", a.ID, b.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSwipe_Validation(t *testing.T) {
	e := newTestEnv(t)
	x, _ := e.newApplicant(t, "x")
	y, _ := e.newMember(t, "y", true)
	pending, _ := e.newMember(t, "pending", false)
	other, _ := e.newApplicant(t, "other")

	tests := []struct {
		name   string
		swiper uint
		req    dto.SwipeRequest
		want   error
		kind   ErrorKind
	}{
		{name: "self", swiper: x.ID, req: dto.SwipeRequest{TargetID: x.ID, Direction: "like"}, want: ErrSelfSwipe},
		{name: "unknown direction", swiper: x.ID, req: dto.SwipeRequest{TargetID: y.ID, Direction: "maybe"}, kind: KindValidation},
		{name: "missing target", swiper: x.ID, req: dto.SwipeRequest{Direction: "like"}, kind: KindValidation},
		{name: "target does not exist", swiper: x.ID, req: dto.SwipeRequest{TargetID: 9999, Direction: "like"}, want: ErrTargetNotFound},
		{name: "unapproved member is not a target", swiper: x.ID, req: dto.SwipeRequest{TargetID: pending.ID, Direction: "like"}, want: ErrTargetNotFound},
		{name: "applicant cannot swipe applicant", swiper: x.ID, req: dto.SwipeRequest{TargetID: other.ID, Direction: "like"}, want: ErrTargetNotFound},
		{name: "unapproved member cannot swipe", swiper: pending.ID, req: dto.SwipeRequest{TargetID: x.ID, Direction: "like"}, want: ErrMemberNotApproved},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.swipeSvc.Swipe(tc.swiper, tc.req)
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
			if tc.kind != "" {
				kind, _ := KindOf(err)
				assert.Equal(t, tc.kind, kind)
			}
		})
	}

	var n int64
	require.NoError(t, e.db.Model(&domain.Swipe{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSwipe_RoleNotSet(t *testing.T) {
	e := newTestEnv(t)
	u := e.newUser(t, "nobody", "")
	y, _ := e.newMember(t, "y", true)

	_, err := e.swipeSvc.Swipe(u.ID, dto.SwipeRequest{TargetID: y.ID, Direction: "like"})
	assert.ErrorIs(t, err, ErrUserTypeNotSet)
}

func TestSwipe_PassNeverMatches(t *testing.T) {
	e := newTestEnv(t)
	x, _ := e.newApplicant(t, "x")
	y, _ := e.newMember(t, "y", true)

	e.like(t, x, y)
	resp, err := e.swipeSvc.Swipe(y.ID, dto.SwipeRequest{TargetID: x.ID, Direction: "pass"})
	require.NoError(t, err)
	assert.False(t, resp.MatchCreated)
	assert.Equal(t, "pass", resp.Swipe.Direction)

	n, err := e.matches.Count(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDiscover_Applicant(t *testing.T) {
	e := newTestEnv(t)
	x, xp := e.newApplicant(t, "x")
	y, _ := e.newMember(t, "y", true)
	w, _ := e.newMember(t, "w", true)
	e.newMember(t, "unapproved", false)

	resp, err := e.swipeSvc.Discover(x.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{y.ID, w.ID}, memberUserIDs(resp))

	e.like(t, x, y)
	resp, err = e.swipeSvc.Discover(x.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{w.ID}, memberUserIDs(resp))

	_, err = e.applicants.MarkMatched(xp.ID)
	require.NoError(t, err)
	resp, err = e.swipeSvc.Discover(x.ID)
	require.NoError(t, err)
	assert.Empty(t, memberUserIDs(resp))
	assert.Equal(t, "Already matched", resp.Message)
}

func TestDiscover_Member(t *testing.T) {
	e := newTestEnv(t)
	y, _ := e.newMember(t, "y", true)
	x, _ := e.newApplicant(t, "x")
	z, zp := e.newApplicant(t, "z")
	matched, mp := e.newApplicant(t, "matched")
	_, err := e.applicants.MarkMatched(mp.ID)
	require.NoError(t, err)

	resp, err := e.swipeSvc.Discover(y.ID)
	require.NoError(t, err)
	ids := applicantUserIDs(resp)
	assert.ElementsMatch(t, []uint{x.ID, z.ID}, ids)
	assert.NotContains(t, ids, matched.ID)

	_, err = e.swipeSvc.Swipe(y.ID, dto.SwipeRequest{TargetID: x.ID, Direction: "pass"})
	require.NoError(t, err)
	resp, err = e.swipeSvc.Discover(y.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{zp.UserID}, applicantUserIDs(resp))

	pending, _ := e.newMember(t, "pending", false)
	_, err = e.swipeSvc.Discover(pending.ID)
	assert.ErrorIs(t, err, ErrMemberNotApproved)
}

func TestDiscover_NeedsProfile(t *testing.T) {
	e := newTestEnv(t)
	u := e.newUser(t, "noprofile", domain.UserTypeApplicant)

	_, err := e.swipeSvc.Discover(u.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	unset := e.newUser(t, "unset", "")
	_, err = e.swipeSvc.Discover(unset.ID)
	assert.ErrorIs(t, err, ErrUserTypeNotSet)
}

func memberUserIDs(resp *dto.DiscoverResponse) []uint {
	profiles, _ := resp.Profiles.([]domain.MemberProfile)
	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	return ids
}

func applicantUserIDs(resp *dto.DiscoverResponse) []uint {
	profiles, _ := resp.Profiles.([]domain.ApplicantProfile)
	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	return ids
}

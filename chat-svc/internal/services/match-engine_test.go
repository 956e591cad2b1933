package services

import (
	"testing"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryCreateMatch_RepeatedDetectionCreatesOneMatch(t *testing.T) {
	e := newTestEnv(t)
	_, ap := e.newApplicant(t, "a")
	_, mp := e.newMember(t, "m", true)
	engine := NewMatchEngine(e.applicants, e.matches)

	m, created, err := engine.TryCreateMatch(nil, ap.ID, mp.ID)
	require.NoError(t, err)
	require.True(t, created)
	require.NotZero(t, m.ID)

	for i := 0; i < 3; i++ {
		again, created, err := engine.TryCreateMatch(nil, ap.ID, mp.ID)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Nil(t, again)
	}

	n, err := e.matches.Count(nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.False(t, e.reloadApplicant(t, ap.ID).HasBeenMatched)
}

func TestTryCreateMatch_ConflictIsNotAnError(t *testing.T) {
	e := newTestEnv(t)
	_, ap := e.newApplicant(t, "a")
	_, mp := e.newMember(t, "m", true)

	first, err := e.matches.CreateIfAbsent(&domain.Match{ApplicantID: ap.ID, MemberID: mp.ID})
	require.NoError(t, err)
	require.True(t, first)

	// skips the existence check and lands on the unique index
	second, err := e.matches.CreateIfAbsent(&domain.Match{ApplicantID: ap.ID, MemberID: mp.ID})
	require.NoError(t, err)
	assert.False(t, second)
}

func TestTryCreateMatch_MatchedApplicantIsNoop(t *testing.T) {
	e := newTestEnv(t)
	_, ap := e.newApplicant(t, "a")
	_, mp := e.newMember(t, "m", true)
	_, err := e.applicants.MarkMatched(ap.ID)
	require.NoError(t, err)

	m, created, err := NewMatchEngine(e.applicants, e.matches).TryCreateMatch(nil, ap.ID, mp.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, m)
}

func TestTryCreateMatch_ApplicantCanHoldSeveralPendingMatches(t *testing.T) {
	e := newTestEnv(t)
	_, ap := e.newApplicant(t, "a")
	_, m1 := e.newMember(t, "m1", true)
	_, m2 := e.newMember(t, "m2", true)
	engine := NewMatchEngine(e.applicants, e.matches)

	_, created, err := engine.TryCreateMatch(nil, ap.ID, m1.ID)
	require.NoError(t, err)
	assert.True(t, created)
	_, created, err = engine.TryCreateMatch(nil, ap.ID, m2.ID)
	require.NoError(t, err)
	assert.True(t, created)

	assert.False(t, e.reloadApplicant(t, ap.ID).HasBeenMatched)
}

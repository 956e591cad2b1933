package services

import (
	"strings"
	"testing"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_RequiresConfirmedMatch(t *testing.T) {
	e := newTestEnv(t)
	admin := e.newAdmin(t)
	x, _ := e.newApplicant(t, "x")
	y, _ := e.newMember(t, "y", true)
	m := e.pendingMatch(t, x, y)
	msg := dto.SendMessage{Content: "coffee on friday?"}

	_, err := e.messageSvc.Post(x.ID, m.ID, msg)
	require.ErrorIs(t, err, ErrNotConfirmed)
	kind, _ := KindOf(err)
	assert.Equal(t, KindForbidden, kind)

	_, err = e.matchSvc.Confirm(admin.ID, m.ID, dto.MatchAction{})
	require.NoError(t, err)

	out, err := e.messageSvc.Post(x.ID, m.ID, msg)
	require.NoError(t, err)
	assert.Equal(t, "coffee on friday?", out.Content)
	assert.Equal(t, x.ID, out.Sender)
	assert.Equal(t, "x", out.SenderName)
	assert.False(t, out.IsRead)

	require.Len(t, e.notifier.messages, 1)
	assert.Equal(t, out.ID, e.notifier.messages[0].ID)

	_, err = e.matchSvc.Complete(admin.ID, m.ID, dto.MatchAction{})
	require.NoError(t, err)
	_, err = e.messageSvc.Post(y.ID, m.ID, msg)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	// history stays readable after completion
	list, err := e.messageSvc.List(y.ID, m.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPost_Gate(t *testing.T) {
	e := newTestEnv(t)
	admin := e.newAdmin(t)
	x, _ := e.newApplicant(t, "x")
	y, _ := e.newMember(t, "y", true)
	outsider, _ := e.newApplicant(t, "outsider")
	m := e.pendingMatch(t, x, y)
	_, err := e.matchSvc.Confirm(admin.ID, m.ID, dto.MatchAction{})
	require.NoError(t, err)

	_, err = e.messageSvc.Post(outsider.ID, m.ID, dto.SendMessage{Content: "hi"})
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = e.messageSvc.Post(x.ID, 999, dto.SendMessage{Content: "hi"})
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, err = e.messageSvc.Post(x.ID, m.ID, dto.SendMessage{Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = e.messageSvc.Post(x.ID, m.ID, dto.SendMessage{Content: strings.Repeat("a", 5001)})
	kind, _ := KindOf(err)
	assert.Equal(t, KindValidation, kind)

	_, err = e.messageSvc.List(outsider.ID, m.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestPost_NonParticipantOnPendingIsForbidden(t *testing.T) {
	e := newTestEnv(t)
	x, _ := e.newApplicant(t, "x")
	y, _ := e.newMember(t, "y", true)
	outsider, _ := e.newMember(t, "outsider", true)
	m := e.pendingMatch(t, x, y)

	_, err := e.messageSvc.Post(outsider.ID, m.ID, dto.SendMessage{Content: "hi"})
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestMarkRead_OnlyOtherPartyAndIdempotent(t *testing.T) {
	e := newTestEnv(t)
	admin := e.newAdmin(t)
	x, _ := e.newApplicant(t, "x")
	y, _ := e.newMember(t, "y", true)
	m := e.pendingMatch(t, x, y)
	_, err := e.matchSvc.Confirm(admin.ID, m.ID, dto.MatchAction{})
	require.NoError(t, err)

	for _, c := range []string{"one", "two"} {
		_, err := e.messageSvc.Post(y.ID, m.ID, dto.SendMessage{Content: c})
		require.NoError(t, err)
	}
	_, err = e.messageSvc.Post(x.ID, m.ID, dto.SendMessage{Content: "mine"})
	require.NoError(t, err)

	res, err := e.messageSvc.MarkRead(x.ID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Status)
	assert.EqualValues(t, 2, res.Updated)

	res, err = e.messageSvc.MarkRead(x.ID, m.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.Updated)

	msgs, err := e.messageSvc.List(x.ID, m.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for _, msg := range msgs {
		if msg.Sender == x.ID {
			assert.False(t, msg.IsRead, "own message must stay unread")
		} else {
			assert.True(t, msg.IsRead)
		}
	}

	detail, err := e.matchSvc.GetForUser(y.ID, m.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Messages, 3)
}

func TestMarkRead_RequiresParticipant(t *testing.T) {
	e := newTestEnv(t)
	x, _ := e.newApplicant(t, "x")
	y, _ := e.newMember(t, "y", true)
	outsider, _ := e.newApplicant(t, "outsider")
	m := e.pendingMatch(t, x, y)

	_, err := e.messageSvc.MarkRead(outsider.ID, m.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = e.messageSvc.MarkRead(x.ID, 777)
	assert.ErrorIs(t, err, ErrMatchNotFound)

	// a pending match has nothing to read, which is fine
	res, err := e.messageSvc.MarkRead(x.ID, m.ID)
	require.NoError(t, err)
	assert.Zero(t, res.Updated)
}

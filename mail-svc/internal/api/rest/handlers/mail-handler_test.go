package handlers

import (
	"encoding/json"
	"testing"

	"github.com/SundayYogurt/CoffeeChat-Backend/mail-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/mail-svc/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	to []string
}

func (r *recordingSender) Send(to, _, _ string) error {
	r.to = append(r.to, to)
	return nil
}

func newHandler(t *testing.T) (*MailHandler, *recordingSender) {
	t.Helper()
	sender := &recordingSender{}
	svc, err := services.NewMailService(sender, "https://app.example.com")
	require.NoError(t, err)
	return NewMailHandler(svc), sender
}

func TestHandleMessage(t *testing.T) {
	h, sender := newHandler(t)

	payload, err := json.Marshal(dto.NotificationEvent{
		Type:       dto.EventNewMessage,
		MatchID:    1,
		Recipients: []dto.EventParty{{UserID: 2, Email: "m@berkeley.edu", Name: "Max"}},
		SenderName: "Ada",
		Preview:    "hello",
	})
	require.NoError(t, err)

	require.NoError(t, h.HandleMessage([]byte(dto.EventNewMessage), payload))
	assert.Equal(t, []string{"m@berkeley.edu"}, sender.to)
}

func TestHandleMessage_TypeFromKey(t *testing.T) {
	h, sender := newHandler(t)

	payload := []byte(`{"match_id":4,"recipients":[{"user_id":1,"email":"a@berkeley.edu","name":"Ada"}]}`)
	require.NoError(t, h.HandleMessage([]byte(dto.EventMatchConfirmed), payload))
	assert.Equal(t, []string{"a@berkeley.edu"}, sender.to)
}

func TestHandleMessage_BadInput(t *testing.T) {
	h, sender := newHandler(t)

	assert.Error(t, h.HandleMessage(nil, []byte("not json")))
	assert.NoError(t, h.HandleMessage([]byte("user.deleted"), []byte(`{"recipients":[{"email":"a@berkeley.edu"}]}`)))
	assert.Empty(t, sender.to)
}

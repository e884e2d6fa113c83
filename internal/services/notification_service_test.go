package services

import (
	"errors"
	"testing"
	"time"

	"github.com/pairconnect/pair-connect-api/internal/mailer"
	"github.com/pairconnect/pair-connect-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMailer captures sent messages instead of delivering them
type recordingMailer struct {
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func notificationFixtures() (*models.Session, *models.User) {
	session := &models.Session{
		ID:           42,
		Name:         "Refactor the parser",
		Description:  "Pairing on the tokenizer",
		ScheduleTime: time.Date(2026, 9, 12, 18, 30, 0, 0, time.UTC),
		Host: models.User{
			ID:       1,
			Username: "hoster",
			Name:     "Holly Host",
			Email:    "holly@example.com",
		},
	}
	developer := &models.User{
		ID:       2,
		Username: "devlin",
		Email:    "devlin@example.com",
	}
	return session, developer
}

func TestSendSessionInvite_AddressesDeveloper(t *testing.T) {
	m := &recordingMailer{}
	svc := NewNotificationService(m, "https://pair-connect.dev/")
	session, developer := notificationFixtures()

	err := svc.SendSessionInvite(session, developer)

	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, []string{"devlin@example.com"}, m.sent[0].To)
	assert.Contains(t, m.sent[0].Subject, "Holly Host")
	// Developer has no display name; the username stands in.
	assert.Contains(t, m.sent[0].Body, "Hi devlin")
	assert.Contains(t, m.sent[0].Body, "12-09-2026 18:30")
	assert.Contains(t, m.sent[0].Body, "https://pair-connect.dev/sessions/42/")
}

func TestSendInterestNotification_AddressesHost(t *testing.T) {
	m := &recordingMailer{}
	svc := NewNotificationService(m, "https://pair-connect.dev")
	session, developer := notificationFixtures()

	err := svc.SendInterestNotification(session, developer)

	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, []string{"holly@example.com"}, m.sent[0].To)
	assert.Contains(t, m.sent[0].Subject, "devlin")
	assert.Contains(t, m.sent[0].Body, "Refactor the parser")
}

func TestSendParticipantConfirmation_AddressesDeveloper(t *testing.T) {
	m := &recordingMailer{}
	svc := NewNotificationService(m, "https://pair-connect.dev")
	session, developer := notificationFixtures()

	err := svc.SendParticipantConfirmation(session, developer)

	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, []string{"devlin@example.com"}, m.sent[0].To)
	assert.Contains(t, m.sent[0].Subject, "Refactor the parser")
}

func TestSend_DeliveryFailureWrapsSentinel(t *testing.T) {
	m := &recordingMailer{err: errors.New("relay unreachable")}
	svc := NewNotificationService(m, "https://pair-connect.dev")
	session, developer := notificationFixtures()

	err := svc.SendSessionInvite(session, developer)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotificationFailed)
	assert.Contains(t, err.Error(), "relay unreachable")
}

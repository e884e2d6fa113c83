package services

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/pairconnect/pair-connect-api/internal/mailer"
	"github.com/pairconnect/pair-connect-api/internal/models"
)

// NotificationTemplate identifies one outbound email template.
type NotificationTemplate string

const (
	TemplateSessionInvite           NotificationTemplate = "session_invite"
	TemplateInterestReceived        NotificationTemplate = "interest_received"
	TemplateParticipantConfirmation NotificationTemplate = "participant_confirmation"
)

var notificationTemplates = map[NotificationTemplate]*template.Template{
	TemplateSessionInvite: template.Must(template.New(string(TemplateSessionInvite)).Parse(
		"Hi {{.DeveloperName}},\n\n" +
			"{{.HostName}} invites you to a pair programming session!\n\n" +
			"{{.SessionName}}\n{{.SessionDescription}}\n\n" +
			"When: {{.SessionDate}}\n" +
			"Details: {{.SessionURL}}\n",
	)),
	TemplateInterestReceived: template.Must(template.New(string(TemplateInterestReceived)).Parse(
		"Hi {{.HostName}},\n\n" +
			"{{.DeveloperName}} is interested in joining your session {{.SessionName}}.\n\n" +
			"Review their profile and confirm them here: {{.SessionURL}}\n",
	)),
	TemplateParticipantConfirmation: template.Must(template.New(string(TemplateParticipantConfirmation)).Parse(
		"Hi {{.DeveloperName}},\n\n" +
			"You are confirmed for the session {{.SessionName}} hosted by {{.HostName}}.\n\n" +
			"When: {{.SessionDate}}\n" +
			"Details: {{.SessionURL}}\n",
	)),
}

var notificationSubjects = map[NotificationTemplate]string{
	TemplateSessionInvite:           "%s invites you to a pair programming session!",
	TemplateInterestReceived:        "%s wants to join your session",
	TemplateParticipantConfirmation: "You are confirmed for %s",
}

// notificationData is the structured payload every template renders from.
type notificationData struct {
	DeveloperName      string
	HostName           string
	SessionName        string
	SessionDescription string
	SessionDate        string
	SessionURL         string
}

// NotificationService decides the recipient and payload of match-related
// emails. Delivery is fire-and-forget: the surrounding state change is
// already committed, so a failed send surfaces as ErrNotificationFailed for
// logging and nothing else.
type NotificationService struct {
	mailer  mailer.Mailer
	baseURL string
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(m mailer.Mailer, baseURL string) *NotificationService {
	return &NotificationService{
		mailer:  m,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SendSessionInvite emails a developer that the host invited them.
func (s *NotificationService) SendSessionInvite(session *models.Session, developer *models.User) error {
	data := s.buildData(session, developer)
	subject := fmt.Sprintf(notificationSubjects[TemplateSessionInvite], data.HostName)
	return s.send(TemplateSessionInvite, subject, developer.Email, data)
}

// SendInterestNotification emails the host that a developer expressed
// interest in their session.
func (s *NotificationService) SendInterestNotification(session *models.Session, interested *models.User) error {
	data := s.buildData(session, interested)
	subject := fmt.Sprintf(notificationSubjects[TemplateInterestReceived], data.DeveloperName)
	return s.send(TemplateInterestReceived, subject, session.Host.Email, data)
}

// SendParticipantConfirmation emails a developer that the host confirmed
// them for the session.
func (s *NotificationService) SendParticipantConfirmation(session *models.Session, developer *models.User) error {
	data := s.buildData(session, developer)
	subject := fmt.Sprintf(notificationSubjects[TemplateParticipantConfirmation], data.SessionName)
	return s.send(TemplateParticipantConfirmation, subject, developer.Email, data)
}

func (s *NotificationService) buildData(session *models.Session, developer *models.User) notificationData {
	developerName := developer.Name
	if developerName == "" {
		developerName = developer.Username
	}
	hostName := session.Host.Name
	if hostName == "" {
		hostName = session.Host.Username
	}

	return notificationData{
		DeveloperName:      developerName,
		HostName:           hostName,
		SessionName:        session.Name,
		SessionDescription: session.Description,
		SessionDate:        session.ScheduleTime.Format("02-01-2006 15:04"),
		SessionURL:         fmt.Sprintf("%s/sessions/%d/", s.baseURL, session.ID),
	}
}

func (s *NotificationService) send(tmpl NotificationTemplate, subject, to string, data notificationData) error {
	var body strings.Builder
	if err := notificationTemplates[tmpl].Execute(&body, data); err != nil {
		return fmt.Errorf("%w: rendering %s: %v", ErrNotificationFailed, tmpl, err)
	}

	msg := mailer.Message{
		To:      []string{to},
		Subject: subject,
		Body:    body.String(),
	}
	if err := s.mailer.Send(msg); err != nil {
		return fmt.Errorf("%w: sending %s: %v", ErrNotificationFailed, tmpl, err)
	}

	return nil
}

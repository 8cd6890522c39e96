package service

import (
	"context"
	"fmt"
	"strings"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// mailClient is the part of the SendGrid client the email service uses.
type mailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridEmailService struct {
	client    mailClient
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return newSendGridEmailService(sendgrid.NewSendClient(apiKey), fromEmail, fromName)
}

func newSendGridEmailService(client mailClient, fromEmail, fromName string) *sendGridEmailService {
	return &sendGridEmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(ctx context.Context, operation, to, toName, subject, body string) error {
	logger.ExternalServiceCall("sendgrid", operation, "to", to)

	message := mail.NewSingleEmailPlainText(mail.NewEmail(s.fromName, s.fromEmail), subject, mail.NewEmail(toName, to), body)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	if err != nil {
		err = fmt.Errorf("failed to send email: %w", err)
	}

	logger.ExternalServiceResult("sendgrid", operation, err, "to", to)
	return err
}

func (s *sendGridEmailService) SendJoinRequestNotification(ctx context.Context, ownerEmail, ownerName, requesterName, groupName string) error {
	subject, body := joinRequestNotification(ownerName, requesterName, groupName)
	return s.send(ctx, "join_request_notification", ownerEmail, ownerName, subject, body)
}

func (s *sendGridEmailService) SendJoinRequestDecision(ctx context.Context, email, name, groupName string, accepted bool) error {
	subject, body := joinRequestDecision(name, groupName, accepted)
	return s.send(ctx, "join_request_decision", email, name, subject, body)
}

func (s *sendGridEmailService) SendPendingDigest(ctx context.Context, email, name string, groups []domain.PendingDigest) error {
	subject, body := pendingDigest(name, groups)
	return s.send(ctx, "pending_digest", email, name, subject, body)
}

// logEmailService writes messages to the log instead of sending them. Used
// in development and when no provider is configured.
type logEmailService struct{}

func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) SendJoinRequestNotification(ctx context.Context, ownerEmail, ownerName, requesterName, groupName string) error {
	subject, _ := joinRequestNotification(ownerName, requesterName, groupName)
	logger.InfoContext(ctx, "Email", "to", ownerEmail, "subject", subject)
	return nil
}

func (logEmailService) SendJoinRequestDecision(ctx context.Context, email, name, groupName string, accepted bool) error {
	subject, _ := joinRequestDecision(name, groupName, accepted)
	logger.InfoContext(ctx, "Email", "to", email, "subject", subject)
	return nil
}

func (logEmailService) SendPendingDigest(ctx context.Context, email, name string, groups []domain.PendingDigest) error {
	subject, _ := pendingDigest(name, groups)
	logger.InfoContext(ctx, "Email", "to", email, "subject", subject, "groups", len(groups))
	return nil
}

func joinRequestNotification(ownerName, requesterName, groupName string) (string, string) {
	subject := fmt.Sprintf("New join request for %s", groupName)
	body := fmt.Sprintf("Hello %s,\n\n%s has asked to join your study group %s.\n\nOpen StudyBuddy to accept or reject the request.\n\nThe StudyBuddy Team", ownerName, requesterName, groupName)
	return subject, body
}

func joinRequestDecision(name, groupName string, accepted bool) (string, string) {
	if accepted {
		return fmt.Sprintf("Welcome to %s", groupName),
			fmt.Sprintf("Hello %s,\n\nYour request to join %s was accepted. You can now see its files and sessions.\n\nThe StudyBuddy Team", name, groupName)
	}
	return fmt.Sprintf("Your request to join %s", groupName),
		fmt.Sprintf("Hello %s,\n\nYour request to join %s was not accepted. You can send a new request at any time.\n\nThe StudyBuddy Team", name, groupName)
}

func pendingDigest(name string, groups []domain.PendingDigest) (string, string) {
	var total int32
	var sb strings.Builder
	for _, g := range groups {
		total += g.Pending
		fmt.Fprintf(&sb, "  - %s: %d pending\n", g.GroupName, g.Pending)
	}
	subject := fmt.Sprintf("You have %d pending join requests", total)
	body := fmt.Sprintf("Hello %s,\n\nThese groups are waiting on you:\n\n%s\nThe StudyBuddy Team", name, sb.String())
	return subject, body
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *EmailService) SendWelcomeEmail(email, name, role string) error {
	causesURL := fmt.Sprintf("%s/causes", s.appURL)
	subject, body := welcomeEmailTemplate(name, role, causesURL, s.appName)

	return s.send("welcome", email, subject, body)
}

// SendApplicationReceivedEmail notifies an NGO that a volunteer applied
// to one of its causes.
func (s *EmailService) SendApplicationReceivedEmail(email, ngoName, volunteerName, causeTitle string) error {
	tasksURL := fmt.Sprintf("%s/tasks", s.appURL)
	subject, body := applicationReceivedEmailTemplate(ngoName, volunteerName, causeTitle, tasksURL, s.appName)

	return s.send("application_received", email, subject, body)
}

// SendApplicationApprovedEmail notifies a volunteer that an NGO approved
// their application.
func (s *EmailService) SendApplicationApprovedEmail(email, volunteerName, causeTitle string) error {
	tasksURL := fmt.Sprintf("%s/tasks", s.appURL)
	subject, body := applicationApprovedEmailTemplate(volunteerName, causeTitle, tasksURL, s.appName)

	return s.send("application_approved", email, subject, body)
}

// SendWorkVerifiedEmail notifies a volunteer that their completed work
// was verified and now counts toward their impact.
func (s *EmailService) SendWorkVerifiedEmail(email, volunteerName, causeTitle string, hours int) error {
	impactURL := fmt.Sprintf("%s/impact", s.appURL)
	subject, body := workVerifiedEmailTemplate(volunteerName, causeTitle, hours, impactURL, s.appName)

	return s.send("work_verified", email, subject, body)
}

// SendDonationReceiptEmail confirms a recorded donation to the donor.
func (s *EmailService) SendDonationReceiptEmail(email, donorName, causeTitle string, amountCents int64) error {
	subject, body := donationReceiptEmailTemplate(donorName, causeTitle, amountCents, s.appName)

	return s.send("donation_receipt", email, subject, body)
}

func (s *EmailService) send(emailType, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", emailType, "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", emailType, "to", to)
	}
	return err
}

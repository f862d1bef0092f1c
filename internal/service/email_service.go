package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"packcamp/internal/models"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service. An empty fromEmail yields a
// disabled service that logs and skips every send.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{
			enabled: false,
			debug:   debug,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendEmailConfirmation sends the confirm-your-address email with a signed link
func (s *EmailService) SendEmailConfirmation(ctx context.Context, toEmail, toName, token string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): confirmation to %s", toEmail)
		return nil
	}
	if toName == "" {
		toName = "there"
	}

	confirmLink := fmt.Sprintf("%s/auth/confirm?token=%s", s.appBaseURL, token)
	if s.debug {
		log.Printf("[DEBUG] Confirmation link generated: %s", confirmLink)
	}

	subject := "Confirm Your PackCamp Email"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #2e7d32; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #2e7d32; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Confirm Your Email</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Thanks for creating your PackCamp account. Please confirm your email address so we can reach you about events and registrations.</p>
			<p style="text-align: center;">
				<a href="%s" class="button">Confirm Email</a>
			</p>
			<p>Or copy and paste this link into your browser:</p>
			<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
			<p><strong>This link will expire in 48 hours.</strong></p>
			<p>If you didn't create a PackCamp account, you can safely ignore this email.</p>
		</div>
		<div class="footer">
			<p>This is an automated email from PackCamp. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, toName, confirmLink, confirmLink)

	textBody := fmt.Sprintf(`Hi %s,

Thanks for creating your PackCamp account. Please confirm your email address so we can reach you about events and registrations.

Confirm your email:
%s

This link will expire in 48 hours.

If you didn't create a PackCamp account, you can safely ignore this email.

---
This is an automated email from PackCamp. Please do not reply.
`, toName, confirmLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendRegistrationConfirmation acknowledges a family registration submission
func (s *EmailService) SendRegistrationConfirmation(ctx context.Context, toEmail, toName string, event *models.Event) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): registration confirmation to %s", toEmail)
		return nil
	}
	if toName == "" {
		toName = "there"
	}

	eventName := fmt.Sprintf("%s on %s", event.EventType, event.Date)
	eventLink := fmt.Sprintf("%s/events/%d/register", s.appBaseURL, event.ID)

	subject := fmt.Sprintf("Registration Updated: %s", eventName)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #2e7d32; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #2e7d32; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Registration Updated</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Your family's registration for <strong>%s</strong> at %s has been updated.</p>
			<p>You can review or change your selections any time before the event:</p>
			<p style="text-align: center;">
				<a href="%s" class="button">View Registration</a>
			</p>
		</div>
		<div class="footer">
			<p>This is an automated email from PackCamp. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, toName, eventName, event.Location, eventLink)

	textBody := fmt.Sprintf(`Hi %s,

Your family's registration for %s at %s has been updated.

You can review or change your selections any time before the event:
%s

---
This is an automated email from PackCamp. Please do not reply.
`, toName, eventName, event.Location, eventLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendPasswordChangedNotice tells a person their password was changed
func (s *EmailService) SendPasswordChangedNotice(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): password change notice to %s", toEmail)
		return nil
	}
	if toName == "" {
		toName = "there"
	}

	subject := "Your PackCamp Password Was Changed"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #2e7d32; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Password Changed</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>The password on your PackCamp account was just changed.</p>
			<p>If this was you, no action is needed. If you did not change your password, contact a pack administrator right away.</p>
		</div>
		<div class="footer">
			<p>This is an automated email from PackCamp. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, toName)

	textBody := fmt.Sprintf(`Hi %s,

The password on your PackCamp account was just changed.

If this was you, no action is needed. If you did not change your password, contact a pack administrator right away.

---
This is an automated email from PackCamp. Please do not reply.
`, toName)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] SES message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}

package utils

import (
	"fmt"
	"os"

	"github.com/keighl/postmark"

	"krist-backend/models"
)

// EmailService sends transactional mail through Postmark.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService builds an EmailService from POSTMARK_API_TOKEN and
// EMAIL_SENDER. Returns nil when no token is configured; callers treat a nil
// service as "email disabled".
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		return nil
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// SendEmail sends a basic email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmationEmail sends an order confirmation to the user.
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.Order) error {
	subject := "Order Confirmation - Krist"
	htmlContent := fmt.Sprintf(
		"<strong>Dear Customer,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed successfully.<br><br>Total Amount: <strong>$%.2f</strong><br>Delivery Address: <strong>%s</strong><br><br>Thank you for shopping with us!",
		order.ID.Hex(),
		order.TotalAmount,
		order.Address,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

package email

import (
	"context"
	"fmt"
	"time"
)

// SendRequest contains the data needed to send an email via an external provider.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address (e.g. "Cragboard <noreply@cragboard.nz>")
	Subject string
	HTML    string // HTML body
	ReplyTo string // Reply-to address
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
}

// Sender is the interface for sending emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}

// VerificationEmail builds the account verification message for a new
// competitor. verifyURL must already carry the token.
func VerificationEmail(to, verifyURL string) SendRequest {
	html := fmt.Sprintf(`<p>Welcome to Cragboard!</p>
<p>Confirm your email address to start logging sends:</p>
<p><a href="%s">Verify my account</a></p>
<p>The link expires in 24 hours. If you did not sign up, you can ignore this email.</p>`, verifyURL)

	return SendRequest{
		To:      []string{to},
		Subject: "Verify your Cragboard account",
		HTML:    html,
	}
}

// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// entityRefHeader groups provider-side retries of one queued notification.
const entityRefHeader = "X-Entity-Ref-ID"

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send delivers a budget alert or goal completion notification.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	resp, err := c.client.Emails.SendWithContext(ctx, c.buildRequest(input))
	if err != nil {
		code := classifySendError(err)
		return nil, domainerror.NewEmailError(code, fmt.Sprintf("failed to send %s email", input.Template), err)
	}

	return &adapter.SendEmailResult{
		ResendID: resp.Id,
	}, nil
}

func (c *ResendClient) buildRequest(input adapter.SendEmailInput) *resend.SendEmailRequest {
	to := input.To
	if input.Name != "" {
		to = fmt.Sprintf("%s <%s>", input.Name, input.To)
	}

	request := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{to},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}
	if input.Template != "" {
		request.Tags = []resend.Tag{{Name: "notification", Value: string(input.Template)}}
	}
	if input.JobID != uuid.Nil {
		request.Headers = map[string]string{entityRefHeader: input.JobID.String()}
	}
	return request
}

// classifySendError maps a provider failure to a retry decision.
// Rate limits and 5xx responses are retried; rejected requests are not.
func classifySendError(err error) domainerror.EmailErrorCode {
	msg := strings.ToLower(err.Error())

	for _, pattern := range []string{"429", "rate limit", "too many requests"} {
		if strings.Contains(msg, pattern) {
			return domainerror.ErrCodeTemporaryEmailFailure
		}
	}
	for _, pattern := range []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"} {
		if strings.Contains(msg, pattern) {
			return domainerror.ErrCodePermanentEmailFailure
		}
	}
	return domainerror.ErrCodeTemporaryEmailFailure
}

var _ adapter.EmailSender = (*ResendClient)(nil)

package email

import (
	"context"
	"fmt"
	"sync"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// RecordingSender keeps delivered notifications in memory instead of calling a provider.
// The acceptance suite wires it in place of the Resend client.
type RecordingSender struct {
	mu        sync.Mutex
	sent      []adapter.SendEmailInput
	failErr   error
	permanent bool
}

// NewRecordingSender creates an empty RecordingSender.
func NewRecordingSender() *RecordingSender {
	return &RecordingSender{}
}

// Send records the notification, or fails as configured by FailWith.
func (r *RecordingSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failErr != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if r.permanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, fmt.Sprintf("failed to send %s email", input.Template), r.failErr)
	}

	r.sent = append(r.sent, input)
	return &adapter.SendEmailResult{
		ResendID: fmt.Sprintf("local-%s", input.JobID),
	}, nil
}

// FailWith makes every following Send fail with err until Recover is called.
func (r *RecordingSender) FailWith(err error, permanent bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failErr = err
	r.permanent = permanent
}

// Recover lets Send succeed again.
func (r *RecordingSender) Recover() {
	r.FailWith(nil, false)
}

// Sent returns a copy of every recorded notification.
func (r *RecordingSender) Sent() []adapter.SendEmailInput {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), r.sent...)
}

// SentTo counts the notifications delivered to recipient.
func (r *RecordingSender) SentTo(recipient string) int {
	return r.count(func(in adapter.SendEmailInput) bool { return in.To == recipient })
}

// SentWithTemplate counts the notifications rendered from template.
func (r *RecordingSender) SentWithTemplate(template entity.EmailTemplateType) int {
	return r.count(func(in adapter.SendEmailInput) bool { return in.Template == template })
}

func (r *RecordingSender) count(match func(adapter.SendEmailInput) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, in := range r.sent {
		if match(in) {
			n++
		}
	}
	return n
}

// Reset drops recorded notifications and any configured failure.
func (r *RecordingSender) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
	r.failErr = nil
	r.permanent = false
}

var _ adapter.EmailSender = (*RecordingSender)(nil)

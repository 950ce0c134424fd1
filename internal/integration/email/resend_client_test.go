package email

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

func TestClassifySendError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected domainerror.EmailErrorCode
	}{
		{"rate limited", errors.New("429 Too Many Requests: invalid burst"), domainerror.ErrCodeTemporaryEmailFailure},
		{"server error", errors.New("502 bad gateway"), domainerror.ErrCodeTemporaryEmailFailure},
		{"network failure", errors.New("dial tcp: connection refused"), domainerror.ErrCodeTemporaryEmailFailure},
		{"rejected key", errors.New("401 unauthorized"), domainerror.ErrCodePermanentEmailFailure},
		{"rejected payload", errors.New("422 validation_error: invalid `to` field"), domainerror.ErrCodePermanentEmailFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifySendError(tt.err); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestResendClient_BuildRequest(t *testing.T) {
	client := NewResendClient("re_test", "Gestion Budget", "alerts@example.com")

	t.Run("tags the notification and references the job", func(t *testing.T) {
		jobID := uuid.New()
		request := client.buildRequest(adapter.SendEmailInput{
			JobID:    jobID,
			Template: entity.TemplateBudgetAlert,
			To:       "awa@example.com",
			Name:     "Awa",
			Subject:  "Budget alert: Food reached 85%",
		})

		if request.From != "Gestion Budget <alerts@example.com>" {
			t.Errorf("expected sender with display name, got %q", request.From)
		}
		if len(request.To) != 1 || request.To[0] != "Awa <awa@example.com>" {
			t.Errorf("expected named recipient, got %v", request.To)
		}
		if len(request.Tags) != 1 || request.Tags[0].Value != string(entity.TemplateBudgetAlert) {
			t.Errorf("expected budget alert tag, got %v", request.Tags)
		}
		if request.Headers[entityRefHeader] != jobID.String() {
			t.Errorf("expected job reference %s, got %q", jobID, request.Headers[entityRefHeader])
		}
	})

	t.Run("bare input adds no metadata", func(t *testing.T) {
		request := client.buildRequest(adapter.SendEmailInput{To: "awa@example.com", Subject: "Hi"})

		if request.To[0] != "awa@example.com" {
			t.Errorf("expected bare address, got %q", request.To[0])
		}
		if request.Tags != nil || request.Headers != nil {
			t.Errorf("expected no tags or headers, got %v %v", request.Tags, request.Headers)
		}
	})
}

package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

func TestEmailQueueRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewEmailQueueRepository(db)
	ctx := context.Background()

	t.Run("keeps template data and the source link", func(t *testing.T) {
		budgetID := uuid.New()
		job := entity.NewEmailJobAt(entity.TemplateBudgetAlert, "awa@example.com", "Awa", "Budget alert", map[string]interface{}{
			"budget_name":     "Food",
			"percentage_used": "85",
		}, time.Now().UTC().Add(-time.Second))
		job.UserID = uuid.New()
		job.SourceID = budgetID

		if err := repo.Create(ctx, job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		pending, err := repo.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pending) != 1 {
			t.Fatalf("expected 1 pending job, got %d", len(pending))
		}
		if pending[0].SourceID != budgetID || pending[0].UserID != job.UserID {
			t.Errorf("expected job linked to budget %s, got %s", budgetID, pending[0].SourceID)
		}
		if pending[0].TemplateData["percentage_used"] != "85" {
			t.Errorf("expected template data to survive, got %v", pending[0].TemplateData)
		}
	})

	t.Run("purges only old sent jobs", func(t *testing.T) {
		jobs, _ := repo.GetByRecipient(ctx, "awa@example.com")
		if len(jobs) != 1 {
			t.Fatalf("expected 1 job, got %d", len(jobs))
		}
		sent := jobs[0]
		sent.MarkSent("re_123")
		old := time.Now().UTC().AddDate(0, 0, -40)
		sent.ProcessedAt = &old
		if err := repo.Update(ctx, sent); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		fresh := entity.NewEmailJob(entity.TemplateGoalCompleted, "awa@example.com", "Awa", "Goal reached", nil)
		fresh.MarkSent("re_456")
		if err := repo.Create(ctx, fresh); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		deleted, err := repo.DeleteOldSentJobs(ctx, 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted != 1 {
			t.Errorf("expected 1 purged job, got %d", deleted)
		}
		remaining, _ := repo.GetByRecipient(ctx, "awa@example.com")
		if len(remaining) != 1 || remaining[0].ID != fresh.ID {
			t.Errorf("expected only the fresh job to remain, got %d", len(remaining))
		}
		if remaining[0].TemplateData == nil {
			t.Error("expected empty template data, got nil")
		}
	})

	t.Run("rolls back with the surrounding transaction", func(t *testing.T) {
		transactor := NewTransactor(db)
		job := entity.NewEmailJob(entity.TemplateBudgetAlert, "moussa@example.com", "Moussa", "Budget alert", nil)
		boom := errors.New("boom")

		err := transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := repo.Create(ctx, job); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		jobs, _ := repo.GetByRecipient(ctx, "moussa@example.com")
		if len(jobs) != 0 {
			t.Errorf("expected no queued job, got %d", len(jobs))
		}
	})
}

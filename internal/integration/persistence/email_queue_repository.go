package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/persistence/model"
)

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db: db,
	}
}

// Create adds a new email job to the queue.
// Inside a ledger transaction the job commits or rolls back with it.
func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	emailModel := model.EmailQueueModelFromEntity(job)
	result := conn(ctx, r.db).Create(emailModel)
	if result.Error != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to create email job",
			result.Error,
		)
	}
	return nil
}

// GetPendingJobs retrieves jobs ready to be processed.
func (r *emailQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	var models []model.EmailQueueModel

	result := conn(ctx, r.db).
		Where("status = ?", entity.EmailStatusPending).
		Where("scheduled_at <= ?", time.Now().UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]*entity.EmailJob, len(models))
	for i, m := range models {
		jobs[i] = m.ToEntity()
	}

	return jobs, nil
}

// Update saves changes to an email job.
func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	emailModel := model.EmailQueueModelFromEntity(job)
	result := conn(ctx, r.db).Save(emailModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetByRecipient retrieves jobs for a specific email address.
func (r *emailQueueRepository) GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	var models []model.EmailQueueModel
	result := conn(ctx, r.db).
		Where("recipient_email = ?", email).
		Order("created_at DESC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]*entity.EmailJob, len(models))
	for i, m := range models {
		jobs[i] = m.ToEntity()
	}

	return jobs, nil
}

// DeleteOldSentJobs removes sent jobs older than the specified duration.
func (r *emailQueueRepository) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)

	result := conn(ctx, r.db).
		Where("status = ?", entity.EmailStatusSent).
		Where("processed_at < ?", cutoff).
		Delete(&model.EmailQueueModel{})

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// EmailQueueModel is one queued notification, linked to its owner and to the
// budget or goal that raised it.
type EmailQueueModel struct {
	ID             uuid.UUID              `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID              `gorm:"type:uuid;index"`
	SourceID       uuid.UUID              `gorm:"type:uuid;index"`
	TemplateType   string                 `gorm:"type:varchar(50);not null"`
	RecipientEmail string                 `gorm:"type:varchar(255);not null"`
	RecipientName  string                 `gorm:"type:varchar(255)"`
	Subject        string                 `gorm:"type:varchar(500);not null"`
	TemplateData   map[string]interface{} `gorm:"type:text;serializer:json"`
	Status         string                 `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_pending,priority:1"`
	Attempts       int                    `gorm:"not null;default:0"`
	MaxAttempts    int                    `gorm:"not null;default:3"`
	LastError      string                 `gorm:"type:text"`
	ResendID       string                 `gorm:"type:varchar(100)"`
	CreatedAt      time.Time              `gorm:"not null"`
	ScheduledAt    time.Time              `gorm:"not null;index:idx_email_queue_pending,priority:2"`
	ProcessedAt    *time.Time
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts an EmailQueueModel to a domain EmailJob entity.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	data := m.TemplateData
	if data == nil {
		data = map[string]interface{}{}
	}
	return &entity.EmailJob{
		ID:             m.ID,
		UserID:         m.UserID,
		SourceID:       m.SourceID,
		TemplateType:   entity.EmailTemplateType(m.TemplateType),
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		Subject:        m.Subject,
		TemplateData:   data,
		Status:         entity.EmailStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ResendID:       m.ResendID,
		CreatedAt:      m.CreatedAt,
		ScheduledAt:    m.ScheduledAt,
		ProcessedAt:    m.ProcessedAt,
	}
}

// EmailQueueModelFromEntity creates an EmailQueueModel from a domain EmailJob entity.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	return &EmailQueueModel{
		ID:             job.ID,
		UserID:         job.UserID,
		SourceID:       job.SourceID,
		TemplateType:   string(job.TemplateType),
		RecipientEmail: job.RecipientEmail,
		RecipientName:  job.RecipientName,
		Subject:        job.Subject,
		TemplateData:   job.TemplateData,
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ResendID:       job.ResendID,
		CreatedAt:      job.CreatedAt,
		ScheduledAt:    job.ScheduledAt,
		ProcessedAt:    job.ProcessedAt,
	}
}

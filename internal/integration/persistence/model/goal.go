package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

// GoalModel represents the goals table in the database.
// The auto-save rule is stored inline.
type GoalModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"type:varchar(100);not null"`
	Description       string          `gorm:"type:text"`
	TargetAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TargetDate        time.Time       `gorm:"type:date;not null"`
	Category          string          `gorm:"type:varchar(50)"`
	Priority          string          `gorm:"type:varchar(10);not null"`
	Status            string          `gorm:"type:varchar(10);not null;index"`
	AutoSaveEnabled   bool            `gorm:"not null"`
	AutoSaveAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AutoSaveFrequency string          `gorm:"type:varchar(10)"`
	AutoSaveNextDate  *time.Time      `gorm:"index"`
	CompletedAt       *time.Time
	Version           int64           `gorm:"not null"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
	DeletedAt         gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships
	Milestones    []MilestoneModel    `gorm:"foreignKey:GoalID;references:ID"`
	Contributions []ContributionModel `gorm:"foreignKey:GoalID;references:ID"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// MilestoneModel represents the goal_milestones table in the database.
type MilestoneModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GoalID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(100);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Achieved   bool            `gorm:"not null"`
	AchievedAt *time.Time
}

// TableName returns the table name for the MilestoneModel.
func (MilestoneModel) TableName() string {
	return "goal_milestones"
}

// ContributionModel represents the goal_contributions table in the database.
// Rows are append-only.
type ContributionModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GoalID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date      time.Time       `gorm:"not null"`
	Note      string          `gorm:"type:varchar(255)"`
	Source    string          `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ContributionModel.
func (ContributionModel) TableName() string {
	return "goal_contributions"
}

// ToEntity converts a GoalModel and its preloaded children to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	milestones := make([]entity.Milestone, len(m.Milestones))
	for i, mm := range m.Milestones {
		milestones[i] = mm.ToEntity()
	}
	sort.SliceStable(milestones, func(i, j int) bool {
		return milestones[i].Amount.LessThan(milestones[j].Amount)
	})

	contributions := make([]entity.Contribution, len(m.Contributions))
	for i, cm := range m.Contributions {
		contributions[i] = cm.ToEntity()
	}
	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].CreatedAt.Before(contributions[j].CreatedAt)
	})

	return &entity.Goal{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Description:   m.Description,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		TargetDate:    m.TargetDate,
		Category:      m.Category,
		Priority:      entity.GoalPriority(m.Priority),
		Status:        entity.GoalStatus(m.Status),
		Contributions: contributions,
		Milestones:    milestones,
		AutoSave: entity.AutoSaveRule{
			Enabled:   m.AutoSaveEnabled,
			Amount:    m.AutoSaveAmount,
			Frequency: valueobject.Frequency(m.AutoSaveFrequency),
			NextDate:  m.AutoSaveNextDate,
		},
		CompletedAt: m.CompletedAt,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity, milestones included.
// Contributions are written separately since they are append-only.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	var deletedAt gorm.DeletedAt
	if goal.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *goal.DeletedAt, Valid: true}
	}

	milestones := make([]MilestoneModel, len(goal.Milestones))
	for i := range goal.Milestones {
		milestones[i] = *MilestoneFromEntity(&goal.Milestones[i])
	}

	return &GoalModel{
		ID:                goal.ID,
		UserID:            goal.UserID,
		Name:              goal.Name,
		Description:       goal.Description,
		TargetAmount:      goal.TargetAmount,
		CurrentAmount:     goal.CurrentAmount,
		TargetDate:        goal.TargetDate,
		Category:          goal.Category,
		Priority:          string(goal.Priority),
		Status:            string(goal.Status),
		AutoSaveEnabled:   goal.AutoSave.Enabled,
		AutoSaveAmount:    goal.AutoSave.Amount,
		AutoSaveFrequency: string(goal.AutoSave.Frequency),
		AutoSaveNextDate:  goal.AutoSave.NextDate,
		CompletedAt:       goal.CompletedAt,
		Version:           goal.Version,
		CreatedAt:         goal.CreatedAt,
		UpdatedAt:         goal.UpdatedAt,
		DeletedAt:         deletedAt,
		Milestones:        milestones,
	}
}

// ToEntity converts a MilestoneModel to a domain Milestone.
func (m *MilestoneModel) ToEntity() entity.Milestone {
	return entity.Milestone{
		ID:         m.ID,
		GoalID:     m.GoalID,
		Name:       m.Name,
		Amount:     m.Amount,
		Achieved:   m.Achieved,
		AchievedAt: m.AchievedAt,
	}
}

// MilestoneFromEntity creates a MilestoneModel from a domain Milestone.
func MilestoneFromEntity(milestone *entity.Milestone) *MilestoneModel {
	return &MilestoneModel{
		ID:         milestone.ID,
		GoalID:     milestone.GoalID,
		Name:       milestone.Name,
		Amount:     milestone.Amount,
		Achieved:   milestone.Achieved,
		AchievedAt: milestone.AchievedAt,
	}
}

// ToEntity converts a ContributionModel to a domain Contribution.
func (m *ContributionModel) ToEntity() entity.Contribution {
	return entity.Contribution{
		ID:        m.ID,
		GoalID:    m.GoalID,
		Amount:    m.Amount,
		Date:      m.Date,
		Note:      m.Note,
		Source:    entity.ContributionSource(m.Source),
		CreatedAt: m.CreatedAt,
	}
}

// ContributionFromEntity creates a ContributionModel from a domain Contribution.
func ContributionFromEntity(contribution *entity.Contribution) *ContributionModel {
	return &ContributionModel{
		ID:        contribution.ID,
		GoalID:    contribution.GoalID,
		Amount:    contribution.Amount,
		Date:      contribution.Date,
		Note:      contribution.Note,
		Source:    string(contribution.Source),
		CreatedAt: contribution.CreatedAt,
	}
}

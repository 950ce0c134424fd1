package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/goal"
)

// MilestoneRequest represents a milestone in goal requests.
type MilestoneRequest struct {
	Name   string          `json:"name" binding:"required,min=1,max=100"`
	Amount decimal.Decimal `json:"amount"`
}

// AutoSaveRequest represents the auto-save rule in goal requests.
type AutoSaveRequest struct {
	Enabled   bool            `json:"enabled"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency" binding:"omitempty,oneof=daily weekly monthly"`
	NextDate  *string         `json:"next_date,omitempty"`
}

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name         string             `json:"name" binding:"required,min=1,max=100"`
	Description  string             `json:"description,omitempty" binding:"omitempty,max=500"`
	TargetAmount decimal.Decimal    `json:"target_amount"`
	TargetDate   string             `json:"target_date" binding:"required"`
	Category     string             `json:"category,omitempty" binding:"omitempty,max=50"`
	Priority     string             `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	Milestones   []MilestoneRequest `json:"milestones,omitempty" binding:"omitempty,dive"`
	AutoSave     *AutoSaveRequest   `json:"auto_save,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name        *string            `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description *string            `json:"description,omitempty" binding:"omitempty,max=500"`
	TargetDate  *string            `json:"target_date,omitempty"`
	Category    *string            `json:"category,omitempty" binding:"omitempty,max=50"`
	Priority    *string            `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	Status      *string            `json:"status,omitempty" binding:"omitempty,oneof=active paused cancelled"`
	Milestones  []MilestoneRequest `json:"milestones,omitempty" binding:"omitempty,dive"`
	AutoSave    *AutoSaveRequest   `json:"auto_save,omitempty"`
}

// AddContributionRequest represents the request body for a goal contribution.
type AddContributionRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty" binding:"omitempty,max=255"`
	Source string          `json:"source,omitempty" binding:"omitempty,oneof=manual bonus transfer"`
}

// MilestoneResponse represents a milestone in API responses.
type MilestoneResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Amount     string     `json:"amount"`
	Achieved   bool       `json:"achieved"`
	AchievedAt *time.Time `json:"achieved_at,omitempty"`
}

// ContributionResponse represents a contribution in API responses.
type ContributionResponse struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
	Date   string `json:"date"`
	Note   string `json:"note"`
	Source string `json:"source"`
}

// AutoSaveResponse represents the auto-save rule in API responses.
type AutoSaveResponse struct {
	Enabled   bool    `json:"enabled"`
	Amount    string  `json:"amount"`
	Frequency string  `json:"frequency,omitempty"`
	NextDate  *string `json:"next_date,omitempty"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	Description        string                 `json:"description"`
	TargetAmount       string                 `json:"target_amount"`
	CurrentAmount      string                 `json:"current_amount"`
	Remaining          string                 `json:"remaining"`
	ProgressPercentage string                 `json:"progress_percentage"`
	TargetDate         string                 `json:"target_date"`
	DaysRemaining      int                    `json:"days_remaining"`
	Category           string                 `json:"category"`
	Priority           string                 `json:"priority"`
	Status             string                 `json:"status"`
	Milestones         []MilestoneResponse    `json:"milestones"`
	Contributions      []ContributionResponse `json:"contributions"`
	AutoSave           AutoSaveResponse       `json:"auto_save"`
	CompletedAt        *time.Time             `json:"completed_at,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// GoalSummaryResponse represents aggregated goal progress.
type GoalSummaryResponse struct {
	ActiveCount     int    `json:"active_count"`
	CompletedCount  int    `json:"completed_count"`
	TotalSaved      string `json:"total_saved"`
	TotalTarget     string `json:"total_target"`
	OverallProgress string `json:"overall_progress"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals   []GoalResponse      `json:"goals"`
	Summary GoalSummaryResponse `json:"summary"`
}

// ContributionResultResponse represents the response of a contribution.
type ContributionResultResponse struct {
	Goal               GoalResponse         `json:"goal"`
	Contribution       ContributionResponse `json:"contribution"`
	AchievedMilestones []MilestoneResponse  `json:"achieved_milestones"`
	Completed          bool                 `json:"completed"`
}

func toMilestoneResponse(m goal.MilestoneOutput) MilestoneResponse {
	return MilestoneResponse{
		ID:         m.ID.String(),
		Name:       m.Name,
		Amount:     m.Amount.String(),
		Achieved:   m.Achieved,
		AchievedAt: m.AchievedAt,
	}
}

func toContributionResponse(c goal.ContributionOutput) ContributionResponse {
	return ContributionResponse{
		ID:     c.ID.String(),
		Amount: c.Amount.String(),
		Date:   c.Date.Format(DateLayout),
		Note:   c.Note,
		Source: string(c.Source),
	}
}

// ToGoalResponse converts a GoalOutput to a GoalResponse DTO.
func ToGoalResponse(output *goal.GoalOutput) GoalResponse {
	milestones := make([]MilestoneResponse, len(output.Milestones))
	for i, m := range output.Milestones {
		milestones[i] = toMilestoneResponse(m)
	}

	contributions := make([]ContributionResponse, len(output.Contributions))
	for i, c := range output.Contributions {
		contributions[i] = toContributionResponse(c)
	}

	autoSave := AutoSaveResponse{
		Enabled:   output.AutoSave.Enabled,
		Amount:    output.AutoSave.Amount.String(),
		Frequency: string(output.AutoSave.Frequency),
	}
	if output.AutoSave.NextDate != nil {
		next := output.AutoSave.NextDate.Format(DateLayout)
		autoSave.NextDate = &next
	}

	return GoalResponse{
		ID:                 output.ID.String(),
		Name:               output.Name,
		Description:        output.Description,
		TargetAmount:       output.TargetAmount.String(),
		CurrentAmount:      output.CurrentAmount.String(),
		Remaining:          output.Remaining.String(),
		ProgressPercentage: output.ProgressPercentage.StringFixed(2),
		TargetDate:         output.TargetDate.Format(DateLayout),
		DaysRemaining:      output.DaysRemaining,
		Category:           output.Category,
		Priority:           string(output.Priority),
		Status:             string(output.Status),
		Milestones:         milestones,
		Contributions:      contributions,
		AutoSave:           autoSave,
		CompletedAt:        output.CompletedAt,
		CreatedAt:          output.CreatedAt,
		UpdatedAt:          output.UpdatedAt,
	}
}

// ToGoalListResponse converts a ListGoalsOutput to GoalListResponse.
func ToGoalListResponse(output *goal.ListGoalsOutput) GoalListResponse {
	goals := make([]GoalResponse, len(output.Goals))
	for i, g := range output.Goals {
		goals[i] = ToGoalResponse(g)
	}
	return GoalListResponse{
		Goals: goals,
		Summary: GoalSummaryResponse{
			ActiveCount:     output.Summary.ActiveCount,
			CompletedCount:  output.Summary.CompletedCount,
			TotalSaved:      output.Summary.TotalSaved.String(),
			TotalTarget:     output.Summary.TotalTarget.String(),
			OverallProgress: output.Summary.OverallProgress.StringFixed(2),
		},
	}
}

// ToContributionResultResponse converts an AddContributionOutput to its response DTO.
func ToContributionResultResponse(output *goal.AddContributionOutput) ContributionResultResponse {
	achieved := make([]MilestoneResponse, len(output.AchievedMilestones))
	for i, m := range output.AchievedMilestones {
		achieved[i] = toMilestoneResponse(m)
	}
	return ContributionResultResponse{
		Goal:               ToGoalResponse(output.Goal),
		Contribution:       toContributionResponse(output.Contribution),
		AchievedMilestones: achieved,
		Completed:          output.Completed,
	}
}

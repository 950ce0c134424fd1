package entity

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

// GoalStatus represents the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// IsValid reports whether the status is known.
func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a user may move a goal from s to next.
// Completion is reached only through contributions and is final, as is cancellation.
func (s GoalStatus) CanTransitionTo(next GoalStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case GoalStatusActive:
		return next == GoalStatusPaused || next == GoalStatusCancelled
	case GoalStatusPaused:
		return next == GoalStatusActive || next == GoalStatusCancelled
	}
	return false
}

// GoalPriority ranks goals for display.
type GoalPriority string

const (
	GoalPriorityLow    GoalPriority = "low"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityHigh   GoalPriority = "high"
)

// IsValid reports whether the priority is known.
func (p GoalPriority) IsValid() bool {
	return p == GoalPriorityLow || p == GoalPriorityMedium || p == GoalPriorityHigh
}

// ContributionSource records where a contribution came from.
type ContributionSource string

const (
	ContributionSourceManual   ContributionSource = "manual"
	ContributionSourceAutoSave ContributionSource = "auto_save"
	ContributionSourceBonus    ContributionSource = "bonus"
	ContributionSourceTransfer ContributionSource = "transfer"
)

// IsValid reports whether the source is known.
func (s ContributionSource) IsValid() bool {
	switch s {
	case ContributionSourceManual, ContributionSourceAutoSave, ContributionSourceBonus, ContributionSourceTransfer:
		return true
	}
	return false
}

// Contribution is an append-only record of money saved toward a goal.
type Contribution struct {
	ID        uuid.UUID
	GoalID    uuid.UUID
	Amount    decimal.Decimal
	Date      time.Time
	Note      string
	Source    ContributionSource
	CreatedAt time.Time
}

// Milestone is a threshold on the saved amount. Once achieved it stays achieved.
type Milestone struct {
	ID         uuid.UUID
	GoalID     uuid.UUID
	Name       string
	Amount     decimal.Decimal
	Achieved   bool
	AchievedAt *time.Time
}

// NewMilestone creates a pending milestone for a goal.
func NewMilestone(goalID uuid.UUID, name string, amount decimal.Decimal) Milestone {
	return Milestone{
		ID:     uuid.New(),
		GoalID: goalID,
		Name:   name,
		Amount: amount,
	}
}

// AutoSaveRule schedules recurring contributions.
type AutoSaveRule struct {
	Enabled   bool
	Amount    decimal.Decimal
	Frequency valueobject.Frequency
	NextDate  *time.Time
}

// Goal represents a savings target with its contribution history.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Description   string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time
	Category      string // Free-form tag such as "travel" or "emergency"
	Priority      GoalPriority
	Status        GoalStatus
	Contributions []Contribution
	Milestones    []Milestone // Ordered by amount
	AutoSave      AutoSaveRule
	CompletedAt   *time.Time
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewGoal creates a new active Goal with nothing saved yet.
func NewGoal(userID uuid.UUID, name string, targetAmount decimal.Decimal, targetDate time.Time, priority GoalPriority) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: decimal.Zero,
		TargetDate:    targetDate,
		Priority:      priority,
		Status:        GoalStatusActive,
		Contributions: []Contribution{},
		Milestones:    []Milestone{},
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// AddMilestone registers a milestone, keeping milestones sorted by amount.
func (g *Goal) AddMilestone(name string, amount decimal.Decimal) (*Milestone, error) {
	if !amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidMilestone,
			"milestone amount must be greater than zero",
			domainerror.ErrInvalidMilestoneAmount,
		)
	}

	milestone := NewMilestone(g.ID, name, amount)
	g.Milestones = append(g.Milestones, milestone)
	sort.SliceStable(g.Milestones, func(i, j int) bool {
		return g.Milestones[i].Amount.LessThan(g.Milestones[j].Amount)
	})

	for i := range g.Milestones {
		if g.Milestones[i].ID == milestone.ID {
			return &g.Milestones[i], nil
		}
	}
	return &milestone, nil
}

// ContributionOutcome describes what a contribution changed on its goal.
type ContributionOutcome struct {
	Contribution       Contribution
	AchievedMilestones []Milestone
	Completed          bool
}

// AddContribution appends a contribution, raises the saved amount, flips every milestone
// reached and completes an active goal once the target is met.
func (g *Goal) AddContribution(amount decimal.Decimal, note string, source ContributionSource, now time.Time) (*ContributionOutcome, error) {
	if !amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContribution,
			"contribution amount must be greater than zero",
			domainerror.ErrInvalidContributionAmount,
		)
	}

	if !source.IsValid() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContributionSource,
			"contribution source must be 'manual', 'auto_save', 'bonus' or 'transfer'",
			domainerror.ErrInvalidContributionSource,
		)
	}

	if g.Status != GoalStatusActive {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotAccepting,
			"goal is "+string(g.Status)+" and does not accept contributions",
			domainerror.ErrGoalNotAcceptingContributions,
		)
	}

	contribution := Contribution{
		ID:        uuid.New(),
		GoalID:    g.ID,
		Amount:    amount,
		Date:      now,
		Note:      note,
		Source:    source,
		CreatedAt: now,
	}
	g.Contributions = append(g.Contributions, contribution)
	g.CurrentAmount = g.CurrentAmount.Add(amount)

	outcome := &ContributionOutcome{Contribution: contribution}

	for i := range g.Milestones {
		milestone := &g.Milestones[i]
		if milestone.Achieved || milestone.Amount.GreaterThan(g.CurrentAmount) {
			continue
		}
		achievedAt := now
		milestone.Achieved = true
		milestone.AchievedAt = &achievedAt
		outcome.AchievedMilestones = append(outcome.AchievedMilestones, *milestone)
	}

	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		completedAt := now
		g.Status = GoalStatusCompleted
		g.CompletedAt = &completedAt
		outcome.Completed = true
	}

	g.UpdatedAt = now
	return outcome, nil
}

// ProgressPercentage returns the saved amount as a percentage of the target.
func (g *Goal) ProgressPercentage() decimal.Decimal {
	return Percentage(g.CurrentAmount, g.TargetAmount)
}

// Remaining returns what is left to save, never below zero.
func (g *Goal) Remaining() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// DaysRemaining returns whole days until the target date, zero once it has passed.
func (g *Goal) DaysRemaining(now time.Time) int {
	days := math.Ceil(g.TargetDate.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}

// IsAutoSaveDue reports whether the auto-save rule should fire at now.
func (g *Goal) IsAutoSaveDue(now time.Time) bool {
	return g.Status == GoalStatusActive &&
		g.AutoSave.Enabled &&
		g.AutoSave.NextDate != nil &&
		!g.AutoSave.NextDate.After(now)
}

// AdvanceAutoSave moves the next auto-save date forward by one frequency step.
func (g *Goal) AdvanceAutoSave() {
	if g.AutoSave.NextDate == nil {
		return
	}
	next := g.AutoSave.Frequency.Next(*g.AutoSave.NextDate)
	g.AutoSave.NextDate = &next
}

// ConfigureAutoSave validates and installs an auto-save rule.
// When enabled without a next date the first run is one frequency step after now.
func (g *Goal) ConfigureAutoSave(rule AutoSaveRule, now time.Time) error {
	if !rule.Enabled {
		g.AutoSave = AutoSaveRule{
			Amount:    rule.Amount,
			Frequency: rule.Frequency,
		}
		return nil
	}

	if !rule.Amount.IsPositive() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidAutoSave,
			"auto-save amount must be greater than zero",
			domainerror.ErrInvalidAutoSaveAmount,
		)
	}

	if !rule.Frequency.IsValid() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidAutoSave,
			"auto-save frequency must be 'daily', 'weekly' or 'monthly'",
			domainerror.ErrInvalidAutoSaveFrequency,
		)
	}

	if rule.NextDate == nil {
		next := rule.Frequency.Next(now)
		rule.NextDate = &next
	}

	g.AutoSave = rule
	return nil
}

// TransitionTo changes the goal status when the transition is allowed.
func (g *Goal) TransitionTo(status GoalStatus, now time.Time) error {
	if !status.IsValid() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalStatus,
			"status must be 'active', 'paused' or 'cancelled'",
			domainerror.ErrInvalidGoalStatus,
		)
	}

	if !g.Status.CanTransitionTo(status) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidStatusTransition,
			"cannot change goal status from "+string(g.Status)+" to "+string(status),
			domainerror.ErrInvalidGoalStatusTransition,
		)
	}

	g.Status = status
	g.UpdatedAt = now
	return nil
}

// Clone returns a deep copy of the goal.
func (g *Goal) Clone() *Goal {
	clone := *g
	clone.Contributions = append([]Contribution{}, g.Contributions...)
	clone.Milestones = make([]Milestone, len(g.Milestones))
	for i, milestone := range g.Milestones {
		if milestone.AchievedAt != nil {
			achievedAt := *milestone.AchievedAt
			milestone.AchievedAt = &achievedAt
		}
		clone.Milestones[i] = milestone
	}
	if g.AutoSave.NextDate != nil {
		next := *g.AutoSave.NextDate
		clone.AutoSave.NextDate = &next
	}
	if g.CompletedAt != nil {
		completedAt := *g.CompletedAt
		clone.CompletedAt = &completedAt
	}
	if g.DeletedAt != nil {
		deletedAt := *g.DeletedAt
		clone.DeletedAt = &deletedAt
	}
	return &clone
}

// GoalProgressSummary aggregates progress over a user's goals.
type GoalProgressSummary struct {
	ActiveCount     int
	CompletedCount  int
	TotalSaved      decimal.Decimal
	TotalTarget     decimal.Decimal
	OverallProgress decimal.Decimal
}

// SummarizeGoals aggregates active and completed goals.
func SummarizeGoals(goals []*Goal) GoalProgressSummary {
	summary := GoalProgressSummary{
		TotalSaved:  decimal.Zero,
		TotalTarget: decimal.Zero,
	}
	for _, goal := range goals {
		switch goal.Status {
		case GoalStatusActive:
			summary.ActiveCount++
		case GoalStatusCompleted:
			summary.CompletedCount++
		default:
			continue
		}
		summary.TotalSaved = summary.TotalSaved.Add(goal.CurrentAmount)
		summary.TotalTarget = summary.TotalTarget.Add(goal.TargetAmount)
	}
	summary.OverallProgress = Percentage(summary.TotalSaved, summary.TotalTarget)
	return summary
}

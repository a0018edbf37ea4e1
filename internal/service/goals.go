package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
	"financetracker/internal/utils"
)

// GoalInput carries the user-supplied fields for a goal write
type GoalInput struct {
	Name          string
	Description   string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time
	Icon          string
	Color         string
}

// GoalsOverview is the goals page payload
type GoalsOverview struct {
	Goals           []GoalStatus    `json:"goals"`
	TotalGoalAmount decimal.Decimal `json:"total_goal_amount"`
	TotalSaved      decimal.Decimal `json:"total_saved"`
	AverageProgress int             `json:"average_progress"`
	TotalGoals      int             `json:"total_goals"`
}

// GoalStatus flattens GoalData's computed fields for serialization
type GoalStatus struct {
	models.GoalData
	PercentageAchieved int `json:"percentage_achieved"`
	TimeLeft           int `json:"time_left"`
}

func validateGoalInput(in GoalInput) error {
	if in.Name == "" {
		return fmt.Errorf("goal name is required: %w", models.ErrValidation)
	}
	if !in.TargetAmount.IsPositive() {
		return fmt.Errorf("target amount must be greater than 0: %w", models.ErrValidation)
	}
	if in.TargetDate.IsZero() {
		return fmt.Errorf("target date is required: %w", models.ErrValidation)
	}
	if in.CurrentAmount.IsNegative() {
		return fmt.Errorf("current amount must not be negative: %w", models.ErrValidation)
	}
	return nil
}

// markAchievement flips the goal to achieved when the target is reached.
// The transition is monotonic: AchievedAt is stamped on the first crossing
// and never touched again.
func (s *Service) markAchievement(goal *models.Goal) {
	if !goal.Achieved && goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
		goal.Achieved = true
		achievedAt := s.now()
		goal.AchievedAt = &achievedAt
	}
}

// CreateGoal creates a savings goal and writes its first history snapshot
func (s *Service) CreateGoal(userID int64, in GoalInput) (*models.Goal, error) {
	if err := validateGoalInput(in); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		UserID:        userID,
		Name:          in.Name,
		Description:   in.Description,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		TargetDate:    in.TargetDate,
		Icon:          in.Icon,
		Color:         in.Color,
	}
	s.markAchievement(goal)
	if err := s.store.CreateGoal(goal); err != nil {
		return nil, err
	}
	if err := s.store.AppendGoalHistory(goal.ID, goal.CurrentAmount); err != nil {
		return goal, fmt.Errorf("goal created but history snapshot failed: %w", err)
	}

	s.log.Infof("Goal %q created for user %d", goal.Name, userID)
	return goal, nil
}

// UpdateGoal rewrites a goal's fields and appends a history snapshot. Every
// save produces exactly one snapshot; that log is the only audit trail of
// progress over time.
func (s *Service) UpdateGoal(userID, goalID int64, in GoalInput) (*models.Goal, error) {
	if err := validateGoalInput(in); err != nil {
		return nil, err
	}

	goal, err := s.store.FindGoalByID(goalID, userID)
	if err != nil {
		return nil, err
	}

	goal.Name = in.Name
	goal.Description = in.Description
	goal.TargetAmount = in.TargetAmount
	goal.CurrentAmount = in.CurrentAmount
	goal.TargetDate = in.TargetDate
	goal.Icon = in.Icon
	goal.Color = in.Color
	s.markAchievement(goal)
	if err := s.store.UpdateGoal(goal); err != nil {
		return nil, err
	}
	if err := s.store.AppendGoalHistory(goal.ID, goal.CurrentAmount); err != nil {
		return goal, fmt.Errorf("goal updated but history snapshot failed: %w", err)
	}

	s.log.Infof("Goal %d updated", goal.ID)
	return goal, nil
}

// DeleteGoal removes a goal along with its history
func (s *Service) DeleteGoal(userID, goalID int64) error {
	if err := s.store.DeleteGoal(goalID, userID); err != nil {
		return err
	}
	s.log.Infof("Goal %d deleted for user %d", goalID, userID)
	return nil
}

// AddMoneyToGoal records a contribution: the amount must be positive, it
// accumulates into the current amount even past the target, the achieved
// transition is evaluated, and one history snapshot is appended.
func (s *Service) AddMoneyToGoal(userID, goalID int64, amount decimal.Decimal) (*models.Goal, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than zero: %w", models.ErrValidation)
	}

	goal, err := s.store.FindGoalByID(goalID, userID)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	s.markAchievement(goal)
	if err := s.store.UpdateGoal(goal); err != nil {
		return nil, err
	}
	if err := s.store.AppendGoalHistory(goal.ID, goal.CurrentAmount); err != nil {
		return goal, fmt.Errorf("contribution recorded but history snapshot failed: %w", err)
	}

	s.log.Infof("Added %s to goal %d (now %s of %s)", amount, goal.ID, goal.CurrentAmount, goal.TargetAmount)
	return goal, nil
}

// QuickAddMoney contributes one of the preset amounts. It funnels through
// AddMoneyToGoal so the same invariants apply.
func (s *Service) QuickAddMoney(userID, goalID, preset int64) (*models.Goal, error) {
	valid := false
	for _, p := range models.QuickAddAmounts {
		if p == preset {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("unknown quick-add amount %d: %w", preset, models.ErrValidation)
	}
	return s.AddMoneyToGoal(userID, goalID, decimal.NewFromInt(preset))
}

// GetGoalsData returns the read-side projection of every goal
func (s *Service) GetGoalsData(userID int64) ([]models.GoalData, error) {
	goals, err := s.store.ListGoals(userID)
	if err != nil {
		return nil, err
	}

	data := make([]models.GoalData, 0, len(goals))
	for _, g := range goals {
		data = append(data, models.GoalData{
			ID:            g.ID,
			Name:          g.Name,
			Description:   g.Description,
			TargetAmount:  g.TargetAmount,
			CurrentAmount: g.CurrentAmount,
			TargetDate:    g.TargetDate,
			Icon:          g.Icon,
			Color:         g.Color,
		})
	}
	return data, nil
}

// GetGoalsOverview assembles the goals page: statuses, totals and the
// average progress across all goals.
func (s *Service) GetGoalsOverview(userID int64) (*GoalsOverview, error) {
	goals, err := s.GetGoalsData(userID)
	if err != nil {
		return nil, err
	}

	overview := &GoalsOverview{
		TotalGoalAmount: decimal.Zero,
		TotalSaved:      decimal.Zero,
		TotalGoals:      len(goals),
	}
	progressSum := 0
	today := s.now()
	for _, g := range goals {
		overview.Goals = append(overview.Goals, GoalStatus{
			GoalData:           g,
			PercentageAchieved: g.PercentageAchieved(),
			TimeLeft:           g.TimeLeft(today),
		})
		overview.TotalGoalAmount = overview.TotalGoalAmount.Add(g.TargetAmount)
		overview.TotalSaved = overview.TotalSaved.Add(g.CurrentAmount)
		progressSum += g.PercentageAchieved()
	}
	if len(goals) > 0 {
		overview.AverageProgress = progressSum / len(goals)
	}
	return overview, nil
}

// GetGoalsChartData reconstructs each goal's progress over the last 12
// months from its history snapshots.
func (s *Service) GetGoalsChartData(userID int64) (*models.GoalChartData, error) {
	months := utils.LastNMonths(12, s.now())

	goals, err := s.store.ListGoals(userID)
	if err != nil {
		return nil, err
	}

	chart := &models.GoalChartData{}
	for _, w := range months {
		chart.Labels = append(chart.Labels, w.ShortLabel())
	}

	for _, goal := range goals {
		history, err := s.store.GoalHistorySince(goal.ID, months[0].Start)
		if err != nil {
			return nil, err
		}

		color, ok := models.ColorMap[goal.Color]
		if !ok {
			color = models.ColorMap["primary"]
		}
		chart.Datasets = append(chart.Datasets, models.GoalChartSeries{
			Label: goal.Name,
			Color: color,
			Data:  BuildGoalSeries(history, months),
		})
	}
	return chart, nil
}

// BuildGoalSeries turns history snapshots into one value per month: the
// largest snapshot within each month, carried forward into months with no
// snapshot. A step function, not an interpolation; months before the first
// snapshot report zero.
func BuildGoalSeries(history []models.GoalHistory, months []utils.MonthWindow) []decimal.Decimal {
	monthlyMax := make(map[string]decimal.Decimal)
	for _, entry := range history {
		key := entry.Date.Format("2006-01")
		if current, ok := monthlyMax[key]; !ok || entry.Amount.GreaterThan(current) {
			monthlyMax[key] = entry.Amount
		}
	}

	data := make([]decimal.Decimal, 0, len(months))
	last := decimal.Zero
	for _, w := range months {
		if amount, ok := monthlyMax[w.Key()]; ok {
			last = amount
		}
		data = append(data, last)
	}
	return data
}

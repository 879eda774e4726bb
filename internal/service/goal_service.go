package service

import (
	"context"

	"fintrack/internal/apperr"
	"fintrack/internal/models"
	"fintrack/internal/repository"
)

const msgGoalMissing = "Goal not found"

type GoalService struct {
	goals repository.Goals
}

func NewGoalService(goals repository.Goals) *GoalService {
	return &GoalService{goals: goals}
}

// List returns the caller's goals, newest first.
func (s *GoalService) List(ctx context.Context, userID int) ([]models.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

// Create stores a new goal, filling in the icon default.
func (s *GoalService) Create(ctx context.Context, userID int, in GoalInput) (models.Goal, error) {
	g := models.Goal{
		UserID:        userID,
		Name:          in.Name,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Deadline:      in.Deadline,
		Icon:          in.Icon,
	}
	if g.Icon == "" {
		g.Icon = models.DefaultGoalIcon
	}

	id, err := s.goals.Create(ctx, g)
	if err != nil {
		return models.Goal{}, err
	}
	created, err := s.goals.GetByID(ctx, id)
	if err != nil {
		return models.Goal{}, err
	}
	if created == nil {
		g.ID = id
		return g, nil
	}
	return *created, nil
}

// Update merges a partial patch into the caller's goal. Every field is
// independently optional; name and icon are only applied when non-empty,
// a deadline of "" clears the stored deadline.
func (s *GoalService) Update(ctx context.Context, userID, id int, patch GoalPatch) (models.Goal, error) {
	g, err := s.ownedGoal(ctx, userID, id)
	if err != nil {
		return models.Goal{}, err
	}

	if patch.Name != nil && *patch.Name != "" {
		g.Name = *patch.Name
	}
	if patch.TargetAmount != nil {
		g.TargetAmount = *patch.TargetAmount
	}
	if patch.CurrentAmount != nil {
		g.CurrentAmount = *patch.CurrentAmount
	}
	if patch.Deadline != nil {
		if *patch.Deadline == "" {
			g.Deadline = nil
		} else {
			g.Deadline = patch.Deadline
		}
	}
	if patch.Icon != nil && *patch.Icon != "" {
		g.Icon = *patch.Icon
	}

	if err := s.goals.Update(ctx, *g); err != nil {
		return models.Goal{}, err
	}
	return *g, nil
}

// Delete removes the caller's goal.
func (s *GoalService) Delete(ctx context.Context, userID, id int) error {
	if _, err := s.ownedGoal(ctx, userID, id); err != nil {
		return err
	}
	return s.goals.Delete(ctx, id)
}

// ownedGoal loads a goal scoped to the caller. Missing and foreign goals
// are indistinguishable to the caller: both are a 404.
func (s *GoalService) ownedGoal(ctx context.Context, userID, id int) (*models.Goal, error) {
	g, err := s.goals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil || g.UserID != userID {
		return nil, apperr.NotFound(msgGoalMissing)
	}
	return g, nil
}

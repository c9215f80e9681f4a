package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pennywise/internal/errors"
	"pennywise/internal/model"
	"pennywise/internal/repository"
)

// GoalInput carries the writable goal fields.
type GoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
	Deadline     *time.Time
}

// GoalService handles savings goals. A contribution both grows the goal and
// records a matching expense transaction so the money shows up in monthly
// totals; the expense is written directly through the repository and does not
// run the budget evaluator.
type GoalService interface {
	Create(ctx context.Context, userID uuid.UUID, input GoalInput) (*model.Goal, error)
	Update(ctx context.Context, userID, id uuid.UUID, input GoalInput) (*model.Goal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]model.Goal, error)
	Contribute(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*model.Goal, error)
}

type goalService struct {
	goalRepo repository.GoalRepository
	txRepo   repository.TransactionRepository
}

// NewGoalService creates a new goal service.
func NewGoalService(goalRepo repository.GoalRepository, txRepo repository.TransactionRepository) GoalService {
	return &goalService{goalRepo: goalRepo, txRepo: txRepo}
}

func (s *goalService) Create(ctx context.Context, userID uuid.UUID, input GoalInput) (*model.Goal, error) {
	if input.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.ErrValidation
	}
	goal := &model.Goal{
		UserID:        userID,
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      input.Deadline,
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

func (s *goalService) Update(ctx context.Context, userID, id uuid.UUID, input GoalInput) (*model.Goal, error) {
	goal, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if input.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.ErrValidation
	}

	goal.Name = input.Name
	goal.TargetAmount = input.TargetAmount
	goal.Deadline = input.Deadline
	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return goal, nil
}

func (s *goalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.goalRepo.Delete(ctx, userID, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *goalService) List(ctx context.Context, userID uuid.UUID) ([]model.Goal, error) {
	return s.goalRepo.ListByUser(ctx, userID)
}

func (s *goalService) Contribute(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*model.Goal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.ErrValidation
	}

	goal, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}

	tx := &model.Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        model.TransactionTypeExpense,
		Date:        time.Now(),
		Description: fmt.Sprintf("Contribution to goal %q", goal.Name),
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("record contribution: %w", err)
	}

	return goal, nil
}

func (s *goalService) find(ctx context.Context, userID, id uuid.UUID) (*model.Goal, error) {
	goal, err := s.goalRepo.FindByID(ctx, userID, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return goal, nil
}

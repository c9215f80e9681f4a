package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pennywise/internal/model"
)

// BudgetRepository defines budget persistence operations.
type BudgetRepository interface {
	Upsert(ctx context.Context, budget *model.Budget) error
	FindByUserMonth(ctx context.Context, userID uuid.UUID, month string) (*model.Budget, error)
}

type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository.
func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

// Upsert creates the budget for (user, month) or replaces its limits. The
// category budget lines are rewritten wholesale inside one transaction.
func (r *budgetRepository) Upsert(ctx context.Context, budget *model.Budget) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Budget
		err := tx.Where("user_id = ? AND month = ?", budget.UserID, budget.Month).
			First(&existing).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		if err == gorm.ErrRecordNotFound {
			return tx.Create(budget).Error
		}

		existing.TotalBudget = budget.TotalBudget
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		if err := tx.Where("budget_id = ?", existing.ID).
			Delete(&model.CategoryBudget{}).Error; err != nil {
			return err
		}
		for i := range budget.CategoryBudgets {
			budget.CategoryBudgets[i].ID = uuid.Nil
			budget.CategoryBudgets[i].BudgetID = existing.ID
		}
		if len(budget.CategoryBudgets) > 0 {
			if err := tx.Create(&budget.CategoryBudgets).Error; err != nil {
				return err
			}
		}
		budget.ID = existing.ID
		return nil
	})
}

func (r *budgetRepository) FindByUserMonth(ctx context.Context, userID uuid.UUID, month string) (*model.Budget, error) {
	var budget model.Budget
	if err := r.db.WithContext(ctx).
		Preload("CategoryBudgets").
		Where("user_id = ? AND month = ?", userID, month).
		First(&budget).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget holds a user's spending limits for one calendar month (YYYY-MM).
// Uniqueness of (user, month) is enforced at the schema level.
type Budget struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_budget_user_month"`
	Month       string          `json:"month" gorm:"type:char(7);not null;uniqueIndex:idx_budget_user_month"` // YYYY-MM
	TotalBudget decimal.Decimal `json:"total_budget" gorm:"type:decimal(20,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	CategoryBudgets []CategoryBudget `json:"category_budgets,omitempty" gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// CategoryLimit returns the configured limit for a category, or zero when the
// category has no entry. A zero limit means "no budget set for this scope".
func (b *Budget) CategoryLimit(categoryID uuid.UUID) decimal.Decimal {
	for _, cb := range b.CategoryBudgets {
		if cb.CategoryID == categoryID {
			return cb.Amount
		}
	}
	return decimal.Zero
}

// CategoryBudget is a per-category limit line inside a Budget.
type CategoryBudget struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	BudgetID   uuid.UUID       `json:"budget_id" gorm:"type:char(36);not null;index"`
	CategoryID uuid.UUID       `json:"category_id" gorm:"type:char(36);not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (cb *CategoryBudget) BeforeCreate(tx *gorm.DB) error {
	if cb.ID == uuid.Nil {
		cb.ID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringFrequency values for RecurringTransaction.Frequency.
const (
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// RecurringTransaction is a template for a repeating transaction. The schema
// ships with the service but no worker materializes instances from it yet.
type RecurringTransaction struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty" gorm:"type:char(36)"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Type        TransactionType `json:"type" gorm:"type:varchar(10);not null"`
	Frequency   string          `json:"frequency" gorm:"type:varchar(10);not null"`
	NextRunAt   time.Time       `json:"next_run_at"`
	Description string          `json:"description,omitempty" gorm:"size:500"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (rt *RecurringTransaction) BeforeCreate(tx *gorm.DB) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return nil
}

package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	glog "github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pennywise/internal/model"
	"pennywise/internal/repository"
)

const monthLayout = "2006-01"

// approachingRatio is the fraction of a limit at which a warning fires.
var approachingRatio = decimal.RequireFromString("0.9")

// AlertScope identifies which limit a budget alert refers to.
type AlertScope string

// AlertStatus is the severity of a budget alert.
type AlertStatus string

const (
	AlertScopeTotal    AlertScope = "total"
	AlertScopeCategory AlertScope = "category"

	AlertStatusApproaching AlertStatus = "approaching"
	AlertStatusExceeded    AlertStatus = "exceeded"
)

// Alert is one threshold crossing found during evaluation. Alerts are a
// logging side channel only, nothing persists or deduplicates them.
type Alert struct {
	Scope      AlertScope
	Status     AlertStatus
	Month      string
	CategoryID *uuid.UUID
	Limit      decimal.Decimal
	Spent      decimal.Decimal
	Percentage int
}

// BudgetAlertService checks monthly spend against configured limits after a
// transaction write and emits warning-level log events. It never blocks or
// modifies the transaction.
type BudgetAlertService interface {
	Evaluate(ctx context.Context, tx *model.Transaction) ([]Alert, error)
}

type budgetAlertService struct {
	budgetRepo repository.BudgetRepository
	txRepo     repository.TransactionRepository
	logger     *glog.Logger
}

// NewBudgetAlertService creates a new budget alert evaluator.
func NewBudgetAlertService(budgetRepo repository.BudgetRepository, txRepo repository.TransactionRepository) BudgetAlertService {
	return &budgetAlertService{
		budgetRepo: budgetRepo,
		txRepo:     txRepo,
		logger:     glog.New("budget"),
	}
}

// Evaluate computes the user's expense total for the transaction's month,
// overall and for the transaction's category, and compares both against the
// budget configured for that month. Calendar-month boundaries are derived from
// the YYYY-MM key in UTC regardless of the transaction's original zone.
func (s *budgetAlertService) Evaluate(ctx context.Context, tx *model.Transaction) ([]Alert, error) {
	if tx.Type != model.TransactionTypeExpense {
		return nil, nil
	}

	date := tx.Date
	if date.IsZero() {
		date = time.Now()
	}
	month := monthOf(date)

	budget, err := s.budgetRepo.FindByUserMonth(ctx, tx.UserID, month)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			// no budget configured for this month, nothing to evaluate
			return nil, nil
		}
		return nil, fmt.Errorf("load budget %s: %w", month, err)
	}

	from, to, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	totalSpent, err := s.txRepo.SumExpenses(ctx, tx.UserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum expenses %s: %w", month, err)
	}

	var alerts []Alert
	if a := checkThreshold(AlertScopeTotal, nil, totalSpent, budget.TotalBudget, month); a != nil {
		alerts = append(alerts, *a)
	}

	if tx.CategoryID != nil {
		catSpent, err := s.txRepo.SumExpensesByCategory(ctx, tx.UserID, *tx.CategoryID, from, to)
		if err != nil {
			return nil, fmt.Errorf("sum category expenses %s: %w", month, err)
		}
		limit := budget.CategoryLimit(*tx.CategoryID)
		if a := checkThreshold(AlertScopeCategory, tx.CategoryID, catSpent, limit, month); a != nil {
			alerts = append(alerts, *a)
		}
	}

	for _, a := range alerts {
		s.logAlert(a)
	}
	return alerts, nil
}

// checkThreshold applies the 90%/100% policy for one scope. A limit of zero
// means no budget is set for the scope and never triggers.
func checkThreshold(scope AlertScope, categoryID *uuid.UUID, spent, limit decimal.Decimal, month string) *Alert {
	if limit.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	alert := Alert{
		Scope:      scope,
		Month:      month,
		CategoryID: categoryID,
		Limit:      limit,
		Spent:      spent,
	}
	switch {
	case spent.GreaterThanOrEqual(limit):
		alert.Status = AlertStatusExceeded
		alert.Percentage = 100
	case spent.GreaterThanOrEqual(limit.Mul(approachingRatio)):
		alert.Status = AlertStatusApproaching
		alert.Percentage = 90
	default:
		return nil
	}
	return &alert
}

func (s *budgetAlertService) logAlert(a Alert) {
	fields := glog.JSON{
		"event":      "budget_alert",
		"scope":      a.Scope,
		"status":     a.Status,
		"month":      a.Month,
		"limit":      a.Limit.String(),
		"spent":      a.Spent.String(),
		"percentage": a.Percentage,
	}
	if a.CategoryID != nil {
		fields["category_id"] = a.CategoryID.String()
	}
	s.logger.Warnj(fields)
}

// parseMonth returns the UTC calendar window [start, end) for a YYYY-MM key.
func parseMonth(month string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation(monthLayout, month, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse month %q: %w", month, err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// monthOf derives the YYYY-MM budget key from a transaction date.
func monthOf(t time.Time) string {
	return t.UTC().Format(monthLayout)
}

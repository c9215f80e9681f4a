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

	"pennywise/internal/cache"
	"pennywise/internal/errors"
	"pennywise/internal/model"
	"pennywise/internal/repository"
)

// TransactionInput carries the writable transaction fields.
type TransactionInput struct {
	Amount      decimal.Decimal
	Type        model.TransactionType
	CategoryID  *uuid.UUID
	Date        *time.Time
	Description string
}

// MonthlyStats aggregates one month of activity for a user.
type MonthlyStats struct {
	Month        string                     `json:"month"`
	TotalIncome  decimal.Decimal            `json:"total_income"`
	TotalExpense decimal.Decimal            `json:"total_expense"`
	Balance      decimal.Decimal            `json:"balance"`
	ByCategory   []repository.CategoryTotal `json:"by_category"`
}

// TransactionService handles transaction operations. Every create and update
// runs the budget evaluator as a best-effort side effect: evaluator failures
// are logged and swallowed, never surfaced to the caller.
type TransactionService interface {
	Create(ctx context.Context, userID uuid.UUID, input TransactionInput) (*model.Transaction, error)
	Update(ctx context.Context, userID, id uuid.UUID, input TransactionInput) (*model.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, month string, filter repository.TransactionFilter) ([]model.Transaction, int64, error)
	Stats(ctx context.Context, userID uuid.UUID, month string) (*MonthlyStats, error)
}

type transactionService struct {
	txRepo       repository.TransactionRepository
	categoryRepo repository.CategoryRepository
	alerts       BudgetAlertService
	cache        *cache.Client
	logger       *glog.Logger
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	txRepo repository.TransactionRepository,
	categoryRepo repository.CategoryRepository,
	alerts BudgetAlertService,
	cache *cache.Client,
) TransactionService {
	return &transactionService{
		txRepo:       txRepo,
		categoryRepo: categoryRepo,
		alerts:       alerts,
		cache:        cache,
		logger:       glog.New("transactions"),
	}
}

func summaryCacheKey(userID uuid.UUID, month string) string {
	return fmt.Sprintf("summary:%s:%s", userID, month)
}

func (s *transactionService) Create(ctx context.Context, userID uuid.UUID, input TransactionInput) (*model.Transaction, error) {
	if err := s.checkCategory(ctx, userID, input.CategoryID); err != nil {
		return nil, err
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	tx := &model.Transaction{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Type:        input.Type,
		Date:        date,
		Description: input.Description,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.afterWrite(ctx, tx)
	return tx, nil
}

func (s *transactionService) Update(ctx context.Context, userID, id uuid.UUID, input TransactionInput) (*model.Transaction, error) {
	tx, err := s.txRepo.FindByID(ctx, userID, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	if err := s.checkCategory(ctx, userID, input.CategoryID); err != nil {
		return nil, err
	}

	oldMonth := monthOf(tx.Date)

	tx.Amount = input.Amount
	tx.Type = input.Type
	tx.CategoryID = input.CategoryID
	tx.Description = input.Description
	if input.Date != nil {
		tx.Date = *input.Date
	}
	tx.Category = nil

	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	if oldMonth != monthOf(tx.Date) {
		_ = s.cache.Delete(ctx, summaryCacheKey(userID, oldMonth))
	}
	s.afterWrite(ctx, tx)
	return tx, nil
}

func (s *transactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tx, err := s.txRepo.FindByID(ctx, userID, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound
		}
		return err
	}
	if err := s.txRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, summaryCacheKey(userID, monthOf(tx.Date)))
	return nil
}

func (s *transactionService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error) {
	tx, err := s.txRepo.FindByID(ctx, userID, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) List(ctx context.Context, userID uuid.UUID, month string, filter repository.TransactionFilter) ([]model.Transaction, int64, error) {
	if month != "" {
		from, to, err := parseMonth(month)
		if err != nil {
			return nil, 0, errors.ErrInvalidMonth
		}
		filter.From = &from
		filter.To = &to
	}
	return s.txRepo.List(ctx, userID, filter)
}

// Stats aggregates one calendar month of income and expense per category.
func (s *transactionService) Stats(ctx context.Context, userID uuid.UUID, month string) (*MonthlyStats, error) {
	if month == "" {
		month = monthOf(time.Now())
	}
	from, to, err := parseMonth(month)
	if err != nil {
		return nil, errors.ErrInvalidMonth
	}

	rows, err := s.txRepo.CategoryTotals(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}

	stats := &MonthlyStats{Month: month, ByCategory: rows}
	for _, row := range rows {
		switch row.Type {
		case model.TransactionTypeIncome:
			stats.TotalIncome = stats.TotalIncome.Add(row.Total)
		case model.TransactionTypeExpense:
			stats.TotalExpense = stats.TotalExpense.Add(row.Total)
		}
	}
	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpense)
	return stats, nil
}

// checkCategory verifies the referenced category belongs to the user.
func (s *transactionService) checkCategory(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, userID, *categoryID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound
		}
		return err
	}
	return nil
}

// afterWrite runs the budget evaluator and drops the month's cached summary.
// Neither step may fail the write that triggered it.
func (s *transactionService) afterWrite(ctx context.Context, tx *model.Transaction) {
	_ = s.cache.Delete(ctx, summaryCacheKey(tx.UserID, monthOf(tx.Date)))

	if _, err := s.alerts.Evaluate(ctx, tx); err != nil {
		s.logger.Warnj(glog.JSON{
			"event":          "budget_evaluation_failed",
			"transaction_id": tx.ID.String(),
			"error":          err.Error(),
		})
	}
}

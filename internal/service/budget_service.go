package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pennywise/internal/cache"
	"pennywise/internal/errors"
	"pennywise/internal/model"
	"pennywise/internal/repository"
)

const summaryCacheTTL = 5 * time.Minute

// CategoryBudgetInput is one per-category limit line.
type CategoryBudgetInput struct {
	CategoryID uuid.UUID
	Amount     decimal.Decimal
}

// BudgetInput carries the writable budget fields.
type BudgetInput struct {
	Month           string
	TotalBudget     decimal.Decimal
	CategoryBudgets []CategoryBudgetInput
}

// CategorySummary is spent-vs-limit for one category.
type CategorySummary struct {
	CategoryID uuid.UUID       `json:"category_id"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
}

// BudgetSummary is the spent-vs-limit view of one month.
type BudgetSummary struct {
	Month       string            `json:"month"`
	TotalBudget decimal.Decimal   `json:"total_budget"`
	TotalSpent  decimal.Decimal   `json:"total_spent"`
	Remaining   decimal.Decimal   `json:"remaining"`
	Categories  []CategorySummary `json:"categories"`
}

// BudgetService handles budget configuration and the monthly summary view.
// The evaluator reads budgets but never writes them.
type BudgetService interface {
	Upsert(ctx context.Context, userID uuid.UUID, input BudgetInput) (*model.Budget, error)
	Get(ctx context.Context, userID uuid.UUID, month string) (*model.Budget, error)
	Summary(ctx context.Context, userID uuid.UUID, month string) (*BudgetSummary, error)
}

type budgetService struct {
	budgetRepo   repository.BudgetRepository
	txRepo       repository.TransactionRepository
	categoryRepo repository.CategoryRepository
	cache        *cache.Client
}

// NewBudgetService creates a new budget service.
func NewBudgetService(
	budgetRepo repository.BudgetRepository,
	txRepo repository.TransactionRepository,
	categoryRepo repository.CategoryRepository,
	cache *cache.Client,
) BudgetService {
	return &budgetService{
		budgetRepo:   budgetRepo,
		txRepo:       txRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

func (s *budgetService) Upsert(ctx context.Context, userID uuid.UUID, input BudgetInput) (*model.Budget, error) {
	if _, _, err := parseMonth(input.Month); err != nil {
		return nil, errors.ErrInvalidMonth
	}
	if input.TotalBudget.IsNegative() {
		return nil, errors.ErrValidation
	}

	budget := &model.Budget{
		UserID:      userID,
		Month:       input.Month,
		TotalBudget: input.TotalBudget,
	}
	for _, cb := range input.CategoryBudgets {
		if _, err := s.categoryRepo.FindByID(ctx, userID, cb.CategoryID); err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.ErrNotFound
			}
			return nil, err
		}
		budget.CategoryBudgets = append(budget.CategoryBudgets, model.CategoryBudget{
			CategoryID: cb.CategoryID,
			Amount:     cb.Amount,
		})
	}

	if err := s.budgetRepo.Upsert(ctx, budget); err != nil {
		return nil, fmt.Errorf("upsert budget: %w", err)
	}

	_ = s.cache.Delete(ctx, summaryCacheKey(userID, input.Month))
	return budget, nil
}

func (s *budgetService) Get(ctx context.Context, userID uuid.UUID, month string) (*model.Budget, error) {
	if _, _, err := parseMonth(month); err != nil {
		return nil, errors.ErrInvalidMonth
	}
	budget, err := s.budgetRepo.FindByUserMonth(ctx, userID, month)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return budget, nil
}

// Summary computes spent-vs-limit for the month, cached until the next
// transaction or budget write invalidates it.
func (s *budgetService) Summary(ctx context.Context, userID uuid.UUID, month string) (*BudgetSummary, error) {
	if month == "" {
		month = monthOf(time.Now())
	}
	from, to, err := parseMonth(month)
	if err != nil {
		return nil, errors.ErrInvalidMonth
	}

	key := summaryCacheKey(userID, month)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached BudgetSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	budget, err := s.budgetRepo.FindByUserMonth(ctx, userID, month)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	totalSpent, err := s.txRepo.SumExpenses(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum expenses: %w", err)
	}

	summary := &BudgetSummary{
		Month:       month,
		TotalBudget: budget.TotalBudget,
		TotalSpent:  totalSpent,
		Remaining:   budget.TotalBudget.Sub(totalSpent),
		Categories:  make([]CategorySummary, 0, len(budget.CategoryBudgets)),
	}
	for _, cb := range budget.CategoryBudgets {
		spent, err := s.txRepo.SumExpensesByCategory(ctx, userID, cb.CategoryID, from, to)
		if err != nil {
			return nil, fmt.Errorf("sum category expenses: %w", err)
		}
		summary.Categories = append(summary.Categories, CategorySummary{
			CategoryID: cb.CategoryID,
			Limit:      cb.Amount,
			Spent:      spent,
		})
	}

	if payload, err := json.Marshal(summary); err == nil {
		_ = s.cache.Set(ctx, key, payload, summaryCacheTTL)
	}
	return summary, nil
}

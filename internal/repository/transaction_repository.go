package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pennywise/internal/model"
)

// TransactionFilter narrows List results.
type TransactionFilter struct {
	Type       model.TransactionType
	CategoryID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

// CategoryTotal is one row of a per-category aggregation.
type CategoryTotal struct {
	CategoryID *uuid.UUID            `json:"category_id"`
	Type       model.TransactionType `json:"type"`
	Total      decimal.Decimal       `json:"total"`
}

// TransactionRepository defines transaction persistence operations.
type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	Update(ctx context.Context, tx *model.Transaction) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]model.Transaction, int64, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error)
	SumExpenses(ctx context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	SumExpensesByCategory(ctx context.Context, userID, categoryID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	CategoryTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]CategoryTotal, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) Update(ctx context.Context, tx *model.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Transaction{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *transactionRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error) {
	var tx model.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND id = ?", userID, id).
		First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) List(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]model.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{}).Where("user_id = ?", userID)

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date < ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var txs []model.Transaction
	if err := q.Preload("Category").
		Order("date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

func (r *transactionRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	var txs []model.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// SumExpenses aggregates expense amounts for the user inside [from, to).
func (r *transactionRepository) SumExpenses(ctx context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?",
			userID, model.TransactionTypeExpense, from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumExpensesByCategory aggregates expense amounts for one category inside [from, to).
func (r *transactionRepository) SumExpensesByCategory(ctx context.Context, userID, categoryID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ? AND category_id = ? AND type = ? AND date >= ? AND date < ?",
			userID, categoryID, model.TransactionTypeExpense, from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// CategoryTotals groups amounts by category and type inside [from, to).
func (r *transactionRepository) CategoryTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Select("category_id, type, SUM(amount) AS total").
		Group("category_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"pennywise/internal/model"
)

func expenseOn(userID uuid.UUID, categoryID *uuid.UUID, amount string, date time.Time) *model.Transaction {
	return &model.Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
		Type:       model.TransactionTypeExpense,
		Date:       date,
	}
}

func TestBudgetAlertService_Evaluate(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()
	date := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	monthStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	budget := func(total string) *model.Budget {
		return &model.Budget{
			ID:          uuid.New(),
			UserID:      userID,
			Month:       "2025-03",
			TotalBudget: decimal.RequireFromString(total),
		}
	}

	tests := []struct {
		name      string
		tx        *model.Transaction
		setupMock func(*MockBudgetRepository, *MockTransactionRepository)
		expected  []Alert
	}{
		{
			name: "income is ignored",
			tx: &model.Transaction{
				UserID: userID,
				Amount: decimal.RequireFromString("500"),
				Type:   model.TransactionTypeIncome,
				Date:   date,
			},
			setupMock: func(mBudget *MockBudgetRepository, mTx *MockTransactionRepository) {},
			expected:  nil,
		},
		{
			name: "no budget configured",
			tx:   expenseOn(userID, nil, "50", date),
			setupMock: func(mBudget *MockBudgetRepository, mTx *MockTransactionRepository) {
				mBudget.On("FindByUserMonth", mock.Anything, userID, "2025-03").Return(nil, gorm.ErrRecordNotFound)
			},
			expected: nil,
		},
		{
			name: "zero total budget never triggers",
			tx:   expenseOn(userID, nil, "50", date),
			setupMock: func(mBudget *MockBudgetRepository, mTx *MockTransactionRepository) {
				mBudget.On("FindByUserMonth", mock.Anything, userID, "2025-03").Return(budget("0"), nil)
				mTx.On("SumExpenses", mock.Anything, userID, monthStart, monthEnd).Return(decimal.RequireFromString("50"), nil)
			},
			expected: nil,
		},
		{
			name: "below the warning threshold",
			tx:   expenseOn(userID, nil, "10", date),
			setupMock: func(mBudget *MockBudgetRepository, mTx *MockTransactionRepository) {
				mBudget.On("FindByUserMonth", mock.Anything, userID, "2025-03").Return(budget("100"), nil)
				mTx.On("SumExpenses", mock.Anything, userID, monthStart, monthEnd).Return(decimal.RequireFromString("89.99"), nil)
			},
			expected: nil,
		},
		{
			name: "90 percent of the total fires a warning",
			tx:   expenseOn(userID, nil, "10", date),
			setupMock: func(mBudget *MockBudgetRepository, mTx *MockTransactionRepository) {
				mBudget.On("FindByUserMonth", mock.Anything, userID, "2025-03").Return(budget("100"), nil)
				mTx.On("SumExpenses", mock.Anything, userID, monthStart, monthEnd).Return(decimal.RequireFromString("95"), nil)
			},
			expected: []Alert{{
				Scope:      AlertScopeTotal,
				Status:     AlertStatusApproaching,
				Month:      "2025-03",
				Limit:      decimal.RequireFromString("100"),
				Spent:      decimal.RequireFromString("95"),
				Percentage: 90,
			}},
		},
		{
			name: "spend at the limit is exceeded",
			tx:   expenseOn(userID, nil, "10", date),
			setupMock: func(mBudget *MockBudgetRepository, mTx *MockTransactionRepository) {
				mBudget.On("FindByUserMonth", mock.Anything, userID, "2025-03").Return(budget("100"), nil)
				mTx.On("SumExpenses", mock.Anything, userID, monthStart, monthEnd).Return(decimal.RequireFromString("100"), nil)
			},
			expected: []Alert{{
				Scope:      AlertScopeTotal,
				Status:     AlertStatusExceeded,
				Month:      "2025-03",
				Limit:      decimal.RequireFromString("100"),
				Spent:      decimal.RequireFromString("100"),
				Percentage: 100,
			}},
		},
		{
			name: "cumulative spend past the limit is exceeded",
			tx:   expenseOn(userID, nil, "10", date),
			setupMock: func(mBudget *MockBudgetRepository, mTx *MockTransactionRepository) {
				mBudget.On("FindByUserMonth", mock.Anything, userID, "2025-03").Return(budget("100"), nil)
				mTx.On("SumExpenses", mock.Anything, userID, monthStart, monthEnd).Return(decimal.RequireFromString("105"), nil)
			},
			expected: []Alert{{
				Scope:      AlertScopeTotal,
				Status:     AlertStatusExceeded,
				Month:      "2025-03",
				Limit:      decimal.RequireFromString("100"),
				Spent:      decimal.RequireFromString("105"),
				Percentage: 100,
			}},
		},
		{
			name: "category limit checked alongside the total",
			tx:   expenseOn(userID, &categoryID, "10", date),
			setupMock: func(mBudget *MockBudgetRepository, mTx *MockTransactionRepository) {
				b := budget("1000")
				b.CategoryBudgets = []model.CategoryBudget{{
					BudgetID:   b.ID,
					CategoryID: categoryID,
					Amount:     decimal.RequireFromString("50"),
				}}
				mBudget.On("FindByUserMonth", mock.Anything, userID, "2025-03").Return(b, nil)
				mTx.On("SumExpenses", mock.Anything, userID, monthStart, monthEnd).Return(decimal.RequireFromString("60"), nil)
				mTx.On("SumExpensesByCategory", mock.Anything, userID, categoryID, monthStart, monthEnd).Return(decimal.RequireFromString("60"), nil)
			},
			expected: []Alert{{
				Scope:      AlertScopeCategory,
				Status:     AlertStatusExceeded,
				Month:      "2025-03",
				CategoryID: &categoryID,
				Limit:      decimal.RequireFromString("50"),
				Spent:      decimal.RequireFromString("60"),
				Percentage: 100,
			}},
		},
		{
			name: "category without a configured limit is skipped",
			tx:   expenseOn(userID, &categoryID, "10", date),
			setupMock: func(mBudget *MockBudgetRepository, mTx *MockTransactionRepository) {
				mBudget.On("FindByUserMonth", mock.Anything, userID, "2025-03").Return(budget("1000"), nil)
				mTx.On("SumExpenses", mock.Anything, userID, monthStart, monthEnd).Return(decimal.RequireFromString("200"), nil)
				mTx.On("SumExpensesByCategory", mock.Anything, userID, categoryID, monthStart, monthEnd).Return(decimal.RequireFromString("200"), nil)
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBudgetRepo := new(MockBudgetRepository)
			mockTxRepo := new(MockTransactionRepository)
			tt.setupMock(mockBudgetRepo, mockTxRepo)

			service := NewBudgetAlertService(mockBudgetRepo, mockTxRepo)
			alerts, err := service.Evaluate(context.Background(), tt.tx)

			assert.NoError(t, err)
			assert.Len(t, alerts, len(tt.expected))
			for i, expected := range tt.expected {
				assert.Equal(t, expected.Scope, alerts[i].Scope)
				assert.Equal(t, expected.Status, alerts[i].Status)
				assert.Equal(t, expected.Month, alerts[i].Month)
				assert.Equal(t, expected.Percentage, alerts[i].Percentage)
				assert.True(t, expected.Limit.Equal(alerts[i].Limit))
				assert.True(t, expected.Spent.Equal(alerts[i].Spent))
				if expected.CategoryID != nil {
					assert.Equal(t, *expected.CategoryID, *alerts[i].CategoryID)
				} else {
					assert.Nil(t, alerts[i].CategoryID)
				}
			}

			mockBudgetRepo.AssertExpectations(t)
			mockTxRepo.AssertExpectations(t)
		})
	}
}

// Threshold boundaries with fractional limits.
func TestCheckThreshold(t *testing.T) {
	limit := decimal.RequireFromString("33.50")

	tests := []struct {
		name     string
		spent    string
		expected *AlertStatus
	}{
		{name: "well under", spent: "10", expected: nil},
		{name: "just under 90 percent", spent: "30.14", expected: nil},
		{name: "exactly 90 percent", spent: "30.15", expected: statusPtr(AlertStatusApproaching)},
		{name: "between thresholds", spent: "33.49", expected: statusPtr(AlertStatusApproaching)},
		{name: "exactly at the limit", spent: "33.50", expected: statusPtr(AlertStatusExceeded)},
		{name: "over the limit", spent: "40", expected: statusPtr(AlertStatusExceeded)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert := checkThreshold(AlertScopeTotal, nil, decimal.RequireFromString(tt.spent), limit, "2025-03")
			if tt.expected == nil {
				assert.Nil(t, alert)
			} else {
				assert.NotNil(t, alert)
				assert.Equal(t, *tt.expected, alert.Status)
			}
		})
	}
}

func statusPtr(s AlertStatus) *AlertStatus { return &s }

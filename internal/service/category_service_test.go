package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"pennywise/internal/errors"
	"pennywise/internal/model"
)

func TestCategoryService_Create(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		categoryName  string
		setupMock     func(*MockCategoryRepository)
		expectedError error
	}{
		{
			name:         "successful create",
			categoryName: "Groceries",
			setupMock: func(m *MockCategoryRepository) {
				m.On("FindByName", mock.Anything, userID, "Groceries").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:         "duplicate name for the same user",
			categoryName: "Groceries",
			setupMock: func(m *MockCategoryRepository) {
				m.On("FindByName", mock.Anything, userID, "Groceries").Return(&model.Category{
					ID:     uuid.New(),
					UserID: userID,
					Name:   "Groceries",
				}, nil)
			},
			expectedError: errors.ErrCategoryExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			tt.setupMock(mockRepo)

			service := NewCategoryService(mockRepo)
			category, err := service.Create(context.Background(), userID, tt.categoryName)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, category)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.categoryName, category.Name)
				assert.Equal(t, userID, category.UserID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Rename(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()

	t.Run("rename to a free name", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, userID, categoryID).Return(&model.Category{
			ID: categoryID, UserID: userID, Name: "Food",
		}, nil)
		mockRepo.On("FindByName", mock.Anything, userID, "Dining").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Category) bool {
			return c.Name == "Dining"
		})).Return(nil)

		service := NewCategoryService(mockRepo)
		category, err := service.Rename(context.Background(), userID, categoryID, "Dining")

		assert.NoError(t, err)
		assert.Equal(t, "Dining", category.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rename to itself is allowed", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		existing := &model.Category{ID: categoryID, UserID: userID, Name: "Food"}
		mockRepo.On("FindByID", mock.Anything, userID, categoryID).Return(existing, nil)
		mockRepo.On("FindByName", mock.Anything, userID, "Food").Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		service := NewCategoryService(mockRepo)
		_, err := service.Rename(context.Background(), userID, categoryID, "Food")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rename onto another category", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, userID, categoryID).Return(&model.Category{
			ID: categoryID, UserID: userID, Name: "Food",
		}, nil)
		mockRepo.On("FindByName", mock.Anything, userID, "Rent").Return(&model.Category{
			ID: uuid.New(), UserID: userID, Name: "Rent",
		}, nil)

		service := NewCategoryService(mockRepo)
		category, err := service.Rename(context.Background(), userID, categoryID, "Rent")

		assert.Equal(t, errors.ErrCategoryExists, err)
		assert.Nil(t, category)
		mockRepo.AssertExpectations(t)
	})
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()

	mockRepo := new(MockCategoryRepository)
	mockRepo.On("Delete", mock.Anything, userID, categoryID).Return(gorm.ErrRecordNotFound)

	service := NewCategoryService(mockRepo)
	err := service.Delete(context.Background(), userID, categoryID)

	assert.Equal(t, errors.ErrNotFound, err)
	mockRepo.AssertExpectations(t)
}

package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pennywise/internal/errors"
	"pennywise/internal/model"
	"pennywise/internal/repository"
)

// CategoryService handles category operations.
type CategoryService interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (*model.Category, error)
	Rename(ctx context.Context, userID, id uuid.UUID, name string) (*model.Category, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, userID uuid.UUID, name string) (*model.Category, error) {
	if existing, err := s.repo.FindByName(ctx, userID, name); err == nil && existing != nil {
		return nil, errors.ErrCategoryExists
	} else if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check category name: %w", err)
	}

	category := &model.Category{UserID: userID, Name: name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Rename(ctx context.Context, userID, id uuid.UUID, name string) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	if existing, err := s.repo.FindByName(ctx, userID, name); err == nil && existing != nil && existing.ID != id {
		return nil, errors.ErrCategoryExists
	} else if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check category name: %w", err)
	}

	category.Name = name
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Delete removes the category. Transactions and budget lines referencing it
// are left untouched and simply carry a dangling reference.
func (s *categoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *categoryService) List(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

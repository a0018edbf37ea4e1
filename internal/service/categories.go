package service

import (
	"fmt"

	"financetracker/internal/models"
)

// CategoryInput carries the user-supplied fields for a category write
type CategoryInput struct {
	Name        string
	Description string
	Type        string
	Icon        string
	Color       string
}

// CreateCategory creates a new income or expense category
func (s *Service) CreateCategory(userID int64, in CategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("category name is required: %w", models.ErrValidation)
	}
	if !models.ValidType(in.Type) {
		return nil, fmt.Errorf("category type must be income or expense: %w", models.ErrValidation)
	}

	category := &models.Category{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Icon:        in.Icon,
		Color:       in.Color,
	}
	if err := s.store.CreateCategory(category); err != nil {
		return nil, err
	}

	s.log.Infof("Category %q created for user %d", category.Name, userID)
	return category, nil
}

// UpdateCategory rewrites a category's display fields. The type stays fixed:
// transactions copied their type from it and must keep agreeing with it.
func (s *Service) UpdateCategory(userID, categoryID int64, in CategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("category name is required: %w", models.ErrValidation)
	}

	category, err := s.store.FindCategoryByID(categoryID, userID)
	if err != nil {
		return nil, err
	}

	category.Name = in.Name
	category.Description = in.Description
	category.Icon = in.Icon
	category.Color = in.Color
	if err := s.store.UpdateCategory(category); err != nil {
		return nil, err
	}

	s.log.Infof("Category %d updated", category.ID)
	return category, nil
}

// DeleteCategory removes a category. Its transactions cascade away with it,
// so the cached balance is fully recalculated afterwards.
func (s *Service) DeleteCategory(userID, categoryID int64) error {
	account, err := s.store.FindAccountByUserID(userID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCategory(categoryID, userID); err != nil {
		return err
	}

	if _, err := s.store.RecalculateBalance(account.ID); err != nil {
		s.log.Errorf("Balance recalculation failed for account %d after deleting category %d: %v", account.ID, categoryID, err)
		return fmt.Errorf("category deleted but balance recalculation failed: %w", err)
	}

	s.log.Infof("Category %d deleted for user %d", categoryID, userID)
	return nil
}

// ListCategories returns the user's categories, optionally narrowed by type
func (s *Service) ListCategories(userID int64, categoryType string) ([]models.Category, error) {
	if categoryType != "" && !models.ValidType(categoryType) {
		return nil, fmt.Errorf("category type must be income or expense: %w", models.ErrValidation)
	}
	return s.store.ListCategories(userID, categoryType)
}

// GetCategoriesData returns each category of the given type with its
// all-time transaction count and total amount.
func (s *Service) GetCategoriesData(userID int64, categoryType string) ([]models.CategorySummary, error) {
	if !models.ValidType(categoryType) {
		return nil, fmt.Errorf("category type must be income or expense: %w", models.ErrValidation)
	}
	return s.store.CategorySummaries(userID, categoryType)
}

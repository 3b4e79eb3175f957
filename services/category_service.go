package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"marketplace-api/models"
	"marketplace-api/pkg/apperrors"
	"marketplace-api/repository"
)

// CategoryService owns the catalog category tree.
type CategoryService interface {
	Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, *apperrors.Error)
	Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateCategoryRequest) (*models.Category, *apperrors.Error)
	List(ctx context.Context) ([]models.Category, *apperrors.Error)
}

type categoryServiceImpl struct {
	categories repository.CategoryRepository
	logger     *zap.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categories repository.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryServiceImpl{categories: categories, logger: logger}
}

func (s *categoryServiceImpl) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, *apperrors.Error) {
	category := &models.Category{
		Name:      req.Name,
		Slug:      Slugify(req.Name),
		CreatedAt: time.Now().UTC(),
	}
	if req.Parent != "" {
		parentID, err := primitive.ObjectIDFromHex(req.Parent)
		if err != nil {
			return nil, apperrors.Validation("Invalid parent category id")
		}
		if _, err := s.categories.FindByID(ctx, parentID); err != nil {
			if isNotFound(err) {
				return nil, apperrors.NotFound("Parent category not found")
			}
			return nil, apperrors.Internal("Failed to load parent category", err)
		}
		category.Parent = &parentID
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Conflict("A category with this name already exists")
		}
		s.logger.Error("category insert failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to create category", err)
	}
	return category, nil
}

// Update merges a partial category update. Renaming recomputes the slug;
// a category can never become its own parent.
func (s *categoryServiceImpl) Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateCategoryRequest) (*models.Category, *apperrors.Error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Category not found")
		}
		return nil, apperrors.Internal("Failed to load category", err)
	}

	if req.Name != nil && *req.Name != category.Name {
		category.Name = *req.Name
		category.Slug = Slugify(*req.Name)
	}
	if req.Parent != nil {
		if *req.Parent == "" {
			category.Parent = nil
		} else {
			parentID, idErr := primitive.ObjectIDFromHex(*req.Parent)
			if idErr != nil {
				return nil, apperrors.Validation("Invalid parent category id")
			}
			if parentID == category.ID {
				return nil, apperrors.Validation("A category cannot be its own parent")
			}
			category.Parent = &parentID
		}
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Conflict("A category with this name already exists")
		}
		return nil, apperrors.Internal("Failed to update category", err)
	}
	return category, nil
}

func (s *categoryServiceImpl) List(ctx context.Context) ([]models.Category, *apperrors.Error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list categories", err)
	}
	return categories, nil
}

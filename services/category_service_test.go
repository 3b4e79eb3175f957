package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"marketplace-api/models"
	"marketplace-api/pkg/apperrors"
)

func TestCategoryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Top Level", func(t *testing.T) {
		mockCategories := new(MockCategoryRepository)
		svc := NewCategoryService(mockCategories, zap.NewNop())

		mockCategories.On("Create", ctx, mock.AnythingOfType("*models.Category")).Return(nil).Once()

		category, appErr := svc.Create(ctx, &models.CreateCategoryRequest{Name: "Home Office"})

		assert.Nil(t, appErr)
		assert.Equal(t, "home-office", category.Slug)
		assert.Nil(t, category.Parent)
		mockCategories.AssertExpectations(t)
	})

	t.Run("With Parent", func(t *testing.T) {
		mockCategories := new(MockCategoryRepository)
		svc := NewCategoryService(mockCategories, zap.NewNop())

		parentID := primitive.NewObjectID()
		mockCategories.On("FindByID", ctx, parentID).Return(&models.Category{ID: parentID}, nil).Once()
		mockCategories.On("Create", ctx, mock.AnythingOfType("*models.Category")).Return(nil).Once()

		category, appErr := svc.Create(ctx, &models.CreateCategoryRequest{Name: "Desks", Parent: parentID.Hex()})

		assert.Nil(t, appErr)
		assert.NotNil(t, category.Parent)
		assert.Equal(t, parentID, *category.Parent)
	})

	t.Run("Unknown Parent", func(t *testing.T) {
		mockCategories := new(MockCategoryRepository)
		svc := NewCategoryService(mockCategories, zap.NewNop())

		parentID := primitive.NewObjectID()
		mockCategories.On("FindByID", ctx, parentID).Return(nil, mongo.ErrNoDocuments).Once()

		_, appErr := svc.Create(ctx, &models.CreateCategoryRequest{Name: "Desks", Parent: parentID.Hex()})

		assert.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	})
}

func TestCategoryUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Rename Recomputes Slug", func(t *testing.T) {
		mockCategories := new(MockCategoryRepository)
		svc := NewCategoryService(mockCategories, zap.NewNop())

		category := &models.Category{ID: primitive.NewObjectID(), Name: "Desks", Slug: "desks"}
		mockCategories.On("FindByID", ctx, category.ID).Return(category, nil).Once()
		mockCategories.On("Update", ctx, category).Return(nil).Once()

		name := "Standing Desks"
		updated, appErr := svc.Update(ctx, category.ID, &models.UpdateCategoryRequest{Name: &name})

		assert.Nil(t, appErr)
		assert.Equal(t, "standing-desks", updated.Slug)
	})

	t.Run("Self Parent Rejected", func(t *testing.T) {
		mockCategories := new(MockCategoryRepository)
		svc := NewCategoryService(mockCategories, zap.NewNop())

		category := &models.Category{ID: primitive.NewObjectID(), Name: "Desks", Slug: "desks"}
		mockCategories.On("FindByID", ctx, category.ID).Return(category, nil).Once()

		self := category.ID.Hex()
		_, appErr := svc.Update(ctx, category.ID, &models.UpdateCategoryRequest{Parent: &self})

		assert.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindValidation, appErr.Kind)
		mockCategories.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Empty Parent Detaches", func(t *testing.T) {
		mockCategories := new(MockCategoryRepository)
		svc := NewCategoryService(mockCategories, zap.NewNop())

		parentID := primitive.NewObjectID()
		category := &models.Category{ID: primitive.NewObjectID(), Name: "Desks", Slug: "desks", Parent: &parentID}
		mockCategories.On("FindByID", ctx, category.ID).Return(category, nil).Once()
		mockCategories.On("Update", ctx, category).Return(nil).Once()

		empty := ""
		updated, appErr := svc.Update(ctx, category.ID, &models.UpdateCategoryRequest{Parent: &empty})

		assert.Nil(t, appErr)
		assert.Nil(t, updated.Parent)
	})
}

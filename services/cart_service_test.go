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

func TestRecomputeCartTotal(t *testing.T) {
	cart := &models.Cart{
		Items: []models.CartItem{
			{Price: 50, Quantity: 2},
			{Price: 30, Quantity: 1},
		},
	}
	RecomputeCartTotal(cart)
	assert.Equal(t, 130.0, cart.TotalCartPrice)
	assert.False(t, cart.UpdatedAt.IsZero())

	cart.Items = nil
	RecomputeCartTotal(cart)
	assert.Equal(t, 0.0, cart.TotalCartPrice)
}

func TestSpecsEqual(t *testing.T) {
	red := models.Specification{Key: "Color", Value: "Red"}
	blue := models.Specification{Key: "Color", Value: "Blue"}
	large := models.Specification{Key: "Size", Value: "L"}

	assert.True(t, SpecsEqual(nil, nil))
	assert.True(t, SpecsEqual([]models.Specification{red, large}, []models.Specification{large, red}))
	assert.False(t, SpecsEqual([]models.Specification{red}, []models.Specification{blue}))
	assert.False(t, SpecsEqual([]models.Specification{red}, []models.Specification{red, large}))
}

func TestCartAddItem(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	storeID := primitive.NewObjectID()

	discount := 75.0
	product := &models.Product{
		ID:            primitive.NewObjectID(),
		Name:          "Wireless Mouse",
		Price:         100,
		DiscountPrice: &discount,
		Store:         storeID,
		Stock:         10,
		IsActive:      true,
	}

	t.Run("First Item Snapshots Effective Price", func(t *testing.T) {
		mockCarts := new(MockCartRepository)
		mockProducts := new(MockProductRepository)
		svc := NewCartService(mockCarts, mockProducts, zap.NewNop())

		mockProducts.On("FindByID", ctx, product.ID).Return(product, nil).Once()
		mockCarts.On("FindByUser", ctx, userID).Return(nil, mongo.ErrNoDocuments).Once()
		mockCarts.On("Save", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		cart, appErr := svc.AddItem(ctx, userID, &models.AddCartItemRequest{
			ProductID: product.ID.Hex(),
			Quantity:  2,
		})

		assert.Nil(t, appErr)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, 75.0, cart.Items[0].Price)
		assert.Equal(t, storeID, cart.Items[0].Store)
		assert.Equal(t, 150.0, cart.TotalCartPrice)
		mockCarts.AssertExpectations(t)
	})

	t.Run("Same Product And Specs Merge", func(t *testing.T) {
		mockCarts := new(MockCartRepository)
		mockProducts := new(MockProductRepository)
		svc := NewCartService(mockCarts, mockProducts, zap.NewNop())

		existing := &models.Cart{
			User: userID,
			Items: []models.CartItem{
				{Product: product.ID, Store: storeID, Quantity: 1, Price: 75},
			},
		}
		mockProducts.On("FindByID", ctx, product.ID).Return(product, nil).Once()
		mockCarts.On("FindByUser", ctx, userID).Return(existing, nil).Once()
		mockCarts.On("Save", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		cart, appErr := svc.AddItem(ctx, userID, &models.AddCartItemRequest{
			ProductID: product.ID.Hex(),
			Quantity:  2,
		})

		assert.Nil(t, appErr)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.Items[0].Quantity)
		assert.Equal(t, 225.0, cart.TotalCartPrice)
	})

	t.Run("Different Specs Make A New Line", func(t *testing.T) {
		mockCarts := new(MockCartRepository)
		mockProducts := new(MockProductRepository)
		svc := NewCartService(mockCarts, mockProducts, zap.NewNop())

		existing := &models.Cart{
			User: userID,
			Items: []models.CartItem{
				{
					Product: product.ID, Store: storeID, Quantity: 1, Price: 75,
					SelectedSpecs: []models.Specification{{Key: "Color", Value: "Red"}},
				},
			},
		}
		mockProducts.On("FindByID", ctx, product.ID).Return(product, nil).Once()
		mockCarts.On("FindByUser", ctx, userID).Return(existing, nil).Once()
		mockCarts.On("Save", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		cart, appErr := svc.AddItem(ctx, userID, &models.AddCartItemRequest{
			ProductID:     product.ID.Hex(),
			Quantity:      1,
			SelectedSpecs: []models.Specification{{Key: "Color", Value: "Blue"}},
		})

		assert.Nil(t, appErr)
		assert.Len(t, cart.Items, 2)
	})

	t.Run("Deleted Product Rejected", func(t *testing.T) {
		mockCarts := new(MockCartRepository)
		mockProducts := new(MockProductRepository)
		svc := NewCartService(mockCarts, mockProducts, zap.NewNop())

		gone := &models.Product{ID: primitive.NewObjectID(), IsDeleted: true}
		mockProducts.On("FindByID", ctx, gone.ID).Return(gone, nil).Once()

		_, appErr := svc.AddItem(ctx, userID, &models.AddCartItemRequest{
			ProductID: gone.ID.Hex(),
			Quantity:  1,
		})

		assert.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindValidation, appErr.Kind)
		mockCarts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCartUpdateItem(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	t.Run("Quantity Set And Total Recomputed", func(t *testing.T) {
		mockCarts := new(MockCartRepository)
		svc := NewCartService(mockCarts, new(MockProductRepository), zap.NewNop())

		existing := &models.Cart{
			User:  userID,
			Items: []models.CartItem{{Product: productID, Quantity: 1, Price: 40}},
		}
		mockCarts.On("FindByUser", ctx, userID).Return(existing, nil).Once()
		mockCarts.On("Save", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		cart, appErr := svc.UpdateItem(ctx, userID, &models.UpdateCartItemRequest{
			ProductID: productID.Hex(),
			Quantity:  5,
		})

		assert.Nil(t, appErr)
		assert.Equal(t, 5, cart.Items[0].Quantity)
		assert.Equal(t, 200.0, cart.TotalCartPrice)
	})

	t.Run("Missing Line Not Found", func(t *testing.T) {
		mockCarts := new(MockCartRepository)
		svc := NewCartService(mockCarts, new(MockProductRepository), zap.NewNop())

		mockCarts.On("FindByUser", ctx, userID).
			Return(&models.Cart{User: userID, Items: []models.CartItem{}}, nil).Once()

		_, appErr := svc.UpdateItem(ctx, userID, &models.UpdateCartItemRequest{
			ProductID: productID.Hex(),
			Quantity:  5,
		})

		assert.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	})
}

func TestCartRemoveItem(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	keepID := primitive.NewObjectID()
	dropID := primitive.NewObjectID()

	mockCarts := new(MockCartRepository)
	svc := NewCartService(mockCarts, new(MockProductRepository), zap.NewNop())

	existing := &models.Cart{
		User: userID,
		Items: []models.CartItem{
			{Product: keepID, Quantity: 1, Price: 60},
			{Product: dropID, Quantity: 2, Price: 35},
		},
	}
	mockCarts.On("FindByUser", ctx, userID).Return(existing, nil).Once()
	mockCarts.On("Save", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

	cart, appErr := svc.RemoveItem(ctx, userID, &models.RemoveCartItemRequest{ProductID: dropID.Hex()})

	assert.Nil(t, appErr)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, keepID, cart.Items[0].Product)
	assert.Equal(t, 60.0, cart.TotalCartPrice)
	mockCarts.AssertExpectations(t)
}

func TestCartGetLazyCreate(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	mockCarts := new(MockCartRepository)
	svc := NewCartService(mockCarts, new(MockProductRepository), zap.NewNop())

	mockCarts.On("FindByUser", ctx, userID).Return(nil, mongo.ErrNoDocuments).Once()

	cart, appErr := svc.Get(ctx, userID)

	assert.Nil(t, appErr)
	assert.Equal(t, userID, cart.User)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalCartPrice)
}

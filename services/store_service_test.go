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

func TestStoreCreate(t *testing.T) {
	ctx := context.Background()
	ownerID := primitive.NewObjectID()

	req := &models.CreateStoreRequest{
		Name:        "Tech Store",
		Description: "Gadgets",
		Phone:       "5551234",
	}

	t.Run("Success Starts Pending", func(t *testing.T) {
		mockStores := new(MockStoreRepository)
		mockUsers := new(MockUserRepository)
		svc := NewStoreService(mockStores, mockUsers, zap.NewNop())

		mockStores.On("FindByOwner", ctx, ownerID).Return(nil, mongo.ErrNoDocuments).Once()
		mockStores.On("FindByName", ctx, "Tech Store").Return(nil, mongo.ErrNoDocuments).Once()
		mockStores.On("Create", ctx, mock.AnythingOfType("*models.Store")).Return(nil).Once()

		store, appErr := svc.Create(ctx, ownerID, req)

		assert.Nil(t, appErr)
		assert.Equal(t, models.StoreStatusPending, store.Status)
		assert.Equal(t, "tech-store", store.Slug)
		assert.Equal(t, ownerID, store.Owner)
		mockStores.AssertExpectations(t)
	})

	t.Run("Second Store Rejected", func(t *testing.T) {
		mockStores := new(MockStoreRepository)
		mockUsers := new(MockUserRepository)
		svc := NewStoreService(mockStores, mockUsers, zap.NewNop())

		mockStores.On("FindByOwner", ctx, ownerID).
			Return(&models.Store{ID: primitive.NewObjectID(), Owner: ownerID}, nil).Once()

		_, appErr := svc.Create(ctx, ownerID, req)

		assert.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindConflict, appErr.Kind)
		mockStores.AssertExpectations(t)
	})

	t.Run("Duplicate Name Rejected", func(t *testing.T) {
		mockStores := new(MockStoreRepository)
		mockUsers := new(MockUserRepository)
		svc := NewStoreService(mockStores, mockUsers, zap.NewNop())

		mockStores.On("FindByOwner", ctx, ownerID).Return(nil, mongo.ErrNoDocuments).Once()
		mockStores.On("FindByName", ctx, "Tech Store").
			Return(&models.Store{Name: "Tech Store"}, nil).Once()

		_, appErr := svc.Create(ctx, ownerID, req)

		assert.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindConflict, appErr.Kind)
		mockStores.AssertExpectations(t)
	})
}

func TestStoreApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending Store Activated And Owner Promoted", func(t *testing.T) {
		mockStores := new(MockStoreRepository)
		mockUsers := new(MockUserRepository)
		svc := NewStoreService(mockStores, mockUsers, zap.NewNop())

		ownerID := primitive.NewObjectID()
		store := &models.Store{
			ID:     primitive.NewObjectID(),
			Owner:  ownerID,
			Status: models.StoreStatusPending,
		}
		mockStores.On("FindByID", ctx, store.ID).Return(store, nil).Once()
		mockStores.On("Update", ctx, store).Return(nil).Once()
		mockUsers.On("FindByID", ctx, ownerID).
			Return(&models.User{ID: ownerID, Role: models.RoleCustomer}, nil).Once()
		mockUsers.On("SetRole", ctx, ownerID, models.RoleSeller).Return(nil).Once()

		approved, appErr := svc.Approve(ctx, store.ID)

		assert.Nil(t, appErr)
		assert.Equal(t, models.StoreStatusActive, approved.Status)
		mockStores.AssertExpectations(t)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Admin Owner Keeps Role", func(t *testing.T) {
		mockStores := new(MockStoreRepository)
		mockUsers := new(MockUserRepository)
		svc := NewStoreService(mockStores, mockUsers, zap.NewNop())

		ownerID := primitive.NewObjectID()
		store := &models.Store{
			ID:     primitive.NewObjectID(),
			Owner:  ownerID,
			Status: models.StoreStatusPending,
		}
		mockStores.On("FindByID", ctx, store.ID).Return(store, nil).Once()
		mockStores.On("Update", ctx, store).Return(nil).Once()
		mockUsers.On("FindByID", ctx, ownerID).
			Return(&models.User{ID: ownerID, Role: models.RoleAdmin}, nil).Once()

		_, appErr := svc.Approve(ctx, store.ID)

		assert.Nil(t, appErr)
		mockUsers.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything)
		mockStores.AssertExpectations(t)
	})

	t.Run("Active Store Is A No-Op", func(t *testing.T) {
		mockStores := new(MockStoreRepository)
		mockUsers := new(MockUserRepository)
		svc := NewStoreService(mockStores, mockUsers, zap.NewNop())

		store := &models.Store{ID: primitive.NewObjectID(), Status: models.StoreStatusActive}
		mockStores.On("FindByID", ctx, store.ID).Return(store, nil).Once()

		approved, appErr := svc.Approve(ctx, store.ID)

		assert.Nil(t, appErr)
		assert.Equal(t, models.StoreStatusActive, approved.Status)
		mockStores.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		mockStores.AssertExpectations(t)
	})

	t.Run("Closed Store Rejected", func(t *testing.T) {
		mockStores := new(MockStoreRepository)
		mockUsers := new(MockUserRepository)
		svc := NewStoreService(mockStores, mockUsers, zap.NewNop())

		store := &models.Store{ID: primitive.NewObjectID(), Status: models.StoreStatusClosed}
		mockStores.On("FindByID", ctx, store.ID).Return(store, nil).Once()

		_, appErr := svc.Approve(ctx, store.ID)

		assert.NotNil(t, appErr)
		assert.Equal(t, apperrors.KindValidation, appErr.Kind)
		mockStores.AssertExpectations(t)
	})
}

func TestStoreUpdateDetails(t *testing.T) {
	ctx := context.Background()
	ownerID := primitive.NewObjectID()

	newStore := func() *models.Store {
		return &models.Store{
			ID:          primitive.NewObjectID(),
			Owner:       ownerID,
			Name:        "Tech Store",
			Slug:        "tech-store",
			Description: "Gadgets",
			Status:      models.StoreStatusActive,
			Rating:      4.5,
		}
	}

	t.Run("Slug Recomputed Only On Name Change", func(t *testing.T) {
		mockStores := new(MockStoreRepository)
		svc := NewStoreService(mockStores, new(MockUserRepository), zap.NewNop())

		store := newStore()
		mockStores.On("FindByOwner", ctx, ownerID).Return(store, nil).Once()
		mockStores.On("Update", ctx, store).Return(nil).Once()

		desc := "Gadgets and more"
		updated, appErr := svc.UpdateDetails(ctx, ownerID, &models.UpdateStoreRequest{Description: &desc})

		assert.Nil(t, appErr)
		assert.Equal(t, "tech-store", updated.Slug)
		assert.Equal(t, "Gadgets and more", updated.Description)

		mockStores.On("FindByOwner", ctx, ownerID).Return(store, nil).Once()
		mockStores.On("Update", ctx, store).Return(nil).Once()

		name := "Gadget World"
		updated, appErr = svc.UpdateDetails(ctx, ownerID, &models.UpdateStoreRequest{Name: &name})

		assert.Nil(t, appErr)
		assert.Equal(t, "gadget-world", updated.Slug)
		mockStores.AssertExpectations(t)
	})

	t.Run("Status And Rating Untouched", func(t *testing.T) {
		mockStores := new(MockStoreRepository)
		svc := NewStoreService(mockStores, new(MockUserRepository), zap.NewNop())

		store := newStore()
		mockStores.On("FindByOwner", ctx, ownerID).Return(store, nil).Once()
		mockStores.On("Update", ctx, store).Return(nil).Once()

		phone := "5559999"
		updated, appErr := svc.UpdateDetails(ctx, ownerID, &models.UpdateStoreRequest{Phone: &phone})

		assert.Nil(t, appErr)
		assert.Equal(t, models.StoreStatusActive, updated.Status)
		assert.Equal(t, 4.5, updated.Rating)
		mockStores.AssertExpectations(t)
	})
}

func TestStoreClose(t *testing.T) {
	ctx := context.Background()
	ownerID := primitive.NewObjectID()

	mockStores := new(MockStoreRepository)
	svc := NewStoreService(mockStores, new(MockUserRepository), zap.NewNop())

	store := &models.Store{ID: primitive.NewObjectID(), Owner: ownerID, Status: models.StoreStatusActive}
	mockStores.On("FindByOwner", ctx, ownerID).Return(store, nil).Once()
	mockStores.On("Update", ctx, store).Return(nil).Once()

	closed, appErr := svc.Close(ctx, ownerID)

	assert.Nil(t, appErr)
	assert.True(t, closed.IsDeleted)
	assert.Equal(t, models.StoreStatusClosed, closed.Status)
	mockStores.AssertExpectations(t)
}

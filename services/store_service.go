package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"marketplace-api/models"
	"marketplace-api/pkg/apperrors"
	"marketplace-api/repository"
)

// StoreService owns the storefront lifecycle: seller application, admin
// approval, detail updates and soft closure.
type StoreService interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, req *models.CreateStoreRequest) (*models.Store, *apperrors.Error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.Store, *apperrors.Error)
	UpdateDetails(ctx context.Context, ownerID primitive.ObjectID, req *models.UpdateStoreRequest) (*models.Store, *apperrors.Error)
	Close(ctx context.Context, ownerID primitive.ObjectID) (*models.Store, *apperrors.Error)
	Approve(ctx context.Context, storeID primitive.ObjectID) (*models.Store, *apperrors.Error)
	ListPending(ctx context.Context) ([]models.Store, *apperrors.Error)
}

type storeServiceImpl struct {
	stores repository.StoreRepository
	users  repository.UserRepository
	logger *zap.Logger
}

// NewStoreService creates a StoreService.
func NewStoreService(stores repository.StoreRepository, users repository.UserRepository, logger *zap.Logger) StoreService {
	return &storeServiceImpl{stores: stores, users: users, logger: logger}
}

// Create registers a seller application. One non-deleted store per owner;
// names are globally unique. New stores await admin approval.
func (s *storeServiceImpl) Create(ctx context.Context, ownerID primitive.ObjectID, req *models.CreateStoreRequest) (*models.Store, *apperrors.Error) {
	if _, err := s.stores.FindByOwner(ctx, ownerID); err == nil {
		return nil, apperrors.Conflict("You already have a store")
	} else if !isNotFound(err) {
		return nil, apperrors.Internal("Failed to create store", err)
	}

	if _, err := s.stores.FindByName(ctx, req.Name); err == nil {
		return nil, apperrors.Conflict("A store with this name already exists")
	} else if !isNotFound(err) {
		return nil, apperrors.Internal("Failed to create store", err)
	}

	store := &models.Store{
		Owner:        ownerID,
		Name:         req.Name,
		Slug:         Slugify(req.Name),
		Description:  req.Description,
		Phone:        req.Phone,
		ContactEmail: req.ContactEmail,
		Status:       models.StoreStatusPending,
	}
	if req.Address != nil {
		store.Address = *req.Address
	}
	if req.SocialMedia != nil {
		store.SocialMedia = *req.SocialMedia
	}
	if req.TaxInfo != nil {
		store.TaxInfo = *req.TaxInfo
	}
	if req.Logo != nil {
		store.Logo = *req.Logo
	}
	if req.CoverImage != nil {
		store.CoverImage = *req.CoverImage
	}

	if err := s.stores.Create(ctx, store); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Conflict("A store with this name already exists")
		}
		s.logger.Error("store insert failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to create store", err)
	}

	s.logger.Info("store created, awaiting approval",
		zap.String("store_id", store.ID.Hex()),
		zap.String("owner", ownerID.Hex()),
	)
	return store, nil
}

func (s *storeServiceImpl) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.Store, *apperrors.Error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("You do not have a store")
		}
		return nil, apperrors.Internal("Failed to load store", err)
	}
	return store, nil
}

// UpdateDetails merges a partial update into the owner's store. Nested
// address, social media and tax info blocks merge field-by-field. The
// slug is recomputed only when the name changes. Status, rating and owner
// are not reachable from this path.
func (s *storeServiceImpl) UpdateDetails(ctx context.Context, ownerID primitive.ObjectID, req *models.UpdateStoreRequest) (*models.Store, *apperrors.Error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("You do not have a store")
		}
		return nil, apperrors.Internal("Failed to load store", err)
	}

	applyStoreUpdate(store, req)

	if err := s.stores.Update(ctx, store); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Conflict("A store with this name already exists")
		}
		s.logger.Error("store update failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to update store", err)
	}
	return store, nil
}

func applyStoreUpdate(store *models.Store, req *models.UpdateStoreRequest) {
	if req.Name != nil && *req.Name != store.Name {
		store.Name = *req.Name
		store.Slug = Slugify(*req.Name)
	}
	if req.Description != nil {
		store.Description = *req.Description
	}
	if req.ContactEmail != nil {
		store.ContactEmail = *req.ContactEmail
	}
	if req.Phone != nil {
		store.Phone = *req.Phone
	}
	if req.Address != nil {
		applyAddressUpdate(&store.Address, req.Address)
	}
	if req.SocialMedia != nil {
		if req.SocialMedia.Website != nil {
			store.SocialMedia.Website = *req.SocialMedia.Website
		}
		if req.SocialMedia.Instagram != nil {
			store.SocialMedia.Instagram = *req.SocialMedia.Instagram
		}
		if req.SocialMedia.Facebook != nil {
			store.SocialMedia.Facebook = *req.SocialMedia.Facebook
		}
	}
	if req.TaxInfo != nil {
		if req.TaxInfo.TaxNumber != nil {
			store.TaxInfo.TaxNumber = *req.TaxInfo.TaxNumber
		}
		if req.TaxInfo.TaxOffice != nil {
			store.TaxInfo.TaxOffice = *req.TaxInfo.TaxOffice
		}
		if req.TaxInfo.CompanyType != nil {
			store.TaxInfo.CompanyType = *req.TaxInfo.CompanyType
		}
	}
	if req.Logo != nil {
		store.Logo = *req.Logo
	}
	if req.CoverImage != nil {
		store.CoverImage = *req.CoverImage
	}
}

// Close soft-deletes the owner's store. Closure is terminal and does not
// cascade to the store's products.
func (s *storeServiceImpl) Close(ctx context.Context, ownerID primitive.ObjectID) (*models.Store, *apperrors.Error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("You do not have a store")
		}
		return nil, apperrors.Internal("Failed to load store", err)
	}

	store.IsDeleted = true
	store.Status = models.StoreStatusClosed
	if err := s.stores.Update(ctx, store); err != nil {
		s.logger.Error("store close failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to close store", err)
	}

	s.logger.Info("store closed", zap.String("store_id", store.ID.Hex()))
	return store, nil
}

// Approve activates a pending store and promotes its owner to seller
// (admins keep their role). Re-approving an active store is a no-op.
func (s *storeServiceImpl) Approve(ctx context.Context, storeID primitive.ObjectID) (*models.Store, *apperrors.Error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Store not found")
		}
		return nil, apperrors.Internal("Failed to load store", err)
	}

	if store.Status == models.StoreStatusActive {
		return store, nil
	}
	if store.Status != models.StoreStatusPending {
		return nil, apperrors.Validation("Only pending stores can be approved")
	}

	store.Status = models.StoreStatusActive
	if err := s.stores.Update(ctx, store); err != nil {
		s.logger.Error("store approval failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to approve store", err)
	}

	owner, err := s.users.FindByID(ctx, store.Owner)
	if err == nil && owner.Role != models.RoleAdmin {
		if err := s.users.SetRole(ctx, owner.ID, models.RoleSeller); err != nil {
			s.logger.Error("owner promotion failed",
				zap.String("user_id", owner.ID.Hex()), zap.Error(err))
		}
	}

	s.logger.Info("store approved", zap.String("store_id", store.ID.Hex()))
	return store, nil
}

func (s *storeServiceImpl) ListPending(ctx context.Context) ([]models.Store, *apperrors.Error) {
	stores, err := s.stores.FindByStatus(ctx, models.StoreStatusPending)
	if err != nil {
		return nil, apperrors.Internal("Failed to list pending stores", err)
	}
	return stores, nil
}

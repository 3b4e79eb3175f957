package services

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"marketplace-api/models"
	"marketplace-api/pkg/apperrors"
	"marketplace-api/repository"
)

// validate re-runs payload constraints at the service boundary so the
// invariants hold even for callers that bypass HTTP binding.
var validate = validator.New()

// ProductService owns the catalog: creation, ownership-gated mutation,
// soft deletion and listing.
type ProductService interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, req *models.CreateProductRequest) (*models.Product, *apperrors.Error)
	Update(ctx context.Context, ownerID, productID primitive.ObjectID, req *models.UpdateProductRequest) (*models.Product, *apperrors.Error)
	SoftDelete(ctx context.Context, ownerID, productID primitive.ObjectID) *apperrors.Error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, *apperrors.Error)
	ListStoreProducts(ctx context.Context, ownerID primitive.ObjectID) ([]models.Product, *apperrors.Error)
	ListPublic(ctx context.Context, query string, page, limit int) ([]models.Product, int64, *apperrors.Error)
}

type productServiceImpl struct {
	products   repository.ProductRepository
	stores     repository.StoreRepository
	categories repository.CategoryRepository
	cache      *ProductCache
	logger     *zap.Logger
}

// NewProductService creates a ProductService.
func NewProductService(
	products repository.ProductRepository,
	stores repository.StoreRepository,
	categories repository.CategoryRepository,
	cache *ProductCache,
	logger *zap.Logger,
) ProductService {
	return &productServiceImpl{
		products:   products,
		stores:     stores,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

// Create lists a new product under the caller's store. The store must be
// active; slug and sku get bounded random suffixes with the unique index
// as the collision backstop.
func (s *productServiceImpl) Create(ctx context.Context, ownerID primitive.ObjectID, req *models.CreateProductRequest) (*models.Product, *apperrors.Error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if req.DiscountPrice != nil && *req.DiscountPrice >= req.Price {
		return nil, apperrors.Validation("Discount price must be lower than the list price")
	}

	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("You do not have a store")
		}
		return nil, apperrors.Internal("Failed to load store", err)
	}
	if store.Status != models.StoreStatusActive {
		return nil, apperrors.Forbidden("Your store is not active yet")
	}

	categoryID, idErr := primitive.ObjectIDFromHex(req.Category)
	if idErr != nil {
		return nil, apperrors.Validation("Invalid category id")
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Category not found")
		}
		return nil, apperrors.Internal("Failed to load category", err)
	}

	product := &models.Product{
		Name:           req.Name,
		Slug:           ProductSlug(req.Name),
		SKU:            GenerateSKU(),
		Description:    req.Description,
		Price:          req.Price,
		DiscountPrice:  req.DiscountPrice,
		Category:       categoryID,
		Brand:          req.Brand,
		Stock:          req.Stock,
		Tags:           req.Tags,
		Specifications: req.Specifications,
		Images:         req.Images,
		Store:          store.ID,
		IsActive:       true,
	}

	if err := s.products.Create(ctx, product); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Conflict("A product with this slug or sku already exists")
		}
		s.logger.Error("product insert failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to create product", err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("product created",
		zap.String("product_id", product.ID.Hex()),
		zap.String("store_id", store.ID.Hex()),
	)
	return product, nil
}

// Update merges a partial update into a product owned by the caller's
// store. The discountPrice < price and stock >= 0 invariants are
// re-validated on the merged result.
func (s *productServiceImpl) Update(ctx context.Context, ownerID, productID primitive.ObjectID, req *models.UpdateProductRequest) (*models.Product, *apperrors.Error) {
	product, appErr := s.loadOwnedProduct(ctx, ownerID, productID)
	if appErr != nil {
		return nil, appErr
	}

	if req.Category != nil {
		categoryID, idErr := primitive.ObjectIDFromHex(*req.Category)
		if idErr != nil {
			return nil, apperrors.Validation("Invalid category id")
		}
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			if isNotFound(err) {
				return nil, apperrors.NotFound("Category not found")
			}
			return nil, apperrors.Internal("Failed to load category", err)
		}
		product.Category = categoryID
	}

	applyProductUpdate(product, req)

	if product.Price <= 0 {
		return nil, apperrors.Validation("Price must be greater than zero")
	}
	if product.Stock < 0 {
		return nil, apperrors.Validation("Stock cannot be negative")
	}
	if product.DiscountPrice != nil && *product.DiscountPrice >= product.Price {
		return nil, apperrors.Validation("Discount price must be lower than the list price")
	}

	if err := s.products.Update(ctx, product); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Conflict("A product with this slug already exists")
		}
		s.logger.Error("product update failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to update product", err)
	}

	s.cache.Invalidate(ctx)
	return product, nil
}

func applyProductUpdate(product *models.Product, req *models.UpdateProductRequest) {
	if req.Name != nil && *req.Name != product.Name {
		product.Name = *req.Name
		product.Slug = ProductSlug(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		if *req.DiscountPrice <= 0 {
			product.DiscountPrice = nil
		} else {
			product.DiscountPrice = req.DiscountPrice
		}
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Tags != nil {
		product.Tags = *req.Tags
	}
	if req.Specifications != nil {
		product.Specifications = *req.Specifications
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.IsActive != nil && !product.IsDeleted {
		product.IsActive = *req.IsActive
	}
}

// SoftDelete hides a product from every listing while keeping it
// addressable by id for historical orders.
func (s *productServiceImpl) SoftDelete(ctx context.Context, ownerID, productID primitive.ObjectID) *apperrors.Error {
	product, appErr := s.loadOwnedProduct(ctx, ownerID, productID)
	if appErr != nil {
		return appErr
	}

	product.IsDeleted = true
	product.IsActive = false
	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("product soft delete failed", zap.Error(err))
		return apperrors.Internal("Failed to delete product", err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("product soft-deleted", zap.String("product_id", product.ID.Hex()))
	return nil
}

// GetByID resolves a product by id, including soft-deleted ones so that
// historical order references keep working.
func (s *productServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, *apperrors.Error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal("Failed to load product", err)
	}
	return product, nil
}

// ListStoreProducts returns the non-deleted products of the caller's store.
func (s *productServiceImpl) ListStoreProducts(ctx context.Context, ownerID primitive.ObjectID) ([]models.Product, *apperrors.Error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("You do not have a store")
		}
		return nil, apperrors.Internal("Failed to load store", err)
	}

	products, err := s.products.FindByStore(ctx, store.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list products", err)
	}
	return products, nil
}

// ListPublic returns the marketplace-wide active catalog with optional
// text search, served from the redis cache when possible.
func (s *productServiceImpl) ListPublic(ctx context.Context, query string, page, limit int) ([]models.Product, int64, *apperrors.Error) {
	if cached, total, ok := s.cache.Get(ctx, query, page, limit); ok {
		var products []models.Product
		if err := json.Unmarshal(cached, &products); err == nil {
			return products, total, nil
		}
	}

	products, total, err := s.products.FindActive(ctx, query, page, limit)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list products", err)
	}

	if data, err := json.Marshal(products); err == nil {
		s.cache.Set(ctx, query, page, limit, data, total)
	}
	return products, total, nil
}

// loadOwnedProduct resolves the caller's store and a product, enforcing
// that the product belongs to that store.
func (s *productServiceImpl) loadOwnedProduct(ctx context.Context, ownerID, productID primitive.ObjectID) (*models.Product, *apperrors.Error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("You do not have a store")
		}
		return nil, apperrors.Internal("Failed to load store", err)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal("Failed to load product", err)
	}

	if product.Store != store.ID {
		return nil, apperrors.Forbidden("This product does not belong to your store")
	}
	return product, nil
}

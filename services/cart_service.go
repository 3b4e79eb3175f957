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

// RecomputeCartTotal sets totalCartPrice to the exact sum of line price
// times quantity and stamps updatedAt. It is idempotent and must be
// called after every item mutation; storage never triggers it implicitly.
func RecomputeCartTotal(cart *models.Cart) {
	var total float64
	for _, item := range cart.Items {
		total += item.Price * float64(item.Quantity)
	}
	cart.TotalCartPrice = total
	cart.UpdatedAt = time.Now().UTC()
}

// SpecsEqual compares two selected-spec sets ignoring order. Two cart
// lines for the same product merge only when their specs match.
func SpecsEqual(a, b []models.Specification) bool {
	if len(a) != len(b) {
		return false
	}
	for _, sa := range a {
		found := false
		for _, sb := range b {
			if sa.Key == sb.Key && sa.Value == sb.Value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CartService owns a customer's in-progress selection. Line prices are
// snapshots captured at add time and never re-read from the catalog.
type CartService interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, *apperrors.Error)
	AddItem(ctx context.Context, userID primitive.ObjectID, req *models.AddCartItemRequest) (*models.Cart, *apperrors.Error)
	UpdateItem(ctx context.Context, userID primitive.ObjectID, req *models.UpdateCartItemRequest) (*models.Cart, *apperrors.Error)
	RemoveItem(ctx context.Context, userID primitive.ObjectID, req *models.RemoveCartItemRequest) (*models.Cart, *apperrors.Error)
}

type cartServiceImpl struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a CartService.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, products: products, logger: logger}
}

// Get returns the user's cart, creating an empty one lazily.
func (s *cartServiceImpl) Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, *apperrors.Error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return &models.Cart{User: userID, Items: []models.CartItem{}}, nil
		}
		return nil, apperrors.Internal("Failed to load cart", err)
	}
	return cart, nil
}

// AddItem snapshots the product's current effective price and either
// merges into an existing line (same product and specs) or appends a new
// one, then recomputes the total.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID primitive.ObjectID, req *models.AddCartItemRequest) (*models.Cart, *apperrors.Error) {
	productID, idErr := primitive.ObjectIDFromHex(req.ProductID)
	if idErr != nil {
		return nil, apperrors.Validation("Invalid product id")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal("Failed to load product", err)
	}
	if product.IsDeleted || !product.IsActive {
		return nil, apperrors.Validation("This product is no longer available")
	}

	cart, appErr := s.Get(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].Product == productID && SpecsEqual(cart.Items[i].SelectedSpecs, req.SelectedSpecs) {
			cart.Items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			Product:       productID,
			Store:         product.Store,
			Quantity:      req.Quantity,
			Price:         product.EffectivePrice(),
			SelectedSpecs: req.SelectedSpecs,
		})
	}

	RecomputeCartTotal(cart)
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("cart save failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to save cart", err)
	}
	return cart, nil
}

// UpdateItem sets the quantity of an existing line and recomputes the
// total. The line keeps its original price snapshot.
func (s *cartServiceImpl) UpdateItem(ctx context.Context, userID primitive.ObjectID, req *models.UpdateCartItemRequest) (*models.Cart, *apperrors.Error) {
	productID, idErr := primitive.ObjectIDFromHex(req.ProductID)
	if idErr != nil {
		return nil, apperrors.Validation("Invalid product id")
	}

	cart, appErr := s.Get(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].Product == productID && SpecsEqual(cart.Items[i].SelectedSpecs, req.SelectedSpecs) {
			cart.Items[i].Quantity = req.Quantity
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.NotFound("Item not found in cart")
	}

	RecomputeCartTotal(cart)
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("cart save failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to save cart", err)
	}
	return cart, nil
}

// RemoveItem deletes a line and recomputes the total.
func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID primitive.ObjectID, req *models.RemoveCartItemRequest) (*models.Cart, *apperrors.Error) {
	productID, idErr := primitive.ObjectIDFromHex(req.ProductID)
	if idErr != nil {
		return nil, apperrors.Validation("Invalid product id")
	}

	cart, appErr := s.Get(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	kept := cart.Items[:0]
	removed := false
	for _, item := range cart.Items {
		if item.Product == productID && SpecsEqual(item.SelectedSpecs, req.SelectedSpecs) {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil, apperrors.NotFound("Item not found in cart")
	}
	cart.Items = kept

	RecomputeCartTotal(cart)
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("cart save failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to save cart", err)
	}
	return cart, nil
}

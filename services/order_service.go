package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"marketplace-api/models"
	"marketplace-api/pkg/apperrors"
	"marketplace-api/repository"
)

// orderTransitions is the adjacency of the order status machine.
// Processing -> Shipped -> Delivered is the happy path; Cancelled is
// reachable until delivery; Returned only after delivery.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered:  {models.OrderStatusReturned},
}

// CanTransitionOrder reports whether an order may move between the two
// statuses.
func CanTransitionOrder(from, to models.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OrderService owns checkout and the post-purchase lifecycle.
type OrderService interface {
	Checkout(ctx context.Context, user *models.User, req *models.CheckoutRequest) (*models.Order, *apperrors.Error)
	GetMine(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Order, int64, *apperrors.Error)
	GetByID(ctx context.Context, actor *models.User, id primitive.ObjectID) (*models.Order, *apperrors.Error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, *apperrors.Error)
	// AttachTracking is limited to admins and to sellers whose store
	// supplied at least one of the order's items.
	AttachTracking(ctx context.Context, actor *models.User, id primitive.ObjectID, trackingNumber string) (*models.Order, *apperrors.Error)
}

type orderServiceImpl struct {
	orders      repository.OrderRepository
	carts       repository.CartRepository
	products    repository.ProductRepository
	coupons     repository.CouponRepository
	stores      repository.StoreRepository
	taxRate     float64
	shippingFee float64
	logger      *zap.Logger
}

// NewOrderService creates an OrderService. taxRate is a fraction
// (0.1 = 10%); shippingFee is a flat amount per order.
func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	coupons repository.CouponRepository,
	stores repository.StoreRepository,
	taxRate, shippingFee float64,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orders:      orders,
		carts:       carts,
		products:    products,
		coupons:     coupons,
		stores:      stores,
		taxRate:     taxRate,
		shippingFee: shippingFee,
		logger:      logger,
	}
}

// Checkout turns the user's cart into an order. Every line becomes an
// immutable snapshot carrying the cart's price; the coupon discount is
// applied to the items subtotal before tax and shipping are added. The
// cart is cleared afterwards.
func (s *orderServiceImpl) Checkout(ctx context.Context, user *models.User, req *models.CheckoutRequest) (*models.Order, *apperrors.Error) {
	cart, err := s.carts.FindByUser(ctx, user.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.Validation("Your cart is empty")
		}
		return nil, apperrors.Internal("Failed to load cart", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.Validation("Your cart is empty")
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	snapshotted := make([]*models.Product, 0, len(cart.Items))
	var itemsPrice float64
	for _, line := range cart.Items {
		product, err := s.products.FindByID(ctx, line.Product)
		if err != nil {
			if isNotFound(err) {
				return nil, apperrors.NotFound("A product in your cart no longer exists")
			}
			return nil, apperrors.Internal("Failed to load product", err)
		}
		if product.IsDeleted || !product.IsActive {
			return nil, apperrors.Validation(fmt.Sprintf("%s is no longer available", product.Name))
		}
		if product.Stock < line.Quantity {
			return nil, apperrors.Validation(fmt.Sprintf("Insufficient stock for %s", product.Name))
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0].URL
		}
		items = append(items, models.OrderItem{
			Product:       line.Product,
			Store:         line.Store,
			Name:          product.Name,
			Quantity:      line.Quantity,
			Price:         line.Price,
			Image:         image,
			SelectedSpecs: line.SelectedSpecs,
		})
		snapshotted = append(snapshotted, product)
		itemsPrice += line.Price * float64(line.Quantity)
	}

	var coupon *models.Coupon
	discounted := itemsPrice
	if req.CouponCode != "" {
		coupon, err = s.coupons.FindByCode(ctx, normalizeCouponCode(req.CouponCode))
		if err != nil {
			if isNotFound(err) {
				return nil, apperrors.NotFound("Coupon not found")
			}
			return nil, apperrors.Internal("Failed to load coupon", err)
		}
		if appErr := s.checkCouponScope(coupon, cart); appErr != nil {
			return nil, appErr
		}
		if appErr := CheckCouponValidity(coupon, user.ID, itemsPrice); appErr != nil {
			return nil, appErr
		}
		discounted = ApplyCouponDiscount(coupon, itemsPrice)
	}

	taxPrice := round2(discounted * s.taxRate)
	order := &models.Order{
		User:            user.ID,
		OrderNumber:     GenerateOrderNumber(),
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      itemsPrice,
		DiscountAmount:  round2(itemsPrice - discounted),
		TaxPrice:        taxPrice,
		ShippingPrice:   s.shippingFee,
		TotalPrice:      round2(discounted + taxPrice + s.shippingFee),
		OrderStatus:     models.OrderStatusProcessing,
	}
	if coupon != nil {
		order.CouponCode = coupon.Code
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("order insert failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to place order", err)
	}

	if coupon != nil {
		if err := s.coupons.RecordRedemption(ctx, coupon.ID, user.ID); err != nil {
			s.logger.Error("coupon redemption write failed",
				zap.String("order_id", order.ID.Hex()), zap.Error(err))
		}
	}

	for i, product := range snapshotted {
		product.Stock -= items[i].Quantity
		product.Sold += items[i].Quantity
		if err := s.products.Update(ctx, product); err != nil {
			s.logger.Error("stock update failed",
				zap.String("product_id", product.ID.Hex()), zap.Error(err))
		}
	}

	if err := s.carts.Clear(ctx, user.ID); err != nil {
		s.logger.Error("cart clear failed", zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.Hex()),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total", order.TotalPrice),
	)
	return order, nil
}

// checkCouponScope rejects a store-scoped coupon when none of the cart's
// items come from that store. Global coupons always pass.
func (s *orderServiceImpl) checkCouponScope(coupon *models.Coupon, cart *models.Cart) *apperrors.Error {
	if coupon.Store == nil {
		return nil
	}
	for _, item := range cart.Items {
		if item.Store == *coupon.Store {
			return nil
		}
	}
	return apperrors.Validation("This coupon is not valid for the items in your cart")
}

func (s *orderServiceImpl) GetMine(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Order, int64, *apperrors.Error) {
	orders, total, err := s.orders.FindByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list orders", err)
	}
	return orders, total, nil
}

// GetByID returns an order to its owner or to an admin.
func (s *orderServiceImpl) GetByID(ctx context.Context, actor *models.User, id primitive.ObjectID) (*models.Order, *apperrors.Error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal("Failed to load order", err)
	}
	if order.User != actor.ID && !actor.HasRole(models.RoleAdmin) {
		return nil, apperrors.Forbidden("This order does not belong to you")
	}
	return order, nil
}

// UpdateStatus advances the order through its state machine, stamping
// deliveredAt on entering Delivered.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, *apperrors.Error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal("Failed to load order", err)
	}

	if !CanTransitionOrder(order.OrderStatus, status) {
		return nil, apperrors.InvalidTransition(string(order.OrderStatus), string(status))
	}

	order.OrderStatus = status
	if status == models.OrderStatusDelivered {
		now := time.Now().UTC()
		order.DeliveredAt = &now
	}

	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("order status update failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to update order", err)
	}

	s.logger.Info("order status changed",
		zap.String("order_id", order.ID.Hex()),
		zap.String("status", string(status)),
	)
	return order, nil
}

// AttachTracking records the carrier tracking number. Only allowed once
// the order has shipped, and only for admins or a seller whose store
// supplied one of the order's items.
func (s *orderServiceImpl) AttachTracking(ctx context.Context, actor *models.User, id primitive.ObjectID, trackingNumber string) (*models.Order, *apperrors.Error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal("Failed to load order", err)
	}

	if !actor.HasRole(models.RoleAdmin) {
		store, err := s.stores.FindByOwner(ctx, actor.ID)
		if err != nil {
			if isNotFound(err) {
				return nil, apperrors.Forbidden("This order has no items from your store")
			}
			return nil, apperrors.Internal("Failed to load store", err)
		}
		supplied := false
		for _, item := range order.OrderItems {
			if item.Store == store.ID {
				supplied = true
				break
			}
		}
		if !supplied {
			return nil, apperrors.Forbidden("This order has no items from your store")
		}
	}

	switch order.OrderStatus {
	case models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusReturned:
		order.TrackingNumber = trackingNumber
	default:
		return nil, apperrors.Validation("Tracking can only be set after the order ships")
	}

	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("tracking update failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to update order", err)
	}
	return order, nil
}

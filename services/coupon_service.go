package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"marketplace-api/models"
	"marketplace-api/pkg/apperrors"
	"marketplace-api/repository"
)

// normalizeCouponCode applies the canonical uppercase form codes are
// stored under.
func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckCouponValidity evaluates a coupon against a user and cart total in
// a fixed order, short-circuiting on the first failure: Inactive,
// Expired, LimitReached, AlreadyUsed, BelowMinimum. Store scoping is the
// caller's concern; this function never looks at the coupon's store.
func CheckCouponValidity(coupon *models.Coupon, userID primitive.ObjectID, cartTotal float64) *apperrors.Error {
	if !coupon.IsActive {
		return apperrors.Coupon(apperrors.CouponInactive)
	}
	if coupon.ExpirationDate.Before(time.Now()) {
		return apperrors.Coupon(apperrors.CouponExpired)
	}
	if coupon.UsedCount >= coupon.UsageLimit {
		return apperrors.Coupon(apperrors.CouponLimitReached)
	}
	if coupon.WasUsedBy(userID) {
		return apperrors.Coupon(apperrors.CouponAlreadyUsed)
	}
	if cartTotal < coupon.MinPurchaseAmount {
		return apperrors.Coupon(apperrors.CouponBelowMinimum)
	}
	return nil
}

// ApplyCouponDiscount returns the discounted subtotal. Percent coupons
// scale the subtotal; fixed coupons subtract, floored at zero.
func ApplyCouponDiscount(coupon *models.Coupon, itemsPrice float64) float64 {
	switch coupon.DiscountType {
	case models.DiscountPercent:
		return itemsPrice * (1 - coupon.DiscountValue/100)
	case models.DiscountFixed:
		discounted := itemsPrice - coupon.DiscountValue
		if discounted < 0 {
			return 0
		}
		return discounted
	default:
		return itemsPrice
	}
}

// CouponService owns discount definitions and their validity evaluation.
type CouponService interface {
	Create(ctx context.Context, actor *models.User, req *models.CreateCouponRequest) (*models.Coupon, *apperrors.Error)
	// Check evaluates the named coupon for the user's current cart total
	// without redeeming it.
	Check(ctx context.Context, userID primitive.ObjectID, code string, cartTotal float64) (*models.CouponQuote, *apperrors.Error)
	// Redeem records usage after a successful validity check. The check
	// and the write are separate steps; concurrent redemptions can both
	// pass validation before either records usage.
	Redeem(ctx context.Context, couponID, userID primitive.ObjectID) *apperrors.Error
	List(ctx context.Context, page, limit int) ([]models.Coupon, int64, *apperrors.Error)
	Deactivate(ctx context.Context, code string) *apperrors.Error
	FindByCode(ctx context.Context, code string) (*models.Coupon, *apperrors.Error)
}

type couponServiceImpl struct {
	coupons repository.CouponRepository
	stores  repository.StoreRepository
	logger  *zap.Logger
}

// NewCouponService creates a CouponService.
func NewCouponService(coupons repository.CouponRepository, stores repository.StoreRepository, logger *zap.Logger) CouponService {
	return &couponServiceImpl{coupons: coupons, stores: stores, logger: logger}
}

// Create defines a coupon. Admins may create global coupons; sellers only
// coupons scoped to their own store. Codes are normalized to uppercase.
func (s *couponServiceImpl) Create(ctx context.Context, actor *models.User, req *models.CreateCouponRequest) (*models.Coupon, *apperrors.Error) {
	if req.ExpirationDate.Before(time.Now()) {
		return nil, apperrors.Validation("Expiration date must be in the future")
	}
	if req.DiscountType == models.DiscountPercent && req.DiscountValue > 100 {
		return nil, apperrors.Validation("Percent discount cannot exceed 100")
	}

	coupon := &models.Coupon{
		Code:              normalizeCouponCode(req.Code),
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MinPurchaseAmount: req.MinPurchaseAmount,
		ExpirationDate:    req.ExpirationDate,
		UsageLimit:        req.UsageLimit,
		IsActive:          true,
	}
	if coupon.UsageLimit == 0 {
		coupon.UsageLimit = 1000
	}

	switch {
	case actor.HasRole(models.RoleAdmin):
		if req.StoreID != "" {
			storeID, err := primitive.ObjectIDFromHex(req.StoreID)
			if err != nil {
				return nil, apperrors.Validation("Invalid store id")
			}
			coupon.Store = &storeID
		}
	case actor.HasRole(models.RoleSeller):
		store, err := s.stores.FindByOwner(ctx, actor.ID)
		if err != nil {
			if isNotFound(err) {
				return nil, apperrors.NotFound("You do not have a store")
			}
			return nil, apperrors.Internal("Failed to load store", err)
		}
		coupon.Store = &store.ID
	default:
		return nil, apperrors.Forbidden("Only admins and sellers can create coupons")
	}

	if err := s.coupons.Create(ctx, coupon); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Conflict("A coupon with this code already exists")
		}
		s.logger.Error("coupon insert failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to create coupon", err)
	}

	s.logger.Info("coupon created",
		zap.String("code", coupon.Code),
		zap.String("type", string(coupon.DiscountType)),
	)
	return coupon, nil
}

func (s *couponServiceImpl) Check(ctx context.Context, userID primitive.ObjectID, code string, cartTotal float64) (*models.CouponQuote, *apperrors.Error) {
	coupon, appErr := s.FindByCode(ctx, code)
	if appErr != nil {
		return nil, appErr
	}

	if appErr := CheckCouponValidity(coupon, userID, cartTotal); appErr != nil {
		return nil, appErr
	}

	return &models.CouponQuote{
		Code:               coupon.Code,
		DiscountType:       coupon.DiscountType,
		DiscountValue:      coupon.DiscountValue,
		CartTotal:          cartTotal,
		DiscountedSubtotal: ApplyCouponDiscount(coupon, cartTotal),
	}, nil
}

func (s *couponServiceImpl) Redeem(ctx context.Context, couponID, userID primitive.ObjectID) *apperrors.Error {
	if err := s.coupons.RecordRedemption(ctx, couponID, userID); err != nil {
		s.logger.Error("coupon redemption write failed",
			zap.String("coupon_id", couponID.Hex()), zap.Error(err))
		return apperrors.Internal("Failed to redeem coupon", err)
	}
	return nil
}

func (s *couponServiceImpl) List(ctx context.Context, page, limit int) ([]models.Coupon, int64, *apperrors.Error) {
	coupons, total, err := s.coupons.FindAll(ctx, page, limit)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list coupons", err)
	}
	return coupons, total, nil
}

func (s *couponServiceImpl) Deactivate(ctx context.Context, code string) *apperrors.Error {
	if err := s.coupons.Deactivate(ctx, normalizeCouponCode(code)); err != nil {
		if isNotFound(err) {
			return apperrors.NotFound("Coupon not found")
		}
		return apperrors.Internal("Failed to deactivate coupon", err)
	}
	return nil
}

func (s *couponServiceImpl) FindByCode(ctx context.Context, code string) (*models.Coupon, *apperrors.Error) {
	coupon, err := s.coupons.FindByCode(ctx, normalizeCouponCode(code))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Coupon not found")
		}
		return nil, apperrors.Internal("Failed to load coupon", err)
	}
	return coupon, nil
}

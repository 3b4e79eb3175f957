package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-api/middleware"
	"marketplace-api/models"
	"marketplace-api/services"
)

// CouponController handles coupon creation, checks and administration.
type CouponController struct {
	couponService services.CouponService
	cartService   services.CartService
}

// NewCouponController creates a CouponController.
func NewCouponController(couponService services.CouponService, cartService services.CartService) *CouponController {
	return &CouponController{couponService: couponService, cartService: cartService}
}

// Create handles POST /coupons (admin or seller).
func (cc *CouponController) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	coupon, svcErr := cc.couponService.Create(c.Request.Context(), user, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": coupon})
}

// Check handles POST /coupons/check: it evaluates the coupon against the
// caller's current cart total without redeeming it.
func (cc *CouponController) Check(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.CheckCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	cart, svcErr := cc.cartService.Get(c.Request.Context(), user.ID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	quote, svcErr := cc.couponService.Check(c.Request.Context(), user.ID, req.Code, cart.TotalCartPrice)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": quote})
}

// List handles GET /coupons (admin only).
func (cc *CouponController) List(c *gin.Context) {
	page, limit := parsePagination(c)

	coupons, total, svcErr := cc.couponService.List(c.Request.Context(), page, limit)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    coupons,
		"meta":    gin.H{"page": page, "limit": limit, "total": total},
	})
}

// Deactivate handles DELETE /coupons/:code (admin only).
func (cc *CouponController) Deactivate(c *gin.Context) {
	code := c.Param("code")
	if svcErr := cc.couponService.Deactivate(c.Request.Context(), code); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon deactivated"})
}

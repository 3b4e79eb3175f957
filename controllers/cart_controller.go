package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-api/middleware"
	"marketplace-api/models"
	"marketplace-api/services"
)

// CartController handles the authenticated cart routes.
type CartController struct {
	cartService services.CartService
}

// NewCartController creates a CartController.
func NewCartController(cartService services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// Get handles GET /cart.
func (cc *CartController) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	cart, svcErr := cc.cartService.Get(c.Request.Context(), user.ID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cart})
}

// AddItem handles POST /cart/items.
func (cc *CartController) AddItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	cart, svcErr := cc.cartService.AddItem(c.Request.Context(), user.ID, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cart})
}

// UpdateItem handles PUT /cart/items.
func (cc *CartController) UpdateItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	cart, svcErr := cc.cartService.UpdateItem(c.Request.Context(), user.ID, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cart})
}

// RemoveItem handles DELETE /cart/items.
func (cc *CartController) RemoveItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	cart, svcErr := cc.cartService.RemoveItem(c.Request.Context(), user.ID, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cart})
}

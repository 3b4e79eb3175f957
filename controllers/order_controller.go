package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/middleware"
	"marketplace-api/models"
	"marketplace-api/services"
)

// OrderController handles checkout and the post-purchase routes.
type OrderController struct {
	orderService services.OrderService
}

// NewOrderController creates an OrderController.
func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Checkout handles POST /orders.
func (oc *OrderController) Checkout(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	order, svcErr := oc.orderService.Checkout(c.Request.Context(), user, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
}

// ListMine handles GET /orders.
func (oc *OrderController) ListMine(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page, limit := parsePagination(c)

	orders, total, svcErr := oc.orderService.GetMine(c.Request.Context(), user.ID, page, limit)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
		"meta":    gin.H{"page": page, "limit": limit, "total": total},
	})
}

// Get handles GET /orders/:id (owner or admin).
func (oc *OrderController) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	order, svcErr := oc.orderService.GetByID(c.Request.Context(), user, id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// UpdateStatus handles PUT /admin/orders/:id/status (admin only).
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	order, svcErr := oc.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// AttachTracking handles PUT /orders/:id/tracking (admin or seller).
func (oc *OrderController) AttachTracking(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var req models.SetTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	order, svcErr := oc.orderService.AttachTracking(c.Request.Context(), user, id, req.TrackingNumber)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

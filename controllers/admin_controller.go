package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/models"
	"marketplace-api/services"
)

// AdminController handles store moderation and category administration.
type AdminController struct {
	storeService    services.StoreService
	categoryService services.CategoryService
}

// NewAdminController creates an AdminController.
func NewAdminController(storeService services.StoreService, categoryService services.CategoryService) *AdminController {
	return &AdminController{storeService: storeService, categoryService: categoryService}
}

// ListPendingStores handles GET /admin/pending-stores.
func (ac *AdminController) ListPendingStores(c *gin.Context) {
	stores, svcErr := ac.storeService.ListPending(c.Request.Context())
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(stores), "data": stores})
}

// ApproveStore handles PUT /admin/approve-store/:id.
func (ac *AdminController) ApproveStore(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid store id"})
		return
	}

	store, svcErr := ac.storeService.Approve(c.Request.Context(), id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    store,
		"message": "Store approved and owner promoted to seller",
	})
}

// CreateCategory handles POST /admin/categories.
func (ac *AdminController) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	category, svcErr := ac.categoryService.Create(c.Request.Context(), &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": category})
}

// UpdateCategory handles PUT /admin/categories/:id.
func (ac *AdminController) UpdateCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id"})
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	category, svcErr := ac.categoryService.Update(c.Request.Context(), id, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// ListCategories handles GET /categories (public).
func (ac *AdminController) ListCategories(c *gin.Context) {
	categories, svcErr := ac.categoryService.List(c.Request.Context())
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

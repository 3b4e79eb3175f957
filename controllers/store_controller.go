package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/middleware"
	"marketplace-api/models"
	"marketplace-api/services"
)

// StoreController handles storefront routes for owners and admins.
type StoreController struct {
	storeService   services.StoreService
	productService services.ProductService
}

// NewStoreController creates a StoreController.
func NewStoreController(storeService services.StoreService, productService services.ProductService) *StoreController {
	return &StoreController{storeService: storeService, productService: productService}
}

// Create handles POST /stores (seller application).
func (sc *StoreController) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	store, svcErr := sc.storeService.Create(c.Request.Context(), user.ID, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    store,
		"message": "Store created, awaiting approval",
	})
}

// GetMyStore handles GET /stores/my-store.
func (sc *StoreController) GetMyStore(c *gin.Context) {
	user := middleware.CurrentUser(c)

	store, svcErr := sc.storeService.GetByOwner(c.Request.Context(), user.ID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": store})
}

// UpdateMyStore handles PUT /stores/my-store.
func (sc *StoreController) UpdateMyStore(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	store, svcErr := sc.storeService.UpdateDetails(c.Request.Context(), user.ID, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": store, "message": "Store updated"})
}

// CloseMyStore handles DELETE /stores/my-store.
func (sc *StoreController) CloseMyStore(c *gin.Context) {
	user := middleware.CurrentUser(c)

	store, svcErr := sc.storeService.Close(c.Request.Context(), user.ID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": store, "message": "Store closed"})
}

// ListMyProducts handles GET /stores/my-store/products.
func (sc *StoreController) ListMyProducts(c *gin.Context) {
	user := middleware.CurrentUser(c)

	products, svcErr := sc.productService.ListStoreProducts(c.Request.Context(), user.ID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(products), "data": products})
}

// CreateProduct handles POST /stores/my-store/products.
func (sc *StoreController) CreateProduct(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	product, svcErr := sc.productService.Create(c.Request.Context(), user.ID, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
}

// UpdateProduct handles PUT /stores/my-store/products/:id.
func (sc *StoreController) UpdateProduct(c *gin.Context) {
	user := middleware.CurrentUser(c)

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	product, svcErr := sc.productService.Update(c.Request.Context(), user.ID, productID, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// DeleteProduct handles DELETE /stores/my-store/products/:id.
func (sc *StoreController) DeleteProduct(c *gin.Context) {
	user := middleware.CurrentUser(c)

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	if svcErr := sc.productService.SoftDelete(c.Request.Context(), user.ID, productID); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product removed from your store"})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/services"
)

// ProductController handles the public catalog routes.
type ProductController struct {
	productService services.ProductService
}

// NewProductController creates a ProductController.
func NewProductController(productService services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// List handles GET /products with optional ?q= text search.
func (pc *ProductController) List(c *gin.Context) {
	page, limit := parsePagination(c)
	query := c.Query("q")

	products, total, svcErr := pc.productService.ListPublic(c.Request.Context(), query, page, limit)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
		"meta": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// Get handles GET /products/:id. Soft-deleted products still resolve so
// historical order references keep working.
func (pc *ProductController) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	product, svcErr := pc.productService.GetByID(c.Request.Context(), id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

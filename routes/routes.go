package routes

import (
	"github.com/gin-gonic/gin"

	"marketplace-api/controllers"
	"marketplace-api/middleware"
	"marketplace-api/models"
	"marketplace-api/repository"
	"marketplace-api/services"
)

// Controllers bundles every HTTP controller the router mounts.
type Controllers struct {
	Auth    *controllers.AuthController
	Store   *controllers.StoreController
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Coupon  *controllers.CouponController
	Order   *controllers.OrderController
	Admin   *controllers.AdminController
}

// Register mounts the full API surface onto the engine. Route groups share
// the Protect middleware; role checks are layered per group with Authorize.
func Register(r *gin.Engine, ctrl Controllers, tokens *services.TokenService, users repository.UserRepository) {
	api := r.Group("/api/v1")

	// Public routes.
	api.POST("/auth/register", ctrl.Auth.Register)
	api.POST("/auth/login", ctrl.Auth.Login)
	api.GET("/products", ctrl.Product.List)
	api.GET("/products/:id", ctrl.Product.Get)
	api.GET("/categories", ctrl.Admin.ListCategories)

	// Any authenticated user.
	auth := api.Group("/")
	auth.Use(middleware.Protect(tokens, users))
	{
		auth.GET("/auth/me", ctrl.Auth.GetMe)
		auth.PUT("/auth/profile", ctrl.Auth.UpdateProfile)

		auth.POST("/stores", ctrl.Store.Create)
		auth.GET("/stores/my-store", ctrl.Store.GetMyStore)
		auth.PUT("/stores/my-store", ctrl.Store.UpdateMyStore)
		auth.DELETE("/stores/my-store", ctrl.Store.CloseMyStore)
		auth.GET("/stores/my-store/products", ctrl.Store.ListMyProducts)
		auth.POST("/stores/my-store/products", ctrl.Store.CreateProduct)
		auth.PUT("/stores/my-store/products/:id", ctrl.Store.UpdateProduct)
		auth.DELETE("/stores/my-store/products/:id", ctrl.Store.DeleteProduct)

		auth.GET("/cart", ctrl.Cart.Get)
		auth.POST("/cart/items", ctrl.Cart.AddItem)
		auth.PUT("/cart/items", ctrl.Cart.UpdateItem)
		auth.DELETE("/cart/items", ctrl.Cart.RemoveItem)

		auth.POST("/coupons/check", ctrl.Coupon.Check)

		auth.POST("/orders", ctrl.Order.Checkout)
		auth.GET("/orders", ctrl.Order.ListMine)
		auth.GET("/orders/:id", ctrl.Order.Get)
	}

	// Sellers and admins.
	seller := api.Group("/")
	seller.Use(middleware.Protect(tokens, users), middleware.Authorize(models.RoleSeller, models.RoleAdmin))
	{
		seller.POST("/coupons", ctrl.Coupon.Create)
		seller.PUT("/orders/:id/tracking", ctrl.Order.AttachTracking)
	}

	// Admin only.
	admin := api.Group("/admin")
	admin.Use(middleware.Protect(tokens, users), middleware.Authorize(models.RoleAdmin))
	{
		admin.GET("/pending-stores", ctrl.Admin.ListPendingStores)
		admin.PUT("/approve-store/:id", ctrl.Admin.ApproveStore)
		admin.PUT("/orders/:id/status", ctrl.Order.UpdateStatus)
		admin.POST("/categories", ctrl.Admin.CreateCategory)
		admin.PUT("/categories/:id", ctrl.Admin.UpdateCategory)
		admin.GET("/coupons", ctrl.Coupon.List)
		admin.DELETE("/coupons/:code", ctrl.Coupon.Deactivate)
	}
}

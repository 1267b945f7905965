package routes

import (
	"github.com/gin-gonic/gin"

	"eshop_back_end/internal/handlers/catalog"
	"eshop_back_end/internal/handlers/payement"
	"eshop_back_end/internal/handlers/user"
	"eshop_back_end/internal/middleware"
	"eshop_back_end/internal/models"
)

func RegisterRoutes(r *gin.Engine) {
	// Webhook Stripe : hors /api/v1, hors authentification.
	r.POST("/webhook-checkout", payement.WebhookCheckout)

	v1 := r.Group("/api/v1")

	protect := middleware.Protect()
	adminOnly := middleware.AllowedTo(models.RoleAdmin)
	adminManager := middleware.AllowedTo(models.RoleAdmin, models.RoleManager)
	userOnly := middleware.AllowedTo(models.RoleUser)

	// Auth
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", user.Signup)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.POST("/forgotPassword", middleware.ForgotPasswordRateLimit(), user.ForgotPassword)
		auth.POST("/verifyResetCode", user.VerifyResetCode)
		auth.POST("/resetPassword", user.ResetPassword)
	}

	// Catégories
	categories := v1.Group("/categories")
	{
		categories.GET("", catalog.GetCategories)
		categories.GET("/:id", catalog.GetCategory)
		categories.POST("", protect, adminManager, catalog.ResizeCategoryImage, catalog.CreateCategory)
		categories.PUT("/:id", protect, adminManager, catalog.ResizeCategoryImage, catalog.UpdateCategory)
		categories.DELETE("/:id", protect, adminOnly, catalog.DeleteCategory)

		// Sous-catégories imbriquées
		categories.GET("/:id/subcategories", nestedCategoryParam, catalog.FilterByCategory, catalog.GetSubCategories)
		categories.POST("/:id/subcategories", protect, adminManager, nestedCategoryParam, catalog.CreateSubCategory)
	}

	// Sous-catégories
	subcategories := v1.Group("/subcategories")
	{
		subcategories.GET("", catalog.GetSubCategories)
		subcategories.GET("/:id", catalog.GetSubCategory)
		subcategories.POST("", protect, adminManager, catalog.CreateSubCategory)
		subcategories.PUT("/:id", protect, adminManager, catalog.UpdateSubCategory)
		subcategories.DELETE("/:id", protect, adminOnly, catalog.DeleteSubCategory)
	}

	// Marques
	brands := v1.Group("/brands")
	{
		brands.GET("", catalog.GetBrands)
		brands.GET("/:id", catalog.GetBrand)
		brands.POST("", protect, adminManager, catalog.ResizeBrandImage, catalog.CreateBrand)
		brands.PUT("/:id", protect, adminManager, catalog.ResizeBrandImage, catalog.UpdateBrand)
		brands.DELETE("/:id", protect, adminOnly, catalog.DeleteBrand)
	}

	// Produits
	products := v1.Group("/products")
	{
		products.GET("", catalog.GetProducts)
		products.GET("/:id", catalog.GetProduct)
		products.POST("", protect, adminManager, catalog.ResizeProductImages, catalog.CreateProduct)
		products.PUT("/:id", protect, adminManager, catalog.ResizeProductImages, catalog.UpdateProduct)
		products.DELETE("/:id", protect, adminOnly, catalog.DeleteProduct)

		// Avis imbriqués
		products.GET("/:id/reviews", nestedProductParam, catalog.FilterByProduct, catalog.GetReviews)
		products.POST("/:id/reviews", protect, userOnly, nestedProductParam, catalog.CreateReview)
	}

	// Avis
	reviews := v1.Group("/reviews")
	{
		reviews.GET("", catalog.GetReviews)
		reviews.GET("/:id", catalog.GetReview)
		reviews.POST("", protect, userOnly, catalog.CreateReview)
		reviews.PUT("/:id", protect, userOnly, catalog.UpdateReview)
		reviews.DELETE("/:id", protect, catalog.DeleteReview)
	}

	// Liste d'envies
	wishlist := v1.Group("/wishlist", protect, userOnly)
	{
		wishlist.GET("", user.GetWishlist)
		wishlist.POST("", user.AddToWishlist)
		wishlist.DELETE("/:productId", user.RemoveFromWishlist)
	}

	// Adresses
	addresses := v1.Group("/addresses", protect, userOnly)
	{
		addresses.GET("", user.GetAddresses)
		addresses.POST("", user.AddAddress)
		addresses.DELETE("/:addressId", user.RemoveAddress)
	}

	// Coupons
	coupons := v1.Group("/coupons", protect, adminManager)
	{
		coupons.GET("", payement.GetCoupons)
		coupons.GET("/:id", payement.GetCoupon)
		coupons.POST("", payement.CreateCoupon)
		coupons.PUT("/:id", payement.UpdateCoupon)
		coupons.DELETE("/:id", payement.DeleteCoupon)
	}

	// Panier
	cart := v1.Group("/cart", protect, userOnly)
	{
		cart.GET("", payement.GetLoggedUserCart)
		cart.POST("", payement.AddProductToCart)
		cart.PUT("/applyCoupon", payement.ApplyCoupon)
		cart.PUT("/:itemId", payement.UpdateCartItemQuantity)
		cart.DELETE("/:itemId", payement.RemoveCartItem)
		cart.DELETE("", payement.ClearCart)
	}

	// Commandes
	orders := v1.Group("/orders", protect)
	{
		orders.GET("", payement.FilterOrdersForUser, payement.GetOrders)
		orders.GET("/checkout-session/:cartId", userOnly, payement.CheckoutSession)
		orders.GET("/:id", payement.GetOrder)
		orders.POST("/:cartId", userOnly, payement.CreateCashOrder)
		orders.PUT("/:id/pay", adminManager, payement.UpdateOrderToPaid)
		orders.PUT("/:id/deliver", adminManager, payement.UpdateOrderToDelivered)
	}

	// Utilisateurs
	users := v1.Group("/users", protect)
	{
		users.GET("/getMe", user.SetMeParam, user.GetUser)
		users.PUT("/updateMe", user.UpdateMe)
		users.PUT("/updateMyPassword", user.UpdateMyPassword)
		users.DELETE("/deleteMe", user.DeleteMe)

		users.GET("", adminOnly, user.GetUsers)
		users.GET("/:id", adminOnly, user.GetUser)
		users.POST("", adminOnly, user.ResizeUserImage, user.CreateUser)
		users.PUT("/:id", adminOnly, user.ResizeUserImage, user.UpdateUser)
		users.PUT("/:id/password", adminOnly, user.UpdateUserPassword)
		users.DELETE("/:id", adminOnly, user.DeleteUser)
	}
}

// Les routes imbriquées réutilisent les handlers génériques, qui lisent
// categoryId/productId : on recopie le paramètre :id sous ce nom.
func nestedCategoryParam(c *gin.Context) {
	c.Params = append(c.Params, gin.Param{Key: "categoryId", Value: c.Param("id")})
	c.Next()
}

func nestedProductParam(c *gin.Context) {
	c.Params = append(c.Params, gin.Param{Key: "productId", Value: c.Param("id")})
	c.Next()
}

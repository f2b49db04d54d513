package routes

import (
	"os"
	"strings"
	"time"

	"tamaq_back_end/internal/handlers"
	"tamaq_back_end/internal/handlers/admin"
	"tamaq_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes câble toute la surface HTTP. Les handlers à état
// (panier, checkout) sont construits dans main et passés ici.
func RegisterRoutes(r *gin.Engine, cartH *handlers.CartHandler, checkoutH *handlers.CheckoutHandler) {
	allowed := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowed == "" {
		allowed = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(allowed, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// --- Auth ---
	api.POST("/users", handlers.CreateUser)
	api.POST("/login", middleware.LoginRateLimit(), handlers.Login)
	api.GET("/auth/:provider", handlers.BeginAuth)
	api.GET("/auth/:provider/callback", handlers.CallbackAuth)

	// --- Catalogue (public) ---
	api.GET("/food", handlers.GetAllFood)
	api.GET("/food/search", handlers.SearchFood)
	api.GET("/food/:id", handlers.GetFoodByID)
	api.GET("/categories", handlers.GetAllCategories)

	// --- Routes authentifiées ---
	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		// Panier de session
		authed.GET("/cart", cartH.GetCart)
		authed.GET("/cart/count", cartH.CartCount)
		authed.POST("/cart/add", cartH.AddToCart)
		authed.PUT("/cart/quantity", cartH.UpdateCartQuantity)
		authed.DELETE("/cart/clear", cartH.ClearCart)
		authed.DELETE("/cart/:foodId", cartH.RemoveFromCart)

		// Checkout complet
		authed.POST("/checkout", checkoutH.Checkout)

		// Paniers durables et leurs lignes
		authed.POST("/carts", handlers.CreateDurableCart)
		authed.GET("/carts", handlers.GetActiveCart)
		authed.PATCH("/carts/:id", handlers.UpdateCartStatus)
		authed.GET("/cart-items", handlers.GetCartItems)
		authed.POST("/cart-items", handlers.CreateCartItem)
		authed.PUT("/cart-items/:id", handlers.UpdateCartItem)
		authed.DELETE("/cart-items/:id", handlers.DeleteCartItem)

		// Commandes
		authed.POST("/orders", handlers.CreateOrder)
		authed.GET("/orders", handlers.GetOrders)
		authed.GET("/orders/:id", handlers.GetOrderByID)
		authed.GET("/orders/:id/qr", handlers.GetOrderQR)

		// Paiements
		authed.POST("/payments", handlers.CreatePayment)
		authed.GET("/payments", handlers.GetPayments)

		// Adresses
		authed.GET("/addresses", handlers.GetAddresses)
		authed.POST("/addresses", handlers.CreateAddress)
		authed.PUT("/addresses/:id", handlers.UpdateAddress)
		authed.DELETE("/addresses/:id", handlers.DeleteAddress)

		// Livraisons
		authed.GET("/deliveries", handlers.GetDeliveries)
		authed.GET("/deliveries/email/:email", handlers.GetDeliveriesByEmail)

		// Profil
		authed.GET("/users/email/:email", handlers.GetUserByEmail)
		authed.GET("/users/role/:role", handlers.GetUsersByRole)
		authed.GET("/users/:id", handlers.GetUserByID)
		authed.PUT("/users/:email", handlers.UpdateUser)
		authed.DELETE("/users/:email", handlers.DeleteUser)
	}

	// --- Administration ---
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminGroup.POST("/food", handlers.CreateFood)
		adminGroup.PUT("/food/:id", handlers.UpdateFood)
		adminGroup.DELETE("/food/:id", handlers.DeleteFood)
		adminGroup.POST("/food/image", admin.UploadFoodImage)
		adminGroup.GET("/food/image/signed", admin.GetSignedImageURL)

		adminGroup.POST("/categories", handlers.CreateCategory)
		adminGroup.PUT("/categories/:id", handlers.UpdateCategory)
		adminGroup.DELETE("/categories/:id", handlers.DeleteCategory)

		adminGroup.GET("/users", handlers.GetUsers)
		adminGroup.PATCH("/users/:email/role", admin.UpdateUserRole)

		adminGroup.GET("/orders", handlers.GetAllOrders)
		adminGroup.PATCH("/orders/:id", handlers.UpdateOrder)

		adminGroup.GET("/payments", handlers.GetAllPayments)

		adminGroup.POST("/deliveries", handlers.CreateDelivery)
		adminGroup.PATCH("/deliveries/:id", handlers.UpdateDelivery)
		adminGroup.DELETE("/deliveries/:id", handlers.DeleteDelivery)
	}

	// --- WebSocket de synchronisation du panier ---
	r.GET("/ws/cart", middleware.AuthRequired(), cartH.CartWebSocket)
}

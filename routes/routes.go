package routes

import (
	"net/http"

	"naturesbasket/admin"
	"naturesbasket/auth"
	"naturesbasket/cart"
	"naturesbasket/lands"
	"naturesbasket/middleware"
	"naturesbasket/models"
	"naturesbasket/orders"
	"naturesbasket/products"
	"naturesbasket/ratelim"
	"naturesbasket/wishlist"

	"github.com/julienschmidt/httprouter"
)

func customer(h httprouter.Handle) httprouter.Handle {
	return middleware.Authenticate(middleware.RequireRoles(h, models.RoleCustomer))
}

func farmer(h httprouter.Handle) httprouter.Handle {
	return middleware.Authenticate(middleware.RequireRoles(h, models.RoleFarmer))
}

// farmerApproved additionally requires the farmer account to be active;
// pending farmers keep read access but cannot mutate the catalog.
func farmerApproved(h httprouter.Handle) httprouter.Handle {
	return middleware.Authenticate(middleware.RequireRoles(middleware.RequireApproved(h), models.RoleFarmer))
}

func adminOnly(h httprouter.Handle) httprouter.Handle {
	return middleware.Authenticate(middleware.RequireRoles(h, models.RoleAdmin))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.GET("/api/auth/me", middleware.Authenticate(auth.Me))
}

func AddLandRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/lands", lands.GetLands)
	router.GET("/api/lands/:id", lands.GetLand)
	router.POST("/api/lands", farmerApproved(lands.CreateLand))
	router.PUT("/api/lands/:id", farmerApproved(lands.EditLand))
	router.DELETE("/api/lands/:id", middleware.Authenticate(
		middleware.RequireRoles(lands.DeleteLand, models.RoleFarmer, models.RoleAdmin)))
	router.GET("/api/farmer/lands", farmer(lands.GetMyLands))
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/products", middleware.OptionalAuth(products.GetProducts))
	router.GET("/api/products/:id", products.GetProduct)
	router.POST("/api/products", farmerApproved(products.CreateProduct))
	router.PUT("/api/products/:id", farmerApproved(products.EditProduct))
	router.DELETE("/api/products/:id", middleware.Authenticate(
		middleware.RequireRoles(products.DeleteProduct, models.RoleFarmer, models.RoleAdmin)))
	router.GET("/api/farmer/products", farmer(products.GetMyProducts))

	router.GET("/api/products/:id/reviews", products.GetReviews)
	router.POST("/api/products/:id/reviews", rl.Limit(customer(products.AddReview)))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/cart", customer(cart.GetCart))
	router.POST("/api/cart/items", customer(cart.AddItem))
	router.PUT("/api/cart/items/:productid", customer(cart.UpdateItem))
	router.DELETE("/api/cart/items/:productid", customer(cart.RemoveItem))
	router.DELETE("/api/cart", customer(cart.ClearCart))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/orders", rl.Limit(customer(orders.CreateOrder)))
	router.GET("/api/orders", customer(orders.GetMyOrders))
	router.GET("/api/orders/:id", middleware.Authenticate(orders.GetOrder))
	router.PUT("/api/orders/:id/cancel", customer(orders.CancelOrder))
	router.GET("/api/orders/:id/receipt", middleware.Authenticate(orders.DownloadReceipt))
	router.POST("/api/orders/:id/payment-session", customer(orders.CreatePaymentSession))

	router.GET("/api/farmer/orders", farmer(orders.GetFarmerOrders))
	router.PUT("/api/farmer/orders/:id/status", farmerApproved(orders.UpdateOrderStatus))
}

func AddWishlistRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/wishlist", customer(wishlist.GetWishlist))
	router.POST("/api/wishlist/:productid", customer(wishlist.AddToWishlist))
	router.DELETE("/api/wishlist/:productid", customer(wishlist.RemoveFromWishlist))
}

func AddAdminRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/admin/users", adminOnly(admin.GetUsers))
	router.PUT("/api/admin/users/:id/status", adminOnly(admin.UpdateUserStatus))
	router.PUT("/api/admin/farmers/:id/verify", adminOnly(admin.VerifyFarmer))

	router.GET("/api/admin/lands/pending", adminOnly(admin.GetPendingLands))
	router.PUT("/api/admin/lands/:id/:action", adminOnly(admin.ModerateLand))
	router.GET("/api/admin/products/pending", adminOnly(admin.GetPendingProducts))
	router.PUT("/api/admin/products/:id/:action", adminOnly(admin.ModerateProduct))

	router.GET("/api/admin/orders", adminOnly(admin.GetAllOrders))
	router.PUT("/api/admin/orders/:id/status", adminOnly(orders.UpdateOrderStatus))
	router.PUT("/api/admin/orders/:id/cancel", adminOnly(orders.CancelOrder))

	router.GET("/api/admin/dashboard", adminOnly(admin.GetDashboard))
	router.GET("/api/admin/analytics", adminOnly(admin.GetAnalytics))
	router.GET("/api/admin/activity", adminOnly(admin.GetActivity))
}

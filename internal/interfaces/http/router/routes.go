package router

import (
	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/interfaces/http/handler"
)

// Handlers are the storefront's HTTP handlers
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Checkout *handler.CheckoutHandler
}

// Guards are the access-control middleware applied per route
type Guards struct {
	SignIn gin.HandlerFunc
	// Admin runs after SignIn
	Admin gin.HandlerFunc
	// CredentialLimit throttles register, login and password reset; may be nil
	CredentialLimit gin.HandlerFunc
}

func (g Guards) signedIn(h gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.SignIn, h}
}

func (g Guards) admin(h gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.SignIn, g.Admin, h}
}

func (g Guards) throttled(h gin.HandlerFunc) []gin.HandlerFunc {
	if g.CredentialLimit == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{g.CredentialLimit, h}
}

// Storefront returns the route groups of the storefront API
func Storefront(h Handlers, g Guards) []RouteRegistrar {
	system := NewGroup("").
		GET("/", h.Health.Welcome).
		GET("/health", h.Health.Health)

	authGroup := NewGroup("/auth").
		POST("/register", g.throttled(h.Auth.Register)...).
		POST("/login", g.throttled(h.Auth.Login)...).
		POST("/forgot-password", g.throttled(h.Auth.ForgotPassword)...).
		GET("/user-auth", g.signedIn(h.Auth.UserAuth)...).
		GET("/admin-auth", g.admin(h.Auth.AdminAuth)...).
		GET("/test", g.admin(h.Auth.Protected)...).
		GET("/me", g.signedIn(h.Auth.Me)...).
		PUT("/profile", g.signedIn(h.Auth.UpdateProfile)...).
		POST("/logout", g.signedIn(h.Auth.Logout)...).
		GET("/orders", g.signedIn(h.Order.BuyerOrders)...).
		GET("/all-orders", g.admin(h.Order.AllOrders)...).
		PUT("/order-status/:orderId", g.admin(h.Order.UpdateStatus)...)

	categoryGroup := NewGroup("/category").
		POST("/create-category", g.admin(h.Category.Create)...).
		PUT("/update-category/:id", g.admin(h.Category.Update)...).
		GET("/get-category", h.Category.List).
		GET("/single-category/:slug", h.Category.Get).
		DELETE("/delete-category/:id", g.admin(h.Category.Delete)...)

	productGroup := NewGroup("/product").
		POST("/create-product", g.admin(h.Product.Create)...).
		PUT("/update-product/:pid", g.admin(h.Product.Update)...).
		GET("/get-product", h.Product.List).
		GET("/get-product/:slug", h.Product.Get).
		GET("/product-photo/:pid", h.Product.Photo).
		DELETE("/delete-product/:pid", g.admin(h.Product.Delete)...).
		POST("/product-filters", h.Product.Filter).
		GET("/product-count", h.Product.Count).
		GET("/product-list/:page", h.Product.Page).
		GET("/search/:keyword", h.Product.Search).
		GET("/related-product/:pid/:cid", h.Product.Related).
		GET("/product-category/:slug", h.Product.ByCategory)

	productGroup.Group("/braintree").
		GET("/token", h.Checkout.ClientToken).
		POST("/payment", g.signedIn(h.Checkout.Payment)...)

	return []RouteRegistrar{system, authGroup, categoryGroup, productGroup}
}

package httpserver

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"shopapi/internal/jwtmiddleware"
	"shopapi/internal/metrics"
)

type Deps struct {
	AuthHandler     *AuthHandler
	UserHandler     *UserHandler
	ProductHandler  *ProductHandler
	PurchaseHandler *PurchaseHandler
	JWTSecret       []byte
	UploadDir       string
}

// rateLimit allows 1000 requests per minute per client IP.
const rateLimit = rate.Limit(1000.0 / 60.0)

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(204) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(204) })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rateLimit)))
	e.Use(metrics.Middleware)

	e.Static("/uploads", d.UploadDir)

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.GET("/profile", d.AuthHandler.Profile, jwtmiddleware.JWTMiddleware(d.JWTSecret))

	users := e.Group("/users")
	users.GET("", d.UserHandler.ListUsers)
	users.POST("", d.UserHandler.CreateUser)
	users.GET("/:email", d.UserHandler.GetUserByEmail)
	users.PUT("/:email", d.UserHandler.UpdateUser)
	users.DELETE("/:email", d.UserHandler.DeleteUser)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.ListProducts)
	products.POST("", d.ProductHandler.CreateProduct)
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("/:name", d.ProductHandler.GetProductByName)
	products.PUT("/:name", d.ProductHandler.UpdateProduct)
	products.DELETE("/:name", d.ProductHandler.DeleteProduct)
	products.POST("/upload/:name", d.ProductHandler.UploadImage)

	purchases := e.Group("/purchases")
	purchases.GET("", d.PurchaseHandler.ListPurchases)
	purchases.POST("", d.PurchaseHandler.CreatePurchase)
	purchases.GET("/:email", d.PurchaseHandler.ListPurchasesByEmail)
}

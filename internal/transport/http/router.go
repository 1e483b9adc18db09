package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/lavibaby/shop/internal/handlers"
	"github.com/lavibaby/shop/internal/middleware/csrf"
	"github.com/lavibaby/shop/internal/service/token"
)

type Deps struct {
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	CheckoutHandler *handlers.CheckoutHandler
	SearchHandler   *handlers.SearchHandler
	CEPHandler      *handlers.CEPHandler
	TokenService    *token.Service
	CSRF            *csrf.Config
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")
	if d.CSRF != nil {
		v1.Use(csrf.Middleware(*d.CSRF))
	}

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}
	v1.GET("/cep/:cep", d.CEPHandler.Lookup)
	v1.GET("/payment/installments", d.CheckoutHandler.Installments)
	v1.POST("/payment/validate-card", d.CheckoutHandler.ValidateCard)

	admin := v1.Group("/admin", d.TokenService.AdminOnly)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	me := v1.Group("/me", d.TokenService.AutoRefresh)
	me.GET("", d.AuthHandler.Me)
	me.PATCH("", d.AuthHandler.UpdateMe)

	cart := v1.Group("/cart", d.TokenService.Optional)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("/:index", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:index", d.CartHandler.RemoveItem)

	v1.POST("/checkout", d.CheckoutHandler.Submit, d.TokenService.AutoRefresh)
}

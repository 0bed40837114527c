package routes

import (
	"storefront-service/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the storefront routes.
func RegisterRoutes(
	r *gin.Engine,
	pc *controllers.ProductController,
	cc *controllers.CartController,
	kc *controllers.CheckoutController,
) {
	r.GET("/products", pc.GetProducts)

	cart := r.Group("/cart")
	{
		cart.GET("", cc.GetCart)
		cart.POST("/add", cc.AddItem)
	}

	r.POST("/checkout", kc.Checkout)
	r.GET("/checkout/success/:sale_id", kc.CheckoutSuccess)
}

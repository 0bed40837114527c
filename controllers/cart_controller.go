package controllers

import (
	"net/http"

	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// StockWarningHeader carries the clamp warning on the add-to-cart redirect.
const StockWarningHeader = "X-Stock-Warning"

// CartController handles HTTP requests for the session cart.
type CartController struct {
	cartService services.CartService
}

// NewCartController creates a new CartController.
func NewCartController(svc services.CartService) *CartController {
	return &CartController{cartService: svc}
}

// AddItem handles POST /cart/add
func (cc *CartController) AddItem(ctx *gin.Context) {
	sessionID, err := middleware.GetSessionID(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Session unavailable"})
		return
	}

	var req models.AddToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	_, warning, svcErr := cc.cartService.AddItem(ctx.Request.Context(), sessionID, req.ProductID, req.Quantity)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	if warning != "" {
		ctx.Header(StockWarningHeader, warning)
	}
	ctx.Redirect(http.StatusSeeOther, "/products")
}

// GetCart handles GET /cart
func (cc *CartController) GetCart(ctx *gin.Context) {
	sessionID, err := middleware.GetSessionID(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Session unavailable"})
		return
	}

	view, svcErr := cc.cartService.ViewCart(ctx.Request.Context(), sessionID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, view)
}

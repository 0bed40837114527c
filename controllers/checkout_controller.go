package controllers

import (
	"net/http"

	"storefront-service/middleware"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckoutController handles HTTP requests for checkout.
type CheckoutController struct {
	checkoutService services.CheckoutService
}

// NewCheckoutController creates a new CheckoutController.
func NewCheckoutController(svc services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkoutService: svc}
}

// Checkout handles POST /checkout
func (cc *CheckoutController) Checkout(ctx *gin.Context) {
	sessionID, err := middleware.GetSessionID(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Session unavailable"})
		return
	}

	sale, svcErr := cc.checkoutService.Checkout(ctx.Request.Context(), sessionID)
	if svcErr != nil {
		// Empty cart is a no-op, not an error: back to the product list.
		if svcErr == services.ErrCartEmpty {
			ctx.Redirect(http.StatusSeeOther, "/products")
			return
		}
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/checkout/success/"+sale.ID.String())
}

// CheckoutSuccess handles GET /checkout/success/:sale_id
func (cc *CheckoutController) CheckoutSuccess(ctx *gin.Context) {
	saleID, err := uuid.Parse(ctx.Param("sale_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID"})
		return
	}

	sale, svcErr := cc.checkoutService.GetSale(ctx.Request.Context(), saleID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Checkout completed successfully",
		"sale":    sale,
	})
}

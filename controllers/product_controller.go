package controllers

import (
	"net/http"

	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// ProductController handles HTTP requests for the catalog.
type ProductController struct {
	catalogService services.CatalogService
}

// NewProductController creates a new ProductController.
func NewProductController(svc services.CatalogService) *ProductController {
	return &ProductController{catalogService: svc}
}

// GetProducts handles GET /products
func (pc *ProductController) GetProducts(ctx *gin.Context) {
	products, svcErr := pc.catalogService.ListProducts(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

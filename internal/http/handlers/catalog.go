package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/http/response"
	"github.com/sarunks7/storely-backend/internal/services"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GET /products
func (ch *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := ch.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	out := make([]gin.H, 0, len(products))
	for _, p := range products {
		out = append(out, productPayload(p))
	}
	response.RespondOK(c, gin.H{"products": out})
}

// GET /products/:slug
func (ch *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := ch.catalogService.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"product": productPayload(product)})
}

func productPayload(p *types.Product) gin.H {
	variations := make([]gin.H, 0, len(p.Variations))
	for _, v := range p.Variations {
		variations = append(variations, gin.H{
			"id":    v.ID,
			"axis":  v.Axis,
			"value": v.Value,
		})
	}
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"price_cents": p.PriceCents,
		"stock":       p.Stock,
		"available":   p.IsAvailable,
		"variations":  variations,
	}
}

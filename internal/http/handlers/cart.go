package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/http/middleware"
	"github.com/sarunks7/storely-backend/internal/http/response"
	"github.com/sarunks7/storely-backend/internal/services"
)

type CartHandler struct {
	identityService services.IdentityService
	cartService     services.CartService
	catalogService  services.CatalogService
	cookieMaxAge    int
}

func NewCartHandler(
	identityService services.IdentityService,
	cartService services.CartService,
	catalogService services.CatalogService,
	cookieMaxAge int,
) *CartHandler {
	return &CartHandler{
		identityService: identityService,
		cartService:     cartService,
		catalogService:  catalogService,
		cookieMaxAge:    cookieMaxAge,
	}
}

// POST /cart/items/:product_id
// body: { "variations": { "size": "M", "color": "red" } }, also accepted
// as form fields for plain HTML storefronts.
func (ch *CartHandler) AddItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}

	selections := ch.readSelections(c)

	owner, minted := ch.identityService.ResolveOwner(c.Request.Context())
	ch.applyMintedSession(c, minted)

	if _, err := ch.catalogService.GetProduct(c.Request.Context(), productID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	variations, err := ch.catalogService.MatchVariations(c.Request.Context(), productID, selections)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}

	if _, err := ch.cartService.AddToCart(c.Request.Context(), owner, productID, variations); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	ch.respondCart(c, owner)
}

// POST /cart/items/:product_id/:line_id/decrement
func (ch *CartHandler) DecrementItem(c *gin.Context) {
	productID, lineID, ok := ch.lineParams(c)
	if !ok {
		return
	}
	owner, minted := ch.identityService.ResolveOwner(c.Request.Context())
	ch.applyMintedSession(c, minted)

	if err := ch.cartService.Decrement(c.Request.Context(), owner, productID, lineID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	ch.respondCart(c, owner)
}

// DELETE /cart/items/:product_id/:line_id
func (ch *CartHandler) RemoveItem(c *gin.Context) {
	productID, lineID, ok := ch.lineParams(c)
	if !ok {
		return
	}
	owner, minted := ch.identityService.ResolveOwner(c.Request.Context())
	ch.applyMintedSession(c, minted)

	if err := ch.cartService.Remove(c.Request.Context(), owner, productID, lineID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	ch.respondCart(c, owner)
}

// GET /cart
func (ch *CartHandler) ViewCart(c *gin.Context) {
	owner, minted := ch.identityService.ResolveOwner(c.Request.Context())
	ch.applyMintedSession(c, minted)
	ch.respondCart(c, owner)
}

// Every mutation answers with the refreshed cart, the JSON analog of the
// storefront's redirect-to-cart.
func (ch *CartHandler) respondCart(c *gin.Context, owner types.CartOwner) {
	totals, lines, err := ch.cartService.ComputeTotals(c.Request.Context(), owner)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, cartPayload(totals, lines))
}

// GET /cart/count
func (ch *CartHandler) CartCount(c *gin.Context) {
	owner, minted := ch.identityService.ResolveOwner(c.Request.Context())
	ch.applyMintedSession(c, minted)

	count, err := ch.cartService.CartCount(c.Request.Context(), owner)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"count": count})
}

func (ch *CartHandler) lineParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return uuid.Nil, uuid.Nil, false
	}
	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_line_id", err)
		return uuid.Nil, uuid.Nil, false
	}
	return productID, lineID, true
}

func (ch *CartHandler) readSelections(c *gin.Context) []services.VariationSelection {
	var selections []services.VariationSelection

	if strings.Contains(c.ContentType(), "json") {
		var req struct {
			Variations map[string]string `json:"variations"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			for axis, value := range req.Variations {
				selections = append(selections, services.VariationSelection{Axis: axis, Value: value})
			}
		}
		return selections
	}

	// Form posts carry one field per axis.
	if err := c.Request.ParseForm(); err == nil {
		for axis, values := range c.Request.PostForm {
			if len(values) == 0 {
				continue
			}
			selections = append(selections, services.VariationSelection{Axis: axis, Value: values[0]})
		}
	}
	return selections
}

func (ch *CartHandler) applyMintedSession(c *gin.Context, minted string) {
	if minted == "" {
		return
	}
	c.SetCookie(middleware.SessionCookieName, minted, ch.cookieMaxAge, "/", "", false, true)
	c.Header(middleware.SessionHeaderName, minted)
}

func cartPayload(totals types.Totals, lines []*types.CartLine) gin.H {
	out := make([]gin.H, 0, len(lines))
	for _, line := range lines {
		out = append(out, linePayload(line))
	}
	return gin.H{
		"lines": out,
		"totals": gin.H{
			"subtotal_cents":    totals.SubtotalCents,
			"quantity":          totals.Quantity,
			"tax_cents":         totals.TaxCents,
			"grand_total_cents": totals.GrandTotalCents,
		},
	}
}

func linePayload(line *types.CartLine) gin.H {
	variations := make([]gin.H, 0, len(line.Variations))
	for _, v := range line.Variations {
		variations = append(variations, gin.H{
			"id":    v.ID,
			"axis":  v.Axis,
			"value": v.Value,
		})
	}
	payload := gin.H{
		"id":         line.ID,
		"product_id": line.ProductID,
		"quantity":   line.Quantity,
		"variations": variations,
	}
	if line.Product != nil {
		payload["product"] = gin.H{
			"name":        line.Product.Name,
			"slug":        line.Product.Slug,
			"price_cents": line.Product.PriceCents,
		}
		payload["line_total_cents"] = line.Product.PriceCents * int64(line.Quantity)
	}
	return payload
}

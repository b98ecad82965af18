package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sarunks7/storely-backend/internal/http/response"
	"github.com/sarunks7/storely-backend/internal/services"
)

type CheckoutHandler struct {
	identityService services.IdentityService
	checkoutService services.CheckoutService
}

func NewCheckoutHandler(identityService services.IdentityService, checkoutService services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{identityService: identityService, checkoutService: checkoutService}
}

// GET /checkout
func (ch *CheckoutHandler) Checkout(c *gin.Context) {
	owner, _ := ch.identityService.ResolveOwner(c.Request.Context())

	totals, lines, err := ch.checkoutService.Project(c.Request.Context(), owner)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, cartPayload(totals, lines))
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sarunks7/storely-backend/internal/http/response"
	"github.com/sarunks7/storely-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": gin.H{
		"id":         me.ID,
		"email":      me.Email,
		"first_name": me.FirstName,
		"last_name":  me.LastName,
		"is_active":  me.IsActive,
	}})
}

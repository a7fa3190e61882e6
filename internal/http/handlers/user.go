package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/kazlearn-backend/internal/http/response"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/user/profile
func (uh *UserHandler) Profile(c *gin.Context) {
	u, err := uh.userService.GetProfile(c.Request.Context(), viewerID(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// GET /api/user/stats
func (uh *UserHandler) Stats(c *gin.Context) {
	stats, err := uh.userService.GetStats(c.Request.Context(), viewerID(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

// PUT /api/user/update
// body: { "username"?, "email"?, "current_theme"? }
func (uh *UserHandler) Update(c *gin.Context) {
	var req struct {
		Username     *string `json:"username"`
		Email        *string `json:"email"`
		CurrentTheme *string `json:"current_theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, apierr.Validation("invalid request body"))
		return
	}
	u, err := uh.userService.Update(c.Request.Context(), viewerID(c), services.ProfileUpdate{
		Username:     req.Username,
		Email:        req.Email,
		CurrentTheme: req.CurrentTheme,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Profile updated", "user": u})
}

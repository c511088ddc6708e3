package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stockbook/backend/internal/infrastructure/auth"
	"github.com/stockbook/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles session endpoints. Token issuance lives with the
// identity provider; this API only revokes its own tokens.
type AuthHandler struct {
	BaseHandler
	blacklist auth.TokenBlacklist
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(blacklist auth.TokenBlacklist) *AuthHandler {
	return &AuthHandler{blacklist: blacklist}
}

// Logout handles POST /auth/logout. The current token's JTI is blacklisted
// for its remaining lifetime, so the entry expires with the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	if claims.ID == "" {
		h.BadRequest(c, "Token carries no ID and cannot be revoked")
		return
	}

	if h.blacklist != nil {
		if err := h.blacklist.Revoke(c.Request.Context(), claims.ID, claims.GetRemainingTTL()); err != nil {
			h.InternalError(c, "Failed to revoke token")
			return
		}
	}
	h.NoContent(c)
}

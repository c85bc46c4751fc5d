package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LexovateAyacucho/qhoar-web/internal/interfaces/http/response"
)

type profileRenderer interface {
	PublicProfile(ctx context.Context, businessID uuid.UUID) ([]byte, error)
}

// PublicHandler serves pages visible without an account
type PublicHandler struct {
	renderer profileRenderer
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(renderer profileRenderer) *PublicHandler {
	return &PublicHandler{renderer: renderer}
}

// Profile renders the public page of an active business
// GET /api/v1/businesses/:id/profile
func (h *PublicHandler) Profile(c *gin.Context) {
	id, ok := uuidParam(c, "id", "business")
	if !ok {
		return
	}

	page, err := h.renderer.PublicProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=60")
	response.HTML(c, http.StatusOK, page)
}

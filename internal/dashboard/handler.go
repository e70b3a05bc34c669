package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"utilitycompare-backend/internal/shared/server/middleware"
	"utilitycompare-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches dashboard routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/summary", h.summary)
}

func (h *Handler) summary(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)

	summary, err := h.Svc.Summarize(c.Request.Context(), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build summary", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, summary)
}

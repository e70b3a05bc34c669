package bills

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes attaches bill routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bills", h.list)
	rg.GET("/bills/:billId", h.get)
	rg.DELETE("/bills/:billId", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)

	opts := ListOptions{
		UtilityCategory: c.Query("utilityType"),
		PageToken:       c.Query("pageToken"),
	}
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a non-negative integer", nil)
			return
		}
		opts.Limit = int32(parsed)
	}

	page, err := h.Svc.List(c.Request.Context(), ownerID, opts)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list bills", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toListResponse(page))
}

func (h *Handler) get(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	billID := c.Param("billId")
	c.Set("billId", billID)

	record, err := h.Svc.Get(c.Request.Context(), ownerID, billID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "bill not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch bill", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(record))
}

func (h *Handler) delete(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	billID := c.Param("billId")
	c.Set("billId", billID)

	if err := h.Svc.Delete(c.Request.Context(), ownerID, billID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "bill not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete bill", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"deleted": billID})
}

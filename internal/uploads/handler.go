package uploads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"utilitycompare-backend/internal/shared/server/middleware"
	"utilitycompare-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	utilityType := c.PostForm("utilityType")

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	bill, err := h.Svc.Upload(c.Request.Context(), userID, utilityType, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store upload", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"success":  true,
		"key":      bill.Key,
		"location": bill.Location,
		"size":     bill.Size,
	})
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "utilitycompare-backend/internal/auth"
	"utilitycompare-backend/internal/bills"
	"utilitycompare-backend/internal/dashboard"
	"utilitycompare-backend/internal/shared/config"
	"utilitycompare-backend/internal/shared/metrics"
	"utilitycompare-backend/internal/shared/server/middleware"
	"utilitycompare-backend/internal/shared/server/respond"
	"utilitycompare-backend/internal/uploads"
)

// RouterDeps carries the handlers the router mounts. Nil handlers are
// skipped so partial wiring (worker processes, tests) stays possible.
type RouterDeps struct {
	Config           config.Config
	UploadsHandler   *uploads.Handler
	BillsHandler     *bills.Handler
	DashboardHandler *dashboard.Handler
	GoogleAuth       *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	registerDebugRoutes(api, deps.Config)
	registerMeRoutes(api)

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UploadsHandler != nil {
		deps.UploadsHandler.RegisterRoutes(api)
	}
	if deps.BillsHandler != nil {
		deps.BillsHandler.RegisterRoutes(api)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"utilitycompare-backend/internal/shared/config"
	"utilitycompare-backend/internal/shared/server/respond"
)

var startedAt = time.Now()

// registerDebugRoutes attaches the /debug endpoint: a non-secret snapshot of
// the process and its effective configuration.
func registerDebugRoutes(rg *gin.RouterGroup, cfg config.Config) {
	rg.GET("/debug", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"env":           cfg.Env,
			"objectStore":   cfg.ObjectStoreType,
			"billsTable":    cfg.BillsTable,
			"bedrockModel":  cfg.BedrockModelID,
			"bedrockRegion": cfg.BedrockRegion,
			"dbConfigured":  cfg.DatabaseURL != "",
			"goVersion":     runtime.Version(),
			"uptimeSeconds": int64(time.Since(startedAt).Seconds()),
		})
	})
}

package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/audit"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/doctypes"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/documents"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/config"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/metrics"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/server/middleware"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/server/respond"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/users"
)

const uploadRateGroup = "UPLOAD"

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	UsersHandler     *users.Handler
	DocTypesHandler  *doctypes.Handler
	DocumentsHandler *documents.Handler
	AuditHandler     *audit.Handler
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
		middleware.Identity(),
	)

	if deps.Config.UploadRatePerSec > 0 && deps.Config.UploadBurst > 0 {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				uploadRateGroup: {
					Rate:  deps.Config.UploadRatePerSec,
					Burst: deps.Config.UploadBurst,
				},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/documents/upload" {
					return uploadRateGroup
				}
				return ""
			},
		}))
	}

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	deps.UsersHandler.RegisterRoutes(api)
	deps.DocTypesHandler.RegisterRoutes(api)
	deps.DocumentsHandler.RegisterRoutes(api)
	deps.AuditHandler.RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches audit routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-logs", h.list)
}

func (h *Handler) list(c *gin.Context) {
	entries, err := h.Svc.List(c.Request.Context(), c.Query("documentId"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to list audit logs")
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	respond.OK(c, entries)
}

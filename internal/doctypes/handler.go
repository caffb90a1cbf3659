package doctypes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/server/middleware"
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

// RegisterRoutes attaches document type routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/config/document-types", h.list)
	rg.GET("/config/document-types/:id", h.get)
	rg.POST("/config/document-types", h.create)
}

func (h *Handler) list(c *gin.Context) {
	types, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to list document types")
		return
	}
	respond.OK(c, types)
}

func (h *Handler) get(c *gin.Context) {
	dt, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Document type not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to fetch document type")
		return
	}
	respond.OK(c, dt)
}

func (h *Handler) create(c *gin.Context) {
	var def DocumentType
	if err := c.ShouldBindJSON(&def); err != nil {
		respond.Error(c, http.StatusBadRequest, "Bad request")
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), def)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "Document type name is required")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to create document type")
		return
	}
	respond.Created(c, created)
}

package documents

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/server/middleware"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/server/respond"
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

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents", h.list)
	rg.GET("/documents/search", h.search)
	rg.POST("/documents/upload", h.upload)
	rg.GET("/documents/:id", h.get)
	rg.PUT("/documents/:id", h.update)
	rg.DELETE("/documents/:id", h.delete)
	rg.POST("/documents/:id/approve", h.approve)
	rg.POST("/documents/:id/reject", h.reject)
	rg.POST("/documents/:id/reprocess", h.reprocess)
}

type uploadRequest struct {
	FileName       string `json:"fileName"`
	FileType       string `json:"fileType"`
	FileSize       int64  `json:"fileSize"`
	DocumentTypeID string `json:"documentTypeId"`
	// DocumentType is the legacy field name some clients still send.
	DocumentType string `json:"documentType"`
}

func (h *Handler) upload(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	var req uploadRequest
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
		fileHeader, err := c.FormFile("file")
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "No file uploaded")
			return
		}
		// Only the file's name, declared type and size are used. The
		// content is never parsed.
		req.FileName = fileHeader.Filename
		req.FileType = fileHeader.Header.Get("Content-Type")
		req.FileSize = fileHeader.Size
		req.DocumentTypeID = c.PostForm("documentTypeId")
		req.DocumentType = c.PostForm("documentType")
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "Bad request")
			return
		}
	}

	typeID := req.DocumentTypeID
	if typeID == "" {
		typeID = req.DocumentType
	}
	if typeID == "" {
		respond.Error(c, http.StatusBadRequest, "Document type is required")
		return
	}

	doc, err := h.Svc.Upload(c.Request.Context(), actorID, req.FileName, req.FileType, req.FileSize, typeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "File name is required")
		case errors.Is(err, ErrUnknownType):
			respond.Error(c, http.StatusBadRequest, "Invalid document type")
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to upload document")
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.OK(c, doc)
}

func (h *Handler) list(c *gin.Context) {
	f := Filter{
		Status:         c.Query("status"),
		ReviewStatus:   c.Query("reviewStatus"),
		DocumentTypeID: c.Query("documentTypeId"),
		Search:         c.Query("search"),
	}

	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "pageSize", 0)

	result, err := h.Svc.List(c.Request.Context(), f, page, pageSize)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to list documents")
		return
	}
	respond.OK(c, result)
}

func (h *Handler) search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respond.Error(c, http.StatusBadRequest, "Search query is required")
		return
	}

	result, err := h.Svc.Search(c.Request.Context(), q)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to search documents")
		return
	}
	respond.OK(c, result)
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	respond.OK(c, doc)
}

func (h *Handler) update(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		respond.Error(c, http.StatusBadRequest, "Bad request")
		return
	}

	doc, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "No fields to update")
			return
		}
		h.renderError(c, err)
		return
	}
	respond.OK(c, doc)
}

func (h *Handler) delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	respond.OK(c, gin.H{"success": true})
}

type reviewRequest struct {
	Comments string `json:"comments"`
	Reason   string `json:"reason"`
}

func (h *Handler) approve(c *gin.Context) {
	var req reviewRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	doc, err := h.Svc.Approve(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.Comments)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Set("reviewTransition", ReviewPending+"->"+ReviewApproved)
	respond.OK(c, doc)
}

func (h *Handler) reject(c *gin.Context) {
	var req reviewRequest
	_ = c.ShouldBindJSON(&req)

	reason := req.Reason
	if reason == "" {
		reason = req.Comments
	}

	doc, err := h.Svc.Reject(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), reason)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Set("reviewTransition", ReviewPending+"->"+ReviewRejected)
	respond.OK(c, doc)
}

func (h *Handler) reprocess(c *gin.Context) {
	doc, err := h.Svc.Reprocess(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	respond.OK(c, gin.H{
		"documentId":    doc.ID,
		"status":        "success",
		"extractedData": doc.ExtractedData,
		"ocrText":       doc.OCRText,
		"confidence":    doc.Confidence,
	})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var transition *TransitionError
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "Document not found")
	case errors.As(err, &transition):
		respond.Error(c, http.StatusConflict, "Review already "+transition.Current)
	default:
		respond.Error(c, http.StatusInternalServerError, "Internal error")
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}

package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"docrank/internal/domain"
	"docrank/internal/ranker"
)

// Handler serves the document and search routes.
type Handler struct {
	svc domain.SearchService
	log *slog.Logger
}

// DocumentItem is the list view of a document; content is omitted.
type DocumentItem struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Type   string        `json:"type"`
	Status domain.Status `json:"status"`
	Source domain.Source `json:"source,omitempty"`
}

// SearchRequest is the body of POST /search. A present but blank query is
// valid and yields an empty array.
type SearchRequest struct {
	Query *string `json:"query" binding:"required"`
}

// UploadRequest is the body of POST /uploads. Text must already be decoded.
type UploadRequest struct {
	Name string  `json:"name" binding:"required"`
	Text *string `json:"text" binding:"required"`
}

func (h *Handler) ListDocuments(c *gin.Context) {
	docs, err := h.svc.Corpus(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	items := make([]DocumentItem, len(docs))
	for i, d := range docs {
		items[i] = DocumentItem{ID: d.ID, Name: d.Name, Type: string(d.Extension), Status: d.Status}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}
	results, err := h.svc.Search(c.Request.Context(), c.GetString(sessionKey), *req.Query)
	if err != nil {
		h.fail(c, err)
		return
	}
	if c.Query("relevant") == "true" {
		results = ranker.Relevant(results)
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) CreateUpload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := h.svc.Upload(c.Request.Context(), c.GetString(sessionKey), req.Name, req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toItem(doc))
}

func (h *Handler) ListUploads(c *gin.Context) {
	docs, err := h.svc.Uploads(c.Request.Context(), c.GetString(sessionKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	items := make([]DocumentItem, len(docs))
	for i, d := range docs {
		items[i] = toItem(d)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteUpload(c *gin.Context) {
	if err := h.svc.RemoveUpload(c.Request.Context(), c.GetString(sessionKey), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrMissingText), errors.Is(err, domain.ErrInvalidDocument):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Error("request failed", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func toItem(d domain.Document) DocumentItem {
	return DocumentItem{ID: d.ID, Name: d.Name, Type: string(d.Extension), Status: d.Status, Source: d.Source}
}

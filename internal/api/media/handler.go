package media

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"agency-site/internal/api/respond"
	"agency-site/internal/domain/media"
	"agency-site/internal/domain/validation"
	"agency-site/internal/errs"
	"agency-site/internal/store"
	"agency-site/internal/uploads"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for the form fields around the file part.
const multipartOverhead = 1 << 20

type Handler struct {
	store   store.MediaStore
	uploads *uploads.Handler
}

func New(st store.MediaStore, up *uploads.Handler) *Handler {
	return &Handler{store: st, uploads: up}
}

// ------------------------------
// GET /api/media
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.ListMediaAssets(c.Request.Context())
	if err != nil {
		respond.Error(c, err, "Failed to fetch media")
		return
	}
	c.JSON(http.StatusOK, list)
}

// ------------------------------
// GET /api/media/:category
// ------------------------------
// "all" lists every asset.
func (h *Handler) ListByCategory(c *gin.Context) {
	category := c.Param("category")
	if category == media.CategoryAll {
		h.List(c)
		return
	}

	list, err := h.store.ListMediaAssetsByCategory(c.Request.Context(), category)
	if err != nil {
		respond.Error(c, err, "Failed to fetch media")
		return
	}
	c.JSON(http.StatusOK, list)
}

// ------------------------------
// POST /api/media/upload
// ------------------------------
func (h *Handler) Upload(c *gin.Context) {
	if h.uploads.MaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploads.MaxBytes+multipartOverhead)
	}

	file, err := c.FormFile(uploads.DefaultField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respond.Error(c, errs.NewBadUpload(fmt.Sprintf("File too large. Maximum size is %d bytes", h.uploads.MaxBytes)), "")
		default:
			respond.Error(c, errs.NewBadUpload("No file uploaded"), "")
		}
		return
	}

	projectID, err := parseProjectID(c.PostForm("projectId"))
	if err != nil {
		respond.Error(c, err, "")
		return
	}

	asset, err := h.uploads.Save(c.Request.Context(), uploads.Request{
		Field:     uploads.DefaultField,
		File:      file,
		Type:      c.PostForm("type"),
		Category:  c.PostForm("category"),
		ProjectID: projectID,
	})
	if err != nil {
		respond.Error(c, err, "Failed to upload file")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "file": asset})
}

// ------------------------------
// DELETE /api/media/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id, ok := respond.ID(c, "id")
	if !ok {
		return
	}
	if err := h.uploads.Remove(c.Request.Context(), id); err != nil {
		respond.Error(c, err, "Failed to delete media")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// parseProjectID treats an empty form value as "no project".
func parseProjectID(raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return nil, validation.Field("projectId", "gt", "0")
	}
	id := uint(v)
	return &id, nil
}

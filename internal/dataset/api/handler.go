package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	v1 "github.com/aevon-lab/sift/internal/api/v1"
	httperr "github.com/aevon-lab/sift/internal/core/errors"
	"github.com/aevon-lab/sift/internal/dataset"
	"github.com/gin-gonic/gin"
)

// Handler handles dataset management HTTP requests.
type Handler struct {
	registry         *dataset.Registry
	maxBodySizeBytes int
}

// NewHandler creates a new dataset API handler.
func NewHandler(reg *dataset.Registry, maxBodySizeBytes int) *Handler {
	return &Handler{
		registry:         reg,
		maxBodySizeBytes: maxBodySizeBytes,
	}
}

// DatasetResponse is the response body for dataset operations. Content is
// never echoed back.
type DatasetResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Format      string `json:"format"`
	Source      string `json:"source"`
	Message     string `json:"message,omitempty"`
	Fingerprint string `json:"fingerprint"`
	RecordCount int    `json:"record_count"`
	CreatedAt   string `json:"created_at"`
}

// HandleRegister handles POST /v1/datasets.
func (h *Handler) HandleRegister(c *gin.Context) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(h.maxBodySizeBytes)
	bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBytes+1))
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{ErrorType: httperr.HttpInternalError, Message: "Failed to read request body"})
		return
	}
	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		c.JSON(http.StatusRequestEntityTooLarge, httperr.ErrorResponse{
			ErrorType: httperr.HttpRequestTooLargeError,
			Message:   "Request body exceeds maximum allowed size",
			Details:   map[string]interface{}{"max_size_mb": maxBytes / (1024 * 1024)},
		})
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var upload v1.DatasetUpload
	if err := c.ShouldBindJSON(&upload); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{ErrorType: httperr.HttpInvalidJsonError, Message: "Invalid JSON body"})
		return
	}
	if err := upload.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{ErrorType: httperr.HttpDatasetInvalidError, Message: err.Error()})
		return
	}

	ds, err := h.registry.Register(c.Request.Context(), upload.Name, dataset.Format(upload.Format),
		upload.Payload(), []byte(upload.Schema), upload.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(ds))
}

// HandleList handles GET /v1/datasets.
func (h *Handler) HandleList(c *gin.Context) {
	all, err := h.registry.List(c.Request.Context())
	if err != nil {
		slog.Error("Dataset list error", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{ErrorType: httperr.HttpInternalError, Message: "Failed to list datasets"})
		return
	}

	responses := make([]*DatasetResponse, len(all))
	for i, ds := range all {
		responses[i] = toResponse(ds)
	}
	c.JSON(http.StatusOK, responses)
}

// HandleGet handles GET /v1/datasets/{name}.
func (h *Handler) HandleGet(c *gin.Context) {
	ds, err := h.registry.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(ds))
}

// HandleDelete handles DELETE /v1/datasets/{name}.
func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.registry.Delete(c.Request.Context(), c.Param("name")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	var decodeErr *dataset.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		c.JSON(http.StatusUnprocessableEntity, httperr.ErrorResponse{
			ErrorType: httperr.HttpDatasetInvalidError,
			Message:   err.Error(),
			Details:   map[string]interface{}{"format": decodeErr.Format},
		})
	case errors.Is(err, dataset.ErrNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{ErrorType: httperr.HttpDatasetNotFoundError, Message: err.Error()})
	case errors.Is(err, dataset.ErrAlreadyExists):
		c.JSON(http.StatusConflict, httperr.ErrorResponse{ErrorType: httperr.HttpDatasetExistsError, Message: err.Error()})
	case errors.Is(err, dataset.ErrReadOnly):
		c.JSON(http.StatusForbidden, httperr.ErrorResponse{ErrorType: httperr.HttpDatasetReadOnlyError, Message: err.Error()})
	case errors.Is(err, dataset.ErrInvalidDataset):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{ErrorType: httperr.HttpDatasetInvalidError, Message: err.Error()})
	default:
		slog.Error("Dataset request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{ErrorType: httperr.HttpInternalError, Message: "Dataset request failed"})
	}
}

func toResponse(ds *dataset.Dataset) *DatasetResponse {
	return &DatasetResponse{
		ID:          ds.ID,
		Name:        ds.Name,
		Format:      string(ds.Format),
		Source:      string(ds.Source),
		Message:     ds.Message,
		Fingerprint: ds.Fingerprint,
		RecordCount: ds.RecordCount,
		CreatedAt:   ds.CreatedAt.Format(time.RFC3339),
	}
}

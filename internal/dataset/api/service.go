package api

import (
	"github.com/aevon-lab/sift/internal/dataset"
	"github.com/gin-gonic/gin"
)

// Service provides the dataset management API.
type Service struct {
	registry         *dataset.Registry
	maxBodySizeBytes int
}

// NewService creates a new dataset API service. Upload bodies larger than
// maxBodySizeMB are rejected.
func NewService(reg *dataset.Registry, maxBodySizeMB int) *Service {
	return &Service{
		registry:         reg,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the dataset API routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	handler := NewHandler(s.registry, s.maxBodySizeBytes)

	datasets := r.Group("/v1/datasets")
	{
		datasets.POST("", handler.HandleRegister)
		datasets.GET("", handler.HandleList)
		datasets.GET("/:name", handler.HandleGet)
		datasets.DELETE("/:name", handler.HandleDelete)
	}
}

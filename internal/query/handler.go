package query

import (
	"errors"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/sift/internal/api/v1"
	"github.com/aevon-lab/sift/internal/core/collection"
	httperr "github.com/aevon-lab/sift/internal/core/errors"
	"github.com/aevon-lab/sift/internal/core/path"
	"github.com/aevon-lab/sift/internal/dataset"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all query API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/datasets/:name/query", s.HandleQuery)
	r.GET("/v1/ops", s.HandleOps)
}

// HandleQuery handles POST /v1/datasets/:name/query.
func (s *Service) HandleQuery(c *gin.Context) {
	var q v1.Query
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}

	name := c.Param("name")
	resp, err := s.Query(c.Request.Context(), name, q)
	if err != nil {
		status, errorType, message := classify(err)
		if status == http.StatusInternalServerError {
			slog.Error("Query failed", "dataset", name, "op", q.Op, "error", err)
		}
		c.JSON(status, httperr.ErrorResponse{
			ErrorType: errorType,
			Message:   message,
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleOps handles GET /v1/ops.
func (s *Service) HandleOps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ops": Ops()})
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		return http.StatusNotFound, httperr.HttpDatasetNotFoundError, "Dataset not found"
	case errors.Is(err, ErrInvalidQuery), errors.Is(err, collection.ErrInvalidArgument):
		return http.StatusBadRequest, httperr.HttpInvalidQueryError, "Invalid query"
	case errors.Is(err, path.ErrResolution), errors.Is(err, collection.ErrIncomparableKey):
		return http.StatusUnprocessableEntity, httperr.HttpResolutionError, "Property could not be resolved"
	case errors.Is(err, dataset.ErrInvalidDataset):
		return http.StatusUnprocessableEntity, httperr.HttpDatasetInvalidError, "Dataset cannot be decoded"
	}
	return http.StatusInternalServerError, httperr.HttpInternalError, "Failed to run query"
}

package rest

import (
	"context"
	"net/http"
	"time"

	"engagementReco/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type DatasetAdminService interface {
	Reload(ctx context.Context) (domain.DatasetInfo, error)
	DatasetInfo() domain.DatasetInfo
}

type DatasetAdminHandler struct {
	service DatasetAdminService
	timeout time.Duration
}

func NewDatasetAdminHandler(service DatasetAdminService) *DatasetAdminHandler {
	return &DatasetAdminHandler{
		service: service,
		timeout: 30 * time.Second,
	}
}

// GET /api/v1/admin/dataset
func (h *DatasetAdminHandler) GetDataset(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.service.DatasetInfo()))
}

// POST /api/v1/admin/dataset/reload
func (h *DatasetAdminHandler) Reload(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	info, err := h.service.Reload(ctx)
	if err != nil {
		return respondError(c, "Failed to reload dataset", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(info))
}

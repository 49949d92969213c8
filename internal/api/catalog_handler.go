package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"decorly-backend-go/internal/core"
	"decorly-backend-go/internal/models"
)

// CatalogHandler handles the public catalog surface and the admin-only
// catalog mutations.
type CatalogHandler struct {
	catalogService core.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs core.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

// mapCatalogErrorToStatus maps errors from core.CatalogService to HTTP
// responses.
func mapCatalogErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Service not found", Details: err.Error()})
	case errors.Is(err, core.ErrInvalidSortField), errors.Is(err, core.ErrInvalidSortOrder):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid sort parameters", Details: err.Error()})
	default:
		log.Printf("CatalogHandler internal error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// ListDecorators handles GET /decorators: all users holding the decorator
// role. Public.
func (h *CatalogHandler) ListDecorators(c *gin.Context) {
	decorators, err := h.catalogService.ListDecorators(c.Request.Context())
	if err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}
	if decorators == nil {
		decorators = []*models.User{}
	}
	c.JSON(http.StatusOK, decorators)
}

// ListServices handles GET /services. Public; supports searchText (case
// insensitive substring on name), sortBy (allow-listed) and order
// (asc/desc). Default is name ascending.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.catalogService.ListServices(
		c.Request.Context(),
		c.Query("searchText"),
		c.Query("sortBy"),
		c.Query("order"),
	)
	if err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}
	if services == nil {
		services = []*models.Service{}
	}
	c.JSON(http.StatusOK, services)
}

// GetService handles GET /service/:id. Public.
func (h *CatalogHandler) GetService(c *gin.Context) {
	service, err := h.catalogService.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// CreateService handles POST /services (admin).
func (h *CatalogHandler) CreateService(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var req models.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	service, err := h.catalogService.CreateService(c.Request.Context(), email, req)
	if err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

// UpdateService handles PATCH /services/:id (admin). Only the allow-listed
// catalog fields present in the body are written.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var req models.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	service, err := h.catalogService.UpdateService(c.Request.Context(), email, c.Param("id"), req)
	if err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// DeleteService handles DELETE /services/:id (admin).
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), email, c.Param("id")); err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Service deleted"})
}

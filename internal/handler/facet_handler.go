package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nthumods/mods-backend/internal/middleware"
	"github.com/nthumods/mods-backend/internal/model"
	"github.com/nthumods/mods-backend/internal/response"
	"github.com/nthumods/mods-backend/internal/service"
	"github.com/nthumods/mods-backend/internal/validator"
)

type FacetHandler struct {
	facetService *service.FacetService
	maxAge       time.Duration
}

// NewFacetHandler serves facet lists that shared caches may keep for maxAge
// when every list loaded.
func NewFacetHandler(facetService *service.FacetService, maxAge time.Duration) *FacetHandler {
	return &FacetHandler{facetService: facetService, maxAge: maxAge}
}

// List godoc
// GET /api/v1/facets
// Always 200: a facet that failed to load is empty with error=true, and the
// response is then marked no-store so the next request retries it.
func (h *FacetHandler) List(c *gin.Context) {
	facets := h.facetService.All(c.Request.Context())
	if facets.Degraded() {
		c.Header("Cache-Control", middleware.NoStoreValue)
	} else {
		c.Header("Cache-Control", middleware.PublicMaxAge(h.maxAge))
	}
	response.Success(c, http.StatusOK, facets)
}

// Refresh godoc
// POST /api/v1/admin/facets/refresh
func (h *FacetHandler) Refresh(c *gin.Context) {
	var req model.RefreshFacetsRequest
	if c.Request.ContentLength != 0 {
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
	}

	queued, err := h.facetService.EnqueueRefresh(c.Request.Context(), req.Facets...)
	if err != nil {
		if errors.Is(err, service.ErrUnknownFacet) {
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownFacet)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"queued": queued})
}

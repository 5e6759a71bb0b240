package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/immoconnect/listing-api/internal/api/metrics"
	"github.com/immoconnect/listing-api/internal/core/domain"
	"github.com/immoconnect/listing-api/internal/core/ports"
)

// CatalogueHandler serves the public listing catalogue.
type CatalogueHandler struct {
	service ports.CatalogueService
}

func NewCatalogueHandler(service ports.CatalogueService) *CatalogueHandler {
	return &CatalogueHandler{service: service}
}

// Browse handles GET /v1/properties.
//
// Anonymous visitors and the agent/client roles may browse; the restricted
// "utilisateur" role may not.
//
// @Summary      Browse the public catalogue
// @Tags         catalogue
// @Produce      json
// @Param        search  query     string  false  "Case-insensitive substring match on title, description, or city"
// @Param        city    query     string  false  "Exact city filter; omit or pass 'all' to disable"
// @Success      200     {object}  catalogueResponse
// @Failure      403     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /v1/properties [get]
func (h *CatalogueHandler) Browse(c echo.Context) error {
	if role, _ := c.Get("role").(string); role == domain.RoleUtilisateur {
		return c.JSON(http.StatusForbidden, errorResponse{Error: "catalogue access restricted for this role"})
	}

	input := ports.BrowseInput{
		Search: c.QueryParam("search"),
		City:   c.QueryParam("city"),
	}

	result, err := h.service.Browse(c.Request().Context(), input)
	if err != nil {
		return err
	}

	filtered := "false"
	if input.Search != "" || (input.City != "" && input.City != ports.CityAll) {
		filtered = "true"
	}
	metrics.CatalogueSearchesTotal.WithLabelValues(filtered).Inc()

	return c.JSON(http.StatusOK, toCatalogueResponse(result))
}

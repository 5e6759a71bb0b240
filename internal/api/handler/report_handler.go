package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/immoconnect/listing-api/internal/core/ports"
)

// ReportHandler serves aggregate reports over the property table.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// CityStatistics handles GET /v1/reports/cities.
//
// @Summary      Listing count and average price per city
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.CityStat
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/reports/cities [get]
func (h *ReportHandler) CityStatistics(c echo.Context) error {
	stats, err := h.service.CityStatistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Quality handles GET /v1/reports/quality.
//
// @Summary      Data-quality report over all listings
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.QualityReport
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/reports/quality [get]
func (h *ReportHandler) Quality(c echo.Context) error {
	report, err := h.service.Quality(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// ExportCSV handles GET /v1/exports/properties.csv.
//
// @Summary      Export published listings as CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string  "CSV payload"
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/exports/properties.csv [get]
func (h *ReportHandler) ExportCSV(c echo.Context) error {
	// Headers only; the first CSV write commits the 200. A fetch failure
	// before that still flows through the central error handler.
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="properties_export.csv"`)

	return h.service.ExportPublishedCSV(c.Request().Context(), c.Response())
}

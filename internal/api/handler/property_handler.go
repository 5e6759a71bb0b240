package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/immoconnect/listing-api/internal/api/metrics"
	"github.com/immoconnect/listing-api/internal/core/domain"
	"github.com/immoconnect/listing-api/internal/core/ports"
)

// PropertyHandler handles the owner management endpoints.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// ListOwned handles GET /v1/my/properties.
//
// @Summary      List the authenticated agent's own listings
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ownedListingsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/my/properties [get]
func (h *PropertyHandler) ListOwned(c echo.Context) error {
	agentID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	listings, err := h.service.ListOwned(c.Request().Context(), agentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOwnedListingsResponse(listings))
}

// Create handles POST /v1/my/properties.
//
// @Summary      Create a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPropertyRequest  true  "Listing fields; price is free text coerced to a number"
// @Success      201   {object}  propertyResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/my/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	agentID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createPropertyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "price must be a number"})
	}

	p, err := h.service.Create(c.Request().Context(), ports.CreatePropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       price,
		City:        req.City,
		IsPublished: req.IsPublished,
		AgentID:     agentID,
		Role:        role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPrice) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.PropertiesCreatedTotal.WithLabelValues(p.City).Inc()
	return c.JSON(http.StatusCreated, toPropertyResponse(p))
}

// SetPublished handles PATCH /v1/my/properties/:id/publish.
//
// @Summary      Publish or unpublish a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Property id"
// @Param        body  body      setPublishedRequest  true  "Target publication state"
// @Success      200   {object}  propertyResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/my/properties/{id}/publish [patch]
func (h *PropertyHandler) SetPublished(c echo.Context) error {
	agentID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req setPublishedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	action := "unpublish"
	if *req.IsPublished {
		action = "publish"
	}

	p, err := h.service.SetPublished(c.Request().Context(), c.Param("id"), *req.IsPublished, agentID)
	if err != nil {
		if errors.Is(err, domain.ErrMutationInFlight) {
			metrics.MutationConflictsTotal.Inc()
		}
		metrics.PropertyMutationsTotal.WithLabelValues(action, "error").Inc()
		return err
	}

	metrics.PropertyMutationsTotal.WithLabelValues(action, "ok").Inc()
	return c.JSON(http.StatusOK, toPropertyResponse(p))
}

// Activity handles GET /v1/my/properties/:id/activity.
//
// @Summary      Audit trail of one of the agent's listings
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Property id"
// @Success      200  {array}   activityEventResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/my/properties/{id}/activity [get]
func (h *PropertyHandler) Activity(c echo.Context) error {
	agentID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	events, err := h.service.ListActivity(c.Request().Context(), c.Param("id"), agentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityResponses(events))
}

// Delete handles DELETE /v1/my/properties/:id.
//
// @Summary      Delete a listing
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Property id"
// @Success      204  "deleted"
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/my/properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	agentID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), agentID); err != nil {
		if errors.Is(err, domain.ErrMutationInFlight) {
			metrics.MutationConflictsTotal.Inc()
		}
		metrics.PropertyMutationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.PropertyMutationsTotal.WithLabelValues("delete", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}

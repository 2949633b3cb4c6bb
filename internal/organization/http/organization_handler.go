// Package http provides HTTP handlers for organization onboarding, the admin organization
// dashboard and the public channel lookup.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/whistleblower/internal/httputil"
	"github.com/allisson/whistleblower/internal/organization/domain"
	"github.com/allisson/whistleblower/internal/organization/http/dto"
	"github.com/allisson/whistleblower/internal/organization/usecase"
	customValidation "github.com/allisson/whistleblower/internal/validation"
)

// OrganizationHandler handles organization HTTP requests.
type OrganizationHandler struct {
	useCase usecase.UseCase
	logger  *slog.Logger
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(useCase usecase.UseCase, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// CreateHandler onboards an organization.
// POST /v1/admin/organizations and POST /v1/onboarding.
// Returns 201 Created with the recovery key, which is shown only in this response.
func (h *OrganizationHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	out, err := h.useCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusCreated, dto.MapCreateOutputToResponse(out))
}

// ListHandler lists organizations with their report counts.
// GET /v1/admin/organizations?offset=0&limit=50
func (h *OrganizationHandler) ListHandler(c *gin.Context) {
	page, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	summaries, err := h.useCase.List(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSummariesToListResponse(summaries))
}

// UpdateSubscriptionHandler changes the subscription status of an organization.
// PATCH /v1/admin/organizations/:id/subscription
func (h *OrganizationHandler) UpdateSubscriptionHandler(c *gin.Context) {
	id, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	status := domain.SubscriptionStatus(req.Status)
	if err := h.useCase.UpdateSubscriptionStatus(c.Request.Context(), id, status); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id.String(), "subscription_status": req.Status})
}

// ChannelHandler returns the public information of a reporting channel.
// GET /v1/channels/:slug
func (h *OrganizationHandler) ChannelHandler(c *gin.Context) {
	org, err := h.useCase.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrganizationToChannelResponse(org))
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/whistleblower/internal/auth/domain"
	authHTTP "github.com/allisson/whistleblower/internal/auth/http"
	"github.com/allisson/whistleblower/internal/httputil"
	"github.com/allisson/whistleblower/internal/report/http/dto"
	"github.com/allisson/whistleblower/internal/report/usecase"
	customValidation "github.com/allisson/whistleblower/internal/validation"
)

// DashboardHandler handles the compliance dashboard. It must be mounted behind
// ComplianceSessionMiddleware; the organization always comes from the session.
type DashboardHandler struct {
	useCase usecase.UseCase
	logger  *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(useCase usecase.UseCase, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		useCase: useCase,
		logger:  logger,
	}
}

func (h *DashboardHandler) organizationID(c *gin.Context) (uuid.UUID, bool) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrInvalidSession, h.logger)
		return uuid.Nil, false
	}
	return principal.OrganizationID, true
}

// ListHandler returns all reports of the organization with statistics.
// GET /v1/dashboard/reports
func (h *DashboardHandler) ListHandler(c *gin.Context) {
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}

	out, err := h.useCase.ListForOrganization(c.Request.Context(), orgID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.MapDashboardOutput(out))
}

// GetHandler returns one report with its conversation.
// GET /v1/dashboard/reports/:id
func (h *DashboardHandler) GetHandler(c *gin.Context) {
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}

	reportID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	view, err := h.useCase.GetForOrganization(c.Request.Context(), orgID, reportID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.MapReportView(view))
}

// UpdateStatusHandler changes the status or confirmation date of a report.
// PATCH /v1/dashboard/reports/:id
func (h *DashboardHandler) UpdateStatusHandler(c *gin.Context) {
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}

	reportID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	report, err := h.useCase.UpdateStatus(c.Request.Context(), orgID, reportID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapReportStatus(report))
}

// AddMessageHandler appends a compliance reply.
// POST /v1/dashboard/reports/:id/messages - Returns 201 Created with the message id.
func (h *DashboardHandler) AddMessageHandler(c *gin.Context) {
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}

	reportID, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	id, err := h.useCase.AddComplianceMessage(c.Request.Context(), orgID, reportID, req.Content)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageCreatedResponse{MessageID: id.String()})
}

// Package http provides the HTTP handlers of the anonymous Melder channel and the
// compliance dashboard.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/whistleblower/internal/httputil"
	"github.com/allisson/whistleblower/internal/report/http/dto"
	"github.com/allisson/whistleblower/internal/report/usecase"
	customValidation "github.com/allisson/whistleblower/internal/validation"
)

// MelderHandler handles the public, token-authenticated report endpoints.
type MelderHandler struct {
	useCase usecase.UseCase
	logger  *slog.Logger
}

// NewMelderHandler creates a new MelderHandler.
func NewMelderHandler(useCase usecase.UseCase, logger *slog.Logger) *MelderHandler {
	return &MelderHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// SubmitHandler files a report through an organization channel.
// POST /v1/channels/:slug/reports - Returns 201 Created with the Melder token.
func (h *MelderHandler) SubmitHandler(c *gin.Context) {
	var req dto.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	out, err := h.useCase.Submit(c.Request.Context(), c.Param("slug"), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusCreated, dto.SubmitReportResponse{MelderToken: out.MelderToken})
}

// GetByTokenHandler returns the report and conversation of a Melder token.
// GET /v1/reports/token/:token
func (h *MelderHandler) GetByTokenHandler(c *gin.Context) {
	view, err := h.useCase.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.MapReportView(view))
}

// AddMessageHandler appends a Melder message.
// POST /v1/reports/token/:token/messages - Returns 201 Created with the message id.
func (h *MelderHandler) AddMessageHandler(c *gin.Context) {
	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	id, err := h.useCase.AddMelderMessage(c.Request.Context(), c.Param("token"), req.Content)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageCreatedResponse{MessageID: id.String()})
}

package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/whistleblower/internal/report/domain"
	"github.com/allisson/whistleblower/internal/report/http/dto"
	"github.com/allisson/whistleblower/internal/report/usecase"
	"github.com/allisson/whistleblower/internal/report/usecase/mocks"
	"github.com/allisson/whistleblower/internal/testutil"
)

func setupDashboardHandler(t *testing.T) (*DashboardHandler, *mocks.MockUseCase) {
	t.Helper()

	mockUseCase := &mocks.MockUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })

	return NewDashboardHandler(mockUseCase, testutil.DiscardLogger()), mockUseCase
}

func TestDashboardHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupDashboardHandler(t)
		orgID := uuid.Must(uuid.NewV7())
		out := &usecase.DashboardOutput{
			Reports: []*domain.ReportView{
				{ID: uuid.Must(uuid.NewV7()), Title: "Bestechung", Status: domain.StatusNeu, UnreadMessages: 2},
			},
			Stats: domain.Stats{Total: 1, Neu: 1},
		}
		mockUseCase.On("ListForOrganization", mock.Anything, orgID).Return(out, nil)

		c, w := createTestContext(http.MethodGet, "/v1/dashboard/reports", nil)
		withPrincipal(c, orgID)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.DashboardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Reports, 1)
		assert.Equal(t, 2, response.Reports[0].UnreadMessages)
		assert.Equal(t, 1, response.Stats.Neu)
	})

	t.Run("Error_NoPrincipal", func(t *testing.T) {
		handler, _ := setupDashboardHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/dashboard/reports", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestDashboardHandler_GetHandler(t *testing.T) {
	t.Run("Error_OtherOrganization", func(t *testing.T) {
		handler, mockUseCase := setupDashboardHandler(t)
		orgID := uuid.Must(uuid.NewV7())
		reportID := uuid.Must(uuid.NewV7())
		mockUseCase.On("GetForOrganization", mock.Anything, orgID, reportID).Return(nil, domain.ErrReportNotFound)

		c, w := createTestContext(http.MethodGet, "/v1/dashboard/reports/"+reportID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: reportID.String()}}
		withPrincipal(c, orgID)
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, _ := setupDashboardHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/dashboard/reports/abc", nil)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		withPrincipal(c, uuid.Must(uuid.NewV7()))
		handler.GetHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDashboardHandler_UpdateStatusHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupDashboardHandler(t)
		orgID := uuid.Must(uuid.NewV7())
		reportID := uuid.Must(uuid.NewV7())
		confirmedAt := time.Now().UTC()
		status := domain.StatusBestaetigt

		mockUseCase.On("UpdateStatus", mock.Anything, orgID, reportID, usecase.UpdateInput{Status: &status}).
			Return(&domain.Report{ID: reportID, Status: status, ConfirmedAt: &confirmedAt, UpdatedAt: confirmedAt}, nil)

		body := map[string]any{"status": "bestaetigt"}
		c, w := createTestContext(http.MethodPatch, "/v1/dashboard/reports/"+reportID.String(), body)
		c.Params = gin.Params{{Key: "id", Value: reportID.String()}}
		withPrincipal(c, orgID)
		handler.UpdateStatusHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ReportStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "bestaetigt", response.Status)
		require.NotNil(t, response.ConfirmedAt)
	})

	t.Run("Error_UnknownStatus", func(t *testing.T) {
		handler, _ := setupDashboardHandler(t)
		reportID := uuid.Must(uuid.NewV7())

		body := map[string]any{"status": "archiviert"}
		c, w := createTestContext(http.MethodPatch, "/v1/dashboard/reports/"+reportID.String(), body)
		c.Params = gin.Params{{Key: "id", Value: reportID.String()}}
		withPrincipal(c, uuid.Must(uuid.NewV7()))
		handler.UpdateStatusHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_NoChanges", func(t *testing.T) {
		handler, mockUseCase := setupDashboardHandler(t)
		orgID := uuid.Must(uuid.NewV7())
		reportID := uuid.Must(uuid.NewV7())
		mockUseCase.On("UpdateStatus", mock.Anything, orgID, reportID, usecase.UpdateInput{}).
			Return(nil, domain.ErrNoChanges)

		c, w := createTestContext(http.MethodPatch, "/v1/dashboard/reports/"+reportID.String(), map[string]any{})
		c.Params = gin.Params{{Key: "id", Value: reportID.String()}}
		withPrincipal(c, orgID)
		handler.UpdateStatusHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestDashboardHandler_AddMessageHandler(t *testing.T) {
	handler, mockUseCase := setupDashboardHandler(t)
	orgID := uuid.Must(uuid.NewV7())
	reportID := uuid.Must(uuid.NewV7())
	id := uuid.Must(uuid.NewV7())
	mockUseCase.On("AddComplianceMessage", mock.Anything, orgID, reportID, "Wir prüfen das.").Return(id, nil)

	c, w := createTestContext(http.MethodPost, "/v1/dashboard/reports/"+reportID.String()+"/messages",
		dto.MessageRequest{Content: "Wir prüfen das."})
	c.Params = gin.Params{{Key: "id", Value: reportID.String()}}
	withPrincipal(c, orgID)
	handler.AddMessageHandler(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
}

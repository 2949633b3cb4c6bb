package dto

import (
	"time"

	"github.com/allisson/whistleblower/internal/report/domain"
	"github.com/allisson/whistleblower/internal/report/usecase"
)

// SubmitReportResponse is returned once after submission.
// SECURITY: MelderToken is the only credential of the reporter and is never shown again.
type SubmitReportResponse struct {
	MelderToken string `json:"melder_token"`
}

// MessageCreatedResponse is returned after a message was stored.
type MessageCreatedResponse struct {
	MessageID string `json:"message_id"`
}

// MessageResponse is one decrypted message of a conversation.
type MessageResponse struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportResponse is a decrypted report. Messages is only set on single report views.
type ReportResponse struct {
	ID                   string            `json:"id"`
	Category             string            `json:"category"`
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	Status               string            `json:"status"`
	ReceivedAt           time.Time         `json:"received_at"`
	ConfirmationDeadline time.Time         `json:"confirmation_deadline"`
	ResponseDeadline     time.Time         `json:"response_deadline"`
	ConfirmedAt          *time.Time        `json:"confirmed_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
	IsOverdue            bool              `json:"is_overdue"`
	UnreadMessages       int               `json:"unread_messages"`
	Messages             []MessageResponse `json:"messages,omitempty"`
}

// StatsResponse aggregates the reports of the dashboard.
type StatsResponse struct {
	Total         int `json:"total"`
	Neu           int `json:"neu"`
	Bestaetigt    int `json:"bestaetigt"`
	InBearbeitung int `json:"in_bearbeitung"`
	Abgeschlossen int `json:"abgeschlossen"`
	Overdue       int `json:"overdue"`
}

// DashboardResponse lists the reports of an organization.
type DashboardResponse struct {
	Reports []ReportResponse `json:"reports"`
	Stats   StatsResponse    `json:"stats"`
}

// ReportStatusResponse is returned after a status update.
type ReportStatusResponse struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MapReportView converts a decrypted report view.
func MapReportView(view *domain.ReportView) ReportResponse {
	resp := ReportResponse{
		ID:                   view.ID.String(),
		Category:             string(view.Category),
		Title:                view.Title,
		Description:          view.Description,
		Status:               string(view.Status),
		ReceivedAt:           view.ReceivedAt,
		ConfirmationDeadline: view.ConfirmationDeadline,
		ResponseDeadline:     view.ResponseDeadline,
		ConfirmedAt:          view.ConfirmedAt,
		UpdatedAt:            view.UpdatedAt,
		IsOverdue:            view.IsOverdue,
		UnreadMessages:       view.UnreadMessages,
	}

	if view.Messages != nil {
		resp.Messages = make([]MessageResponse, 0, len(view.Messages))
		for _, m := range view.Messages {
			resp.Messages = append(resp.Messages, MessageResponse{
				ID:        m.ID.String(),
				Sender:    string(m.Sender),
				Content:   m.Content,
				IsRead:    m.IsRead,
				CreatedAt: m.CreatedAt,
			})
		}
	}
	return resp
}

// MapDashboardOutput converts the dashboard listing.
func MapDashboardOutput(out *usecase.DashboardOutput) DashboardResponse {
	reports := make([]ReportResponse, 0, len(out.Reports))
	for _, view := range out.Reports {
		reports = append(reports, MapReportView(view))
	}

	return DashboardResponse{
		Reports: reports,
		Stats: StatsResponse{
			Total:         out.Stats.Total,
			Neu:           out.Stats.Neu,
			Bestaetigt:    out.Stats.Bestaetigt,
			InBearbeitung: out.Stats.InBearbeitung,
			Abgeschlossen: out.Stats.Abgeschlossen,
			Overdue:       out.Stats.Overdue,
		},
	}
}

// MapReportStatus converts an updated report. No encrypted field is included.
func MapReportStatus(report *domain.Report) ReportStatusResponse {
	return ReportStatusResponse{
		ID:          report.ID.String(),
		Status:      string(report.Status),
		ConfirmedAt: report.ConfirmedAt,
		UpdatedAt:   report.UpdatedAt,
	}
}

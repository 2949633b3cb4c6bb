// Package domain defines reports and messages in two shapes. Report and Message are the
// at-rest rows and carry only encrypted fields; ReportView and MessageView carry
// plaintext and exist only for the duration of a request.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a report.
type Category string

const (
	CategoryKorruption      Category = "korruption"
	CategoryBetrug          Category = "betrug"
	CategoryDatenschutz     Category = "datenschutz"
	CategoryDiskriminierung Category = "diskriminierung"
	CategorySicherheit      Category = "sicherheit"
	CategorySonstiges       Category = "sonstiges"
)

// Categories lists every accepted category.
var Categories = []Category{
	CategoryKorruption,
	CategoryBetrug,
	CategoryDatenschutz,
	CategoryDiskriminierung,
	CategorySicherheit,
	CategorySonstiges,
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Sender identifies the author of a message.
type Sender string

const (
	SenderMelder     Sender = "melder"
	SenderCompliance Sender = "compliance"
)

const (
	// ConfirmationPeriod is the time to acknowledge receipt of a report.
	ConfirmationPeriod = 7 * 24 * time.Hour

	// ResponsePeriodMonths is the number of calendar months to give feedback.
	ResponsePeriodMonths = 3

	// MinTitleLength and MinDescriptionLength apply to the trimmed text.
	MinTitleLength       = 5
	MinDescriptionLength = 20
)

// Deadlines returns the confirmation and response deadlines of a report received at t.
func Deadlines(receivedAt time.Time) (confirmation, response time.Time) {
	return receivedAt.Add(ConfirmationPeriod), receivedAt.AddDate(0, ResponsePeriodMonths, 0)
}

// Report is a stored report. Title and description are EncryptedField JSON strings.
type Report struct {
	ID                   uuid.UUID
	OrganizationID       uuid.UUID
	MelderTokenHash      string
	Category             Category
	TitleEncrypted       string
	DescriptionEncrypted string
	Status               Status
	ReceivedAt           time.Time
	ConfirmationDeadline time.Time
	ResponseDeadline     time.Time
	ConfirmedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsOverdue reports whether the response deadline passed while the report is still open.
func (r *Report) IsOverdue(now time.Time) bool {
	return r.ResponseDeadline.Before(now) && r.Status != StatusAbgeschlossen
}

// Message is a stored message. ContentEncrypted is an EncryptedField JSON string.
type Message struct {
	ID               uuid.UUID
	ReportID         uuid.UUID
	Sender           Sender
	ContentEncrypted string
	IsRead           bool
	CreatedAt        time.Time
}

// ReportView is a decrypted report.
type ReportView struct {
	ID                   uuid.UUID
	OrganizationID       uuid.UUID
	Category             Category
	Title                string
	Description          string
	Status               Status
	ReceivedAt           time.Time
	ConfirmationDeadline time.Time
	ResponseDeadline     time.Time
	ConfirmedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	IsOverdue            bool
	UnreadMessages       int
	Messages             []MessageView
}

// MessageView is a decrypted message.
type MessageView struct {
	ID        uuid.UUID
	ReportID  uuid.UUID
	Sender    Sender
	Content   string
	IsRead    bool
	CreatedAt time.Time
}

// Stats aggregates the reports of one organization.
type Stats struct {
	Total         int
	Neu           int
	Bestaetigt    int
	InBearbeitung int
	Abgeschlossen int
	Overdue       int
}

// Add counts one report.
func (s *Stats) Add(status Status, overdue bool) {
	s.Total++
	switch status {
	case StatusNeu:
		s.Neu++
	case StatusBestaetigt:
		s.Bestaetigt++
	case StatusInBearbeitung:
		s.InBearbeitung++
	case StatusAbgeschlossen:
		s.Abgeschlossen++
	}
	if overdue {
		s.Overdue++
	}
}

// OpenDeadline is the deadline of one open report, used for reminders.
type OpenDeadline struct {
	OrganizationID   uuid.UUID
	ResponseDeadline time.Time
}

// DeadlineReminder summarizes the deadline situation of one organization.
type DeadlineReminder struct {
	OrganizationID uuid.UUID
	Overdue        int
	Upcoming       int
}

package domain

import (
	"github.com/allisson/whistleblower/internal/errors"
)

var (
	// ErrReportNotFound indicates no report matches the token or the id within the organization.
	ErrReportNotFound = errors.Wrap(errors.ErrNotFound, "report not found")

	// ErrReportClosed indicates the report is closed and accepts no further messages.
	ErrReportClosed = errors.Wrap(errors.ErrForbidden, "report is closed")

	// ErrTokenConflict indicates the generated token hash already exists.
	ErrTokenConflict = errors.Wrap(errors.ErrConflict, "melder token already in use")

	ErrInvalidCategory     = errors.Wrap(errors.ErrInvalidInput, "invalid category")
	ErrTitleTooShort       = errors.Wrap(errors.ErrInvalidInput, "title must be at least 5 characters")
	ErrDescriptionTooShort = errors.Wrap(errors.ErrInvalidInput, "description must be at least 20 characters")
	ErrEmptyMessage        = errors.Wrap(errors.ErrInvalidInput, "message must not be empty")
	ErrInvalidStatus       = errors.Wrap(errors.ErrInvalidInput, "invalid status")
	ErrInvalidTransition   = errors.Wrap(errors.ErrInvalidInput, "invalid status transition")
	ErrAlreadyConfirmed    = errors.Wrap(errors.ErrInvalidInput, "receipt already confirmed")
	ErrNoChanges           = errors.Wrap(errors.ErrInvalidInput, "no changes given")
	ErrInvalidToken        = errors.Wrap(errors.ErrInvalidInput, "invalid melder token")
)

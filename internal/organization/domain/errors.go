package domain

import (
	"github.com/allisson/whistleblower/internal/errors"
)

var (
	// ErrOrganizationNotFound indicates the organization does not exist.
	ErrOrganizationNotFound = errors.Wrap(errors.ErrNotFound, "organization not found")

	// ErrSlugTaken indicates another organization already uses the slug.
	ErrSlugTaken = errors.Wrap(errors.ErrConflict, "slug already taken")

	// ErrChannelUnavailable indicates the organization does not accept reports.
	ErrChannelUnavailable = errors.Wrap(errors.ErrForbidden, "reporting channel unavailable")

	// ErrInvalidSlug indicates the slug is empty after normalization.
	ErrInvalidSlug = errors.Wrap(errors.ErrInvalidInput, "slug must contain letters or digits")

	// ErrInvalidStatus indicates an unknown subscription status.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid subscription status")
)

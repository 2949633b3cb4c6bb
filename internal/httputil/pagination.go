package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/whistleblower/internal/errors"
)

const (
	// DefaultPageLimit is used when the request names no limit.
	DefaultPageLimit = 50
	// MaxPageLimit caps a single admin listing.
	MaxPageLimit = 100
)

var (
	// ErrInvalidOffset is returned for a negative or non-numeric offset.
	ErrInvalidOffset = apperrors.Wrap(apperrors.ErrInvalidInput, "offset must be a non-negative integer")

	// ErrInvalidLimit is returned for a limit outside 1..MaxPageLimit.
	ErrInvalidLimit = apperrors.Wrap(apperrors.ErrInvalidInput, "limit must be between 1 and 100")
)

// Page is a window over a listing.
type Page struct {
	Offset int
	Limit  int
}

// ParsePagination reads the offset and limit query parameters.
func ParsePagination(c *gin.Context) (Page, error) {
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		return Page{}, ErrInvalidOffset
	}

	limit, err := queryInt(c, "limit", DefaultPageLimit)
	if err != nil || limit < 1 || limit > MaxPageLimit {
		return Page{}, ErrInvalidLimit
	}

	return Page{Offset: offset, Limit: limit}, nil
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

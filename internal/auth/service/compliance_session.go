package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/whistleblower/internal/auth/domain"
	apperrors "github.com/allisson/whistleblower/internal/errors"
)

const complianceIssuer = "whistleblower"

// complianceClaims are the JWT claims of a compliance user session.
type complianceClaims struct {
	OrganizationID string `json:"org"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

type jwtComplianceSessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewComplianceSessionService creates an HS256 ComplianceSessionService. now may be nil.
func NewComplianceSessionService(secret string, ttl time.Duration, now func() time.Time) ComplianceSessionService {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = authDomain.DefaultSessionTTL
	}
	return &jwtComplianceSessionService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

func (j *jwtComplianceSessionService) Issue(principal *authDomain.Principal) (*authDomain.Session, error) {
	if len(j.secret) == 0 {
		return nil, apperrors.New("session secret not configured")
	}

	issuedAt := j.now()
	expiresAt := issuedAt.Add(j.ttl)

	claims := complianceClaims{
		OrganizationID: principal.OrganizationID.String(),
		Role:           principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID.String(),
			Issuer:    complianceIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign session")
	}

	return &authDomain.Session{Token: signed, ExpiresAt: expiresAt}, nil
}

func (j *jwtComplianceSessionService) Verify(token string) (*authDomain.Principal, error) {
	if len(j.secret) == 0 || token == "" {
		return nil, authDomain.ErrInvalidSession
	}

	claims := &complianceClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	},
		jwt.WithIssuer(complianceIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || !parsed.Valid {
		return nil, authDomain.ErrInvalidSession
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, authDomain.ErrInvalidSession
	}
	orgID, err := uuid.Parse(claims.OrganizationID)
	if err != nil {
		return nil, authDomain.ErrInvalidSession
	}

	return &authDomain.Principal{
		UserID:         userID,
		OrganizationID: orgID,
		Role:           claims.Role,
	}, nil
}

package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	authDomain "github.com/allisson/whistleblower/internal/auth/domain"
	apperrors "github.com/allisson/whistleblower/internal/errors"
)

type adminSessionPayload struct {
	Exp int64 `json:"exp"`
}

// hmacAdminSessionService implements AdminSessionService. A token is
// base64url(JSON{"exp": unixMillis}) + "." + hex(HMAC-SHA256(payload)).
type hmacAdminSessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAdminSessionService creates an AdminSessionService. now may be nil.
func NewAdminSessionService(secret string, ttl time.Duration, now func() time.Time) AdminSessionService {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = authDomain.DefaultSessionTTL
	}
	return &hmacAdminSessionService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

func (h *hmacAdminSessionService) sign(payload string) []byte {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}

func (h *hmacAdminSessionService) Issue() (*authDomain.Session, error) {
	if len(h.secret) == 0 {
		return nil, apperrors.New("admin secret key not configured")
	}

	expiresAt := h.now().Add(h.ttl)
	data, err := json.Marshal(adminSessionPayload{Exp: expiresAt.UnixMilli()})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode session payload")
	}

	payload := base64.RawURLEncoding.EncodeToString(data)
	return &authDomain.Session{
		Token:     payload + "." + hex.EncodeToString(h.sign(payload)),
		ExpiresAt: expiresAt,
	}, nil
}

// Verify never panics and returns false on any malformed, forged or expired token.
func (h *hmacAdminSessionService) Verify(token string) bool {
	if len(h.secret) == 0 {
		return false
	}

	dot := strings.LastIndexByte(token, '.')
	if dot < 0 {
		return false
	}
	payload, sigHex := token[:dot], token[dot+1:]

	sig, err := hex.DecodeString(sigHex)
	if err != nil || len(sig) != sha256.Size {
		return false
	}
	if !hmac.Equal(sig, h.sign(payload)) {
		return false
	}

	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(payload, "="))
	if err != nil {
		return false
	}

	var p adminSessionPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return false
	}

	return h.now().UnixMilli() < p.Exp
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/whistleblower/internal/auth/domain"
	authHTTP "github.com/allisson/whistleblower/internal/auth/http"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

// withPrincipal attaches a compliance principal of orgID as ComplianceSessionMiddleware would.
func withPrincipal(c *gin.Context, orgID uuid.UUID) {
	ctx := authHTTP.WithPrincipal(context.Background(), &authDomain.Principal{
		UserID:         uuid.Must(uuid.NewV7()),
		OrganizationID: orgID,
		Role:           "officer",
	})
	c.Request = c.Request.WithContext(ctx)
}

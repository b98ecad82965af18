package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func extractTokenFrom(t *testing.T, decorate func(*http.Request)) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/cart?token=query-secret", nil)
	decorate(c.Request)
	return extractToken(c)
}

func TestExtractTokenReadsBearerHeader(t *testing.T) {
	got := extractTokenFrom(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer header-token")
	})
	if got != "header-token" {
		t.Fatalf("token: want=%q got=%q", "header-token", got)
	}
}

func TestExtractTokenIgnoresQueryParameter(t *testing.T) {
	got := extractTokenFrom(t, func(*http.Request) {})
	if got != "" {
		t.Fatalf("query tokens must be ignored, got %q", got)
	}
}

func TestExtractTokenRejectsMalformedHeader(t *testing.T) {
	got := extractTokenFrom(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Basic abcdef")
	})
	if got != "" {
		t.Fatalf("non-bearer header: want empty got %q", got)
	}
}

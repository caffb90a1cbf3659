package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func identityRouter() *gin.Engine {
	r := gin.New()
	r.Use(Identity())
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c)})
	})
	return r
}

func whoami(t *testing.T, r *gin.Engine, set func(*http.Request)) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if set != nil {
		set(req)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	return resp.Body.String()
}

func TestIdentityFromBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := identityRouter()

	body := whoami(t, r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer token_user2")
	})
	if body != `{"userId":"user2"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestIdentityFromHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := identityRouter()

	body := whoami(t, r, func(req *http.Request) {
		req.Header.Set("X-User-Id", "user3")
	})
	if body != `{"userId":"user3"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestIdentityDefaultsWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := identityRouter()

	body := whoami(t, r, nil)
	if body != `{"userId":"user1"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestIdentityIgnoresMalformedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := identityRouter()

	// A bearer token without the issued prefix is not an identity; the
	// fallback header still applies.
	body := whoami(t, r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer somethingelse")
		req.Header.Set("X-User-Id", "user2")
	})
	if body != `{"userId":"user2"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

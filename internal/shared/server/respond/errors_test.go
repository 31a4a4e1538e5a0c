package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/apperr"
)

func TestFailWritesStableCodeWithoutCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		Fail(c, apperr.Wrap(apperr.ErrUpstream, "database unavailable", errors.New("dial tcp 10.0.0.1:5432")))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "upstream_failure" {
		t.Fatalf("unexpected code %q", body.Error.Code)
	}
	if body.Error.Message == "" || body.Error.Message == "database unavailable: dial tcp 10.0.0.1:5432" {
		t.Fatalf("unexpected message %q", body.Error.Message)
	}
}

func TestFailPublicMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		Fail(c, apperr.New(apperr.ErrNotFoundOrForbidden, "Experience not found or you do not have permission to delete it."))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "not_found" {
		t.Fatalf("unexpected code %q", body.Error.Code)
	}
	if body.Error.Message != "Experience not found or you do not have permission to delete it." {
		t.Fatalf("unexpected message %q", body.Error.Message)
	}
}

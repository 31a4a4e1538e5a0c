package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
)

type capturingRenderer struct {
	html []string
}

func (r *capturingRenderer) Render(_ context.Context, html string) ([]byte, error) {
	r.html = append(r.html, html)
	return []byte("%PDF-1.7\nfake\n%%EOF"), nil
}

func newTestApp(t *testing.T) (*App, *capturingRenderer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	renderer := &capturingRenderer{}
	app, err := Build(context.Background(), config.Config{
		Env:                   "test",
		JWTSecret:             "test-secret",
		JWTTTL:                time.Hour,
		BcryptCost:            4,
		ObjectStoreType:       "local",
		LocalStoreDir:         t.TempDir(),
		RenderTimeout:         time.Second,
		RateLimitRenderPerMin: 1,
	}, Options{Renderer: renderer})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(app.Close)
	return app, renderer
}

func call(app *App, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterLoginGenerateFlow(t *testing.T) {
	app, renderer := newTestApp(t)

	resp := call(app, http.MethodPost, "/api/auth/register", "", `{"email":"a@x.com","password":"pw"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	resp = call(app, http.MethodPost, "/api/auth/register", "", `{"email":"a@x.com","password":"pw"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", resp.Code)
	}

	resp = call(app, http.MethodPost, "/api/auth/login", "", `{"email":"a@x.com","password":"pw"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.Code)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	id, err := app.Tokens.Verify(login.Token)
	if err != nil || id.Email != "a@x.com" || id.UserID == "" {
		t.Fatalf("token does not decode to the user: %+v err=%v", id, err)
	}

	resp = call(app, http.MethodGet, "/api/me", login.Token, "")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), id.UserID) {
		t.Fatalf("me: unexpected response %d: %s", resp.Code, resp.Body.String())
	}

	resp = call(app, http.MethodPost, "/api/experience", login.Token, `{"job_title":"Engineer","company":"Acme","end_date":null}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("add experience: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = call(app, http.MethodGet, "/api/resume/generate", login.Token, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("generate: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cl := resp.Header().Get("Content-Length"); cl != strconv.Itoa(resp.Body.Len()) {
		t.Fatalf("content length %q does not match body %d", cl, resp.Body.Len())
	}
	if len(renderer.html) != 1 {
		t.Fatalf("expected one render, got %d", len(renderer.html))
	}
	html := renderer.html[0]
	if !strings.Contains(html, "Engineer at Acme") || !strings.Contains(html, "Present") {
		t.Fatalf("rendered document missing experience: %s", html)
	}

	resp = call(app, http.MethodGet, "/api/resume/generated", login.Token, "")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "size_bytes") {
		t.Fatalf("expected archived resume, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = call(app, http.MethodGet, "/api/resume/generate", login.Token, "")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second generate within the minute to be limited, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestProtectedRoutesRequireCredential(t *testing.T) {
	app, renderer := newTestApp(t)

	resp := call(app, http.MethodGet, "/api/resume", "", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
	resp = call(app, http.MethodGet, "/api/resume/generate", "not-a-token", "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for bad token, got %d", resp.Code)
	}
	if len(renderer.html) != 0 {
		t.Fatalf("renderer must not run for rejected requests")
	}
}

func TestHealthWithoutDatabase(t *testing.T) {
	app, _ := newTestApp(t)
	resp := call(app, http.MethodGet, "/api/health", "", "")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected health response %d: %s", resp.Code, resp.Body.String())
	}
}

func TestBuildRejectsIncompleteS3Config(t *testing.T) {
	_, err := Build(context.Background(), config.Config{
		Env:             "test",
		JWTSecret:       "s",
		JWTTTL:          time.Hour,
		ObjectStoreType: "s3",
	}, Options{Renderer: &capturingRenderer{}})
	if err == nil {
		t.Fatalf("expected error for s3 without bucket")
	}
}

func TestBuildWithoutSecretFailsOutsideLocalEnvs(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("JWT_SECRET", "")
	cfg := config.Load()
	cfg.ObjectStoreType = "none"

	_, err := Build(context.Background(), cfg, Options{Renderer: &capturingRenderer{}})
	if !errors.Is(err, auth.ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

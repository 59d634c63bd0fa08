package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lukirizki/articlehub/internal/auth"
	"github.com/lukirizki/articlehub/internal/cache"
	"github.com/lukirizki/articlehub/internal/config"
	apphttp "github.com/lukirizki/articlehub/internal/http"
	"github.com/lukirizki/articlehub/internal/observability"
	"github.com/lukirizki/articlehub/internal/repo/memory"
	"github.com/prometheus/client_golang/prometheus"
)

const testSecret = "test-secret-key"

func testConfig() config.Config {
	return config.Config{
		Env:            "test",
		StoreDriver:    config.StoreDriverMemory,
		JWTSecret:      testSecret,
		AuthRateLimit:  0,
		AuthRateWindow: time.Minute,
		MaxBodyBytes:   1 << 20,
	}
}

type testApp struct {
	router   *gin.Engine
	users    *memory.UsersRepo
	articles *memory.ArticlesRepo
	tokens   *auth.Manager
}

func setupApp(t *testing.T, cfg config.Config) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reg := prometheus.NewRegistry()

	app := &testApp{
		users:    memory.NewUsersRepo(),
		articles: memory.NewArticlesRepo(),
		tokens:   auth.NewManager(cfg.JWTSecret),
	}

	app.router = apphttp.NewRouter(logger, cfg, apphttp.Deps{
		Users:    app.users,
		Articles: app.articles,
		Tokens:   app.tokens,
		Cache:    cache.New(time.Minute),
		Prom:     observability.NewProm(reg),
		Metrics:  reg,
	})

	return app
}

// helpers

func (a *testApp) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) registerAndLogin(t *testing.T, fullname, email, password string) string {
	t.Helper()

	body := `{"fullname":"` + fullname + `","email":"` + email + `","password":"` + password + `"}`
	if w := a.do(t, http.MethodPost, "/users/register", body, ""); w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", w.Code, w.Body.String())
	}

	w := a.do(t, http.MethodPost, "/users/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)

	if resp.Token == "" {
		t.Fatalf("empty token in login response")
	}
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func message(t *testing.T, w *httptest.ResponseRecorder) any {
	t.Helper()

	var body struct {
		Message any `json:"message"`
	}
	decode(t, w, &body)
	return body.Message
}

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-archaeologist/config"
	"meeting-archaeologist/internal/extraction"
	"meeting-archaeologist/internal/middleware"
)

type noopLogger struct{}

func (noopLogger) Debug(ctx context.Context, arg ...any)                    {}
func (noopLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (noopLogger) Info(ctx context.Context, arg ...any)                     {}
func (noopLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (noopLogger) Warn(ctx context.Context, arg ...any)                     {}
func (noopLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (noopLogger) Error(ctx context.Context, arg ...any)                    {}
func (noopLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (noopLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (noopLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (noopLogger) Panic(ctx context.Context, arg ...any)                    {}
func (noopLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (noopLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (noopLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

type stubUseCase struct {
	err error
}

func (s stubUseCase) Extract(ctx context.Context, input extraction.ExtractInput) (extraction.Result, error) {
	if s.err != nil {
		return extraction.Result{}, s.err
	}
	return extraction.NewResult(), nil
}

func newTestServer(t *testing.T, env string, uc extraction.UseCase) *HTTPServer {
	t.Helper()
	cfg := &config.Config{
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}
	srv, err := New(noopLogger{}, Config{
		Logger:       noopLogger{},
		Port:         8080,
		Mode:         gin.TestMode,
		Environment:  env,
		AppName:      "Meeting Archaeologist",
		AppVersion:   "0.1.0",
		Middleware:   middleware.New(noopLogger{}, cfg),
		ExtractionUC: uc,
	})
	require.NoError(t, err)
	return srv
}

func TestNew_Validation(t *testing.T) {
	_, err := New(noopLogger{}, Config{Port: 8080, Mode: gin.TestMode})
	assert.Error(t, err, "a missing usecase must be rejected")

	_, err = New(noopLogger{}, Config{Mode: gin.TestMode, ExtractionUC: stubUseCase{}})
	assert.Error(t, err, "a missing port must be rejected")
}

func TestAPIHealth(t *testing.T) {
	srv := newTestServer(t, "development", stubUseCase{})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{
		"status":  "healthy",
		"service": "Meeting Archaeologist",
		"version": "0.1.0",
	}, body)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestProbes(t *testing.T) {
	srv := newTestServer(t, "development", stubUseCase{})

	for path, status := range map[string]string{"/health": "healthy", "/ready": "ready", "/live": "alive"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, w.Code, path)
		var body struct {
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, status, body.Data["status"], path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, "development", stubUseCase{})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestParseRoute(t *testing.T) {
	failure := &extraction.Failure{
		Code:       extraction.CodeModelOutputInvalid,
		RetryCount: 2,
		Attempts:   3,
		Violations: extraction.Violations{{Path: "tasks[0].domain", Message: "field required"}},
	}

	parse := func(srv *HTTPServer) map[string]any {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(`{"raw_text":"a meeting transcript that is long enough"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		require.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body
	}

	t.Run("development exposes violations", func(t *testing.T) {
		body := parse(newTestServer(t, "development", stubUseCase{err: failure}))
		assert.Equal(t, "MODEL_OUTPUT_INVALID", body["error"])
		assert.Contains(t, body, "violations")
	})

	t.Run("production hides violations", func(t *testing.T) {
		body := parse(newTestServer(t, "production", stubUseCase{err: failure}))
		assert.Equal(t, "MODEL_OUTPUT_INVALID", body["error"])
		assert.NotContains(t, body, "violations")
	})
}

func TestRun_GracefulShutdown(t *testing.T) {
	srv := newTestServer(t, "development", stubUseCase{})
	srv.port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}

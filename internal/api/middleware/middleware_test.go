package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/arcks/internal/infrastructure/logging"
	"github.com/GriffinCanCode/arcks/internal/shared/id"
)

const extensionOrigin = "chrome-extension://abcdefghijklmnop"

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func setupRelayRouter(rejections *[]string) *gin.Engine {
	router := setupTestRouter()
	origins := NewOrigins([]string{extensionOrigin, "https://app.example.net"})

	onReject := func(reason string) {
		if rejections != nil {
			*rejections = append(*rejections, reason)
		}
	}
	group := router.Group("/", OriginGuard(origins, onReject), CORS(DefaultCORSConfig(origins)))
	group.Any("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return router
}

func TestOrigins(t *testing.T) {
	o := NewOrigins([]string{" https://a.example ", "", "https://a.example", "chrome-extension://x"})

	assert.Equal(t, []string{"https://a.example", "chrome-extension://x"}, o.List())
	assert.True(t, o.Allowed("https://a.example"))
	assert.True(t, o.Allowed("chrome-extension://x"))
	assert.False(t, o.Allowed("https://a.example/"))
	assert.False(t, o.Allowed("https://A.example"))
	assert.False(t, o.Allowed(""))
}

func TestOriginGuardAndCORS(t *testing.T) {
	tests := []struct {
		name            string
		method          string
		origin          string
		wantStatus      int
		wantBody        string
		wantAllowOrigin string
		wantRejection   bool
	}{
		{
			name:            "preflight from allowed origin",
			method:          http.MethodOptions,
			origin:          extensionOrigin,
			wantStatus:      http.StatusNoContent,
			wantAllowOrigin: extensionOrigin,
		},
		{
			name:          "preflight from other origin",
			method:        http.MethodOptions,
			origin:        "https://evil.example",
			wantStatus:    http.StatusForbidden,
			wantBody:      "Forbidden",
			wantRejection: true,
		},
		{
			name:          "post from other origin",
			method:        http.MethodPost,
			origin:        "https://evil.example",
			wantStatus:    http.StatusForbidden,
			wantBody:      "Forbidden: Invalid origin",
			wantRejection: true,
		},
		{
			name:          "post without origin",
			method:        http.MethodPost,
			wantStatus:    http.StatusForbidden,
			wantBody:      "Forbidden: Invalid origin",
			wantRejection: true,
		},
		{
			name:            "post from allowed origin",
			method:          http.MethodPost,
			origin:          "https://app.example.net",
			wantStatus:      http.StatusOK,
			wantAllowOrigin: "https://app.example.net",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rejections []string
			router := setupRelayRouter(&rejections)

			req := httptest.NewRequest(tt.method, "/", strings.NewReader(`{}`))
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
				req.Header.Set("Access-Control-Request-Headers", "Content-Type")
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantAllowOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
				assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
			}
			if tt.wantRejection {
				assert.Equal(t, []string{"origin"}, rejections)
			} else {
				assert.Empty(t, rejections)
			}
		})
	}
}

func TestCORSPreflightHeaders(t *testing.T) {
	router := setupRelayRouter(nil)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", extensionOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodOptions)
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), "content-type")
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestRequestID(t *testing.T) {
	router := setupTestRouter()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		rid := w.Header().Get(RequestIDHeader)
		assert.True(t, strings.HasPrefix(rid, id.RequestPrefix+"_"))
		assert.True(t, id.IsValid(rid))
		assert.Equal(t, rid, w.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		incoming := id.NewRequestID().String()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, incoming)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))
	})

	t.Run("garbage replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "not-an-id")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.NotEqual(t, "not-an-id", w.Header().Get(RequestIDHeader))
	})
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := &logging.Logger{Logger: zap.New(core)}

	router := setupTestRouter()
	router.Use(RequestID(), Logging(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/bad", "/boom"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/ok", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

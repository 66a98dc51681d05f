package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newLoggedRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.DebugLevel)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)), Recovery(zap.New(core)))
	return router, recorded
}

func requestEntry(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	entries := recorded.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	return entries[0]
}

func TestGinMiddleware_AssignsRequestID(t *testing.T) {
	router, recorded := newLoggedRouter(t)
	var seen string
	router.GET("/customers", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/customers?page=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	entry := requestEntry(t, recorded)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, seen, fields["request_id"])
	assert.Equal(t, "page=2", fields["query"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestGinMiddleware_KeepsIncomingRequestID(t *testing.T) {
	router, _ := newLoggedRouter(t)
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestGinMiddleware_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusNotFound, zapcore.WarnLevel},
		{http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		router, recorded := newLoggedRouter(t)
		router.GET("/x", func(c *gin.Context) { c.Status(tt.status) })
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Equal(t, tt.level, requestEntry(t, recorded).Level, "status %d", tt.status)
	}
}

func TestGinMiddleware_LogsTenantSetDownstream(t *testing.T) {
	router, recorded := newLoggedRouter(t)
	tenantID := uuid.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(shared.WithTenantID(c.Request.Context(), tenantID))
		c.Next()
	})
	router.GET("/work-orders", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/work-orders", nil))

	assert.Equal(t, tenantID.String(), requestEntry(t, recorded).ContextMap()["tenant_id"])
}

func TestRecovery(t *testing.T) {
	router, recorded := newLoggedRouter(t)
	router.GET("/boom", func(c *gin.Context) { panic("nil map write") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"data":null,"message":"An internal error occurred","code":"ERR_INTERNAL","errors":[]}`, w.Body.String())
	assert.Len(t, recorded.FilterMessage("Panic recovered").All(), 1)
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	loggerpkg "wardrobe.backend/pkg/logger"
	"wardrobe.backend/pkg/metrics"
)

type authenticatorStub struct {
	user *entities.User
	err  error
	got  string
}

func (a *authenticatorStub) Authenticate(_ context.Context, sessionID string) (*entities.User, error) {
	a.got = sessionID
	return a.user, a.err
}

func newAuthRouter(auth Authenticator, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{SessionAuthMiddleware(auth)}
	if admin {
		chain = append(chain, RequireAdmin())
	}
	chain = append(chain, func(c *gin.Context) {
		id, ok := GetUserID(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	r.GET("/x", chain...)
	return r
}

func doWithSession(r http.Handler, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSessionAuthMiddleware(t *testing.T) {
	user := &entities.User{ID: uuid.New(), Email: "ann@shop.test"}

	t.Run("missing cookie", func(t *testing.T) {
		rec := doWithSession(newAuthRouter(&authenticatorStub{user: user}, false), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), domainerrors.CodeUnauthorized)
	})

	t.Run("valid session", func(t *testing.T) {
		stub := &authenticatorStub{user: user}
		rec := doWithSession(newAuthRouter(stub, false), "sess-1")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user.ID.String(), rec.Body.String())
		assert.Equal(t, "sess-1", stub.got)
	})

	t.Run("expired session", func(t *testing.T) {
		rec := doWithSession(newAuthRouter(&authenticatorStub{err: domainerrors.ErrUnauthorized}, false), "old")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("suspended user", func(t *testing.T) {
		rec := doWithSession(newAuthRouter(&authenticatorStub{err: domainerrors.ErrAccountSuspended}, false), "sess")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), domainerrors.CodeAccountSuspended)
	})

	t.Run("store failure", func(t *testing.T) {
		rec := doWithSession(newAuthRouter(&authenticatorStub{err: errors.New("redis down")}, false), "sess")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	customer := &entities.User{ID: uuid.New()}
	rec := doWithSession(newAuthRouter(&authenticatorStub{user: customer}, true), "sess")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := &entities.User{ID: uuid.New(), IsAdmin: true}
	rec = doWithSession(newAuthRouter(&authenticatorStub{user: admin}, true), "sess")
	assert.Equal(t, http.StatusOK, rec.Code)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })
	rec = doWithSession(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIDMiddleware_GeneratesAndUsesHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("generates request id when header missing", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestIDMiddleware())
		r.GET("/x", func(c *gin.Context) {
			id, ok := c.Get(RequestIDKey)
			require.True(t, ok)
			require.NotEmpty(t, id.(string))
			require.Equal(t, id, c.Request.Context().Value(loggerpkg.RequestIDKey))
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	})

	t.Run("uses provided request id header", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestIDMiddleware())
		r.GET("/x", func(c *gin.Context) {
			id, _ := c.Get(RequestIDKey)
			require.Equal(t, "req-123", id.(string))
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestLoggerMiddleware_Executes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	loggerpkg.Init("test")
	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggerMiddleware())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusCreated, "created")
	})

	req := httptest.NewRequest(http.MethodGet, "/x?foo=bar", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	r := gin.New()
	r.Use(MetricsMiddleware(m))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `route="/items/:id"`)
	assert.Contains(t, body, `route="unmatched"`)
	assert.Contains(t, body, `status="404"`)
}

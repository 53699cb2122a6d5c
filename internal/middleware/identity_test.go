package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ploshtadka/venue-ms/internal/auth"
	"github.com/ploshtadka/venue-ms/internal/users"
)

func invoke(t *testing.T, mw echo.MiddlewareFunc, mutate func(*http.Request)) (*httptest.ResponseRecorder, *auth.CurrentUser) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/venues", nil)
	mutate(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *auth.CurrentUser
	handler := mw(func(c echo.Context) error {
		cu, ok := CurrentUser(c)
		require.True(t, ok)
		seen = cu
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, seen
}

func TestIdentityResolvesTrustedHeaders(t *testing.T) {
	id := uuid.New()
	rec, cu := invoke(t, Identity(nil), func(req *http.Request) {
		req.Header.Set(auth.HeaderUserID, id.String())
		req.Header.Set(auth.HeaderUsername, "marta")
		req.Header.Set(auth.HeaderScopes, "venues:read venues:write")
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cu)
	assert.Equal(t, id, cu.ID)
	assert.Equal(t, "marta", cu.Username)
	assert.True(t, cu.Scopes.Has("venues:write"))
}

func TestIdentityMissingHeadersIs422(t *testing.T) {
	rec, cu := invoke(t, Identity(nil), func(*http.Request) {})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Nil(t, cu)
}

func TestIdentityMalformedUserIDIs422(t *testing.T) {
	rec, cu := invoke(t, Identity(nil), func(req *http.Request) {
		req.Header.Set(auth.HeaderUserID, "not-a-uuid")
		req.Header.Set(auth.HeaderUsername, "marta")
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Nil(t, cu)
}

func TestIdentityDeactivatedAccountIs403(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"is_active": false}`))
	}))
	defer srv.Close()

	rec, cu := invoke(t, Identity(users.New(srv.URL)), func(req *http.Request) {
		req.Header.Set(auth.HeaderUserID, uuid.NewString())
		req.Header.Set(auth.HeaderUsername, "marta")
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, cu)
}

func TestIdentityUsersServiceDownIs503(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listens anymore

	rec, cu := invoke(t, Identity(users.New(srv.URL)), func(req *http.Request) {
		req.Header.Set(auth.HeaderUserID, uuid.NewString())
		req.Header.Set(auth.HeaderUsername, "marta")
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Nil(t, cu)
}

func TestIdentityUsersServiceErrorIs502(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rec, cu := invoke(t, Identity(users.New(srv.URL)), func(req *http.Request) {
		req.Header.Set(auth.HeaderUserID, uuid.NewString())
		req.Header.Set(auth.HeaderUsername, "marta")
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Nil(t, cu)
}

func TestCacheControlHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/venues", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CacheControl(30)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, "public, max-age=30", rec.Header().Get("Cache-Control"))
}

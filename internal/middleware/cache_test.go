package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ploshtadka/venue-ms/internal/config"
)

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "Cache-Control": {"public, max-age=30"}}
	body := []byte(`{"items":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)

	_, _, _, ok = decodePayload([]byte("trunc"))
	assert.False(t, ok)
}

func TestCacheKeyVariesWithQuery(t *testing.T) {
	e := echo.New()
	mk := func(target string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/venues")
		return cacheKey("venue-ms", c)
	}
	assert.Equal(t, mk("/venues?city=Sofia"), mk("/venues?city=Sofia"))
	assert.NotEqual(t, mk("/venues?city=Sofia"), mk("/venues?city=Plovdiv"))
}

func TestResponseCacheDisabledIsPassThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/venues", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := ResponseCache(config.CacheConfig{Enabled: false}, nil)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

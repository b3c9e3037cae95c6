package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agrimarket/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedEngine(t *testing.T) *gin.Engine {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://a.example", "http://b.example"}
	corsConfig.AllowCredentials = true

	r := gin.New()
	r.Use(cors.New(corsConfig))
	cache := ResponseCache(config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache"}, rdb)
	r.GET("/mandis", cache, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"crop": c.Query("crop")})
	})
	return r
}

func getFrom(r http.Handler, origin, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Origin", origin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResponseCache_HitCarriesCallerCORS(t *testing.T) {
	r := newCachedEngine(t)

	first := getFrom(r, "http://a.example", "/mandis?crop=onion")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, []string{"http://a.example"}, first.Header().Values("Access-Control-Allow-Origin"))

	second := getFrom(r, "http://b.example", "/mandis?crop=onion")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, []string{"http://b.example"}, second.Header().Values("Access-Control-Allow-Origin"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Contains(t, second.Header().Get("Content-Type"), "application/json")

	other := getFrom(r, "http://b.example", "/mandis?crop=rice")
	assert.Equal(t, "MISS", other.Header().Get("X-Cache"))
}

func TestCachedHeader(t *testing.T) {
	h := http.Header{
		"Content-Type":                     {"application/json"},
		"Access-Control-Allow-Origin":      {"http://a.example"},
		"Access-Control-Allow-Credentials": {"true"},
		"Vary":                             {"Origin"},
		"Content-Length":                   {"12"},
		"X-Cache":                          {"MISS"},
	}
	got := cachedHeader(h)
	assert.Equal(t, http.Header{"Content-Type": {"application/json"}}, got)
	assert.Len(t, h, 6, "input is not modified")
}

package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agrimarket/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// captureWriter copies the response body while forwarding it to the client.
type captureWriter struct {
	gin.ResponseWriter
	buf   bytes.Buffer
	limit int
}

func (w *captureWriter) Write(b []byte) (int, error) {
	if w.limit <= 0 || w.buf.Len() < w.limit {
		w.buf.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func cacheKey(prefix string, c *gin.Context) string {
	sum := sha1.Sum([]byte("route:" + c.FullPath() + ":q:" + c.Request.URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// perRequestHeader reports headers that depend on the request rather than the
// resource. CORS answers vary by Origin and are set fresh on every request.
func perRequestHeader(k string) bool {
	k = http.CanonicalHeaderKey(k)
	return strings.HasPrefix(k, "Access-Control-") ||
		k == "Vary" || k == "Content-Length" || k == "X-Cache"
}

// cachedHeader keeps the response headers that are safe to replay.
func cachedHeader(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, vals := range h {
		if !perRequestHeader(k) {
			out[k] = append([]string(nil), vals...)
		}
	}
	return out
}

// encodePayload packs [4 bytes status][4 bytes header length][header JSON][body].
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdr, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdr)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdr)))
	copy(out[8:], hdr)
	copy(out[8+len(hdr):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

// ResponseCache serves GET responses from Redis for cfg.TTL, keyed by route
// and raw query. Only complete 200 responses are stored.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) gin.HandlerFunc {
	if !cfg.Enabled || rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(cfg.Prefix, c)
		if bs, err := rdb.Get(c.Request.Context(), key).Bytes(); err == nil {
			if status, hdr, body, ok := decodePayload(bs); ok {
				for k, vals := range cachedHeader(hdr) {
					c.Writer.Header()[k] = vals
				}
				c.Header("X-Cache", "HIT")
				c.Writer.WriteHeader(status)
				_, _ = c.Writer.Write(body)
				c.Abort()
				return
			}
		}

		cw := &captureWriter{ResponseWriter: c.Writer, limit: cfg.MaxBodyBytes}
		c.Writer = cw
		c.Header("X-Cache", "MISS")

		c.Next()

		if cw.Status() != http.StatusOK || (cfg.MaxBodyBytes > 0 && cw.Size() > cfg.MaxBodyBytes) {
			return
		}
		if payload, err := encodePayload(cw.Status(), cachedHeader(cw.Header()), cw.buf.Bytes()); err == nil {
			_ = rdb.SetEx(context.WithoutCancel(c.Request.Context()), key, payload, ttl).Err()
		}
	}
}

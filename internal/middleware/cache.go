package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/hackhub/hackhub-server/internal/config"
)

// ListingCache caches successful GET responses for the hackathon browse
// endpoints in Redis. Mutating handlers call Bust after every write, so
// the TTL only bounds staleness when a bust is missed (e.g. a write
// from another deployment without Redis access).
type ListingCache struct {
	cfg config.CacheConfig
	rdb *redis.Client
}

func NewListingCache(cfg config.CacheConfig, rdb *redis.Client) *ListingCache {
	return &ListingCache{cfg: cfg, rdb: rdb}
}

func (lc *ListingCache) enabled() bool { return lc != nil && lc.cfg.Enabled && lc.rdb != nil }

// Bust invalidates every cached listing response by bumping the
// namespace version. Failures are ignored; a stale listing for one TTL
// is acceptable, a failed write is not.
func (lc *ListingCache) Bust(ctx context.Context) {
	if !lc.enabled() {
		return
	}
	_ = lc.rdb.Incr(ctx, lc.cfg.Prefix+":ver").Err()
}

func (lc *ListingCache) key(ctx context.Context, c echo.Context) string {
	ver, err := lc.rdb.Get(ctx, lc.cfg.Prefix+":ver").Result()
	if err != nil {
		ver = "0"
	}
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery + "#" + c.Param("facultyId")))
	return fmt.Sprintf("%s:v%s:%x", lc.cfg.Prefix, ver, sum[:])
}

// bodyCapture duplicates the response body so it can be stored after
// the handler ran.
type bodyCapture struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	limit  int
}

func (w *bodyCapture) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	if w.buf.Len() < w.limit {
		w.buf.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// Middleware serves cached bodies on hit and captures misses. Only GET
// requests with 200 responses under the size cap are stored. Payload
// layout: [4 bytes status][JSON body].
func (lc *ListingCache) Middleware() echo.MiddlewareFunc {
	if !lc.enabled() {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := lc.cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Request().Context()
			key := lc.key(ctx, c)

			if bs, err := lc.rdb.Get(ctx, key).Bytes(); err == nil && len(bs) > 4 {
				status := int(binary.BigEndian.Uint32(bs[:4]))
				c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
				c.Response().Header().Set("X-Cache", "HIT")
				c.Response().WriteHeader(status)
				_, _ = c.Response().Write(bs[4:])
				return nil
			}

			rec := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: lc.cfg.MaxBodyBytes}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if rec.status == http.StatusOK && rec.buf.Len() <= lc.cfg.MaxBodyBytes &&
				strings.Contains(c.Response().Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
				payload := make([]byte, 4+rec.buf.Len())
				binary.BigEndian.PutUint32(payload[:4], uint32(rec.status))
				copy(payload[4:], rec.buf.Bytes())
				_ = lc.rdb.SetEx(context.Background(), key, payload, ttl).Err()
			}
			return nil
		}
	}
}

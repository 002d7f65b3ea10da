package middleware

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"permitflow/internal/infrastructure/cache"
	"permitflow/internal/shared/constants"
	"permitflow/internal/shared/logger"
	"permitflow/internal/shared/utils"
)

// IdempotencyStore is the persistence contract for request deduplication.
// Implemented by cache.RedisIdempotencyStore.
type IdempotencyStore interface {
	AcquireLock(ctx context.Context, key string) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	GetResponse(ctx context.Context, key string) (*cache.CachedResponse, error)
	SaveResponse(ctx context.Context, key string, resp *cache.CachedResponse) error
}

// IdempotencyMiddleware deduplicates unsafe requests carrying an
// Idempotency-Key header. A completed request's response is replayed
// verbatim for later duplicates; a duplicate arriving while the first is
// still in flight gets 409. Requests without the header pass through
// untouched, and any store failure degrades to normal processing rather
// than refusing requests.
type IdempotencyMiddleware struct {
	store  IdempotencyStore
	logger logger.Interface
}

func NewIdempotencyMiddleware(store IdempotencyStore, logger logger.Interface) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{
		store:  store,
		logger: logger,
	}
}

// bodyCaptureWriter tees the response body so a successful response can be
// cached after the handler runs.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func (m *IdempotencyMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(constants.IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		cached, err := m.store.GetResponse(ctx, key)
		if err != nil {
			m.logger.Warnw("idempotency store unavailable, processing without deduplication",
				"key", key, "error", err)
			c.Next()
			return
		}
		if cached != nil {
			m.replay(c, cached)
			return
		}

		acquired, err := m.store.AcquireLock(ctx, key)
		if err != nil {
			m.logger.Warnw("idempotency lock unavailable, processing without deduplication",
				"key", key, "error", err)
			c.Next()
			return
		}
		if !acquired {
			// The first request may have completed between the cache check
			// and the lock attempt.
			cached, err := m.store.GetResponse(ctx, key)
			if err == nil && cached != nil {
				m.replay(c, cached)
				return
			}
			utils.ErrorResponse(c, http.StatusConflict, "Processing")
			c.Abort()
			return
		}

		writer := &bodyCaptureWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Set(constants.ContextKeyIdempotencyKey, key)

		c.Next()

		// The request context may already be canceled by a client that
		// disconnected after the handler finished; the outcome still has to
		// be recorded and the lock released.
		persistCtx := context.WithoutCancel(c.Request.Context())

		// Only successful outcomes are cached: a failed request must stay
		// retryable under the same key.
		status := writer.Status()
		if status < http.StatusBadRequest {
			headers := make(map[string]string)
			for name, values := range writer.Header() {
				if len(values) > 0 {
					headers[name] = values[0]
				}
			}

			if err := m.store.SaveResponse(persistCtx, key, &cache.CachedResponse{
				StatusCode: status,
				Headers:    headers,
				Body:       writer.body.Bytes(),
			}); err != nil {
				m.logger.Warnw("failed to cache idempotent response", "key", key, "error", err)
			}
		}

		if err := m.store.ReleaseLock(persistCtx, key); err != nil {
			m.logger.Warnw("failed to release idempotency lock", "key", key, "error", err)
		}
	}
}

func (m *IdempotencyMiddleware) replay(c *gin.Context, cached *cache.CachedResponse) {
	for name, value := range cached.Headers {
		c.Header(name, value)
	}
	c.Header("Idempotency-Replayed", "true")
	c.Data(cached.StatusCode, cached.Headers["Content-Type"], cached.Body)
	c.Abort()
}

package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/hotelpos-api/pkg/lock"
	"github.com/sirupsen/logrus"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the key store
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Locker lock.Locker
	Logger *logrus.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a client retries a write
// with the same Idempotency-Key. Keys are scoped to the hotel, and requests
// sharing a key run one at a time. Only 2xx responses are stored so a
// rejected request can be retried.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		hotelID := GetHotelID(c)
		if key == "" || hotelID == uuid.Nil {
			c.Next()
			return
		}
		if len(key) > 255 {
			response.BadRequest(c, "Idempotency-Key is too long")
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Could not read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		hash := hex.EncodeToString(sum[:])
		endpoint := c.Request.Method + " " + c.FullPath()

		lockKey := "idempotency:" + hotelID.String() + ":" + key
		err = cfg.Locker.WithLock(c.Request.Context(), lockKey, func(ctx context.Context) error {
			existing, err := cfg.Repo.GetByKey(ctx, key, hotelID)
			if err != nil {
				return err
			}

			if existing != nil && !existing.IsExpired() {
				if existing.Endpoint != endpoint || (existing.RequestHash != "" && existing.RequestHash != hash) {
					response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
					c.Abort()
					return nil
				}
				c.Header(IdempotencyReplayedHeader, "true")
				c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
				c.Abort()
				return nil
			}

			blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
			c.Writer = blw
			c.Next()

			status := c.Writer.Status()
			if status < 200 || status >= 300 {
				return nil
			}
			ikey := &entity.IdempotencyKey{
				Key:          key,
				HotelID:      hotelID,
				Endpoint:     endpoint,
				RequestHash:  hash,
				ResponseCode: status,
				ResponseBody: blw.body.String(),
				ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
			}
			if err := cfg.Repo.Create(ctx, ikey); err != nil && cfg.Logger != nil {
				cfg.Logger.WithError(err).WithField("key", key).Warn("failed to store idempotency key")
			}
			return nil
		})
		if err != nil && !c.IsAborted() && !c.Writer.Written() {
			if errors.Is(err, lock.ErrNotObtained) {
				response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still in progress")
			} else {
				response.Error(c, err)
			}
			c.Abort()
		}
	}
}

// CleanupIdempotencyKeys deletes expired keys every interval until ctx ends.
func CleanupIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository, interval time.Duration, logger *logrus.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				logger.WithError(err).Warn("failed to delete expired idempotency keys")
			}
		}
	}
}

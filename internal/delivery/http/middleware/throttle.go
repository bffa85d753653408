package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-contact-backend/internal/domain"
	"go-contact-backend/internal/session"
	"go-contact-backend/pkg/apperror"
)

// SubmissionThrottle rejects a session whose last accepted submission is
// still inside the window. It runs before the request body is read so
// abusive traffic costs as little as possible. The timestamp itself is
// written by the usecase, and only after a fully successful submission.
func SubmissionThrottle(store domain.SessionStore, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := SessionID(c)
		if sid == "" {
			c.Next()
			return
		}

		val, ok, err := store.Get(c.Request.Context(), session.LastSubmissionKey(sid))
		if err != nil {
			// Store trouble must not lock out legitimate visitors
			c.Next()
			return
		}

		if ok {
			if last, perr := strconv.ParseInt(val, 10, 64); perr == nil {
				if time.Since(time.Unix(last, 0)) < window {
					c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
					c.Error(apperror.TooManyRequests("Please wait a bit before submitting again."))
					c.Abort()
					return
				}
			}
		}

		c.Next()
	}
}

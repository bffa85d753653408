package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookie = "contact_session"
	sessionCtxKey = "SessionID"
	sessionMaxAge = 30 * 24 * time.Hour
)

// Session assigns each client a stable session identifier carried in a
// signed cookie token. A missing or tampered token gets a fresh session.
// The token gates the submission throttle, so secure should be true
// anywhere the site is served over HTTPS.
func Session(secret string, secure bool) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		sid := ""
		if token, err := c.Cookie(sessionCookie); err == nil {
			sid = parseSessionToken(key, token)
		}

		if sid == "" {
			sid = uuid.NewString()
			if token, err := signSessionToken(key, sid); err == nil {
				c.SetCookie(sessionCookie, token, int(sessionMaxAge.Seconds()), "/", "", secure, true)
			}
		}

		c.Set(sessionCtxKey, sid)
		c.Next()
	}
}

// SessionID returns the session identifier assigned by Session, or ""
// when the middleware did not run.
func SessionID(c *gin.Context) string {
	v, _ := c.Get(sessionCtxKey)
	sid, _ := v.(string)
	return sid
}

func signSessionToken(key []byte, sid string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  sid,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	})
	return token.SignedString(key)
}

func parseSessionToken(key []byte, token string) string {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !parsed.Valid {
		return ""
	}
	return claims.Subject
}

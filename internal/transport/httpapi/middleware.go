package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rshade/accountdesk/internal/logging"
)

// HeaderRequestID carries the per-request trace id.
const HeaderRequestID = "X-Request-ID"

const (
	ctxKeyRequestID = "request_id"
	ctxKeySubject   = "subject"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errBadClaims    = errors.New("token has no subject")
)

// requestID ensures every request has a trace id and propagates it into the
// request context for logging.FromContext.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = logging.NewTraceID()
		}
		c.Set(ctxKeyRequestID, rid)
		c.Writer.Header().Set(HeaderRequestID, rid)
		c.Request = c.Request.WithContext(logging.ContextWithTraceID(c.Request.Context(), rid))
		c.Next()
	}
}

// requestLogger logs one line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		ev := logging.FromContext(ctx).Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = logging.FromContext(ctx).Warn()
		}
		ev.Ctx(ctx).
			Str("component", "httpapi").
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// requireJWT validates an HS256 bearer token signed with secret.
func requireJWT(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := parseBearer(c.GetHeader("Authorization"), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(ctxKeySubject, sub)
		c.Next()
	}
}

func parseBearer(header string, secret []byte) (string, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return "", errMissingToken
	}

	token, err := jwt.Parse(strings.TrimSpace(raw), func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errBadClaims
	}
	return sub, nil
}

// IssueToken signs an HS256 token for subject valid for ttl.
func IssueToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

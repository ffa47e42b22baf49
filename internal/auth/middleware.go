package auth

import (
	"DiningAPI/internal/v0/common"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	// Headers
	HeaderAuthorization      = "Authorization"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRetryAfter         = "Retry-After"
)

// Middleware provides admin authentication and rate limiting
type Middleware struct {
	tokens  *TokenChecker
	allowed *AllowList
	limiter *RateLimiter
	log     logrus.FieldLogger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(
	tokens *TokenChecker,
	allowed *AllowList,
	limiter *RateLimiter,
	log logrus.FieldLogger,
) *Middleware {
	return &Middleware{
		tokens:  tokens,
		allowed: allowed,
		limiter: limiter,
		log:     log,
	}
}

// RequireAdmin returns a middleware that validates the admin bearer token and source IP
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.allowed.Allows(c.ClientIP()) {
			m.log.WithField("client_ip", c.ClientIP()).Warn("admin request from address outside the allow list")
			common.AbortWithError(c, http.StatusForbidden, "address not allowed")
			return
		}

		rawToken, err := ParseBearer(c.GetHeader(HeaderAuthorization))
		if err != nil {
			common.AbortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}

		switch err := m.tokens.Check(rawToken); err {
		case nil:
		case ErrNotConfigured:
			common.AbortWithError(c, http.StatusServiceUnavailable, err.Error())
			return
		default:
			m.log.WithField("client_ip", c.ClientIP()).Warn("rejected admin token")
			common.AbortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Next()
	}
}

// RateLimit returns a middleware that limits requests per client IP
func (m *Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil || m.limiter.Limit() <= 0 {
			c.Next()
			return
		}

		key := c.ClientIP()
		if canonical, err := CanonicalizeIP(key); err == nil {
			key = canonical
		}
		allowed, wait := m.limiter.Allow(key)
		c.Header(HeaderRateLimitLimit, strconv.Itoa(m.limiter.Limit()))
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(m.limiter.Remaining(key)))
		if !allowed {
			c.Header(HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			common.AbortWithError(c, http.StatusTooManyRequests, "rate limit exceeded, retry in "+wait.Round(time.Second).String())
			return
		}

		c.Next()
	}
}

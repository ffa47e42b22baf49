package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	raw, hash, err := GenerateToken()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, TokenPrefix))
	assert.True(t, ValidFormat(raw))
	assert.Equal(t, HashToken(raw), hash)
	assert.Len(t, hash, 64)

	other, _, err := GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, other)
}

func TestTokenChecker(t *testing.T) {
	raw, hash, err := GenerateToken()
	require.NoError(t, err)

	t.Run("Matching Token", func(t *testing.T) {
		assert.NoError(t, NewTokenChecker(strings.ToUpper(hash)).Check(raw))
	})

	t.Run("Wrong Token", func(t *testing.T) {
		other, _, err := GenerateToken()
		require.NoError(t, err)
		assert.ErrorIs(t, NewTokenChecker(hash).Check(other), ErrInvalidToken)
	})

	t.Run("Malformed Token", func(t *testing.T) {
		assert.ErrorIs(t, NewTokenChecker(hash).Check("osduth_abc"), ErrInvalidToken)
		assert.ErrorIs(t, NewTokenChecker(hash).Check(TokenPrefix+"0OIl"), ErrInvalidToken)
	})

	t.Run("Not Configured", func(t *testing.T) {
		assert.ErrorIs(t, NewTokenChecker("").Check(raw), ErrNotConfigured)
	})
}

func TestParseBearer(t *testing.T) {
	tok, err := ParseBearer("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = ParseBearer("bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = ParseBearer("")
	assert.ErrorIs(t, err, ErrMissingToken)
	_, err = ParseBearer("Basic abc")
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = ParseBearer("Bearer")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestAllowList(t *testing.T) {
	t.Run("Empty Allows Everyone", func(t *testing.T) {
		l, err := NewAllowList(nil)
		require.NoError(t, err)
		assert.True(t, l.Allows("203.0.113.9"))
	})

	t.Run("Addresses And Networks", func(t *testing.T) {
		l, err := NewAllowList([]string{"10.0.0.0/8", " 192.168.1.10 ", "2001:db8::1"})
		require.NoError(t, err)
		assert.True(t, l.Allows("10.20.30.40"))
		assert.True(t, l.Allows("::ffff:10.1.1.1"))
		assert.True(t, l.Allows("192.168.1.10"))
		assert.True(t, l.Allows("2001:db8:0:0:0:0:0:1"))
		assert.False(t, l.Allows("192.168.1.11"))
		assert.False(t, l.Allows("not-an-ip"))
	})

	t.Run("Invalid Entry", func(t *testing.T) {
		_, err := NewAllowList([]string{"10.0.0.300"})
		assert.Error(t, err)
		_, err = NewAllowList([]string{"10.0.0.0/33"})
		assert.Error(t, err)
	})

	t.Run("Canonical Form", func(t *testing.T) {
		a, err := CanonicalizeIP("::ffff:10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.1", a)
		_, err = CanonicalizeIP("nope")
		assert.Error(t, err)
	})
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(2)
	ok, _ := l.Allow("a")
	assert.True(t, ok)
	ok, _ = l.Allow("a")
	assert.True(t, ok)
	ok, wait := l.Allow("a")
	assert.False(t, ok)
	assert.Greater(t, wait.Seconds(), 0.0)
	assert.Equal(t, 0, l.Remaining("a"))

	ok, _ = l.Allow("b")
	assert.True(t, ok, "clients have separate buckets")

	unlimited := NewRateLimiter(0)
	for i := 0; i < 10; i++ {
		ok, _ := unlimited.Allow("a")
		assert.True(t, ok)
	}
}

func newTestRouter(t *testing.T, m *Middleware) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/public", m.RateLimit(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/admin", m.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestRequireAdmin(t *testing.T) {
	raw, hash, err := GenerateToken()
	require.NoError(t, err)
	allow, err := NewAllowList([]string{"192.0.2.0/24"})
	require.NoError(t, err)
	log, hook := test.NewNullLogger()
	router := newTestRouter(t, NewMiddleware(NewTokenChecker(hash), allow, nil, log))

	send := func(remote, header string) int {
		req := httptest.NewRequest(http.MethodPost, "/admin", nil)
		req.RemoteAddr = remote + ":1234"
		if header != "" {
			req.Header.Set(HeaderAuthorization, header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, send("192.0.2.5", "Bearer "+raw))
	assert.Equal(t, http.StatusUnauthorized, send("192.0.2.5", ""))
	assert.Equal(t, http.StatusUnauthorized, send("192.0.2.5", "Bearer "+TokenPrefix+"x"))
	assert.Equal(t, http.StatusForbidden, send("198.51.100.7", "Bearer "+raw))

	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestRequireAdminNotConfigured(t *testing.T) {
	raw, _, err := GenerateToken()
	require.NoError(t, err)
	log, _ := test.NewNullLogger()
	router := newTestRouter(t, NewMiddleware(NewTokenChecker(""), nil, nil, log))

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set(HeaderAuthorization, "Bearer "+raw)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	log, _ := test.NewNullLogger()
	router := newTestRouter(t, NewMiddleware(NewTokenChecker(""), nil, NewRateLimiter(1), log))

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.RemoteAddr = "203.0.113.1:5555"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := get()
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "1", first.Header().Get(HeaderRateLimitLimit))

	second := get()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get(HeaderRetryAfter))
}

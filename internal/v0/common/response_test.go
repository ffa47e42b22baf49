package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAPIResponse(t *testing.T) {
	resp := CreateErrorResponse(nil)
	assert.NotNil(t, resp.Errors)
	assert.Equal(t, APIVersion, resp.Metadata.Version)
	_, err := uuid.Parse(resp.Metadata.RequestID)
	assert.NoError(t, err)

	resp = CreateSuccessResponseWithRequestID("ok", "abc")
	assert.Equal(t, "abc", resp.Metadata.RequestID)
	assert.Empty(t, resp.Errors)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Reuses Client Id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		id := uuid.New().String()
		c.Request.Header.Set(HeaderRequestID, id)

		assert.Equal(t, id, RequestID(c))
		assert.Equal(t, id, w.Header().Get(HeaderRequestID))
	})

	t.Run("Replaces Invalid Id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set(HeaderRequestID, "not-a-uuid")

		id := RequestID(c)
		assert.NotEqual(t, "not-a-uuid", id)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, RequestID(c), "stable within one request")
	})
}

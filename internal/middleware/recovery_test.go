package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newChain(timeout time.Duration, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RecoveryMiddleware())
	router.Use(TimeoutMiddleware(timeout))
	router.GET("/test", handler)
	return router
}

func TestTimeoutMiddlewarePanicIsRecovered(t *testing.T) {
	router := newChain(time.Second, func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")
}

func TestTimeoutMiddlewareDiscardsLateWrite(t *testing.T) {
	handlerDone := make(chan struct{})
	router := newChain(30*time.Millisecond, func(c *gin.Context) {
		defer close(handlerDone)
		time.Sleep(120 * time.Millisecond)
		c.JSON(http.StatusOK, gin.H{"late": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	<-handlerDone

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "Request Timeout")
	assert.NotContains(t, w.Body.String(), "late")
}

func TestTimeoutMiddlewareFastResponsePassesThrough(t *testing.T) {
	router := newChain(time.Second, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "done"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "done")
}

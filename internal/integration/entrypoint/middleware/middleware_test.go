package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
	"github.com/Zerkath/finance-app/internal/integration/adapters"
	"github.com/Zerkath/finance-app/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(handlers...)
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"subject":    c.GetString(string(SubjectKey)),
			"request_id": GetRequestIDFromContext(c),
		})
	})
	return engine
}

func do(engine *gin.Engine, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiterWithConfig(2, time.Minute)
	now := time.Date(2023, 11, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	engine := newEngine(rl.Middleware())

	assert.Equal(t, http.StatusOK, do(engine, nil).Code)
	assert.Equal(t, http.StatusOK, do(engine, nil).Code)

	rec := do(engine, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, string(domainerror.ErrCodeRateLimited), errorCode(t, rec))

	now = now.Add(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, do(engine, nil).Code, "window expired")

	now = now.Add(2 * time.Minute)
	rl.Cleanup()
	assert.Empty(t, rl.entries)

	do(engine, nil)
	rl.Reset()
	assert.Empty(t, rl.entries)
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Millisecond)
	_, err := rl.Allow(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Sweep(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		rl.mu.Lock()
		defer rl.mu.Unlock()
		return len(rl.entries) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestRedisRateLimiter(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRedisRateLimiter(client, 2, time.Minute)
	engine := newEngine(rl.Middleware())

	assert.Equal(t, http.StatusOK, do(engine, nil).Code)
	assert.Equal(t, http.StatusOK, do(engine, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(engine, nil).Code)

	ttl := server.TTL(redisKeyPrefix + "192.0.2.1")
	assert.Greater(t, ttl, time.Duration(0))

	server.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, do(engine, nil).Code, "window expired")

	t.Run("shared between limiters", func(t *testing.T) {
		other := newEngine(NewRedisRateLimiter(client, 2, time.Minute).Middleware())
		assert.Equal(t, http.StatusOK, do(other, nil).Code)
		assert.Equal(t, http.StatusTooManyRequests, do(engine, nil).Code)
	})

	t.Run("fails open when redis is down", func(t *testing.T) {
		server.Close()
		assert.Equal(t, http.StatusOK, do(engine, nil).Code)
	})
}

func TestNewRedisClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+server.Addr()+"/0", "", 0)
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewRedisClient(context.Background(), "not a url", "", 0)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := adapters.NewTokenService("secret")
	engine := newEngine(NewAuthMiddleware(tokens).Authenticate())

	valid, err := tokens.IssueToken(context.Background(), "dashboard", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   domainerror.AuthErrorCode
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized, code: domainerror.ErrCodeMissingToken},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized, code: domainerror.ErrCodeInvalidToken},
		{name: "empty token", header: "Bearer ", status: http.StatusUnauthorized, code: domainerror.ErrCodeMissingToken},
		{name: "bad token", header: "Bearer abc", status: http.StatusUnauthorized, code: domainerror.ErrCodeInvalidToken},
		{name: "valid token", header: "Bearer " + valid, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.header != "" {
				header.Set("Authorization", tt.header)
			}
			rec := do(engine, header)
			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Equal(t, string(tt.code), errorCode(t, rec))
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "dashboard", body["subject"])
		})
	}
}

func TestRequestID(t *testing.T) {
	engine := newEngine(RequestID())

	rec := do(engine, nil)
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, generated, body["request_id"])

	header := http.Header{}
	header.Set(RequestIDHeader, "abc-123")
	rec = do(engine, header)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

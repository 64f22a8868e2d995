package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthBody struct {
	Status   string            `json:"status"`
	Failures map[string]string `json:"failures"`
}

func setup(t *testing.T) (sqlmock.Sqlmock, *miniredis.Miniredis, *health.Endpoints) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mock, mr, &health.Endpoints{DB: db, RedisClient: client}
}

func measure(t *testing.T, endpoints *health.Endpoints) (int, healthBody) {
	t.Helper()

	h, err := health.NewHealthHandler(endpoints)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body healthBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return w.Code, body
}

func TestHealthHandler(t *testing.T) {
	t.Run("All backends reachable", func(t *testing.T) {
		mock, _, endpoints := setup(t)
		mock.ExpectPing()

		code, body := measure(t, endpoints)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "OK", body.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Redis down", func(t *testing.T) {
		mock, mr, endpoints := setup(t)
		mock.ExpectPing()
		mr.Close()

		code, body := measure(t, endpoints)

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "Unavailable", body.Status)
		assert.Contains(t, body.Failures, "redis")
	})

	t.Run("Database pool missing", func(t *testing.T) {
		_, _, endpoints := setup(t)
		endpoints.DB = nil

		code, body := measure(t, endpoints)

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Contains(t, body.Failures, "database")
	})
}

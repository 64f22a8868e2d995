package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		client.Close()
	})

	return mr, client
}

func TestGuestCartRepository(t *testing.T) {
	ctx := t.Context()
	productA, productB := uuid.New(), uuid.New()

	t.Run("Empty cart reads as empty list", func(t *testing.T) {
		_, client := setupMiniredis(t)
		repo := repository.NewGuestCartRepo(client, time.Hour)

		lines, err := repo.GetLines(ctx, "guest-1")

		require.NoError(t, err)
		assert.Empty(t, lines)
		assert.NotNil(t, lines)
	})

	t.Run("Save and load keeps order", func(t *testing.T) {
		mr, client := setupMiniredis(t)
		repo := repository.NewGuestCartRepo(client, time.Hour)

		want := []models.GuestLine{{ProductID: productA, Quantity: 2}, {ProductID: productB, Quantity: 1}}
		require.NoError(t, repo.SaveLines(ctx, "guest-1", want))

		got, err := repo.GetLines(ctx, "guest-1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, time.Hour, mr.TTL("guest_cart:guest-1"))
	})

	t.Run("Lines expire after the TTL", func(t *testing.T) {
		mr, client := setupMiniredis(t)
		repo := repository.NewGuestCartRepo(client, time.Hour)

		require.NoError(t, repo.SaveLines(ctx, "guest-1", []models.GuestLine{{ProductID: productA, Quantity: 1}}))
		mr.FastForward(2 * time.Hour)

		got, err := repo.GetLines(ctx, "guest-1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Saving an empty list deletes the key", func(t *testing.T) {
		mr, client := setupMiniredis(t)
		repo := repository.NewGuestCartRepo(client, time.Hour)

		require.NoError(t, repo.SaveLines(ctx, "guest-1", []models.GuestLine{{ProductID: productA, Quantity: 1}}))
		require.NoError(t, repo.SaveLines(ctx, "guest-1", nil))

		assert.False(t, mr.Exists("guest_cart:guest-1"))
	})

	t.Run("Panel flag", func(t *testing.T) {
		_, client := setupMiniredis(t)
		repo := repository.NewGuestCartRepo(client, time.Hour)

		open, err := repo.IsOpen(ctx, "guest-1")
		require.NoError(t, err)
		assert.False(t, open)

		require.NoError(t, repo.SetOpen(ctx, "guest-1", true))

		open, err = repo.IsOpen(ctx, "guest-1")
		require.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("Redis failure is wrapped", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewGuestCartRepo(client, time.Hour)
		redisErr := errors.New("READONLY You can't write against a read only replica")

		mock.ExpectGet("guest_cart:guest-1").SetErr(redisErr)

		_, err := repo.GetLines(ctx, "guest-1")

		assert.ErrorIs(t, err, redisErr)
		assert.ErrorContains(t, err, "failed to get guest cart")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCheckoutSessionRepository(t *testing.T) {
	ctx := t.Context()
	cfg := config.Checkout{SessionTTL: 30 * time.Minute, SubmitLockTTL: 30 * time.Second}

	t.Run("Missing state reads as nil", func(t *testing.T) {
		_, client := setupMiniredis(t)
		repo := repository.NewCheckoutSessionRepo(client, cfg)

		state, err := repo.Get(ctx, "user:1")

		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("Save, load and delete", func(t *testing.T) {
		mr, client := setupMiniredis(t)
		repo := repository.NewCheckoutSessionRepo(client, cfg)

		want := models.CheckoutState{Step: 2, Shipping: models.ShippingDetails{FullName: "Ada", Country: "US"}}
		require.NoError(t, repo.Save(ctx, "user:1", want))
		assert.Equal(t, 30*time.Minute, mr.TTL("checkout:user:1"))

		got, err := repo.Get(ctx, "user:1")
		require.NoError(t, err)
		assert.Equal(t, want, *got)

		stored, err := mr.Get("checkout:user:1")
		require.NoError(t, err)
		assert.NotContains(t, stored, "card")
		assert.NotContains(t, stored, "cvv")

		require.NoError(t, repo.Delete(ctx, "user:1"))
		assert.False(t, mr.Exists("checkout:user:1"))
	})

	t.Run("Submit lock is exclusive until released", func(t *testing.T) {
		mr, client := setupMiniredis(t)
		repo := repository.NewCheckoutSessionRepo(client, cfg)

		ok, err := repo.AcquireSubmitLock(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.AcquireSubmitLock(ctx, "user:1")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, repo.ReleaseSubmitLock(ctx, "user:1"))

		ok, err = repo.AcquireSubmitLock(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, ok)

		mr.FastForward(time.Minute)
		assert.False(t, mr.Exists("checkout_lock:user:1"))
	})
}

func TestCheckLoginRateLimit(t *testing.T) {
	ctx := t.Context()
	cfg := config.RateConfig{MaxAttempts: 3, WindowSize: time.Minute}

	_, client := setupMiniredis(t)
	repo := repository.NewRateLimitRepo(client, cfg)

	for i := 1; i <= 3; i++ {
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, "ada@example.com")

		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d", i)
		assert.Equal(t, 3-i, remaining)
		assert.Zero(t, retryAfter)
	}

	allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, "ada@example.com")

	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Zero(t, remaining)
	assert.Positive(t, retryAfter)
	assert.LessOrEqual(t, retryAfter, 60)

	allowed, _, _, err = repo.CheckLoginRateLimit(ctx, "other@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

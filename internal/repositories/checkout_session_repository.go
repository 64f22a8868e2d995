package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/redis/go-redis/v9"
)

// CheckoutSessionRepository stores the wizard snapshot and the per-session
// submission lock.
type CheckoutSessionRepository interface {
	Get(ctx context.Context, sessionKey string) (*models.CheckoutState, error)
	Save(ctx context.Context, sessionKey string, state models.CheckoutState) error
	Delete(ctx context.Context, sessionKey string) error
	AcquireSubmitLock(ctx context.Context, sessionKey string) (bool, error)
	ReleaseSubmitLock(ctx context.Context, sessionKey string) error
}

type checkoutSessionRepository struct {
	client *redis.Client
	cfg    config.Checkout
}

func NewCheckoutSessionRepo(client *redis.Client, cfg config.Checkout) CheckoutSessionRepository {
	return &checkoutSessionRepository{client: client, cfg: cfg}
}

func checkoutKey(sessionKey string) string {
	return "checkout:" + sessionKey
}

func checkoutLockKey(sessionKey string) string {
	return "checkout_lock:" + sessionKey
}

// Get returns nil without error when no wizard is in progress.
func (r *checkoutSessionRepository) Get(ctx context.Context, sessionKey string) (*models.CheckoutState, error) {
	data, err := r.client.Get(ctx, checkoutKey(sessionKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get checkout state: %w", err)
	}

	var state models.CheckoutState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout state: %w", err)
	}

	return &state, nil
}

func (r *checkoutSessionRepository) Save(ctx context.Context, sessionKey string, state models.CheckoutState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout state: %w", err)
	}

	if err := r.client.Set(ctx, checkoutKey(sessionKey), data, r.cfg.SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save checkout state: %w", err)
	}

	return nil
}

func (r *checkoutSessionRepository) Delete(ctx context.Context, sessionKey string) error {
	if err := r.client.Del(ctx, checkoutKey(sessionKey)).Err(); err != nil {
		return fmt.Errorf("failed to delete checkout state: %w", err)
	}

	return nil
}

func (r *checkoutSessionRepository) AcquireSubmitLock(ctx context.Context, sessionKey string) (bool, error) {
	ok, err := r.client.SetNX(ctx, checkoutLockKey(sessionKey), "1", r.cfg.SubmitLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}

	return ok, nil
}

func (r *checkoutSessionRepository) ReleaseSubmitLock(ctx context.Context, sessionKey string) error {
	if err := r.client.Del(ctx, checkoutLockKey(sessionKey)).Err(); err != nil {
		return fmt.Errorf("failed to release submit lock: %w", err)
	}

	return nil
}

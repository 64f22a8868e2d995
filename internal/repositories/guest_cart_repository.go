package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/redis/go-redis/v9"
)

// GuestCartRepository keeps unauthenticated cart lines and the cart panel flag,
// both keyed by guest session id.
type GuestCartRepository interface {
	GetLines(ctx context.Context, guestID string) ([]models.GuestLine, error)
	SaveLines(ctx context.Context, guestID string, lines []models.GuestLine) error
	Clear(ctx context.Context, guestID string) error
	IsOpen(ctx context.Context, guestID string) (bool, error)
	SetOpen(ctx context.Context, guestID string, open bool) error
}

type guestCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuestCartRepo(client *redis.Client, ttl time.Duration) GuestCartRepository {
	return &guestCartRepository{client: client, ttl: ttl}
}

func guestCartKey(guestID string) string {
	return "guest_cart:" + guestID
}

func cartPanelKey(guestID string) string {
	return "cart_panel:" + guestID
}

func (r *guestCartRepository) GetLines(ctx context.Context, guestID string) ([]models.GuestLine, error) {
	data, err := r.client.Get(ctx, guestCartKey(guestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.GuestLine{}, nil
		}

		return nil, fmt.Errorf("failed to get guest cart: %w", err)
	}

	var lines []models.GuestLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guest cart: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the stored list and refreshes its TTL. An empty list
// deletes the key.
func (r *guestCartRepository) SaveLines(ctx context.Context, guestID string, lines []models.GuestLine) error {
	if len(lines) == 0 {
		return r.Clear(ctx, guestID)
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal guest cart: %w", err)
	}

	if err := r.client.Set(ctx, guestCartKey(guestID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save guest cart: %w", err)
	}

	return nil
}

func (r *guestCartRepository) Clear(ctx context.Context, guestID string) error {
	if err := r.client.Del(ctx, guestCartKey(guestID)).Err(); err != nil {
		return fmt.Errorf("failed to clear guest cart: %w", err)
	}

	return nil
}

func (r *guestCartRepository) IsOpen(ctx context.Context, guestID string) (bool, error) {
	val, err := r.client.Get(ctx, cartPanelKey(guestID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, fmt.Errorf("failed to get cart panel state: %w", err)
	}

	return val == "1", nil
}

func (r *guestCartRepository) SetOpen(ctx context.Context, guestID string, open bool) error {
	val := "0"
	if open {
		val = "1"
	}

	if err := r.client.Set(ctx, cartPanelKey(guestID), val, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cart panel state: %w", err)
	}

	return nil
}

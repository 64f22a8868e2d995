package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/redis/go-redis/v9"
)

const (
	componentName    = "storefront"
	componentVersion = "1.0.0"
)

// Endpoints are the shared pools the service depends on. Checks reuse them so
// a healthy report means the pools the handlers use can reach their backends.
type Endpoints struct {
	DB          *sql.DB
	RedisClient *redis.Client
}

func NewHealthHandler(endpoints *Endpoints) (*health.Health, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    componentName,
			Version: componentVersion,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: func(ctx context.Context) error {
					if endpoints.DB == nil {
						return fmt.Errorf("database pool is not initialized")
					}

					if err := endpoints.DB.PingContext(ctx); err != nil {
						return fmt.Errorf("failed to ping database: %w", err)
					}

					return nil
				},
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: func(ctx context.Context) error {
					if endpoints.RedisClient == nil {
						return fmt.Errorf("redis client is not initialized")
					}

					if err := endpoints.RedisClient.Ping(ctx).Err(); err != nil {
						return fmt.Errorf("failed to ping redis: %w", err)
					}

					return nil
				},
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

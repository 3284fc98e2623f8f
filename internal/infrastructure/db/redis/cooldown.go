package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCooldown = 3 * time.Second

// Cooldown rate-limits distributor scans: after a successful scan the
// distributor must wait out the window before scanning again.
// Key format: scan_cooldown:<username>
type Cooldown struct {
	client *redis.Client
	window time.Duration
}

// NewCooldown creates a Cooldown wrapping the given Redis client. A
// non-positive window falls back to the default.
func NewCooldown(client *redis.Client, window time.Duration) *Cooldown {
	if window <= 0 {
		window = defaultCooldown
	}
	return &Cooldown{client: client, window: window}
}

// Active reports whether the distributor is still inside the window.
func (c *Cooldown) Active(ctx context.Context, username string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(username)).Result()
	if err != nil {
		return false, fmt.Errorf("cooldown check: %w", err)
	}
	return n > 0, nil
}

// Arm starts the window for the distributor (expires automatically).
func (c *Cooldown) Arm(ctx context.Context, username string) error {
	return c.client.Set(ctx, c.key(username), "1", c.window).Err()
}

func (c *Cooldown) key(username string) string {
	return "scan_cooldown:" + username
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Role names what a connection is used for. It shows up in CLIENT LIST as
// pulse-<role>.
type Role string

const (
	RoleStore     Role = "store"
	RoleSensor    Role = "sensor"
	RolePublisher Role = "publisher"
)

func (r Role) clientName() string {
	if r == "" {
		return "pulse"
	}
	return "pulse-" + string(r)
}

type Config struct {
	URL  string
	Role Role
}

// New connects to cfg.URL and pings it. Errors name the server address but
// never the credentials in the URL.
func New(ctx context.Context, cfg Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	opt.ClientName = cfg.Role.clientName()

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s (db %d) as %s: %w", opt.Addr, opt.DB, opt.ClientName, err)
	}
	return client, nil
}

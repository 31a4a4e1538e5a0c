package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB and *redis.Client wrappers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB      Pinger
	Timeout time.Duration
}

func NewService(db Pinger) *Service {
	return &Service{DB: db, Timeout: 2 * time.Second}
}

// Status reports liveness and, when a database is configured, whether it
// answers a ping.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	out := map[string]any{"ok": true, "database": "memory"}
	if s == nil || s.DB == nil {
		return out, true
	}
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		out["ok"] = false
		out["database"] = "unavailable"
		return out, false
	}
	out["database"] = "ok"
	return out, true
}

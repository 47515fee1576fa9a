// Package session holds per-session analysis state. Each interactive session
// owns an independent copy of the canonical series, appliance rules and
// scenario parameters; nothing is shared across sessions and nothing survives
// a restart.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/levenlabs/go-lflag"
	"github.com/loadlens/loadlens/pkg/types"
)

var (
	// ErrNotFound is returned when no state exists for a session ID.
	ErrNotFound = errors.New("session not found")

	// ErrTooManySessions is returned when the store refuses to hold another
	// session.
	ErrTooManySessions = errors.New("too many sessions")
)

// Store persists session state for the lifetime of the process.
type Store interface {
	Get(ctx context.Context, sessionID string) (types.SessionState, error)
	Put(ctx context.Context, sessionID string, state types.SessionState) error
	Delete(ctx context.Context, sessionID string) error

	// Lifecycle
	Close() error
}

// Configured sets up the session store based on flags.
func Configured() Store {
	provider := lflag.String("session-provider", "memory", "Session store provider to use (available: memory)")

	var p struct{ Store }

	mem := configuredMemory()

	lflag.Do(func() {
		switch *provider {
		case "memory":
			p.Store = mem
		default:
			panic(fmt.Sprintf("unknown session provider: %s", *provider))
		}
	})

	return &p
}

package session

import (
	"context"
	"errors"

	"github.com/hupe1980/agentzero/core"
)

// ErrEmptySessionID is returned when a message is appended without a session id.
var ErrEmptySessionID = errors.New("session id must not be empty")

// Store is an append-only transcript store keyed by session id.
//
// Implementations must return messages in append order and must be safe for
// concurrent use.
type Store interface {
	// Append records msg at the end of the session's transcript.
	Append(ctx context.Context, sessionID string, msg core.Message) error
	// Messages returns the session's transcript. Unknown sessions yield an
	// empty slice.
	Messages(ctx context.Context, sessionID string) ([]core.Message, error)
	// Sessions lists the ids of all sessions with at least one message.
	Sessions(ctx context.Context) ([]string, error)
}

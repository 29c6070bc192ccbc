package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// State is the durable per-session UI state: the selected sucursal and the
// profile-already-checked marker. Everything else is re-derivable from the
// backend and is kept in memory only.
type State struct {
	SessionID      string    `json:"session_id"`
	SucursalID     int64     `json:"sucursal_id"`
	ProfileChecked bool      `json:"profile_checked"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Store persists session state in Redis as JSON blobs with a TTL. When no
// Redis client is configured the store degrades to a no-op and all state
// lives in memory for the life of the process.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Get returns the stored state for a session, or nil when none exists.
func (s *Store) Get(ctx context.Context, sessionID string) (*State, error) {
	if s.client == nil {
		return nil, nil
	}
	data, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var st State
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Save writes the state back with a refreshed TTL.
func (s *Store) Save(ctx context.Context, st *State) error {
	if s.client == nil {
		return nil
	}
	st.UpdatedAt = time.Now()

	data, err := json.Marshal(st)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.key(st.SessionID), data, s.ttl).Err()
}

// Delete drops the session state, e.g. on logout.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

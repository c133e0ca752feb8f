/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package xviz

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Session is one load/playback lifetime. It owns exactly one Registry.
type Session struct {
	ID        string
	StartedAt time.Time
	Registry  *Registry

	restarts atomic.Int64
}

// NewSession creates a session with a fresh id and an empty registry.
func NewSession(opts ...Option) *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Registry:  NewRegistry(opts...),
	}
}

// Restart empties the registry for a replay of the same log or a newly
// opened one. The session id is kept.
func (s *Session) Restart() {
	s.Registry.ResetAll()
	s.restarts.Add(1)
}

// Restarts returns how many times Restart has been called.
func (s *Session) Restarts() int64 {
	return s.restarts.Load()
}

// Close ends the session; its registry must not be used afterwards.
func (s *Session) Close() {
	s.Registry.Close()
}

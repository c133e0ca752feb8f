/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package xviz

import (
	"testing"

	"github.com/google/uuid"
)

func TestSession(t *testing.T) {
	s := NewSession()
	if _, err := uuid.Parse(s.ID); err != nil {
		t.Fatalf("Session id should be a uuid: %v", err)
	}
	if s.StartedAt.IsZero() {
		t.Fatal("StartedAt should be set")
	}

	s.Registry.Get("a", 0, 0)
	s.Restart()
	if s.Registry.Len() != 0 {
		t.Fatalf("Restart should empty the registry, got %d objects", s.Registry.Len())
	}
	if s.Restarts() != 1 {
		t.Fatalf("Expected 1 restart, got %d", s.Restarts())
	}

	other := NewSession()
	if other.ID == s.ID {
		t.Fatal("Sessions should not share ids")
	}
	other.Registry.Get("b", 0, 0)
	if s.Registry.Len() != 0 {
		t.Fatal("Sessions must not share registries")
	}
}

func TestSessionClose(t *testing.T) {
	s := NewSession()
	s.Close()

	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic when using a closed session registry")
		}
	}()
	s.Registry.GetAll()
}

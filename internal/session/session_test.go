package session

import (
	"context"
	"errors"
	"testing"
)

func TestStaticAuthenticated(t *testing.T) {
	sess, err := NewStatic("alice").Session(context.Background())
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if !sess.Authenticated || sess.UserID != "alice" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestStaticEmptyUser(t *testing.T) {
	_, err := NewStatic("").Session(context.Background())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

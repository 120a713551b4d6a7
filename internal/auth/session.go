package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nexa-assets/nexa/internal/kvstore"
	"github.com/nexa-assets/nexa/pkg/model"
)

// SessionKey is the storage key of the signed-in user.
const SessionKey = "nexa_session_user"

// Session persists the signed-in user between invocations.
type Session struct {
	store kvstore.Store
}

// NewSession creates a session backed by store.
func NewSession(store kvstore.Store) *Session {
	return &Session{store: store}
}

// Save records u as signed in. The password is never written.
func (s *Session) Save(ctx context.Context, u model.AppUser) error {
	data, err := json.Marshal(u.Public())
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.store.Put(ctx, SessionKey, data)
}

// Current returns the signed-in user. ok is false when nobody is signed in or
// the stored session cannot be read.
func (s *Session) Current(ctx context.Context) (u model.AppUser, ok bool, err error) {
	data, err := s.store.Get(ctx, SessionKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return model.AppUser{}, false, nil
	}
	if err != nil {
		return model.AppUser{}, false, err
	}
	if err := json.Unmarshal(data, &u); err != nil || u.ID == "" {
		return model.AppUser{}, false, nil
	}
	return u, true, nil
}

// Clear signs out. Clearing an empty session is not an error.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, SessionKey)
}

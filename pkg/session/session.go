package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// StorageKey is the fixed key the session record is stored under. Each
// browser client gets its own scope beneath it.
const StorageKey = "adoremy_user"

const DefaultEmail = "user@example.com"

var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrNameRequired    = errors.New("name is required")
	ErrSessionNotFound = errors.New("session not found")
)

// UserSession is the flat record persisted for a browser client.
type UserSession struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	IsLoggedIn  bool   `json:"isLoggedIn"`
}

// Anonymous is the session of a client that has not logged in.
func Anonymous() UserSession {
	return UserSession{}
}

type Credentials struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"omitempty,email"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left as is.
type ProfileUpdate struct {
	Username    *string `json:"username" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber"`
	Avatar      *string `json:"avatar"`
}

// Store persists session records by key.
type Store interface {
	SaveSession(ctx context.Context, key string, s UserSession) error
	// LoadSession returns ErrSessionNotFound when nothing is stored under key.
	LoadSession(ctx context.Context, key string) (UserSession, error)
	DeleteSession(ctx context.Context, key string) error
}

// Gate owns the identity of one browser client. It does not authenticate;
// any non-blank name logs in.
type Gate struct {
	store Store
	key   string
}

func NewGate(store Store, clientID string) *Gate {
	return &Gate{store: store, key: Key(clientID)}
}

// Key scopes StorageKey to a client.
func Key(clientID string) string {
	return fmt.Sprintf("%s:%s", StorageKey, clientID)
}

// CurrentUser returns the stored session, or an anonymous one.
func (g *Gate) CurrentUser(ctx context.Context) (UserSession, error) {
	s, err := g.store.LoadSession(ctx, g.key)
	if errors.Is(err, ErrSessionNotFound) {
		return Anonymous(), nil
	}
	if err != nil {
		return Anonymous(), fmt.Errorf("failed to load session: %w", err)
	}
	return s, nil
}

func (g *Gate) Login(ctx context.Context, creds Credentials) (UserSession, error) {
	name := strings.TrimSpace(creds.Name)
	if name == "" {
		return Anonymous(), ErrNameRequired
	}
	email := strings.TrimSpace(creds.Email)
	if email == "" {
		email = DefaultEmail
	}
	s := UserSession{Username: name, Email: email, IsLoggedIn: true}
	if err := g.store.SaveSession(ctx, g.key, s); err != nil {
		return Anonymous(), fmt.Errorf("failed to save session: %w", err)
	}
	return s, nil
}

func (g *Gate) Logout(ctx context.Context) error {
	if err := g.store.DeleteSession(ctx, g.key); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (g *Gate) UpdateProfile(ctx context.Context, upd ProfileUpdate) (UserSession, error) {
	s, err := g.CurrentUser(ctx)
	if err != nil {
		return s, err
	}
	if !s.IsLoggedIn {
		return s, ErrNotLoggedIn
	}
	if upd.Username != nil {
		if name := strings.TrimSpace(*upd.Username); name != "" {
			s.Username = name
		}
	}
	if upd.Email != nil {
		s.Email = strings.TrimSpace(*upd.Email)
	}
	if upd.PhoneNumber != nil {
		s.PhoneNumber = strings.TrimSpace(*upd.PhoneNumber)
	}
	if upd.Avatar != nil {
		s.Avatar = *upd.Avatar
	}
	if err := g.store.SaveSession(ctx, g.key, s); err != nil {
		return s, fmt.Errorf("failed to save session: %w", err)
	}
	return s, nil
}

// Package session holds the logged-in user of a storefront client.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-storefront/internal/logging"
	"github.com/MikeMC777/ordenes-storefront/internal/storeapi"
)

var (
	ErrTokenInvalid = errors.New("session token rejected")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// Backend is the auth part of the store API.
type Backend interface {
	Login(ctx context.Context, cred storeapi.Credentials) (string, error)
	Me(ctx context.Context) (*storeapi.Me, error)
	SetToken(token string)
	Token() string
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Claims are read from the token without verifying its signature; the
// backend is the one that verifies it.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

func ParseClaims(token string) (Claims, error) {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return Claims{}, err
	}
	c := Claims{Subject: rc.Subject}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	const prefix = "bearer "
	h := strings.TrimSpace(header)
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

type Session struct {
	api    Backend
	logger *zap.Logger
	now    func() time.Time

	mu   sync.Mutex
	user *User
}

func New(api Backend, logger *zap.Logger) *Session {
	return &Session{api: api, logger: logging.OrNop(logger), now: time.Now}
}

func (s *Session) Login(ctx context.Context, username, password string) (*User, error) {
	token, err := s.api.Login(ctx, storeapi.Credentials{Username: username, Password: password})
	if err != nil {
		if storeapi.IsStatus(err, http.StatusUnauthorized) {
			return nil, fmt.Errorf("login %s: %w", username, ErrTokenInvalid)
		}
		return nil, fmt.Errorf("login %s: %w", username, err)
	}
	return s.Resume(ctx, token)
}

// Resume adopts an existing token and loads the user it belongs to.
func (s *Session) Resume(ctx context.Context, token string) (*User, error) {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.api.SetToken(token)
	return s.Current(ctx)
}

// Current returns the logged-in user, asking the backend the first time. Any
// failure drops the token.
func (s *Session) Current(ctx context.Context) (*User, error) {
	s.mu.Lock()
	if s.user != nil {
		u := *s.user
		s.mu.Unlock()
		return &u, nil
	}
	s.mu.Unlock()

	token := s.api.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	if c, err := ParseClaims(token); err == nil && c.Expired(s.now()) {
		s.Logout()
		return nil, fmt.Errorf("token expired at %s: %w", c.ExpiresAt.Format(time.RFC3339), ErrTokenInvalid)
	}

	me, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Warn("current user lookup failed, logging out", zap.Error(err))
		s.Logout()
		if storeapi.IsStatus(err, http.StatusUnauthorized) || storeapi.IsStatus(err, http.StatusForbidden) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("current user: %w", err)
	}

	u := &User{ID: me.ID, Username: me.Username}
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	s.logger.Info("logged in", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
	cp := *u
	return &cp, nil
}

func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.api.SetToken("")
}

// Resolve looks up the owner of a token on behalf of another caller without
// touching any session state.
func Resolve(ctx context.Context, me func(ctx context.Context) (*storeapi.Me, error), token string) (*User, error) {
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	if c, err := ParseClaims(token); err == nil && c.Expired(time.Now()) {
		return nil, ErrTokenInvalid
	}
	m, err := me(storeapi.WithToken(ctx, token))
	if err != nil {
		if storeapi.IsStatus(err, http.StatusUnauthorized) || storeapi.IsStatus(err, http.StatusForbidden) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	return &User{ID: m.ID, Username: m.Username}, nil
}

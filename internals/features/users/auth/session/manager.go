// Package session owns the signed-in identity: it issues access tokens,
// resolves them back to a user, revokes them on sign-out and announces every
// transition on an event bus.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/users/auth/model"
)

const (
	TopicSignedIn  = "auth:signed_in"
	TopicSignedOut = "auth:signed_out"

	DefaultTTL = 24 * time.Hour
	expLeeway  = 30 * time.Second
)

var (
	ErrNoToken  = errors.New("session: no token")
	ErrInvalid  = errors.New("session: invalid token")
	ErrExpired  = errors.New("session: token expired")
	ErrRevoked  = errors.New("session: token revoked")
	ErrInactive = errors.New("session: account disabled")
	ErrNoSecret = errors.New("session: JWT secret not configured")
)

// Identity is the authenticated admin as seen by handlers.
type Identity struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	UserName  string    `json:"user_name"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Event is published on TopicSignedIn / TopicSignedOut.
type Event struct {
	Type     string
	Identity Identity
	Method   string // password, google, register, logout
	IP       string
	At       time.Time
}

type subscription struct {
	topic string
	fn    any
}

type Manager struct {
	secret    []byte
	ttl       time.Duration
	users     datastore.Table[model.UserModel]
	blacklist datastore.Table[model.TokenBlacklist]
	bus       evbus.Bus
	Now       func() time.Time

	mu   sync.Mutex
	subs []subscription
}

// NewManager is called once at startup; the returned manager is shared by
// the auth routes and the auth middleware.
func NewManager(secret string, ttl time.Duration, users datastore.Table[model.UserModel], blacklist datastore.Table[model.TokenBlacklist], bus evbus.Bus) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if bus == nil {
		bus = evbus.New()
	}
	return &Manager{
		secret:    []byte(strings.TrimSpace(secret)),
		ttl:       ttl,
		users:     users,
		blacklist: blacklist,
		bus:       bus,
		Now:       time.Now,
	}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

/* ==========================
   Subscriptions
========================== */

// Subscribe registers fn(Event) for topic. Handlers run synchronously.
func (m *Manager) Subscribe(topic string, fn func(Event)) error {
	if err := m.bus.Subscribe(topic, fn); err != nil {
		return err
	}
	m.track(topic, fn)
	return nil
}

// SubscribeAsync runs fn off the request path; Close waits for it.
func (m *Manager) SubscribeAsync(topic string, fn func(Event)) error {
	if err := m.bus.SubscribeAsync(topic, fn, false); err != nil {
		return err
	}
	m.track(topic, fn)
	return nil
}

func (m *Manager) track(topic string, fn any) {
	m.mu.Lock()
	m.subs = append(m.subs, subscription{topic: topic, fn: fn})
	m.mu.Unlock()
}

// Close drains async handlers and removes every subscription made through m.
func (m *Manager) Close() {
	m.bus.WaitAsync()
	m.mu.Lock()
	subs := m.subs
	m.subs = nil
	m.mu.Unlock()
	for _, s := range subs {
		if err := m.bus.Unsubscribe(s.topic, s.fn); err != nil {
			log.Printf("[WARN] session: unsubscribe %s: %v", s.topic, err)
		}
	}
}

func (m *Manager) publish(topic string, ev Event) {
	ev.Type = topic
	if ev.At.IsZero() {
		ev.At = m.Now()
	}
	m.bus.Publish(topic, ev)
}

/* ==========================
   Tokens
========================== */

func (m *Manager) identityOf(u model.UserModel, exp time.Time) Identity {
	id := Identity{
		ID:        u.ID,
		Email:     u.Email,
		UserName:  u.UserName,
		Role:      constants.RoleAdmin,
		ExpiresAt: exp,
	}
	if u.AvatarURL != nil {
		id.Avatar = *u.AvatarURL
	}
	return id
}

// Issue signs an access token for u.
func (m *Manager) Issue(u model.UserModel) (string, Identity, error) {
	if len(m.secret) == 0 {
		return "", Identity{}, ErrNoSecret
	}
	now := m.Now()
	ident := m.identityOf(u, now.Add(m.ttl))
	claims := jwt.MapClaims{
		"typ":       "access",
		"sub":       u.ID.String(),
		"id":        u.ID.String(),
		"email":     ident.Email,
		"user_name": ident.UserName,
		"avatar":    ident.Avatar,
		"role":      ident.Role,
		"iat":       now.Unix(),
		"exp":       ident.ExpiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Identity{}, fmt.Errorf("sign token: %w", err)
	}
	return token, ident, nil
}

// SignIn issues a token and announces the transition.
func (m *Manager) SignIn(u model.UserModel, method, ip string) (string, Identity, error) {
	token, ident, err := m.Issue(u)
	if err != nil {
		return "", Identity{}, err
	}
	m.publish(TopicSignedIn, Event{Identity: ident, Method: method, IP: ip})
	return token, ident, nil
}

// Parse checks signature and expiry only. It never touches a table.
func (m *Manager) Parse(raw string) (*Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoToken
	}
	if len(m.secret) == 0 {
		return nil, ErrNoSecret
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}); err != nil {
		return nil, ErrInvalid
	}

	exp, ok := unixClaim(claims["exp"])
	if !ok {
		return nil, ErrInvalid
	}
	if m.Now().After(exp.Add(expLeeway)) {
		return nil, ErrExpired
	}

	idStr, _ := claims["id"].(string)
	uid, err := uuid.Parse(idStr)
	if err != nil || uid == uuid.Nil {
		return nil, ErrInvalid
	}
	ident := &Identity{ID: uid, ExpiresAt: exp, Role: constants.RoleAdmin}
	ident.Email, _ = claims["email"].(string)
	ident.UserName, _ = claims["user_name"].(string)
	ident.Avatar, _ = claims["avatar"].(string)
	if r, _ := claims["role"].(string); r != "" {
		ident.Role = r
	}
	return ident, nil
}

func unixClaim(v any) (time.Time, bool) {
	switch n := v.(type) {
	case float64:
		return time.Unix(int64(n), 0), true
	case int64:
		return time.Unix(n, 0), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(i, 0), true
	}
	return time.Time{}, false
}

// Resolve turns a raw token into the current identity. Revoked tokens and
// disabled accounts resolve to an error, i.e. anonymous.
func (m *Manager) Resolve(ctx context.Context, raw string) (*Identity, error) {
	ident, err := m.Parse(raw)
	if err != nil {
		return nil, err
	}

	_, err = m.blacklist.First(ctx, datastore.Where(
		datastore.Eq("token", m.digest(raw)),
	))
	switch {
	case err == nil:
		return nil, ErrRevoked
	case datastore.IsNotFound(err), datastore.IsNotConfigured(err):
	default:
		return nil, fmt.Errorf("check blacklist: %w", err)
	}

	u, err := m.users.Get(ctx, ident.ID)
	if err != nil {
		if datastore.IsNotFound(err) {
			return nil, ErrInvalid
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInactive
	}
	fresh := m.identityOf(*u, ident.ExpiresAt)
	return &fresh, nil
}

// SignOut revokes raw until its natural expiry. Unparseable tokens are
// already anonymous, so they are ignored.
func (m *Manager) SignOut(ctx context.Context, raw, ip string) error {
	ident, err := m.Parse(raw)
	if err != nil {
		return nil
	}
	row := model.TokenBlacklist{Token: m.digest(raw), ExpiredAt: ident.ExpiresAt}
	if err := m.blacklist.Insert(ctx, &row); err != nil && !datastore.IsDuplicate(err) {
		return fmt.Errorf("blacklist token: %w", err)
	}
	m.publish(TopicSignedOut, Event{Identity: *ident, Method: "logout", IP: ip})
	return nil
}

func (m *Manager) digest(raw string) string {
	h := hmac.New(sha256.New, m.secret)
	_, _ = h.Write([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(h.Sum(nil))
}

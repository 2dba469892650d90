package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const minUsernameLen = 5

// tokenBytes gives 256 bits of entropy; collisions are retried anyway.
const tokenBytes = 32

// Policy sets the session TTLs. The privileged identity is a deliberate
// design rule: authenticating as it grants an extended session.
type Policy struct {
	DefaultTTL     time.Duration
	PrivilegedTTL  time.Duration
	PrivilegedUser string
}

// DefaultPolicy returns the standard 300s/7200s TTL split.
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL:     300 * time.Second,
		PrivilegedTTL:  7200 * time.Second,
		PrivilegedUser: "jollypolly",
	}
}

// Service wraps repository operations with the session lifecycle rules:
// credential checking, token issuance and lazy expiry eviction.
type Service struct {
	repo   Repository
	policy Policy
	now    func() time.Time
}

func NewService(r Repository, p Policy) *Service {
	if p.DefaultTTL <= 0 {
		p = DefaultPolicy()
	}
	return &Service{repo: r, policy: p, now: time.Now}
}

// Login checks credentials and creates a session, returning the opaque token
// and its TTL. The username length rule is checked before the password so the
// two failures stay distinguishable.
func (s *Service) Login(ctx context.Context, username, password string) (string, time.Duration, error) {
	if len(username) < minUsernameLen {
		return "", 0, ErrUsernameTooShort
	}
	if password != reverse(username) {
		return "", 0, ErrInvalidCredentials
	}

	ttl := s.policy.DefaultTTL
	if username == s.policy.PrivilegedUser {
		ttl = s.policy.PrivilegedTTL
	}

	token, err := s.issueToken(ctx)
	if err != nil {
		return "", 0, err
	}
	now := s.now().UTC()
	sess := &Session{
		Token:     token,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return "", 0, err
	}
	return token, ttl, nil
}

// Validate returns the session identity, failing with ErrUnauthenticated for
// unknown or expired tokens. An expired entry is evicted on first observation.
func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	sess, err := s.lookup(ctx, token)
	if err != nil {
		return "", err
	}
	return sess.Username, nil
}

// RemainingTTL returns the strictly positive time left before expiry, with
// the same validation and eviction semantics as Validate.
func (s *Service) RemainingTTL(ctx context.Context, token string) (time.Duration, error) {
	sess, err := s.lookup(ctx, token)
	if err != nil {
		return 0, err
	}
	return sess.ExpiresAt.Sub(s.now().UTC()), nil
}

// Invalidate removes the session. Idempotent: absent tokens are not an error.
func (s *Service) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.DeleteByToken(ctx, token)
}

// lookup fetches the session, evicting it when expired. A token whose
// expiry has been reached is treated exactly like an absent one.
func (s *Service) lookup(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	sess, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	if !s.now().UTC().Before(sess.ExpiresAt) {
		_ = s.repo.DeleteByToken(ctx, token)
		return nil, ErrUnauthenticated
	}
	return sess, nil
}

// issueToken generates a fresh random token, retrying the (astronomically
// unlikely) collision against the store.
func (s *Service) issueToken(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		b := make([]byte, tokenBytes)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}
		token := hex.EncodeToString(b)
		existing, err := s.repo.GetByToken(ctx, token)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return token, nil
		}
	}
	return "", fmt.Errorf("token generation: repeated collisions")
}

func reverse(in string) string {
	r := []rune(in)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

package sessions

import (
	"context"
	"testing"
	"time"
)

// fake repo for testing
type fakeRepo struct {
	store map[string]*Session
}

func (f *fakeRepo) Create(ctx context.Context, s *Session) error {
	if f.store == nil {
		f.store = map[string]*Session{}
	}
	f.store[s.Token] = s
	return nil
}
func (f *fakeRepo) GetByToken(ctx context.Context, token string) (*Session, error) {
	if f.store == nil {
		return nil, nil
	}
	s, ok := f.store[token]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (f *fakeRepo) DeleteByToken(ctx context.Context, token string) error {
	if f.store == nil {
		return nil
	}
	delete(f.store, token)
	return nil
}

func TestLogin_UsernameTooShort(t *testing.T) {
	svc := NewService(&fakeRepo{}, DefaultPolicy())
	ctx := context.Background()
	for _, name := range []string{"", "a", "ab", "abcd"} {
		// even a matching reversed password must not rescue a short name
		if _, _, err := svc.Login(ctx, name, reverse(name)); err != ErrUsernameTooShort {
			t.Fatalf("username %q: expected ErrUsernameTooShort, got %v", name, err)
		}
	}
}

func TestLogin_PasswordMustBeReversedUsername(t *testing.T) {
	svc := NewService(&fakeRepo{}, DefaultPolicy())
	ctx := context.Background()

	if _, _, err := svc.Login(ctx, "alice123", "alice123"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	token, ttl, err := svc.Login(ctx, "alice123", "321ecila")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if ttl != 300*time.Second {
		t.Fatalf("expected 300s TTL, got %v", ttl)
	}
}

func TestLogin_PrivilegedIdentityGetsExtendedTTL(t *testing.T) {
	svc := NewService(&fakeRepo{}, DefaultPolicy())
	ctx := context.Background()

	_, ttl, err := svc.Login(ctx, "jollypolly", "yllopylloj")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if ttl != 7200*time.Second {
		t.Fatalf("expected 7200s TTL for privileged identity, got %v", ttl)
	}
}

func TestValidate_AndInvalidate(t *testing.T) {
	svc := NewService(&fakeRepo{}, DefaultPolicy())
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "alice123", "321ecila")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	user, err := svc.Validate(ctx, token)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if user != "alice123" {
		t.Fatalf("unexpected identity %q", user)
	}
	if _, err := svc.Validate(ctx, "no-such-token"); err != ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	// invalidate is idempotent: twice on the same token, then an unknown one
	if err := svc.Invalidate(ctx, token); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if err := svc.Invalidate(ctx, token); err != nil {
		t.Fatalf("second invalidate failed: %v", err)
	}
	if err := svc.Invalidate(ctx, "unknown"); err != nil {
		t.Fatalf("invalidate of unknown token failed: %v", err)
	}
	if _, err := svc.Validate(ctx, token); err != ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated after invalidate, got %v", err)
	}
}

func TestExpiry_LazyEvictionAtExpiresAt(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, DefaultPolicy())
	ctx := context.Background()

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	token, _, err := svc.Login(ctx, "alice123", "321ecila")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	clock = clock.Add(299 * time.Second)
	left, err := svc.RemainingTTL(ctx, token)
	if err != nil {
		t.Fatalf("remaining TTL error: %v", err)
	}
	if left != time.Second {
		t.Fatalf("expected 1s remaining, got %v", left)
	}

	// invalid exactly at expires_at, and the entry is evicted on that read
	clock = clock.Add(time.Second)
	if _, err := svc.RemainingTTL(ctx, token); err != ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated at expiry, got %v", err)
	}
	if _, ok := repo.store[token]; ok {
		t.Fatalf("expected expired session evicted from repository")
	}
}

func TestRemainingTTL_StrictlyDecreases(t *testing.T) {
	svc := NewService(&fakeRepo{}, DefaultPolicy())
	ctx := context.Background()

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	token, _, err := svc.Login(ctx, "bobby456", "654ybbob")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	prev, err := svc.RemainingTTL(ctx, token)
	if err != nil {
		t.Fatalf("remaining TTL error: %v", err)
	}
	for i := 0; i < 5; i++ {
		clock = clock.Add(7 * time.Second)
		cur, err := svc.RemainingTTL(ctx, token)
		if err != nil {
			t.Fatalf("remaining TTL error: %v", err)
		}
		if cur >= prev {
			t.Fatalf("expected remaining TTL to decrease, got %v then %v", prev, cur)
		}
		prev = cur
	}
}

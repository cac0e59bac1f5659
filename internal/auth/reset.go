// README: Single-use password reset tokens keyed by email.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
	"time"
)

var ErrInvalidResetToken = errors.New("invalid or expired reset token")

const DefaultResetTTL = time.Hour

// ResetTokenStore keeps at most one live reset token per email. Issue replaces
// any previous token; Consume is an atomic check-and-delete, so a token that
// verified once can never verify again.
type ResetTokenStore interface {
	Issue(ctx context.Context, email string) (string, error)
	Consume(ctx context.Context, email, token string) error
}

const resetTokenLen = 32

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func newResetToken() (string, error) {
	buf := make([]byte, resetTokenLen)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

type resetEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryResetTokenStore holds tokens in-process. Tokens are lost on restart,
// which is acceptable: the user simply requests another reset.
type MemoryResetTokenStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	tokens map[string]resetEntry
}

func NewMemoryResetTokenStore(ttl time.Duration) *MemoryResetTokenStore {
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}
	return &MemoryResetTokenStore{
		ttl:    ttl,
		now:    time.Now,
		tokens: make(map[string]resetEntry),
	}
}

func (s *MemoryResetTokenStore) Issue(_ context.Context, email string) (string, error) {
	token, err := newResetToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[email] = resetEntry{token: token, expiresAt: s.now().Add(s.ttl)}
	return token, nil
}

func (s *MemoryResetTokenStore) Consume(_ context.Context, email, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[email]
	if !ok || entry.token != token {
		return ErrInvalidResetToken
	}
	if s.now().After(entry.expiresAt) {
		delete(s.tokens, email)
		return ErrInvalidResetToken
	}
	delete(s.tokens, email)
	return nil
}

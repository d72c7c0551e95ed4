package test

import (
	"context"
	"errors"
	"sync"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/domain/model"
	pkgAuth "github.com/vdeep/craftmart/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	ID      int64
	Err     error
	ParseFn func(string) (int64, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}

// PendingSignupStoreStub keeps pending signups in-memory for tests.
type PendingSignupStoreStub struct {
	mu      sync.Mutex
	Entries map[string]*model.PendingSignup
	PutErr  error
	GetErr  error
}

// NewPendingSignupStoreStub constructs the stub with an initialized map.
func NewPendingSignupStoreStub() *PendingSignupStoreStub {
	return &PendingSignupStoreStub{Entries: make(map[string]*model.PendingSignup)}
}

// Put stores a pending signup.
func (s *PendingSignupStoreStub) Put(ctx context.Context, signup *model.PendingSignup) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cloned := *signup
	s.Entries[signup.ID] = &cloned
	return nil
}

// Get loads a pending signup or reports not found.
func (s *PendingSignupStoreStub) Get(ctx context.Context, id string) (*model.PendingSignup, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if signup, ok := s.Entries[id]; ok {
		cloned := *signup
		return &cloned, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Delete removes a pending signup.
func (s *PendingSignupStoreStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Entries, id)
	return nil
}

// OTPSenderStub records sent codes.
type OTPSenderStub struct {
	mu   sync.Mutex
	Sent map[string]string
	Err  error
}

// SendOTP stores the code by recipient or fails with the configured error.
func (s *OTPSenderStub) SendOTP(ctx context.Context, email, otp string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Sent == nil {
		s.Sent = make(map[string]string)
	}
	s.Sent[email] = otp
	return nil
}

// LastOTP returns the most recent code sent to the address.
func (s *OTPSenderStub) LastOTP(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Sent[email]
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}

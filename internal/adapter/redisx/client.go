package redisx

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/usecase"
)

const (
	keyPendingSignup = "pending:signup:%s"
	keyCheckoutLock  = "lock:checkout:%d:%d"

	pendingSignupTTL = 10 * time.Minute
	checkoutLockTTL  = 30 * time.Second
)

// New connects a go-redis client.
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// PendingSignupStore keeps unverified registrations in redis until the OTP is
// confirmed or the TTL evicts them.
type PendingSignupStore struct {
	rdb *redis.Client
}

// NewPendingSignupStore constructs PendingSignupStore.
func NewPendingSignupStore(rdb *redis.Client) *PendingSignupStore {
	return &PendingSignupStore{rdb: rdb}
}

// Put stores the pending signup under its ID for the OTP validity window.
func (s *PendingSignupStore) Put(ctx context.Context, pending *model.PendingSignup) error {
	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("marshal pending signup: %w", err)
	}
	return s.rdb.Set(ctx, fmt.Sprintf(keyPendingSignup, pending.ID), payload, pendingSignupTTL).Err()
}

// Get loads a pending signup; expired or unknown IDs yield ErrNotFound.
func (s *PendingSignupStore) Get(ctx context.Context, id string) (*model.PendingSignup, error) {
	payload, err := s.rdb.Get(ctx, fmt.Sprintf(keyPendingSignup, id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	var pending model.PendingSignup
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil, fmt.Errorf("unmarshal pending signup: %w", err)
	}
	return &pending, nil
}

// Delete drops a pending signup after verification.
func (s *PendingSignupStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, fmt.Sprintf(keyPendingSignup, id)).Err()
}

// CheckoutLocker serializes checkout attempts per (user, product) pair with a
// short-lived SET NX lock. The token guards against releasing a lock that the
// TTL already handed to someone else.
type CheckoutLocker struct {
	rdb *redis.Client
}

// NewCheckoutLocker constructs CheckoutLocker.
func NewCheckoutLocker(rdb *redis.Client) *CheckoutLocker {
	return &CheckoutLocker{rdb: rdb}
}

// Acquire takes the pair lock or fails immediately with ErrLockHeld when it
// is held. Transport errors are returned as-is so callers can tell a busy
// lock from a redis outage.
func (l *CheckoutLocker) Acquire(ctx context.Context, userID, productID int64) (func(), error) {
	key := fmt.Sprintf(keyCheckoutLock, userID, productID)
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, checkoutLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire checkout lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: user %d product %d", usecase.ErrLockHeld, userID, productID)
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		current, err := l.rdb.Get(releaseCtx, key).Result()
		if err != nil || current != token {
			return
		}
		_ = l.rdb.Del(releaseCtx, key).Err()
	}
	return release, nil
}

package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
	pkgAuth "github.com/vdeep/craftmart/internal/pkg/auth"
)

// PendingSignupStore keeps unverified registrations with a bounded lifetime.
// Entries expire on their own; Get after expiry reports ErrNotFound.
type PendingSignupStore interface {
	Put(ctx context.Context, signup *model.PendingSignup) error
	Get(ctx context.Context, id string) (*model.PendingSignup, error)
	Delete(ctx context.Context, id string) error
}

// OTPSender delivers one-time codes to prospective users.
type OTPSender interface {
	SendOTP(ctx context.Context, email, otp string) error
}

// AuthUseCase handles OTP-gated registration and token management.
type AuthUseCase struct {
	users   repository.UserRepository
	pending PendingSignupStore
	hasher  pkgAuth.PasswordHasher
	tokens  pkgAuth.Strategy
	otp     OTPSender
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, pending PendingSignupStore, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, otp OTPSender) *AuthUseCase {
	return &AuthUseCase{users: users, pending: pending, hasher: hasher, tokens: strategy, otp: otp}
}

// Register stores a pending signup and emails its OTP. No user row exists
// until the OTP is verified. A failed OTP email fails the registration.
func (u *AuthUseCase) Register(ctx context.Context, name, email, phone, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || phone == "" || password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}

	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return "", domainErrors.ErrAlreadyExists
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return "", err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	otp, err := generateOTP()
	if err != nil {
		return "", err
	}

	signup := &model.PendingSignup{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		OTP:          otp,
	}

	if err := u.pending.Put(ctx, signup); err != nil {
		return "", err
	}

	if err := u.otp.SendOTP(ctx, email, otp); err != nil {
		return "", err
	}

	return signup.ID, nil
}

// VerifyOTP promotes a pending signup to a real user and issues a token.
func (u *AuthUseCase) VerifyOTP(ctx context.Context, pendingID, otp string) (string, error) {
	signup, err := u.pending.Get(ctx, pendingID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", domainErrors.ErrInvalidOTP
		}
		return "", err
	}

	if signup.OTP != otp {
		return "", domainErrors.ErrInvalidOTP
	}

	user, err := u.users.Create(ctx, &model.User{
		Name:         signup.Name,
		Email:        signup.Email,
		Phone:        signup.Phone,
		PasswordHash: signup.PasswordHash,
	})
	if err != nil {
		return "", err
	}

	if err := u.pending.Delete(ctx, pendingID); err != nil {
		// The entry expires on its own; verification already succeeded.
		err = nil
	}

	return u.tokens.IssueToken(user.ID)
}

// Authenticate checks credentials and issues a token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", domainErrors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}

	return u.tokens.IssueToken(user.ID)
}

// ParseToken resolves a bearer token to a user id.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	return u.tokens.ParseToken(token)
}

// GetUser loads a user by id.
func (u *AuthUseCase) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

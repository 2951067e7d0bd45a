package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/minhquan-ng/auth-capstone-api/internal/domain"
	"github.com/minhquan-ng/auth-capstone-api/internal/repository/ports"
	"github.com/minhquan-ng/auth-capstone-api/internal/token"
	"github.com/minhquan-ng/auth-capstone-api/internal/util"
)

var (
	ErrEmailAlreadyUsed = errors.New("email already exists")
	ErrEmailNotFound    = errors.New("email does not exist")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrUserNotFound     = errors.New("user not found")
	ErrResetCodeInvalid = errors.New("code is invalid")
	ErrResetCodeExpired = errors.New("code is expired")
	ErrEmailDelivery    = errors.New("email delivery failed")
)

// MailSender is the notification capability the workflows depend on.
type MailSender interface {
	SendWelcome(ctx context.Context, email, fullName string) error
	SendPasswordReset(ctx context.Context, email, fullName, code string) error
}

const resetCodeBytes = 6

type AuthService struct {
	users  ports.UserRepository
	resets ports.ResetCodeRepository
	mailer MailSender
	tokens *token.Manager

	resetTTL time.Duration
	now      func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	resets ports.ResetCodeRepository,
	mailer MailSender,
	tokens *token.Manager,
	resetTTL time.Duration,
) *AuthService {
	if resetTTL <= 0 {
		resetTTL = 2 * time.Hour
	}
	return &AuthService{
		users:    users,
		resets:   resets,
		mailer:   mailer,
		tokens:   tokens,
		resetTTL: resetTTL,
		now:      time.Now,
	}
}

// Register creates a new user and fires a welcome email without waiting for
// delivery. The unique constraint on email is the source of truth for
// duplicates; the pre-check only gives a friendlier fast path.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyUsed
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, strings.TrimSpace(fullName), email, hash)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.mailer != nil {
		go func(to, name string) {
			if err := s.mailer.SendWelcome(context.Background(), to, name); err != nil {
				log.Printf("welcome email to %s failed: %v", to, err)
			}
		}(user.Email, user.FullName)
	}

	return user, nil
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// Login verifies credentials and issues both tokens. The refresh token is
// persisted on the user row, last issued wins.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !util.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidPassword
	}

	payload := tokenPayload(user)
	accessToken, err := s.tokens.Access(payload)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refreshToken, err := s.tokens.Refresh(payload)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ExtendToken exchanges a refresh token for a fresh access token. The payload
// is rebuilt from the current user row rather than the token's embedded copy.
// The persisted refresh_token column is deliberately not consulted, so older
// refresh tokens stay usable until they expire.
func (s *AuthService) ExtendToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, claims.Payload.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	accessToken, err := s.tokens.Access(tokenPayload(user))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return accessToken, nil
}

// ForgotPassword issues a fresh reset code, overwriting any live one, and
// emails it. Delivery is awaited here: the caller learns about a failed send.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	code, err := util.GenerateResetCode(resetCodeBytes)
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	expiresAt := s.now().Add(s.resetTTL)
	if _, err := s.resets.Upsert(ctx, user.ID, code, expiresAt); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.FullName, code); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}
	return nil
}

// ResetPassword consumes a reset code and replaces the user's password. A code
// is single use: the row is deleted once the password update succeeds. Expiry
// is checked at use time, never swept.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	reset, err := s.resets.FindByUserAndCode(ctx, user.ID, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResetCodeInvalid
		}
		return fmt.Errorf("find reset code: %w", err)
	}

	if reset.Expired(s.now()) {
		return ErrResetCodeExpired
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.resets.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("delete reset code: %w", err)
	}
	return nil
}

// Authenticate verifies an access token and resolves its user. Token failures
// surface as the token package sentinels, a missing user as ErrUserNotFound.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokens.Verify(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.Payload.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func tokenPayload(user *domain.User) token.Payload {
	return token.Payload{
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

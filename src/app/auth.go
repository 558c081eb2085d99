package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// AuthService covers manual registration/login, OAuth completion and
// bearer-token resolution.
type AuthService struct {
	users  UserStore
	tokens *TokenIssuer
}

func NewAuthService(users UserStore, tokens *TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Resolve authenticates a request. Signature, expiry and the continued
// existence of the subject are all checked; any failure collapses to
// ErrUnauthenticated.
func (s *AuthService) Resolve(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: no token provided", ErrUnauthenticated)
	}
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve token subject: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: token subject no longer exists", ErrUnauthenticated)
	}
	return user, nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password, confirm string) (*User, string, error) {
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	if password != confirm {
		return nil, "", fmt.Errorf("%w: passwords do not match", ErrInvalidInput)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}
	if existing != nil {
		return nil, "", fmt.Errorf("%w: user already exists with this email", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user := &User{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.UserID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil, "", fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	}

	token, err := s.tokens.Issue(user.UserID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CompleteOAuth finds or creates the account behind an external
// sign-in. An existing email account gets the provider id linked; a
// first-time sign-in creates a verified account.
func (s *AuthService) CompleteOAuth(ctx context.Context, profile OAuthProfile) (*User, string, error) {
	email := normalizeEmail(profile.Email)
	if email == "" || profile.Subject == "" {
		return nil, "", fmt.Errorf("%w: provider profile is missing email or subject", ErrInvalidInput)
	}

	user, err := s.users.FindByGoogleIDOrEmail(ctx, profile.Subject, email)
	if err != nil {
		return nil, "", fmt.Errorf("find oauth user: %w", err)
	}
	if user != nil {
		if user.GoogleID == "" {
			user.GoogleID = profile.Subject
			if err := s.users.Update(ctx, user); err != nil {
				return nil, "", fmt.Errorf("link provider id: %w", err)
			}
		}
	} else {
		user = &User{
			UserID:        uuid.NewString(),
			Email:         email,
			Name:          profile.DisplayName(),
			Avatar:        profile.Picture,
			GoogleID:      profile.Subject,
			EmailVerified: true,
			CreatedAt:     time.Now(),
		}
		if err := s.users.Insert(ctx, user); err != nil {
			return nil, "", fmt.Errorf("create oauth user: %w", err)
		}
		log.Infof("new user created via oauth: %s", user.Email)
	}

	token, err := s.tokens.Issue(user.UserID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

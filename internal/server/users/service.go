package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/steptrack/internal/common"
	"github.com/dmitrijs2005/steptrack/internal/server/auth"
	"github.com/dmitrijs2005/steptrack/internal/server/config"
)

// AuthResult pairs a freshly issued access token with the user it belongs
// to. The token is opaque to callers.
type AuthResult struct {
	Token string
	User  *User
}

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a directory entry for a new user and issues a session
// token. The password is stored only as a bcrypt hash. A taken email fails
// with common.ErrDuplicateEmail and leaves the directory unchanged.
func (s *Service) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, common.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials against the directory and issues a session
// token. Unknown email and wrong password are indistinguishable to the
// caller: both fail with common.ErrInvalidCredentials, and no session is
// issued.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// GetByID loads a directory entry, for handlers resolving the token's user.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) generateAccessToken(user *User) (string, error) {
	return auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
}

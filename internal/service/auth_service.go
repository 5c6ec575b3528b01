package service

import (
	"errors"
	"fmt"
	"log"

	"bizflow-backend/internal/repository"
	"bizflow-backend/pkg/password"
	"bizflow-backend/pkg/token"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
)

// TokenResponse is the login payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthService interface {
	Login(email, plaintext string) (*TokenResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   *password.Hasher
	tokens   *token.Service
}

func NewAuthService(userRepo repository.UserRepository, hasher *password.Hasher, tokens *token.Service) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password both collapse to ErrInvalidCredentials; a corrupt stored
// digest or a storage failure surfaces as a distinct server-side error.
func (s *authService) Login(email, plaintext string) (*TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("login failed: unknown email %s", email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup failed: %w", err)
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	ok, err := s.hasher.CheckStrict(plaintext, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Printf("login failed: wrong password for %s", email)
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		// Last-login is bookkeeping; a failed write must not block the login.
		log.Printf("failed to update last_login for %s: %v", email, err)
	}

	accessToken, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
	}, nil
}

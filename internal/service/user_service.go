package service

import (
	"errors"
	"fmt"

	"bizflow-backend/internal/model"
	"bizflow-backend/internal/repository"
	"bizflow-backend/pkg/password"
	"bizflow-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

type UserService interface {
	Register(req *RegisterRequest) (*model.User, error)
	GetByID(id uuid.UUID) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	hasher   *password.Hasher
}

func NewUserService(userRepo repository.UserRepository, hasher *password.Hasher) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (s *userService) Register(req *RegisterRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("email lookup failed: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

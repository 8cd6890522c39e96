package service

import (
	"context"
	"errors"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/logger"
	"studybuddy-backend/internal/repository"
	"studybuddy-backend/internal/security"
)

var errInvalidCredentials = domain.NewUnauthenticatedError("invalid email or password")

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name, err := validateUserName(name)
	if err != nil {
		return nil, err
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.UserRoleStudent,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Info("User registered", "userID", user.ID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, "", errInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", errInvalidCredentials
		}
		return nil, "", err
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, "", errInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) GetUser(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

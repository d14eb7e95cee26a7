package services

import (
	"context"
	"errors"
	"strings"
	"ua-shop/models"
	"ua-shop/repositories"
	"ua-shop/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("email invalid")
	ErrInvalidMobileNo    = errors.New("mobile number must be 11 digits")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("email and password do not match")
	ErrAlreadyAdmin       = errors.New("user is already an admin")
)

type AuthService struct {
	users UserRepository
}

func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if !strings.Contains(req.Email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(req.MobileNo) != 11 {
		return nil, ErrInvalidMobileNo
	}
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		MobileNo:  req.MobileNo,
		Password:  hashedPassword,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if !strings.Contains(req.Email, "@") {
		return nil, ErrInvalidEmail
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role())
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Access: token}, nil
}

func (s *AuthService) GetDetails(ctx context.Context, userID int) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) ResetPassword(ctx context.Context, userID int, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hashedPassword)
}

func (s *AuthService) SetAsAdmin(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, ErrAlreadyAdmin
	}

	if err := s.users.SetAdmin(ctx, userID); err != nil {
		return nil, err
	}
	user.IsAdmin = true
	return user, nil
}

package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"spotmarket/internal/db"
	"spotmarket/internal/entities"
	"spotmarket/internal/repository"
)

type AuthService interface {
	Register(req entities.RegisterRequest) (*entities.UserResponse, error)
	Login(email, password string) (*entities.LoginResponse, error)
}

type authService struct {
	repo      repository.UserRepository
	jwtSecret string
}

func NewAuthService(repo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{repo: repo, jwtSecret: jwtSecret}
}

func (s *authService) Register(req entities.RegisterRequest) (*entities.UserResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email and password are required")
	}

	role := req.Role
	if role == "" {
		role = db.RoleDriver
	}
	if role != db.RoleOwner && role != db.RoleDriver && role != db.RoleBoth {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	existing, err := s.repo.GetByEmail(strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Phone:        req.Phone,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	resp := UserResponseFrom(user)
	return &resp, nil
}

func (s *authService) Login(email, password string) (*entities.LoginResponse, error) {
	user, err := s.repo.GetByEmail(strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	if s.jwtSecret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &entities.LoginResponse{Token: signed, User: UserResponseFrom(user)}, nil
}

// UserResponseFrom maps a user row to its API shape. Payout info is
// only surfaced for users who can own spots.
func UserResponseFrom(user *db.User) entities.UserResponse {
	resp := entities.UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
		Bio:          user.Bio,
		CreatedAt:    user.CreatedAt,
	}
	if user.Role != db.RoleDriver {
		if user.PayoutAccountName != "" || user.PayoutAccountNumber != "" || user.PayoutBankName != "" {
			resp.PayoutInfo = &entities.PayoutInfo{
				AccountName:   user.PayoutAccountName,
				AccountNumber: user.PayoutAccountNumber,
				BankName:      user.PayoutBankName,
			}
		}
	}
	return resp
}

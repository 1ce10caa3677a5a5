package service

import (
	"fmt"

	"spotmarket/internal/db"
	"spotmarket/internal/entities"
	"spotmarket/internal/repository"
)

type UserService struct {
	Repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) GetProfile(userID string) (*entities.UserResponse, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	resp := UserResponseFrom(user)
	return &resp, nil
}

func (s *UserService) UpdateProfile(userID string, req entities.UpdateProfileRequest) (*entities.UserResponse, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		if req.Role != db.RoleOwner && req.Role != db.RoleDriver && req.Role != db.RoleBoth {
			return nil, fmt.Errorf("invalid role %q", req.Role)
		}
		user.Role = req.Role
	}
	if req.ProfileImage != "" {
		user.ProfileImage = req.ProfileImage
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.PayoutInfo != nil {
		user.PayoutAccountName = req.PayoutInfo.AccountName
		user.PayoutAccountNumber = req.PayoutInfo.AccountNumber
		user.PayoutBankName = req.PayoutInfo.BankName
	}

	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	resp := UserResponseFrom(user)
	return &resp, nil
}

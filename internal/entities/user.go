package entities

import "time"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type PayoutInfo struct {
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
}

type UserResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Role         string      `json:"role"`
	ProfileImage string      `json:"profile_image,omitempty"`
	Bio          string      `json:"bio,omitempty"`
	PayoutInfo   *PayoutInfo `json:"payout_info,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

type UpdateProfileRequest struct {
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	Role         string      `json:"role"`
	ProfileImage string      `json:"profile_image"`
	Bio          string      `json:"bio"`
	PayoutInfo   *PayoutInfo `json:"payout_info,omitempty"`
}

package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"spotmarket/internal/db"
)

type UserRepository interface {
	Create(user *db.User) error
	GetByID(id string) (*db.User, error)
	GetByEmail(email string) (*db.User, error)
	Update(user *db.User) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{db: database}
}

const userColumns = `
	id, name, email, phone, role, password_hash, profile_image, bio,
	payout_account_name, payout_account_number, payout_bank_name, created_at`

func (r *userRepository) Create(user *db.User) error {
	query := `
		INSERT INTO users
		(id, name, email, phone, role, password_hash, profile_image, bio, payout_account_name, payout_account_number, payout_bank_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(query,
		user.ID, user.Name, user.Email, user.Phone, user.Role, user.PasswordHash,
		user.ProfileImage, user.Bio, user.PayoutAccountName, user.PayoutAccountNumber,
		user.PayoutBankName, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id string) (*db.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := r.scanOne(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s not found: %w", id, err)
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail returns (nil, nil) when no user has the given email so
// callers can distinguish bad credentials from query failures.
func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := r.scanOne(r.db.QueryRow(query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Update(user *db.User) error {
	query := `
		UPDATE users
		SET name = $2, phone = $3, role = $4, profile_image = $5, bio = $6,
		    payout_account_name = $7, payout_account_number = $8, payout_bank_name = $9
		WHERE id = $1`
	result, err := r.db.Exec(query,
		user.ID, user.Name, user.Phone, user.Role, user.ProfileImage, user.Bio,
		user.PayoutAccountName, user.PayoutAccountNumber, user.PayoutBankName,
	)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("user %s not found", user.ID)
	}
	return nil
}

func (r *userRepository) scanOne(row *sql.Row) (*db.User, error) {
	var user db.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.Role, &user.PasswordHash,
		&user.ProfileImage, &user.Bio, &user.PayoutAccountName, &user.PayoutAccountNumber,
		&user.PayoutBankName, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &user, nil
}

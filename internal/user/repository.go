package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	createUser(ctx context.Context, user *User) error
	getUserByID(ctx context.Context, id string) (*User, error)
	getUserByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*User, error)
	userExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	updateProfile(ctx context.Context, user *User) error
	updatePreferences(ctx context.Context, userID, currency, language, theme string) error
	updatePassword(ctx context.Context, userID, newPasswordHash, newHashToken string) error
	touchLastLogin(ctx context.Context, userID string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

const userColumns = `id, full_name, username, email, COALESCE(contact, ''), COALESCE(gender, ''),
	COALESCE(marital_status, ''), COALESCE(id_number, ''), COALESCE(address, ''), COALESCE(photo, ''),
	password_hash, hash_token, currency, language, theme, created_at, last_login_at`

func scanUser(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.FullName, &user.Username, &user.Email, &user.Contact, &user.Gender,
		&user.MaritalStatus, &user.IDNumber, &user.Address, &user.Photo, &user.PasswordHash, &user.HashToken,
		&user.Currency, &user.Language, &user.Theme, &user.CreatedAt, &user.LastLoginAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}
	return &user, nil
}

func (r *userRepository) createUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (full_name, username, email, contact, gender, marital_status, id_number, address, photo, password_hash, hash_token)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11)
		RETURNING id, currency, language, theme, created_at;
	`
	err := r.db.QueryRowContext(ctx, query,
		user.FullName, user.Username, user.Email, user.Contact, user.Gender, user.MaritalStatus,
		user.IDNumber, user.Address, user.Photo, user.PasswordHash, user.HashToken,
	).Scan(&user.ID, &user.Currency, &user.Language, &user.Theme, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not create user: %v", err)
	}
	return nil
}

func (r *userRepository) getUserByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) getUserByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE username = $1 OR email = $1", userColumns)
	return scanUser(r.db.QueryRowContext(ctx, query, usernameOrEmail))
}

func (r *userRepository) userExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)",
		username, email).Scan(&exists)
	return exists, err
}

func (r *userRepository) updateProfile(ctx context.Context, user *User) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET full_name = $1, username = $2, email = $3, contact = NULLIF($4, ''), gender = NULLIF($5, ''),
		    marital_status = NULLIF($6, ''), id_number = NULLIF($7, ''), address = NULLIF($8, ''), photo = NULLIF($9, '')
		WHERE id = $10`,
		user.FullName, user.Username, user.Email, user.Contact, user.Gender, user.MaritalStatus,
		user.IDNumber, user.Address, user.Photo, user.ID)
	if err != nil {
		return fmt.Errorf("could not update profile: %v", err)
	}
	return nil
}

func (r *userRepository) updatePreferences(ctx context.Context, userID, currency, language, theme string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET currency = $1, language = $2, theme = $3 WHERE id = $4",
		currency, language, theme, userID)
	if err != nil {
		return fmt.Errorf("could not update preferences: %v", err)
	}
	return nil
}

func (r *userRepository) updatePassword(ctx context.Context, userID, newPasswordHash, newHashToken string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET password_hash = $1, hash_token = $2 WHERE id = $3",
		newPasswordHash, newHashToken, userID)
	if err != nil {
		return fmt.Errorf("could not update password: %v", err)
	}
	return nil
}

func (r *userRepository) touchLastLogin(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET last_login_at = NOW() WHERE id = $1", userID)
	return err
}

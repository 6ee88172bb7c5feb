package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength    = 120
	minEmailLength    = 3
	maxUsernameLength = 60
	minUsernameLength = 3
	minPasswordLength = 8
	bcryptCost        = 12
)

var (
	ErrInvalidEmail       = fmt.Errorf("email address is not valid")
	ErrEmailLength        = fmt.Errorf("email address is too long or too short, max length: %d, min length: %d", maxEmailLength, minEmailLength)
	ErrUsernameLength     = fmt.Errorf("username is too long or too short, max length: %d, min length: %d", maxUsernameLength, minUsernameLength)
	ErrPasswordTooShort   = fmt.Errorf("password must have at least %d characters", minPasswordLength)
	ErrUserAlreadyExists  = errors.New("user with this username or email already exists")
	ErrInvalidOldPassword = errors.New("invalid old password")
	ErrInternalError      = errors.New("internal Server Error")
)

type User struct {
	ID            string     `json:"id"`
	FullName      string     `json:"full_name"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Contact       string     `json:"contact,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	MaritalStatus string     `json:"marital_status,omitempty"`
	IDNumber      string     `json:"id_number,omitempty"`
	Address       string     `json:"address,omitempty"`
	Photo         string     `json:"photo,omitempty"`
	PasswordHash  string     `json:"-"`
	HashToken     string     `json:"-"`
	Currency      string     `json:"currency"`
	Language      string     `json:"language"`
	Theme         string     `json:"theme"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

// VerifyPassword checks a plaintext password against the stored bcrypt hash.
func (u *User) VerifyPassword(password string) bool {
	return doPasswordsMatch(u.PasswordHash, password)
}

type Profile struct {
	FullName      string
	Username      string
	Email         string
	Contact       string
	Gender        string
	MaritalStatus string
	IDNumber      string
	Address       string
	Photo         string
}

type Service interface {
	Register(ctx context.Context, profile Profile, password string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, profile Profile) (*User, error)
	UpdatePreferences(ctx context.Context, userID, currency, language, theme string) (*User, error)
	ChangePasswordWithOldPassword(ctx context.Context, userID, oldPassword, newPassword string) error
	RecordLogin(ctx context.Context, userID string) error
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(currPassword))
	return err == nil
}

func generateHashToken() (string, error) {
	token := make([]byte, 32)
	_, err := rand.Read(token)
	if err != nil {
		return "", fmt.Errorf("could not generate hash token: %v", err)
	}
	return hex.EncodeToString(token), nil
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	if err := checkmail.ValidateHost(email); err != nil {
		if !strings.Contains(err.Error(), "timeout") {
			return ErrInvalidEmail
		}
	}
	if len(email) > maxEmailLength || len(email) <= minEmailLength {
		return ErrEmailLength
	}
	return nil
}

func (s *service) Register(ctx context.Context, profile Profile, password string) (*User, error) {
	if err := validateEmailAddress(profile.Email); err != nil {
		return nil, err
	}
	if len(profile.Username) > maxUsernameLength || len(profile.Username) < minUsernameLength {
		return nil, ErrUsernameLength
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	exists, err := s.repo.userExistsByUsernameOrEmail(ctx, profile.Username, profile.Email)
	if err != nil {
		return nil, ErrInternalError
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, ErrInternalError
	}
	hashToken, err := generateHashToken()
	if err != nil {
		return nil, ErrInternalError
	}

	newUser := &User{
		FullName:      profile.FullName,
		Username:      profile.Username,
		Email:         profile.Email,
		Contact:       profile.Contact,
		Gender:        profile.Gender,
		MaritalStatus: profile.MaritalStatus,
		IDNumber:      profile.IDNumber,
		Address:       profile.Address,
		Photo:         profile.Photo,
		PasswordHash:  passwordHash,
		HashToken:     hashToken,
	}
	if err := s.repo.createUser(ctx, newUser); err != nil {
		return nil, ErrInternalError
	}
	return newUser, nil
}

func (s *service) GetUserByID(ctx context.Context, userID string) (*User, error) {
	return s.repo.getUserByID(ctx, userID)
}

func (s *service) GetUserByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*User, error) {
	return s.repo.getUserByUsernameOrEmail(ctx, usernameOrEmail)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, profile Profile) (*User, error) {
	existingUser, err := s.repo.getUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Email != existingUser.Email {
		if err := validateEmailAddress(profile.Email); err != nil {
			return nil, err
		}
	}

	existingUser.FullName = profile.FullName
	existingUser.Username = profile.Username
	existingUser.Email = profile.Email
	existingUser.Contact = profile.Contact
	existingUser.Gender = profile.Gender
	existingUser.MaritalStatus = profile.MaritalStatus
	existingUser.IDNumber = profile.IDNumber
	existingUser.Address = profile.Address
	existingUser.Photo = profile.Photo

	if err := s.repo.updateProfile(ctx, existingUser); err != nil {
		return nil, ErrInternalError
	}
	return existingUser, nil
}

func (s *service) UpdatePreferences(ctx context.Context, userID, currency, language, theme string) (*User, error) {
	if err := s.repo.updatePreferences(ctx, userID, currency, language, theme); err != nil {
		return nil, ErrInternalError
	}
	return s.repo.getUserByID(ctx, userID)
}

// ChangePasswordWithOldPassword also rotates the hash token, which revokes
// every refresh token issued before the change.
func (s *service) ChangePasswordWithOldPassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	existingUser, err := s.repo.getUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !doPasswordsMatch(existingUser.PasswordHash, oldPassword) {
		return ErrInvalidOldPassword
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	newHash, err := hashPassword(newPassword)
	if err != nil {
		return ErrInternalError
	}
	newHashToken, err := generateHashToken()
	if err != nil {
		return ErrInternalError
	}
	if err := s.repo.updatePassword(ctx, userID, newHash, newHashToken); err != nil {
		return ErrInternalError
	}
	return nil
}

func (s *service) RecordLogin(ctx context.Context, userID string) error {
	return s.repo.touchLastLogin(ctx, userID)
}

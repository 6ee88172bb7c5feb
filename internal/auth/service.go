package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/aylton-yh/real-balance/internal/user"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Login(ctx context.Context, usernameOrEmail, password string) (*user.User, string, string, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	IssuePair(userID, hashToken string) (string, string, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
	JWTRefreshTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

func (s *service) Login(ctx context.Context, usernameOrEmail, password string) (*user.User, string, string, error) {
	existingUser, err := s.userService.GetUserByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		log.Println("error when getting user from database: ", err)
		return nil, "", "", ErrInternalError
	}

	if !existingUser.VerifyPassword(password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.IssuePair(existingUser.ID, existingUser.HashToken)
	if err != nil {
		return nil, "", "", ErrInternalError
	}

	if err := s.userService.RecordLogin(ctx, existingUser.ID); err != nil {
		log.Println("error updating last login timestamp: ", err)
	}

	return existingUser, accessToken, refreshToken, nil
}

func (s *service) IssuePair(userID, hashToken string) (string, string, error) {
	accessToken, err := s.jwtManager.GenerateAccessJWT(userID, defaultJWTDuration)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshJWT(userID, hashToken, defaultJWTRefreshDuration)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// RefreshAccessToken validates a refresh token against the user's current
// hash token and mints a fresh access token.
func (s *service) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.jwtManager.ExtractUserIDFromRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	existingUser, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", ErrInternalError
	}

	if err := s.jwtManager.ValidateRefreshToken(refreshToken, existingUser.HashToken); err != nil {
		return "", ErrInvalidJWTRefreshToken
	}

	return s.jwtManager.GenerateAccessJWT(userID, defaultJWTDuration)
}

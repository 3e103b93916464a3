package usecase

import (
	"errors"

	"vidtube-backend/internal/auth/domain"
	"vidtube-backend/internal/auth/dto"
)

var (
	// ErrMissingFields — a required field is absent or blank. HTTP 400.
	ErrMissingFields = errors.New("missing required fields")

	// ErrUserExists — username or email already taken. The combined
	// existence query does not report which one collided. HTTP 409.
	ErrUserExists = errors.New("user with this username or email already exists")

	// ErrUserNotFound — no matching user record. HTTP 404.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials — password verification failed. HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized — no token presented. HTTP 401.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken — token failed signature or expiry checks. HTTP 401.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidRefreshToken — the presented refresh token is not the one
	// currently stored on the user record (revoked by logout or superseded
	// by a newer login/rotation). HTTP 401.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// AuthUsecase defines authentication operations
type AuthUsecase interface {
	Register(req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshTokens(refreshToken string) (*dto.TokenResponse, error)
	ChangePassword(userID, oldPassword, newPassword string) error
	Logout(userID string) error
	ValidateAccessToken(tokenString string) (*domain.User, error)
	Profile(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdateAvatar(userID, avatarURL string) (*dto.UserResponse, error)
	UpdateCoverImage(userID, coverURL string) (*dto.UserResponse, error)
}

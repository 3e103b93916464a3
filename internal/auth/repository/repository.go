package repository

import "vidtube-backend/internal/auth/domain"

// UserRepository is the user directory surface the auth subsystem depends
// on. Lookups return (nil, nil) when no record matches; every write is a
// single update-by-id.
type UserRepository interface {
	Create(user *domain.User) error
	FindByID(id string) (*domain.User, error)
	FindByUsernameOrEmail(username, email string) (*domain.User, error)
	UpdateProfile(id string, fields map[string]interface{}) error
	UpdatePassword(id, passwordHash string) error
	SetRefreshToken(id, refreshToken string) error
}

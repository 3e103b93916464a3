package repository

import (
	"errors"
	"strings"
	"time"

	"vidtube-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(user *domain.User) error {
	user.ID = uuid.New().String()
	user.Username = strings.ToLower(user.Username)
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail runs the combined existence query; the first match
// wins, with no distinction between which field collided.
func (r *userRepository) FindByUsernameOrEmail(username, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.
		Where("username = ? OR email = ?", strings.ToLower(username), strings.ToLower(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile writes only the given columns so unrelated saves never
// touch the password hash or the refresh token.
func (r *userRepository) UpdateProfile(id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.Model(&domain.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *userRepository) UpdatePassword(id, passwordHash string) error {
	return r.db.Model(&domain.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password":   passwordHash,
		"updated_at": time.Now(),
	}).Error
}

// SetRefreshToken overwrites the single stored refresh token. An empty
// value clears it (logout).
func (r *userRepository) SetRefreshToken(id, refreshToken string) error {
	return r.db.Model(&domain.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"refresh_token": refreshToken,
		"updated_at":    time.Now(),
	}).Error
}

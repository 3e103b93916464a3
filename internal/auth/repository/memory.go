package repository

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"vidtube-backend/internal/auth/domain"

	"github.com/google/uuid"
)

// memoryUserRepository is an in-memory UserRepository with the same
// semantics as the postgres implementation. Used by tests and by local
// runs without a configured database; all state is lost on restart.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (r *memoryUserRepository) Create(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Username = strings.ToLower(user.Username)
	user.Email = strings.ToLower(user.Email)
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("duplicate key: username or email already exists")
		}
	}

	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) FindByID(id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) FindByUsernameOrEmail(username, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	username = strings.ToLower(username)
	email = strings.ToLower(email)
	for _, u := range r.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) UpdateProfile(id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil
	}
	for column, value := range fields {
		s, _ := value.(string)
		switch column {
		case "full_name":
			user.FullName = s
		case "email":
			user.Email = s
		case "avatar":
			user.Avatar = s
		case "cover_image":
			user.CoverImage = s
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (r *memoryUserRepository) UpdatePassword(id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		user.Password = passwordHash
		user.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memoryUserRepository) SetRefreshToken(id, refreshToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		user.RefreshToken = refreshToken
		user.UpdatedAt = time.Now()
	}
	return nil
}

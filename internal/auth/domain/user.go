package domain

import "time"

type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	FullName     string    `json:"full_name"`
	Password     string    `json:"-"` // bcrypt hash, never returned in JSON
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"cover_image,omitempty"`
	RefreshToken string    `json:"-"` // currently valid refresh token, empty when logged out
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

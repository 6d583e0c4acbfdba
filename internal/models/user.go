// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is keyed by email; the legacy schema never introduced a surrogate id
// and every other table references users through the email column.
type User struct {
	Email        string    `json:"email" gorm:"primaryKey;size:255"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"`
	Name         string    `json:"name" gorm:"size:255"`
	Address      string    `json:"address" gorm:"size:500"`
	Birthday     string    `json:"birthday" gorm:"size:50"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

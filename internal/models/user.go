package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is a customer profile. The role is never stored here: admin
// rights are derived from the configured allow-list at login time, so
// nothing client-writable can grant them.
type User struct {
	ID           string     `json:"uid" gorm:"primaryKey"`
	Nombre       string     `json:"nombre"`
	Instagram    string     `json:"instagram"`
	Correo       string     `json:"correo" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Cart         []CartItem `json:"cart" gorm:"serializer:json"`
	CreadoEn     time.Time  `json:"creadoEn"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SetPassword hashes and stores the given plain-text password.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plain-text password against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

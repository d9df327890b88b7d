package models

import (
	"gorm.io/gorm"
)

// User represents an account that can sign in and edit the schedule.
// Password holds a bcrypt hash, never the plaintext.
type User struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`
	gorm.Model
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}

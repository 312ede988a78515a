// Package model holds the GORM persistence models, kept separate from the
// pure domain entities.
package model

import "time"

// UserModel mirrors the 'users' table. The integer primary key is
// assigned by the database; the nickname unique index is the single
// source of truth for uniqueness under concurrent registrations.
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Nickname     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleOperator UserRole = "operator"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	FullName     string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100"`
	Role         UserRole `gorm:"size:20;not null"`
	IsActive     bool     `gorm:"default:true"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package models

import (
	"time"
)

type Role string

const (
	RoleEngineer Role = "engineer"
	RoleManager  Role = "manager"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleEngineer || r == RoleManager
}

type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// Valid reports whether s is a known seniority level.
func (s Seniority) Valid() bool {
	switch s {
	case SeniorityJunior, SeniorityMid, SenioritySenior:
		return true
	}
	return false
}

type User struct {
	ID           string     `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" bson:"email" json:"email"`
	Name         string     `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	PasswordHash string     `gorm:"column:password;type:varchar(255);not null" bson:"password" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;index" bson:"role" json:"role"`
	Skills       []string   `gorm:"type:text;serializer:json" bson:"skills" json:"skills"`
	Seniority    *Seniority `gorm:"type:varchar(20)" bson:"seniority,omitempty" json:"seniority,omitempty"`
	MaxCapacity  int        `gorm:"not null;default:100" bson:"maxCapacity" json:"maxCapacity"`
	Department   *string    `gorm:"type:varchar(255)" bson:"department,omitempty" json:"department,omitempty"`
	ProfileImage *string    `gorm:"type:varchar(512)" bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

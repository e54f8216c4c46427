package models

import (
	"time"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID             string        `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	Name           string        `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	Description    *string       `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"`
	StartDate      time.Time     `gorm:"not null" bson:"startDate" json:"startDate"`
	EndDate        *time.Time    `bson:"endDate,omitempty" json:"endDate,omitempty"`
	RequiredSkills []string      `gorm:"type:text;serializer:json" bson:"requiredSkills" json:"requiredSkills"`
	TeamSize       int           `gorm:"not null;default:1" bson:"teamSize" json:"teamSize"`
	Status         ProjectStatus `gorm:"type:varchar(20);not null;default:'planning'" bson:"status" json:"status"`
	ManagerID      string        `gorm:"type:varchar(36);not null;index" bson:"managerId" json:"managerId"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`

	// Relations
	Manager *User `gorm:"foreignKey:ManagerID" bson:"-" json:"-"`
}

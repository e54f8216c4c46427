package models

import (
	"time"
)

type Assignment struct {
	ID                   string     `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	EngineerID           string     `gorm:"type:varchar(36);not null;index" bson:"engineerId" json:"engineerId"`
	ProjectID            string     `gorm:"type:varchar(36);not null;index" bson:"projectId" json:"projectId"`
	AllocationPercentage int        `gorm:"not null" bson:"allocationPercentage" json:"allocationPercentage"`
	StartDate            time.Time  `gorm:"not null" bson:"startDate" json:"startDate"`
	EndDate              *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Role                 string     `gorm:"type:varchar(255);not null" bson:"role" json:"role"`
	CreatedAt            time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time  `bson:"updatedAt" json:"updatedAt"`

	// Relations, populated only by expanding lookups
	Engineer *User    `gorm:"foreignKey:EngineerID" bson:"-" json:"-"`
	Project  *Project `gorm:"foreignKey:ProjectID" bson:"-" json:"-"`
}

// ActiveOn reports whether the assignment covers the given instant.
func (a Assignment) ActiveOn(t time.Time) bool {
	if a.StartDate.After(t) {
		return false
	}
	return a.EndDate == nil || !a.EndDate.Before(t)
}

package models

import "time"

// Technician is a service-provider profile linked 1:1 to a User with
// role=technician. A row exists iff the owning user registered with that
// role.
type Technician struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User            User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CategoryID      uint      `json:"category_id" gorm:"not null"`
	Category        Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ExperienceYears int       `json:"experience_years" gorm:"not null;default:0"`
	HourlyRate      float64   `json:"hourly_rate" gorm:"type:decimal(10,2);not null;default:0"`
	City            string    `json:"city" gorm:"type:varchar(255)"`
	Bio             string    `json:"bio" gorm:"type:text"`
	Availability    string    `json:"availability" gorm:"type:text"` // JSON-encoded schedule blob
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Technician model
func (Technician) TableName() string {
	return "technicians"
}

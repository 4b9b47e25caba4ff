package models

import "time"

// Service represents an offering a customer can book, always attached to
// a category.
type Service struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	EstimatedTime string    `json:"estimated_time" gorm:"type:varchar(100)"`
	ImageURL      string    `json:"image" gorm:"type:varchar(500)"`
	CategoryID    uint      `json:"category_id" gorm:"not null"`
	Category      Category  `json:"category" gorm:"foreignKey:CategoryID"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ServiceInput represents the request structure for creating/updating services
type ServiceInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price"`
	EstimatedTime string   `json:"estimated_time"`
	ImageURL      string   `json:"image"`
	CategoryID    *uint    `json:"category_id"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

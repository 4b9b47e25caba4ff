package models

import "time"

// Category groups services for browsing and filtering. Static reference
// data, admin-managed.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;unique"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryInput represents the request structure for creating/updating categories
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

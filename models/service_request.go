package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRequestStatus represents the current status of a booking
type ServiceRequestStatus string

const (
	StatusPending    ServiceRequestStatus = "pending"
	StatusAccepted   ServiceRequestStatus = "accepted"
	StatusInProgress ServiceRequestStatus = "in_progress"
	StatusCompleted  ServiceRequestStatus = "completed"
	StatusRejected   ServiceRequestStatus = "rejected"
	StatusCancelled  ServiceRequestStatus = "cancelled"
)

// Booking enum variants. Two controller generations shipped with
// different allowed status sets; the active one is selected by
// config (BOOKING_VARIANT), never unified silently.
const (
	VariantAPI = "api" // pending|in_progress|completed on create and update
	VariantWeb = "web" // pending|accepted|completed on create; +rejected,cancelled on update
)

// ServiceRequest is a user's booking of a service, optionally assigned
// to a technician, tracked through a status lifecycle.
type ServiceRequest struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	Reference     string               `json:"reference" gorm:"type:varchar(36);uniqueIndex"`
	UserID        uint                 `json:"user_id" gorm:"not null"`
	User          User                 `json:"user" gorm:"foreignKey:UserID"`
	TechnicianID  *uint                `json:"technician_id"`
	Technician    *Technician          `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	ServiceID     uint                 `json:"service_id" gorm:"not null"`
	Service       Service              `json:"service" gorm:"foreignKey:ServiceID"`
	Status        ServiceRequestStatus `json:"status" gorm:"type:varchar(20);not null"`
	RequestedDate string               `json:"requested_date" gorm:"type:varchar(20)"`
	RequestedTime string               `json:"requested_time" gorm:"type:varchar(20)"`
	Address       string               `json:"address" gorm:"type:text"`
	Phone         string               `json:"phone" gorm:"type:varchar(20)"`
	Notes         string               `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// TableName specifies the table name for the ServiceRequest model
func (ServiceRequest) TableName() string {
	return "service_requests"
}

// BeforeCreate assigns the public booking reference
func (r *ServiceRequest) BeforeCreate(tx *gorm.DB) error {
	if r.Reference == "" {
		r.Reference = uuid.NewString()
	}
	return nil
}

// ServiceRequestInput represents the request structure for creating and
// updating bookings. Pointer fields distinguish absent from zero so
// updates can be partial.
type ServiceRequestInput struct {
	OldID         uint    `json:"old_id"`
	UserID        *uint   `json:"user_id"`
	TechnicianID  *uint   `json:"technician_id"`
	ServiceID     *uint   `json:"service_id"`
	Status        *string `json:"status"`
	RequestedDate *string `json:"requested_date"`
	RequestedTime *string `json:"requested_time"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Notes         *string `json:"notes"`
}

// AllowedCreateStatuses returns the status values accepted on creation
// for the given booking variant.
func AllowedCreateStatuses(variant string) []ServiceRequestStatus {
	if variant == VariantWeb {
		return []ServiceRequestStatus{StatusPending, StatusAccepted, StatusCompleted}
	}
	return []ServiceRequestStatus{StatusPending, StatusInProgress, StatusCompleted}
}

// AllowedUpdateStatuses returns the status values accepted on update for
// the given booking variant.
func AllowedUpdateStatuses(variant string) []ServiceRequestStatus {
	if variant == VariantWeb {
		return []ServiceRequestStatus{StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled}
	}
	return []ServiceRequestStatus{StatusPending, StatusInProgress, StatusCompleted}
}

// IsAllowedStatus reports whether s is in the allowed set
func IsAllowedStatus(allowed []ServiceRequestStatus, s ServiceRequestStatus) bool {
	for _, a := range allowed {
		if a == s {
			return true
		}
	}
	return false
}

// statusTransitions is the guarded transition graph, enforced only when
// ENFORCE_STATUS_TRANSITIONS is on. completed, rejected and cancelled
// are terminal.
var statusTransitions = map[ServiceRequestStatus][]ServiceRequestStatus{
	StatusPending:    {StatusAccepted, StatusInProgress, StatusRejected, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusRejected:   {},
	StatusCancelled:  {},
}

// CanTransition reports whether a booking may move from one status to
// another. Re-asserting the current status is always allowed.
func CanTransition(from, to ServiceRequestStatus) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"home-services-server/config"
	"home-services-server/database"
	"home-services-server/models"
	ws "home-services-server/websocket"
)

// activityHub receives booking events for the admin dashboard feed
var activityHub *ws.Hub

// SetActivityHub wires the WebSocket hub used for booking broadcasts
func SetActivityHub(hub *ws.Hub) {
	activityHub = hub
}

// RegisterServiceRequestRoutes registers all booking-related routes
func RegisterServiceRequestRoutes(router *gin.RouterGroup) {
	router.GET("/servicerequests", listServiceRequests)
	router.GET("/servicerequests/:id", getServiceRequest)
	router.POST("/servicerequests", createServiceRequest)
	router.POST("/servicerequests/update", updateServiceRequest)
	router.DELETE("/servicerequests/:id", deleteServiceRequest)
}

// listServiceRequests returns a paginated booking list with optional
// user_id / technician_id equality filters
func listServiceRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	query := database.DB.Model(&models.ServiceRequest{}).
		Preload("User").
		Preload("Technician").
		Preload("Technician.User").
		Preload("Service")

	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if technicianID := c.Query("technician_id"); technicianID != "" {
		query = query.Where("technician_id = ?", technicianID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("❌ Failed to count service requests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch service requests",
		})
		return
	}

	requests := []models.ServiceRequest{}
	offset := (page - 1) * models.DefaultPageSize
	if err := query.Offset(offset).Limit(models.DefaultPageSize).Order("id ASC").Find(&requests).Error; err != nil {
		log.Printf("❌ Failed to fetch service requests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch service requests",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    models.NewPage(requests, page, models.DefaultPageSize, total),
		"message": "Service requests retrieved successfully",
	})
}

// getServiceRequest returns a single booking with joined relations.
// A missing id yields an error envelope with HTTP 200, which the front
// end checks via the status discriminator.
func getServiceRequest(c *gin.Context) {
	id := c.Param("id")

	var request models.ServiceRequest
	err := database.DB.
		Preload("User").
		Preload("Technician").
		Preload("Technician.User").
		Preload("Service").
		First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "error",
				"data":    nil,
				"message": "Service request not found",
			})
			return
		}
		log.Printf("❌ Failed to fetch service request %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch service request",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    request,
		"message": "Service request retrieved successfully",
	})
}

// createServiceRequest creates a new booking after validating field
// constraints and foreign-key existence
func createServiceRequest(c *gin.Context) {
	var input models.ServiceRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	variant := config.AppConfig.Booking.Variant
	if fieldErrors := validateBookingInput(database.DB, &input, false, variant); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  "error",
			"errors":  fieldErrors,
			"message": "Validation failed",
		})
		return
	}

	request := models.ServiceRequest{
		UserID:       *input.UserID,
		TechnicianID: input.TechnicianID,
		ServiceID:    *input.ServiceID,
		Status:       models.ServiceRequestStatus(*input.Status),
	}
	if input.RequestedDate != nil {
		request.RequestedDate = *input.RequestedDate
	}
	if input.RequestedTime != nil {
		request.RequestedTime = *input.RequestedTime
	}
	if input.Address != nil {
		request.Address = *input.Address
	}
	if input.Phone != nil {
		request.Phone = *input.Phone
	}
	if input.Notes != nil {
		request.Notes = *input.Notes
	}

	if err := database.DB.Create(&request).Error; err != nil {
		log.Printf("❌ Failed to create service request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create service request",
		})
		return
	}

	if activityHub != nil {
		activityHub.BroadcastBooking("booking_created", &request)
	}

	log.Printf("✅ Service request %d created (user %d, service %d)", request.ID, request.UserID, request.ServiceID)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    request,
		"message": "Service request created successfully",
	})
}

// updateServiceRequest resolves a booking by old_id and applies a
// partial update to the supplied fields
func updateServiceRequest(c *gin.Context) {
	var input models.ServiceRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	var request models.ServiceRequest
	if err := database.DB.First(&request, input.OldID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Service request not found",
		})
		return
	}

	variant := config.AppConfig.Booking.Variant
	fieldErrors := validateBookingInput(database.DB, &input, true, variant)

	if input.Status != nil && len(fieldErrors["status"]) == 0 && config.AppConfig.Booking.EnforceTransitions {
		next := models.ServiceRequestStatus(*input.Status)
		if !models.CanTransition(request.Status, next) {
			fieldErrors["status"] = append(fieldErrors["status"],
				"The status cannot change from "+string(request.Status)+" to "+string(next)+".")
		}
	}

	if len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  "error",
			"errors":  fieldErrors,
			"message": "Validation failed",
		})
		return
	}

	if input.UserID != nil {
		request.UserID = *input.UserID
	}
	if input.TechnicianID != nil {
		request.TechnicianID = input.TechnicianID
	}
	if input.ServiceID != nil {
		request.ServiceID = *input.ServiceID
	}
	if input.Status != nil {
		request.Status = models.ServiceRequestStatus(*input.Status)
	}
	if input.RequestedDate != nil {
		request.RequestedDate = *input.RequestedDate
	}
	if input.RequestedTime != nil {
		request.RequestedTime = *input.RequestedTime
	}
	if input.Address != nil {
		request.Address = *input.Address
	}
	if input.Phone != nil {
		request.Phone = *input.Phone
	}
	if input.Notes != nil {
		request.Notes = *input.Notes
	}

	if err := database.DB.Save(&request).Error; err != nil {
		log.Printf("❌ Failed to update service request %d: %v", request.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update service request",
		})
		return
	}

	if activityHub != nil {
		activityHub.BroadcastBooking("booking_updated", &request)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    request,
		"message": "Service request updated successfully",
	})
}

// deleteServiceRequest removes a booking permanently
func deleteServiceRequest(c *gin.Context) {
	id := c.Param("id")

	var request models.ServiceRequest
	if err := database.DB.First(&request, id).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": "Service request not found",
		})
		return
	}

	if err := database.DB.Delete(&request).Error; err != nil {
		log.Printf("❌ Failed to delete service request %d: %v", request.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete service request",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Service request deleted successfully",
	})
}

// validateBookingInput checks field constraints and foreign-key
// existence, returning a field → messages map. An empty map means the
// input is valid.
func validateBookingInput(db *gorm.DB, input *models.ServiceRequestInput, isUpdate bool, variant string) map[string][]string {
	fieldErrors := map[string][]string{}

	addError := func(field, message string) {
		fieldErrors[field] = append(fieldErrors[field], message)
	}

	exists := func(model interface{}, id uint) bool {
		var count int64
		if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	}

	if input.UserID == nil {
		if !isUpdate {
			addError("user_id", "The user_id field is required.")
		}
	} else if !exists(&models.User{}, *input.UserID) {
		addError("user_id", "The selected user_id is invalid.")
	}

	if input.ServiceID == nil {
		if !isUpdate {
			addError("service_id", "The service_id field is required.")
		}
	} else if !exists(&models.Service{}, *input.ServiceID) {
		addError("service_id", "The selected service_id is invalid.")
	}

	// technician_id is optional on both create and update
	if input.TechnicianID != nil && !exists(&models.Technician{}, *input.TechnicianID) {
		addError("technician_id", "The selected technician_id is invalid.")
	}

	allowed := models.AllowedCreateStatuses(variant)
	if isUpdate {
		allowed = models.AllowedUpdateStatuses(variant)
	}
	if input.Status == nil {
		if !isUpdate {
			addError("status", "The status field is required.")
		}
	} else if !models.IsAllowedStatus(allowed, models.ServiceRequestStatus(*input.Status)) {
		addError("status", "The selected status is invalid.")
	}

	// The web variant requires the booking detail fields on create
	if !isUpdate && variant == models.VariantWeb {
		if input.RequestedDate == nil || *input.RequestedDate == "" {
			addError("requested_date", "The requested_date field is required.")
		}
		if input.RequestedTime == nil || *input.RequestedTime == "" {
			addError("requested_time", "The requested_time field is required.")
		}
		if input.Address == nil || *input.Address == "" {
			addError("address", "The address field is required.")
		}
		if input.Phone == nil || *input.Phone == "" {
			addError("phone", "The phone field is required.")
		}
	}

	return fieldErrors
}

package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"home-services-server/database"
	"home-services-server/models"
)

// RegisterServiceRoutes registers the service catalog routes. The store/
// update/delete route names mirror the admin dashboard's existing calls.
func RegisterServiceRoutes(public *gin.RouterGroup, admin *gin.RouterGroup) {
	public.GET("/services", listServices)
	public.GET("/services/:id", getService)

	admin.POST("/servicestore", createService)
	admin.POST("/serviceupdate", updateService)
	admin.DELETE("/servicedelete/:id", deleteService)
}

// listServices returns a paginated service catalog with joined
// categories, optionally filtered by category_id
func listServices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	query := database.DB.Model(&models.Service{}).Preload("Category")
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch services",
		})
		return
	}

	services := []models.Service{}
	offset := (page - 1) * models.DefaultPageSize
	if err := query.Offset(offset).Limit(models.DefaultPageSize).Order("id ASC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch services",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    models.NewPage(services, page, models.DefaultPageSize, total),
		"message": "Services retrieved successfully",
	})
}

// getService returns a single service with its category
func getService(c *gin.Context) {
	id := c.Param("id")

	var service models.Service
	err := database.DB.Preload("Category").First(&service, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "error",
				"data":    nil,
				"message": "Service not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch service",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    service,
		"message": "Service retrieved successfully",
	})
}

// validateServiceInput checks service field constraints, returning a
// field → messages map
func validateServiceInput(db *gorm.DB, input *models.ServiceInput, isUpdate bool) map[string][]string {
	fieldErrors := map[string][]string{}

	addError := func(field, message string) {
		fieldErrors[field] = append(fieldErrors[field], message)
	}

	if input.Name == "" && !isUpdate {
		addError("name", "The name field is required.")
	}
	if len(input.Name) > 255 {
		addError("name", "The name may not be greater than 255 characters.")
	}

	if input.Price == nil {
		if !isUpdate {
			addError("price", "The price field is required.")
		}
	} else if *input.Price < 0 {
		addError("price", "The price must be at least 0.")
	}

	if input.EstimatedTime == "" && !isUpdate {
		addError("estimated_time", "The estimated_time field is required.")
	}
	if len(input.EstimatedTime) > 100 {
		addError("estimated_time", "The estimated_time may not be greater than 100 characters.")
	}

	if input.CategoryID == nil {
		if !isUpdate {
			addError("category_id", "The category_id field is required.")
		}
	} else {
		var count int64
		db.Model(&models.Category{}).Where("id = ?", *input.CategoryID).Count(&count)
		if count == 0 {
			addError("category_id", "The selected category_id is invalid.")
		}
	}

	return fieldErrors
}

// createService creates a new catalog service (admin)
func createService(c *gin.Context) {
	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	if fieldErrors := validateServiceInput(database.DB, &input, false); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  "error",
			"errors":  fieldErrors,
			"message": "Validation failed",
		})
		return
	}

	service := models.Service{
		Name:          input.Name,
		Description:   input.Description,
		Price:         *input.Price,
		EstimatedTime: input.EstimatedTime,
		ImageURL:      input.ImageURL,
		CategoryID:    *input.CategoryID,
	}

	if err := database.DB.Create(&service).Error; err != nil {
		log.Printf("❌ Failed to create service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create service",
		})
		return
	}

	log.Printf("✅ Service created: %s (ID: %d)", service.Name, service.ID)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    service,
		"message": "Service created successfully",
	})
}

// updateService applies a partial update to a service identified by
// old_id in the body
func updateService(c *gin.Context) {
	var input struct {
		OldID uint `json:"old_id"`
		models.ServiceInput
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, input.OldID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Service not found",
		})
		return
	}

	if fieldErrors := validateServiceInput(database.DB, &input.ServiceInput, true); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  "error",
			"errors":  fieldErrors,
			"message": "Validation failed",
		})
		return
	}

	if input.Name != "" {
		service.Name = input.Name
	}
	if input.Description != "" {
		service.Description = input.Description
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.EstimatedTime != "" {
		service.EstimatedTime = input.EstimatedTime
	}
	if input.ImageURL != "" {
		service.ImageURL = input.ImageURL
	}
	if input.CategoryID != nil {
		service.CategoryID = *input.CategoryID
	}

	if err := database.DB.Save(&service).Error; err != nil {
		log.Printf("❌ Failed to update service %d: %v", service.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update service",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    service,
		"message": "Service updated successfully",
	})
}

// deleteService removes a service permanently (admin)
func deleteService(c *gin.Context) {
	id := c.Param("id")

	var service models.Service
	if err := database.DB.First(&service, id).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": "Service not found",
		})
		return
	}

	if err := database.DB.Delete(&service).Error; err != nil {
		log.Printf("❌ Failed to delete service %d: %v", service.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete service",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Service deleted successfully",
	})
}

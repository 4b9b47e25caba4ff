package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-services-server/database"
	"home-services-server/models"
)

// RegisterTechnicianRoutes registers the technician directory routes
func RegisterTechnicianRoutes(public *gin.RouterGroup) {
	public.GET("/techs", listTechnicians)
}

// listTechnicians returns technician profiles with joined user and
// category, optionally filtered by category_id and city
func listTechnicians(c *gin.Context) {
	query := database.DB.Model(&models.Technician{}).
		Preload("User").
		Preload("Category")

	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	technicians := []models.Technician{}
	if err := query.Order("id ASC").Find(&technicians).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch technicians",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"technicians": technicians,
		"message":     "Technicians retrieved successfully",
	})
}

package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"home-services-server/database"
	"home-services-server/models"
)

// RegisterUserRoutes registers admin user management routes
func RegisterUserRoutes(admin *gin.RouterGroup) {
	admin.GET("/users", listUsers)
	admin.POST("/userupdate", updateUser)
	admin.DELETE("/userdelete/:id", deleteUser)
}

// listUsers returns a paginated user list (admin)
func listUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	query := database.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch users",
		})
		return
	}

	users := []models.User{}
	offset := (page - 1) * models.DefaultPageSize
	if err := query.Offset(offset).Limit(models.DefaultPageSize).Order("id ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch users",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    models.NewPage(users, page, models.DefaultPageSize, total),
		"message": "Users retrieved successfully",
	})
}

// updateUser updates a user's profile fields identified by old_id.
// Role is fixed at creation and never updated here.
func updateUser(c *gin.Context) {
	var input struct {
		OldID   uint   `json:"old_id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	var user models.User
	if err := database.DB.First(&user, input.OldID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
		})
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Address != "" {
		user.Address = input.Address
	}

	if err := database.DB.Save(&user).Error; err != nil {
		log.Printf("❌ Failed to update user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    user,
		"message": "User updated successfully",
	})
}

// deleteUser removes a user (admin)
func deleteUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": "User not found",
		})
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		log.Printf("❌ Failed to delete user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User deleted successfully",
	})
}

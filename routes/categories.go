package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"home-services-server/database"
	"home-services-server/models"
)

// RegisterCategoryRoutes registers category routes. The /cats alias
// matches what the front end already calls.
func RegisterCategoryRoutes(public *gin.RouterGroup, admin *gin.RouterGroup) {
	public.GET("/cats", listCategories)

	admin.POST("/catstore", createCategory)
	admin.POST("/catupdate", updateCategory)
	admin.DELETE("/catdelete/:id", deleteCategory)
}

// listCategories returns all categories
func listCategories(c *gin.Context) {
	categories := []models.Category{}
	if err := database.DB.Order("id ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch categories",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"categories": categories,
		"message":    "Categories retrieved successfully",
	})
}

// createCategory creates a new category (admin)
func createCategory(c *gin.Context) {
	var input models.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  "error",
			"errors":  gin.H{"name": []string{"The name field is required."}},
			"message": "Validation failed",
		})
		return
	}

	category := models.Category{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := database.DB.Create(&category).Error; err != nil {
		log.Printf("❌ Failed to create category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create category",
		})
		return
	}

	log.Printf("✅ Category created: %s (ID: %d)", category.Name, category.ID)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    category,
		"message": "Category created successfully",
	})
}

// updateCategory updates a category identified by old_id in the body
func updateCategory(c *gin.Context) {
	var input struct {
		OldID uint `json:"old_id"`
		models.CategoryInput
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  "error",
			"errors":  gin.H{"name": []string{"The name field is required."}},
			"message": "Validation failed",
		})
		return
	}

	var category models.Category
	if err := database.DB.First(&category, input.OldID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Category not found",
		})
		return
	}

	category.Name = input.Name
	category.Description = input.Description

	if err := database.DB.Save(&category).Error; err != nil {
		log.Printf("❌ Failed to update category %d: %v", category.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update category",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    category,
		"message": "Category updated successfully",
	})
}

// deleteCategory removes a category (admin)
func deleteCategory(c *gin.Context) {
	id := c.Param("id")

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": "Category not found",
		})
		return
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		log.Printf("❌ Failed to delete category %d: %v", category.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete category",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Category deleted successfully",
	})
}

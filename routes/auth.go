package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"home-services-server/database"
	"home-services-server/models"
	"home-services-server/utils"
)

// RegisterAuthRoutes registers registration and login
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/register", register)
	router.POST("/login", login)
}

// registerInput mirrors the registration form. Technician fields are
// required when role=technician.
type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`

	CategoryID      *uint           `json:"category_id"`
	ExperienceYears *int            `json:"experience_years"`
	HourlyRate      *float64        `json:"hourly_rate"`
	City            string          `json:"city"`
	Bio             string          `json:"bio"`
	Availability    json.RawMessage `json:"availability"`
}

// register creates a User, and for role=technician its Technician
// profile, inside a single transaction so a failure cannot leave an
// orphaned user.
func register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	if fieldErrors := validateRegistration(database.DB, &input); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  "error",
			"errors":  fieldErrors,
			"message": "Validation failed",
		})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		log.Printf("❌ Password hashing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to process password",
		})
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Phone:        input.Phone,
		Address:      input.Address,
		Role:         models.UserRole(input.Role),
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if user.Role == models.RoleTechnician {
			technician := models.Technician{
				UserID:          user.ID,
				CategoryID:      *input.CategoryID,
				ExperienceYears: *input.ExperienceYears,
				HourlyRate:      *input.HourlyRate,
				City:            input.City,
				Bio:             input.Bio,
				Availability:    string(input.Availability),
			}
			if err := tx.Create(&technician).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Printf("❌ Registration failed for %s: %v", input.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create account",
		})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		log.Printf("❌ Token generation failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate authentication token",
		})
		return
	}

	log.Printf("✅ User %d registered (%s)", user.ID, user.Role)

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"data":    user,
		"token":   token,
		"message": "Registration successful",
	})
}

// validateRegistration checks registration constraints, returning a
// field → messages map
func validateRegistration(db *gorm.DB, input *registerInput) map[string][]string {
	fieldErrors := map[string][]string{}

	addError := func(field, message string) {
		fieldErrors[field] = append(fieldErrors[field], message)
	}

	if input.Name == "" {
		addError("name", "The name field is required.")
	} else if len(input.Name) > 255 {
		addError("name", "The name may not be greater than 255 characters.")
	}

	if input.Email == "" {
		addError("email", "The email field is required.")
	} else if !strings.Contains(input.Email, "@") {
		addError("email", "The email must be a valid email address.")
	} else {
		var count int64
		db.Model(&models.User{}).Where("email = ?", input.Email).Count(&count)
		if count > 0 {
			addError("email", "The email has already been taken.")
		}
	}

	if input.Password == "" {
		addError("password", "The password field is required.")
	} else if len(input.Password) < 8 {
		addError("password", "The password must be at least 8 characters.")
	}

	if input.Phone == "" {
		addError("phone", "The phone field is required.")
	} else if len(input.Phone) > 20 {
		addError("phone", "The phone may not be greater than 20 characters.")
	} else {
		var count int64
		db.Model(&models.User{}).Where("phone = ?", input.Phone).Count(&count)
		if count > 0 {
			addError("phone", "The phone has already been taken.")
		}
	}

	switch input.Role {
	case string(models.RoleUser):
	case string(models.RoleTechnician):
		if input.CategoryID == nil {
			addError("category_id", "The category_id field is required when role is technician.")
		} else {
			var count int64
			db.Model(&models.Category{}).Where("id = ?", *input.CategoryID).Count(&count)
			if count == 0 {
				addError("category_id", "The selected category_id is invalid.")
			}
		}
		if input.ExperienceYears == nil {
			addError("experience_years", "The experience_years field is required when role is technician.")
		} else if *input.ExperienceYears < 0 {
			addError("experience_years", "The experience_years must be at least 0.")
		}
		if input.HourlyRate == nil {
			addError("hourly_rate", "The hourly_rate field is required when role is technician.")
		} else if *input.HourlyRate < 0 {
			addError("hourly_rate", "The hourly_rate must be at least 0.")
		}
		if input.City == "" {
			addError("city", "The city field is required when role is technician.")
		}
		if len(input.Availability) == 0 {
			addError("availability", "The availability field is required when role is technician.")
		}
	default:
		addError("role", "The selected role is invalid.")
	}

	return fieldErrors
}

// login authenticates by email and password and returns a JWT
func login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	var user models.User
	err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid credentials",
		})
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid credentials",
		})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		log.Printf("❌ Token generation failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate authentication token",
		})
		return
	}

	log.Printf("✅ User %d logged in", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    user,
		"token":   token,
		"message": "Login successful",
	})
}

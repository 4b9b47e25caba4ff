package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"home-services-server/config"
	"home-services-server/database"
	"home-services-server/middleware"
	"home-services-server/models"
	"home-services-server/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	database.SetDB(db)
	config.Load()
	return db
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api")
	RegisterAuthRoutes(api)
	RegisterTechnicianRoutes(api)
	RegisterServiceRequestRoutes(api)

	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	RegisterServiceRoutes(api, admin)
	RegisterCategoryRoutes(api, admin)
	RegisterUserRoutes(admin)
	RegisterAdminRoutes(admin)

	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response body: %v (body: %s)", err, w.Body.String())
	}
	return response
}

func createTestUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) models.User {
	t.Helper()

	var count int64
	db.Model(&models.User{}).Count(&count)

	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "not-a-real-hash",
		Phone:        fmt.Sprintf("+1555%07d", count+1),
		Role:         role,
	}

	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()

	category := models.Category{Name: name, Description: name + " services"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return category
}

func createTestService(t *testing.T, db *gorm.DB, name string, price float64, categoryID uint) models.Service {
	t.Helper()

	service := models.Service{
		Name:          name,
		Price:         price,
		EstimatedTime: "2 hours",
		CategoryID:    categoryID,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("Failed to create test service: %v", err)
	}
	return service
}

func createTestTechnician(t *testing.T, db *gorm.DB, userID, categoryID uint, city string) models.Technician {
	t.Helper()

	technician := models.Technician{
		UserID:          userID,
		CategoryID:      categoryID,
		ExperienceYears: 3,
		HourlyRate:      50,
		City:            city,
		Availability:    `{"mon":["09:00-17:00"]}`,
	}
	if err := db.Create(&technician).Error; err != nil {
		t.Fatalf("Failed to create test technician: %v", err)
	}
	return technician
}

func adminToken(t *testing.T, db *gorm.DB) string {
	t.Helper()
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	return userToken(t, admin)
}

func userToken(t *testing.T, user models.User) string {
	t.Helper()

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

package routes

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-services-server/models"
)

func TestCreateServiceValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter()
	token := adminToken(t, db)

	negative := -5.0

	tests := []struct {
		name      string
		body      map[string]interface{}
		wantField string
	}{
		{
			name:      "missing name",
			body:      map[string]interface{}{"price": 10, "estimated_time": "1 hour", "category_id": 99},
			wantField: "name",
		},
		{
			name:      "missing price",
			body:      map[string]interface{}{"name": "Wash", "estimated_time": "1 hour", "category_id": 99},
			wantField: "price",
		},
		{
			name:      "negative price",
			body:      map[string]interface{}{"name": "Wash", "price": negative, "estimated_time": "1 hour", "category_id": 99},
			wantField: "price",
		},
		{
			name:      "nonexistent category",
			body:      map[string]interface{}{"name": "Wash", "price": 10, "estimated_time": "1 hour", "category_id": 99},
			wantField: "category_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/servicestore", tt.body, token)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

			fieldErrors := parseBody(t, w)["errors"].(map[string]interface{})
			assert.Contains(t, fieldErrors, tt.wantField)
		})
	}
}

func TestServiceCRUD(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter()
	token := adminToken(t, db)

	category := createTestCategory(t, db, "Cleaning")

	// Create
	w := performRequest(router, http.MethodPost, "/api/servicestore", map[string]interface{}{
		"name":           "A/C repair",
		"description":    "Diagnose and repair",
		"price":          200,
		"estimated_time": "2 hours",
		"category_id":    category.ID,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	serviceID := parseBody(t, w)["data"].(map[string]interface{})["id"].(float64)

	// Public read with joined category
	w = performRequest(router, http.MethodGet, fmt.Sprintf("/api/services/%d", int(serviceID)), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "A/C repair", data["name"])
	assert.Equal(t, category.Name, data["category"].(map[string]interface{})["name"])

	// Update by old_id
	w = performRequest(router, http.MethodPost, "/api/serviceupdate", map[string]interface{}{
		"old_id": serviceID,
		"price":  250,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var service models.Service
	require.NoError(t, db.First(&service, uint(serviceID)).Error)
	assert.Equal(t, 250.0, service.Price)
	assert.Equal(t, "A/C repair", service.Name)

	// Update of unknown old_id is a 404
	w = performRequest(router, http.MethodPost, "/api/serviceupdate", map[string]interface{}{
		"old_id": 9999,
		"price":  250,
	}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Delete
	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/servicedelete/%d", int(serviceID)), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Service{}).Count(&count)
	assert.Zero(t, count)
}

func TestListServicesPagination(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter()

	category := createTestCategory(t, db, "Cleaning")
	other := createTestCategory(t, db, "Plumbing")
	for i := 0; i < 12; i++ {
		createTestService(t, db, fmt.Sprintf("Service %d", i), 10, category.ID)
	}
	createTestService(t, db, "Pipe fix", 30, other.ID)

	w := performRequest(router, http.MethodGet, "/api/services", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	page := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(13), page["total"])
	assert.Len(t, page["data"].([]interface{}), 10)

	// Category filter
	w = performRequest(router, http.MethodGet, fmt.Sprintf("/api/services?category_id=%d", other.ID), nil, "")
	page = parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), page["total"])
}

func TestCategoryCRUD(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter()
	token := adminToken(t, db)

	// Admin routes reject anonymous callers
	w := performRequest(router, http.MethodPost, "/api/catstore", map[string]interface{}{"name": "X"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodPost, "/api/catstore", map[string]interface{}{
		"name":        "Gardening",
		"description": "Garden care",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	categoryID := parseBody(t, w)["data"].(map[string]interface{})["id"].(float64)

	w = performRequest(router, http.MethodPost, "/api/catupdate", map[string]interface{}{
		"old_id":      categoryID,
		"name":        "Gardening & Lawn",
		"description": "Garden and lawn care",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = performRequest(router, http.MethodGet, "/api/cats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	categories := parseBody(t, w)["categories"].([]interface{})
	require.Len(t, categories, 1)
	assert.Equal(t, "Gardening & Lawn", categories[0].(map[string]interface{})["name"])

	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/catdelete/%d", int(categoryID)), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.Zero(t, count)
}

func TestListTechnicians(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter()

	cleaning := createTestCategory(t, db, "Cleaning")
	plumbing := createTestCategory(t, db, "Plumbing")

	u1 := createTestUser(t, db, "tech1", models.RoleTechnician)
	u2 := createTestUser(t, db, "tech2", models.RoleTechnician)
	u3 := createTestUser(t, db, "tech3", models.RoleTechnician)
	createTestTechnician(t, db, u1.ID, cleaning.ID, "Cairo")
	createTestTechnician(t, db, u2.ID, plumbing.ID, "Cairo")
	createTestTechnician(t, db, u3.ID, plumbing.ID, "Giza")

	w := performRequest(router, http.MethodGet, "/api/techs", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	technicians := parseBody(t, w)["technicians"].([]interface{})
	assert.Len(t, technicians, 3)

	// Joined user is present
	first := technicians[0].(map[string]interface{})
	assert.Equal(t, u1.Name, first["user"].(map[string]interface{})["name"])

	w = performRequest(router, http.MethodGet, fmt.Sprintf("/api/techs?category_id=%d", plumbing.ID), nil, "")
	technicians = parseBody(t, w)["technicians"].([]interface{})
	assert.Len(t, technicians, 2)

	w = performRequest(router, http.MethodGet, fmt.Sprintf("/api/techs?category_id=%d&city=Giza", plumbing.ID), nil, "")
	technicians = parseBody(t, w)["technicians"].([]interface{})
	assert.Len(t, technicians, 1)
}

func TestListUsersAdmin(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter()
	token := adminToken(t, db)

	createTestUser(t, db, "a", models.RoleUser)
	createTestUser(t, db, "b", models.RoleTechnician)

	w := performRequest(router, http.MethodGet, "/api/users", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(3), page["total"]) // admin included

	w = performRequest(router, http.MethodGet, "/api/users?role=technician", nil, token)
	page = parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), page["total"])

	// Delete a user
	var target models.User
	require.NoError(t, db.Where("name = ?", "a").First(&target).Error)
	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/userdelete/%d", target.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

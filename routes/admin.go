package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"home-services-server/database"
	"home-services-server/models"
	"home-services-server/utils"
)

// RegisterAdminRoutes registers the admin dashboard routes
func RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/stats", GetDashboardStats)
}

// DashboardStats is the admin dashboard aggregation payload. Every
// field is independently best-effort: a failed sub-computation leaves
// its zero value and appends the metric name to Degraded.
type DashboardStats struct {
	TotalServices   int64            `json:"total_services"`
	ActiveUsers     int64            `json:"active_users"`
	TodaysRevenue   float64          `json:"todays_revenue"`
	PendingBookings int64            `json:"pending_bookings"`
	RecentActivity  []RecentActivity `json:"recent_activities"`
	Degraded        []string         `json:"degraded"`
}

// RecentActivity is one row of the dashboard activity feed
type RecentActivity struct {
	ID             uint      `json:"id"`
	UserName       string    `json:"user_name"`
	ServiceName    string    `json:"service_name"`
	Status         string    `json:"status"`
	CreatedAtHuman string    `json:"created_at_human"`
	CreatedAt      time.Time `json:"created_at"`
}

// GetDashboardStats computes the dashboard summary. Each metric runs in
// isolation so one broken subquery cannot take the whole dashboard down;
// failures are logged, reported in degraded, and the endpoint still
// returns HTTP 200.
func GetDashboardStats(c *gin.Context) {
	db := database.DB
	stats := DashboardStats{
		RecentActivity: []RecentActivity{},
		Degraded:       []string{},
	}

	compute := func(metric string, fn func(db *gorm.DB) error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("❌ AdminStats %s panic: %v", metric, r)
				stats.Degraded = append(stats.Degraded, metric)
			}
		}()
		if err := fn(db); err != nil {
			log.Printf("❌ AdminStats %s error: %v", metric, err)
			stats.Degraded = append(stats.Degraded, metric)
		}
	}

	compute("total_services", func(db *gorm.DB) error {
		return db.Model(&models.Service{}).Count(&stats.TotalServices).Error
	})

	compute("active_users", func(db *gorm.DB) error {
		return db.Model(&models.User{}).
			Where("role <> ?", models.RoleAdmin).
			Count(&stats.ActiveUsers).Error
	})

	compute("todays_revenue", func(db *gorm.DB) error {
		revenue, err := todaysRevenue(db, time.Now())
		if err != nil {
			return err
		}
		stats.TodaysRevenue = revenue
		return nil
	})

	compute("pending_bookings", func(db *gorm.DB) error {
		return db.Model(&models.ServiceRequest{}).
			Where("status = ?", models.StatusPending).
			Count(&stats.PendingBookings).Error
	})

	compute("recent_activities", func(db *gorm.DB) error {
		activities, err := recentActivities(db, 5)
		if err != nil {
			return err
		}
		stats.RecentActivity = activities
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    stats,
		"message": "Dashboard statistics retrieved successfully",
	})
}

// todaysRevenue sums the linked service price of bookings created on the
// given day with status completed. Bookings whose service is missing
// contribute zero.
func todaysRevenue(db *gorm.DB, now time.Time) (float64, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var revenue float64
	row := db.Model(&models.ServiceRequest{}).
		Joins("LEFT JOIN services ON services.id = service_requests.service_id").
		Where("service_requests.created_at >= ? AND service_requests.created_at < ?", dayStart, dayEnd).
		Where("service_requests.status = ?", models.StatusCompleted).
		Select("COALESCE(SUM(services.price), 0)").
		Row()
	if err := row.Scan(&revenue); err != nil {
		return 0, err
	}
	return revenue, nil
}

// recentActivities returns the most recently created bookings with
// joined display names
func recentActivities(db *gorm.DB, limit int) ([]RecentActivity, error) {
	var requests []models.ServiceRequest
	err := db.Preload("User").Preload("Service").
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	activities := make([]RecentActivity, 0, len(requests))
	for _, request := range requests {
		userName := request.User.Name
		if userName == "" {
			userName = "Unknown User"
		}
		serviceName := request.Service.Name
		if serviceName == "" {
			serviceName = "Unknown Service"
		}
		activities = append(activities, RecentActivity{
			ID:             request.ID,
			UserName:       userName,
			ServiceName:    serviceName,
			Status:         string(request.Status),
			CreatedAtHuman: utils.TimeAgo(request.CreatedAt),
			CreatedAt:      request.CreatedAt,
		})
	}
	return activities, nil
}

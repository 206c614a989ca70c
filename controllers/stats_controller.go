package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"postify/models"
)

// StatsController exposes aggregate blog statistics.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns post counts and page view aggregates.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var postCount int64
	var publishedCount int64
	var totalViews int64
	var todayViews int64

	// Fallback to 0 instead of failing the whole endpoint
	if err := s.db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		postCount = 0
	}
	if err := s.db.Model(&models.Post{}).Where("published = ?", true).Count(&publishedCount).Error; err != nil {
		publishedCount = 0
	}
	if err := s.db.Model(&models.PageView{}).
		Select("COALESCE(SUM(count),0)").
		Scan(&totalViews).Error; err != nil {
		totalViews = 0
	}
	// String date equality avoids timezone/type mismatches with the DATE column
	today := time.Now().In(time.Local).Format("2006-01-02")
	if err := s.db.Model(&models.PageView{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&todayViews).Error; err != nil {
		todayViews = 0
	}

	ctx.JSON(http.StatusOK, gin.H{
		"post_count":      postCount,
		"published_count": publishedCount,
		"total_views":     totalViews,
		"today_views":     todayViews,
	})
}

package utils

import (
	"os"
	"time"

	"gorm.io/gorm"

	"postify/config"
	"postify/models"
)

// StartOrphanCleaner launches a background goroutine that periodically removes
// uploaded files no post ever claimed. The upload and post-creation endpoints
// are deliberately not transactional; this closes the orphaned-file gap after
// the fact. Best-effort: failures are logged and retried next round.
func StartOrphanCleaner(db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			cleanOrphansOnce(db)
		}
	}()
}

func cleanOrphansOnce(db *gorm.DB) {
	if db == nil {
		return
	}
	c := config.Get()
	if !c.UploadsCleanupEnabled {
		return
	}
	cutoff := time.Now().Add(-time.Duration(c.UploadsOrphanTTLMinutes) * time.Minute)

	var items []models.UploadedFile
	if err := db.Where("claimed_at IS NULL AND created_at <= ?", cutoff).Limit(100).Find(&items).Error; err != nil {
		if Sugar != nil {
			Sugar.Warnf("orphan cleaner query failed: %v", err)
		}
		return
	}
	for _, it := range items {
		if it.FilePath != "" {
			_ = os.Remove(it.FilePath)
		}
		// Remove row regardless of file deletion outcome
		if err := db.Delete(&models.UploadedFile{}, it.ID).Error; err != nil {
			if Sugar != nil {
				Sugar.Warnf("orphan cleaner delete row failed: %v", err)
			}
		}
	}
}

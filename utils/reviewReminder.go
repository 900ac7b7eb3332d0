package utils

import (
	"log"
	"time"

	"mhb/config"
	"mhb/database"
	"mhb/models"

	"github.com/robfig/cron/v3"
)

// reviewReminderAfterDays is how long a version may sit in IN_REVIEW before
// the faculty's program coordinators get a reminder email.
const reviewReminderAfterDays = 7

// InitializeReviewReminderScheduler sets up the daily review reminder job
func InitializeReviewReminderScheduler() {
	if config.AppConfig.EmailSender == "" {
		log.Println("[REVIEW-REMINDER] No email sender configured, scheduler disabled.")
		return
	}

	log.Println("[REVIEW-REMINDER] Initializing review reminder scheduler...")

	c := cron.New()

	// Run daily at 7 AM
	c.AddFunc("0 7 * * *", func() {
		log.Println("[REVIEW-REMINDER] Running daily stale review check...")
		ProcessStaleReviews()
	})

	c.Start()
	log.Println("[REVIEW-REMINDER] Review reminder scheduler started - runs daily at 7 AM")
}

// ProcessStaleReviews sends reminder emails for versions stuck in IN_REVIEW
func ProcessStaleReviews() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -reviewReminderAfterDays)

	var stale []models.ModuleVersion
	if err := db.Preload("Module.Owner").
		Where("status = ? AND updated_at < ?", models.StatusInReview, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("[REVIEW-REMINDER] Error fetching stale reviews: %v", err)
		return
	}

	if len(stale) == 0 {
		log.Println("[REVIEW-REMINDER] No stale reviews found.")
		return
	}

	for _, version := range stale {
		if version.Module == nil || version.Module.Owner == nil {
			continue
		}
		faculty := version.Module.Owner.Faculty

		var coordinators []models.User
		if err := db.Where("role = ? AND faculty = ?", models.RoleProgramCoordinator, faculty).
			Find(&coordinators).Error; err != nil {
			log.Printf("[REVIEW-REMINDER] Error fetching coordinators for %s: %v", faculty, err)
			continue
		}

		days := int(time.Since(version.UpdatedAt).Hours() / 24)
		for _, coordinator := range coordinators {
			if coordinator.Email == "" {
				continue
			}
			if err := SendReviewReminderEmail(coordinator.Email, coordinator.Name,
				version.Module.ModuleNumber, version.Module.Title, days); err != nil {
				log.Printf("[REVIEW-REMINDER] Failed to email %s: %v", coordinator.UserID, err)
			}
		}
	}

	log.Printf("[REVIEW-REMINDER] Processed %d stale review(s).", len(stale))
}

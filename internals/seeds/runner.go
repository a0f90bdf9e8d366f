package seeds

import (
	"log"

	"gorm.io/gorm"

	academics "sms_backend/internals/seeds/academics"
)

// RunAllSeeds loads filePath when set; an empty path does nothing.
func RunAllSeeds(db *gorm.DB, filePath string) {
	if filePath == "" {
		return
	}
	if _, err := academics.SeedAcademicsFromJSON(db, filePath); err != nil {
		log.Printf("[WARN] seeding %s failed: %v", filePath, err)
	}
}

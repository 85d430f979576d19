package cron

import (
	"log"
	"time"

	"github.com/hweilin/admin-console/model"
)

// SweepStaleOnlineFlags marks administrators offline when their last
// login predates the token expiry window. Logout normally clears the
// flag, but sessions abandoned without logging out would otherwise
// stay online forever.
func (m *CronManager) SweepStaleOnlineFlags() {
	cutoff := time.Now().Add(-m.tokenExpiry)

	result := m.db.
		Model(&model.Admin{}).
		Where("is_online = ? AND (current_login_at IS NULL OR current_login_at < ?)", 1, cutoff).
		Update("is_online", 0)

	if result.Error != nil {
		log.Printf("cron: online flag sweep failed: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("cron: marked %d stale session(s) offline", result.RowsAffected)
	}
}

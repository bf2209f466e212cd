package checks

import (
	"context"

	"storage-manager/core/database"

	"gorm.io/gorm"
)

// DatabaseReport describes the optional activity database.
type DatabaseReport struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// CheckDatabase pings db. A nil db reports "disabled".
func CheckDatabase(ctx context.Context, db *gorm.DB) DatabaseReport {
	if db == nil {
		return DatabaseReport{Status: "disabled"}
	}
	if err := database.Ping(ctx, db); err != nil {
		return DatabaseReport{Status: "error", Error: err.Error()}
	}
	return DatabaseReport{Status: "ok"}
}

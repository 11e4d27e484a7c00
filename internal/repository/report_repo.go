package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pairup-app/pairup/internal/db"
)

// ReportRepository persists moderation reports.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(database *gorm.DB) *ReportRepository {
	return &ReportRepository{db: database}
}

// Create persists a new report with status open. The match-severing side
// effect lives in the moderation service, not here — a failed cleanup
// must never roll back the report row.
func (r *ReportRepository) Create(
	ctx context.Context,
	reporterID, reportedID uint64,
	reason, details string,
) (*db.Report, error) {
	report := db.Report{
		ReporterID: reporterID,
		ReportedID: reportedID,
		Reason:     reason,
		Details:    details,
		Status:     db.ReportStatusOpen,
	}
	if err := r.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

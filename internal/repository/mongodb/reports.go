package mongodb

import (
	"context"

	"github.com/mamadbah2/residence/internal/domain/models"
)

// ReportRepository stores daily operations reports.
type ReportRepository struct {
	store *Store
}

// NewReportRepository builds the report repository.
func NewReportRepository(store *Store) *ReportRepository {
	return &ReportRepository{store: store}
}

// SaveDailyReport saves a daily report to the database.
func (r *ReportRepository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	_, err := r.store.collection(reportsCollection).InsertOne(ctx, report)
	return storeErr("insert daily report", err)
}

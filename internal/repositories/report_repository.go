package repositories

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ReportFilter narrows the admin report listing
type ReportFilter struct {
	Status models.ReportStatus
	Reason models.ReportReason
	Limit  int
	Offset int
}

// ReportRepository defines the interface for report data operations
type ReportRepository interface {
	// CreateReport stores a report. A second report by the same reporter on the same
	// post fails with ErrDuplicate.
	CreateReport(ctx context.Context, report *models.Report) error
	ExistsForReporter(ctx context.Context, postID string, reporterID uint) (bool, error)
	GetReportByID(ctx context.Context, id uint) (*models.Report, error)
	CountByPosts(ctx context.Context, postIDs []string) (map[string]int64, error)
	// ListReports returns reports newest first along with the unpaginated total
	ListReports(ctx context.Context, f ReportFilter) ([]models.Report, int64, error)
	UpdateReport(ctx context.Context, report *models.Report) error
	DeleteReport(ctx context.Context, id uint) error
}

// PostgresReportRepository implements ReportRepository
type PostgresReportRepository struct {
	db *gorm.DB
}

func NewPostgresReportRepository(db *gorm.DB) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

func (r *PostgresReportRepository) CreateReport(ctx context.Context, report *models.Report) error {
	if report.Status == "" {
		report.Status = models.ReportPending
	}
	return gormErr(r.db.WithContext(ctx).Create(report).Error, "create report")
}

func (r *PostgresReportRepository) ExistsForReporter(ctx context.Context, postID string, reporterID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("post_id = ? AND reporter_id = ?", postID, reporterID).
		Count(&count).Error
	return count > 0, errors.Wrap(err, "count reports")
}

func (r *PostgresReportRepository) GetReportByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, gormErr(err, "find report")
	}
	return &report, nil
}

func (r *PostgresReportRepository) CountByPosts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "count reports by post")
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

func (r *PostgresReportRepository) ListReports(ctx context.Context, f ReportFilter) ([]models.Report, int64, error) {
	filtered := func(db *gorm.DB) *gorm.DB {
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.Reason != "" {
			// reasons are stored comma separated, so match on whole entries
			db = db.Where("(',' || reasons || ',') LIKE ?", "%,"+string(f.Reason)+",%")
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Report{}).Scopes(filtered).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count reports")
	}

	reports := []models.Report{}
	err := r.db.WithContext(ctx).Scopes(filtered).
		Order("created_at DESC, id DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&reports).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list reports")
	}
	return reports, total, nil
}

func (r *PostgresReportRepository) UpdateReport(ctx context.Context, report *models.Report) error {
	return gormErr(r.db.WithContext(ctx).Save(report).Error, "update report")
}

func (r *PostgresReportRepository) DeleteReport(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Report{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete report")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

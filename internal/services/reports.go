package services

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/auth"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"github.com/anonto42/pet-adopt/backend/pkg/metrics"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	maxReportDescription = 1000
	defaultReportLimit   = 50
	maxReportLimit       = 200
)

// ReportListInput filters the admin report listing
type ReportListInput struct {
	Status string
	Reason string
	Limit  int
	Offset int
}

// ReportUpdateInput carries an admin's review of a report
type ReportUpdateInput struct {
	Status     string
	AdminNotes *string
}

// ReportService files post reports and serves the admin review surface
type ReportService struct {
	reports repositories.ReportRepository
	posts   repositories.PostRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewReportService(reports repositories.ReportRepository, posts repositories.PostRepository, m *metrics.Metrics, logger *zap.Logger) *ReportService {
	return &ReportService{reports: reports, posts: posts, metrics: m, logger: logger}
}

// ReportPost files a report by reporter against an active post. A reporter may
// report a post once and may not report their own post.
func (s *ReportService) ReportPost(ctx context.Context, reporterID uint, postID string, reasons []string, description string) (*models.Report, error) {
	if len(reasons) == 0 {
		return nil, apperr.InvalidArgument("at least one reason must be selected")
	}
	parsed := make([]models.ReportReason, 0, len(reasons))
	for _, r := range reasons {
		reason := models.ReportReason(r)
		if !reason.Valid() {
			return nil, apperr.InvalidArgument("unknown report reason %q", r)
		}
		parsed = append(parsed, reason)
	}
	description = sanitizeText(description)
	if utf8.RuneCountInString(description) > maxReportDescription {
		return nil, apperr.InvalidArgument("description must be at most %d characters", maxReportDescription)
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookupErr(err, "post")
	}
	if !post.IsActive {
		return nil, apperr.NotFound("post not found")
	}
	if post.AuthorID == reporterID {
		return nil, apperr.InvalidOperation("you cannot report your own post")
	}

	// uniqueness is enforced by the (post_id, reporter_id) index; this check covers the common path
	exists, err := s.reports.ExistsForReporter(ctx, post.ID.Hex(), reporterID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.AlreadyExists("you have already reported this post")
	}

	report := &models.Report{
		PostID:      post.ID.Hex(),
		ReporterID:  reporterID,
		PostOwnerID: post.AuthorID,
		Description: description,
		Status:      models.ReportPending,
	}
	report.SetReasons(parsed)
	if err := s.reports.CreateReport(ctx, report); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.AlreadyExists("you have already reported this post")
		}
		return nil, err
	}

	s.metrics.RecordReport(ctx)
	s.logger.Info("post reported",
		zap.Uint("report_id", report.ID),
		zap.String("post_id", report.PostID),
		zap.Strings("reasons", reasons))
	return report, nil
}

// ListReports returns reports newest first with the unpaginated total
func (s *ReportService) ListReports(ctx context.Context, actor *auth.Identity, in ReportListInput) ([]models.Report, int64, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, 0, err
	}
	f := repositories.ReportFilter{Limit: in.Limit, Offset: in.Offset}
	if in.Status != "" {
		f.Status = models.ReportStatus(in.Status)
		if !f.Status.Valid() {
			return nil, 0, apperr.InvalidArgument("unknown report status %q", in.Status)
		}
	}
	if in.Reason != "" {
		f.Reason = models.ReportReason(in.Reason)
		if !f.Reason.Valid() {
			return nil, 0, apperr.InvalidArgument("unknown report reason %q", in.Reason)
		}
	}
	if f.Limit <= 0 {
		f.Limit = defaultReportLimit
	}
	if f.Limit > maxReportLimit {
		f.Limit = maxReportLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.reports.ListReports(ctx, f)
}

func (s *ReportService) GetReport(ctx context.Context, actor *auth.Identity, id uint) (*models.Report, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	report, err := s.reports.GetReportByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "report")
	}
	return report, nil
}

// UpdateReport applies an admin review. Moving a report out of pending stamps the
// reviewer the first time it happens.
func (s *ReportService) UpdateReport(ctx context.Context, actor *auth.Identity, id uint, in ReportUpdateInput) (*models.Report, error) {
	report, err := s.GetReport(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Status != "" {
		status := models.ReportStatus(in.Status)
		if !status.Valid() {
			return nil, apperr.InvalidArgument("unknown report status %q", in.Status)
		}
		report.Status = status
		if status != models.ReportPending && report.ReviewedBy == nil {
			now := time.Now()
			reviewer := actor.UserID
			report.ReviewedBy = &reviewer
			report.ReviewedAt = &now
		}
	}
	if in.AdminNotes != nil {
		report.AdminNotes = sanitizeText(*in.AdminNotes)
	}

	if err := s.reports.UpdateReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// DeleteReport removes a report for good
func (s *ReportService) DeleteReport(ctx context.Context, actor *auth.Identity, id uint) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.reports.DeleteReport(ctx, id); err != nil {
		return lookupErr(err, "report")
	}
	s.logger.Info("report deleted", zap.Uint("report_id", id), zap.Uint("admin_id", actor.UserID))
	return nil
}

func requireAdmin(actor *auth.Identity) error {
	if actor == nil || !actor.Admin {
		return apperr.Unauthorized("admin access required")
	}
	return nil
}

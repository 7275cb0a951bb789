package models

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

type ReportReason string

const (
	ReasonSpam          ReportReason = "spam"
	ReasonInappropriate ReportReason = "inappropriate"
	ReasonHarassment    ReportReason = "harassment"
	ReasonScam          ReportReason = "scam"
	ReasonAnimalAbuse   ReportReason = "animal_abuse"
	ReasonFakeListing   ReportReason = "fake_listing"
	ReasonOther         ReportReason = "other"
)

var reportReasons = []ReportReason{
	ReasonSpam, ReasonInappropriate, ReasonHarassment, ReasonScam,
	ReasonAnimalAbuse, ReasonFakeListing, ReasonOther,
}

func (r ReportReason) Valid() bool {
	return slices.Contains(reportReasons, r)
}

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportReviewed, ReportResolved, ReportDismissed:
		return true
	}
	return false
}

// Report is a user's report against a post. A reporter can report a post only once.
type Report struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	PostID      string       `json:"post_id" gorm:"size:24;index;uniqueIndex:idx_report_post_reporter"`
	ReporterID  uint         `json:"reporter_id" gorm:"uniqueIndex:idx_report_post_reporter"`
	PostOwnerID uint         `json:"post_owner_id" gorm:"index"`
	Reasons     string       `json:"-" gorm:"size:200"` // comma separated ReportReason values
	Description string       `json:"description,omitempty" gorm:"size:1000"`
	Status      ReportStatus `json:"status" gorm:"size:20;default:pending;index"`
	AdminNotes  string       `json:"admin_notes,omitempty"`
	ReviewedBy  *uint        `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ReasonList returns the stored reasons
func (r *Report) ReasonList() []ReportReason {
	if r.Reasons == "" {
		return []ReportReason{}
	}
	parts := strings.Split(r.Reasons, ",")
	out := make([]ReportReason, 0, len(parts))
	for _, p := range parts {
		out = append(out, ReportReason(p))
	}
	return out
}

// SetReasons stores reasons, dropping duplicates while keeping their order
func (r *Report) SetReasons(reasons []ReportReason) {
	seen := make(map[ReportReason]bool, len(reasons))
	parts := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		if seen[reason] {
			continue
		}
		seen[reason] = true
		parts = append(parts, string(reason))
	}
	r.Reasons = strings.Join(parts, ",")
}

// MarshalJSON renders the reasons as a list
func (r Report) MarshalJSON() ([]byte, error) {
	type alias Report
	return json.Marshal(struct {
		alias
		Reasons []ReportReason `json:"reasons"`
	}{alias(r), r.ReasonList()})
}

// CreateReportRequest defines the request body for reporting a post
type CreateReportRequest struct {
	Reasons     []string `json:"reasons" validate:"required,min=1,dive,oneof=spam inappropriate harassment scam animal_abuse fake_listing other"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// UpdateReportRequest defines the request body for an admin reviewing a report
type UpdateReportRequest struct {
	Status     string  `json:"status,omitempty" validate:"omitempty,oneof=pending reviewed resolved dismissed"`
	AdminNotes *string `json:"admin_notes,omitempty" validate:"omitempty,max=2000"`
}

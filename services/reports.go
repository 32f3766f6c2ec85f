package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"crimewatch/database"
)

// PageSize is the fixed number of reports per admin listing page.
const PageSize = 15

// ReportPage is one page of the admin listing plus aggregate counts.
// The counts cover the whole filtered set, not just the current page.
type ReportPage struct {
	Reports       []database.CrimeReport `json:"reports"`
	Query         string                 `json:"q"`
	Page          int                    `json:"page"`
	TotalPages    int                    `json:"total_pages"`
	TotalReports  int64                  `json:"total_reports"`
	Pending       int64                  `json:"pending"`
	Investigating int64                  `json:"investigating"`
	Resolved      int64                  `json:"resolved"`
}

// ReportService covers report submission and the read paths around it.
type ReportService interface {
	// Create persists a new submission. The status is forced to Pending
	// regardless of what the caller set, and an empty location becomes
	// "Unknown".
	Create(ctx context.Context, report *database.CrimeReport) error

	// ListByUser returns the submitter's own reports, newest first,
	// with their audit trails attached.
	ListByUser(ctx context.Context, userID uint) ([]database.CrimeReport, error)

	// Search returns one page of reports matching q (case-insensitive
	// substring over description, location, crime type and submitter
	// username), newest first, with aggregate counts over the filtered
	// set. An empty q matches everything.
	Search(ctx context.Context, q string, page int) (*ReportPage, error)

	// Export returns the full filtered set ordered by id ascending.
	Export(ctx context.Context, q string) ([]database.CrimeReport, error)
}

type reportService struct {
	db *gorm.DB
}

// NewReportService injects the storage handle and returns a ready
// ReportService.
func NewReportService(db *gorm.DB) ReportService {
	return &reportService{db: db}
}

func (s *reportService) Create(ctx context.Context, report *database.CrimeReport) error {
	report.Status = database.StatusPending
	if strings.TrimSpace(report.Location) == "" {
		report.Location = "Unknown"
	}
	return s.db.WithContext(ctx).Create(report).Error
}

func (s *reportService) ListByUser(ctx context.Context, userID uint) ([]database.CrimeReport, error) {
	var reports []database.CrimeReport
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Audits", func(db *gorm.DB) *gorm.DB {
			return db.Order("audits.id ASC")
		}).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// filtered builds a fresh query over the reports matching q. Each call
// returns a new builder so counts and listings never share conditions.
func (s *reportService) filtered(ctx context.Context, q string) *gorm.DB {
	base := s.db.WithContext(ctx).Model(&database.CrimeReport{}).
		Joins("LEFT JOIN users ON users.id = crime_reports.user_id")
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where(
			"LOWER(crime_reports.description) LIKE ? OR LOWER(crime_reports.location) LIKE ? OR LOWER(crime_reports.crime_type) LIKE ? OR LOWER(users.username) LIKE ?",
			like, like, like, like,
		)
	}
	return base
}

func (s *reportService) Search(ctx context.Context, q string, page int) (*ReportPage, error) {
	if page < 1 {
		page = 1
	}
	q = strings.TrimSpace(q)

	// Aggregates come from the filtered set before pagination.
	result := &ReportPage{Query: q, Page: page}
	if err := s.filtered(ctx, q).Count(&result.TotalReports).Error; err != nil {
		return nil, err
	}
	for status, dst := range map[string]*int64{
		database.StatusPending:       &result.Pending,
		database.StatusInvestigating: &result.Investigating,
		database.StatusResolved:      &result.Resolved,
	} {
		if err := s.filtered(ctx, q).
			Where("crime_reports.status = ?", status).
			Count(dst).Error; err != nil {
			return nil, err
		}
	}

	result.TotalPages = int((result.TotalReports + PageSize - 1) / PageSize)
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}

	err := s.filtered(ctx, q).
		Select("crime_reports.*").
		Order("crime_reports.created_at DESC").
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Preload("User").
		Find(&result.Reports).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *reportService) Export(ctx context.Context, q string) ([]database.CrimeReport, error) {
	var reports []database.CrimeReport
	err := s.filtered(ctx, strings.TrimSpace(q)).
		Select("crime_reports.*").
		Order("crime_reports.id ASC").
		Preload("User").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"crimewatch/database"
)

// TransitionService applies status changes to reports. Every applied
// change writes the new status and an audit record in one transaction:
// either both commit or neither does, so the audit trail always covers
// the full transition history of a report.
type TransitionService interface {
	// Transition moves the report to newStatus on behalf of actorID and
	// returns the updated report. The actor must exist and hold the
	// admin flag; newStatus must be one of the three workflow statuses.
	Transition(ctx context.Context, reportID uint, newStatus string, actorID uint) (*database.CrimeReport, error)

	// AuditTrail returns the report's status changes in creation order.
	AuditTrail(ctx context.Context, reportID uint) ([]database.Audit, error)
}

type transitionService struct {
	db *gorm.DB
}

// NewTransitionService injects the storage handle and returns a ready
// TransitionService.
func NewTransitionService(db *gorm.DB) TransitionService {
	return &transitionService{db: db}
}

func (s *transitionService) Transition(ctx context.Context, reportID uint, newStatus string, actorID uint) (*database.CrimeReport, error) {
	if !database.ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	// Authorization happens before any write. The route middleware also
	// gates on the admin flag, but the service re-checks from the store
	// so it cannot be bypassed by other callers.
	var actor database.User
	if err := s.db.WithContext(ctx).First(&actor, actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin {
		return nil, ErrPermissionDenied
	}

	var report database.CrimeReport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return err
		}

		oldStatus := report.Status

		if err := tx.Model(&report).Update("status", newStatus).Error; err != nil {
			return err
		}

		// Re-submitting the current status is accepted and still gets
		// its own audit row; transitions are not deduplicated.
		audit := database.Audit{
			ReportID:  report.ID,
			OldStatus: &oldStatus,
			NewStatus: newStatus,
			ChangedBy: &actor.ID,
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (s *transitionService) AuditTrail(ctx context.Context, reportID uint) ([]database.Audit, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&database.CrimeReport{}).
		Where("id = ?", reportID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrReportNotFound
	}

	var audits []database.Audit
	err := s.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("id ASC").
		Find(&audits).Error
	if err != nil {
		return nil, err
	}
	return audits, nil
}

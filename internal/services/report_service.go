package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dicoslang/backoffice/internal/models"
)

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrReportNotPending = errors.New("report already handled")
)

// ReportService is the accessor for comment-reports.
type ReportService interface {
	Create(ctx context.Context, r *models.CommentReport) (*models.CommentReport, error)
	GetByID(ctx context.Context, id string) (*models.CommentReport, error)
	// ListByStatus returns reports newest first; an empty status lists all.
	ListByStatus(ctx context.Context, status models.ReportStatus) ([]*models.CommentReport, error)
	Count(ctx context.Context, status models.ReportStatus) (int, error)
	// Resolve moves a pending report to status. It fails with
	// ErrReportNotPending when the report was already handled.
	Resolve(ctx context.Context, id string, status models.ReportStatus, reviewedBy string) (*models.CommentReport, error)
	// DeleteByUser removes reports filed by or against userID.
	DeleteByUser(ctx context.Context, userID string) ([]string, error)
}

func prepareReport(r *models.CommentReport, now time.Time) *models.CommentReport {
	out := *r
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	out.Status = models.ReportStatusPending
	out.ReviewedBy = ""
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	return &out
}

type MemoryReportService struct {
	reports *memTable[models.CommentReport]
}

func NewMemoryReportService() *MemoryReportService {
	return &MemoryReportService{reports: newMemTable(shallowClone[models.CommentReport])}
}

func (s *MemoryReportService) Create(ctx context.Context, r *models.CommentReport) (*models.CommentReport, error) {
	out := prepareReport(r, time.Now().UTC())
	s.reports.put(out.ID, out)
	return out, nil
}

func (s *MemoryReportService) GetByID(ctx context.Context, id string) (*models.CommentReport, error) {
	r, ok := s.reports.get(id)
	if !ok {
		return nil, ErrReportNotFound
	}
	return r, nil
}

func (s *MemoryReportService) ListByStatus(ctx context.Context, status models.ReportStatus) ([]*models.CommentReport, error) {
	out := s.reports.filter(func(r *models.CommentReport) bool {
		return status == "" || r.Status == status
	})
	sortNewestFirst(out, func(r *models.CommentReport) time.Time { return r.CreatedAt })
	return out, nil
}

func (s *MemoryReportService) Count(ctx context.Context, status models.ReportStatus) (int, error) {
	rows, _ := s.ListByStatus(ctx, status)
	return len(rows), nil
}

func (s *MemoryReportService) Resolve(ctx context.Context, id string, status models.ReportStatus, reviewedBy string) (*models.CommentReport, error) {
	out, found, err := s.reports.update(id, func(r *models.CommentReport) error {
		if r.Status != models.ReportStatusPending {
			return ErrReportNotPending
		}
		r.Status = status
		r.ReviewedBy = reviewedBy
		r.UpdatedAt = time.Now().UTC()
		return nil
	})
	if !found {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MemoryReportService) DeleteByUser(ctx context.Context, userID string) ([]string, error) {
	removed := s.reports.removeWhere(func(r *models.CommentReport) bool {
		return r.ReporterID == userID || r.UserID == userID
	})
	ids := make([]string, 0, len(removed))
	for _, r := range removed {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dicoslang/backoffice/internal/metrics"
	"github.com/dicoslang/backoffice/internal/models"
)

const (
	unknownName    = "Inconnu"
	deletedComment = "Commentaire supprimé"
)

// ModerationService runs the comment report workflow: report, block, warn,
// and the automatic ban that follows the second warning.
type ModerationService struct {
	comments CommentService
	reports  ReportService
	users    UserService
	tx       Transactor
}

func NewModerationService(store *Store) *ModerationService {
	return &ModerationService{
		comments: store.Comments,
		reports:  store.Reports,
		users:    store.Users,
		tx:       store.Tx,
	}
}

// ReportComment files a pending report against the comment's author and
// flags the comment.
func (m *ModerationService) ReportComment(ctx context.Context, commentID string, req *models.ReportCommentRequest) (*models.CommentReport, error) {
	var report *models.CommentReport
	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := m.comments.GetByID(ctx, commentID)
		if err != nil {
			return err
		}
		report, err = m.reports.Create(ctx, &models.CommentReport{
			CommentID:  c.ID,
			ReporterID: req.ReporterID,
			UserID:     c.UserID,
			Reason:     req.Reason,
		})
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		return m.comments.UpdateStatus(ctx, c.ID, models.CommentStatusFlagged)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[moderation] comment reported comment=%s report=%s reporter=%s", commentID, report.ID, req.ReporterID)
	return report, nil
}

// PendingReports lists pending reports newest first with names and comment
// text resolved. Lookups that miss fall back to placeholders.
func (m *ModerationService) PendingReports(ctx context.Context) ([]*models.ReportView, error) {
	reports, err := m.reports.ListByStatus(ctx, models.ReportStatusPending)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	nameOf := func(userID string) string {
		if n, ok := names[userID]; ok {
			return n
		}
		n := unknownName
		if u, err := m.users.GetByID(ctx, userID); err == nil && u.Username != "" {
			n = u.Username
		}
		names[userID] = n
		return n
	}

	out := make([]*models.ReportView, 0, len(reports))
	for _, r := range reports {
		view := &models.ReportView{
			CommentReport: *r,
			ReporterName:  nameOf(r.ReporterID),
			UserName:      nameOf(r.UserID),
			CommentText:   deletedComment,
		}
		if c, err := m.comments.GetByID(ctx, r.CommentID); err == nil {
			view.CommentText = c.Text
			created := c.CreatedAt
			view.CommentDate = &created
		}
		out = append(out, view)
	}
	return out, nil
}

// BlockComment hides the reported comment and marks the report reviewed.
func (m *ModerationService) BlockComment(ctx context.Context, reportID, adminID string) error {
	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		report, err := m.reports.Resolve(ctx, reportID, models.ReportStatusReviewed, adminID)
		if err != nil {
			return err
		}
		return m.block(ctx, report)
	})
	if err != nil {
		m.logFailure("BlockComment", reportID, err)
		return err
	}
	metrics.ModerationActions.WithLabelValues("block").Inc()
	log.Printf("[moderation] comment blocked report=%s admin=%s", reportID, adminID)
	return nil
}

// BlockAndWarn blocks the comment and adds a warning to its author. The
// author is banned with reason once warnings reach models.WarningBanThreshold.
func (m *ModerationService) BlockAndWarn(ctx context.Context, reportID, adminID, reason string) (*models.WarnOutcome, error) {
	var outcome *models.WarnOutcome
	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		report, err := m.reports.Resolve(ctx, reportID, models.ReportStatusReviewed, adminID)
		if err != nil {
			return err
		}
		if err := m.block(ctx, report); err != nil {
			return err
		}
		u, err := m.users.AddWarning(ctx, report.UserID, reason)
		if err != nil {
			return fmt.Errorf("warn user %s: %w", report.UserID, err)
		}
		outcome = &models.WarnOutcome{
			UserID:   u.ID,
			Warnings: u.Warnings,
			Banned:   u.Status == models.UserStatusBanned,
		}
		return nil
	})
	if err != nil {
		m.logFailure("BlockAndWarn", reportID, err)
		return nil, err
	}

	metrics.ModerationActions.WithLabelValues("block_warn").Inc()
	metrics.WarningsIssued.Inc()
	if outcome.Banned && outcome.Warnings == models.WarningBanThreshold {
		metrics.UsersBanned.WithLabelValues("warnings").Inc()
	}
	log.Printf("[moderation] user warned report=%s user=%s warnings=%d banned=%v admin=%s",
		reportID, outcome.UserID, outcome.Warnings, outcome.Banned, adminID)
	return outcome, nil
}

// Dismiss closes the report without touching the comment or its author.
func (m *ModerationService) Dismiss(ctx context.Context, reportID, adminID string) error {
	if _, err := m.reports.Resolve(ctx, reportID, models.ReportStatusDismissed, adminID); err != nil {
		return err
	}
	metrics.ModerationActions.WithLabelValues("dismiss").Inc()
	log.Printf("[moderation] report dismissed report=%s admin=%s", reportID, adminID)
	return nil
}

// block hides the reported comment. A comment deleted since the report was
// filed leaves nothing to hide.
func (m *ModerationService) block(ctx context.Context, report *models.CommentReport) error {
	err := m.comments.Block(ctx, report.CommentID)
	if errors.Is(err, ErrCommentNotFound) {
		log.Printf("[moderation] reported comment already gone report=%s comment=%s", report.ID, report.CommentID)
		return nil
	}
	return err
}

func (m *ModerationService) logFailure(op, reportID string, err error) {
	if errors.Is(err, ErrReportNotFound) || errors.Is(err, ErrReportNotPending) {
		return
	}
	if _, ok := m.tx.(NoTx); ok {
		log.Printf("[%s] report=%s left reviewed after partial failure err=%v", op, reportID, err)
		return
	}
	log.Printf("[%s] report=%s err=%v", op, reportID, err)
}

package moderation

import (
	"context"
	"strings"

	"github.com/pairup-app/pairup/internal/app"
	svcErr "github.com/pairup-app/pairup/internal/errors"
	"github.com/pairup-app/pairup/internal/repository"
)

// Service implements the moderation API. Filing a report also severs any
// match between the parties (the interlock), best-effort.
type Service struct {
	appCtx     *app.AppContext
	reportRepo *repository.ReportRepository
	matchRepo  *repository.MatchRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:     appCtx,
		reportRepo: repository.NewReportRepository(appCtx.DB),
		matchRepo:  repository.NewMatchRepository(appCtx.DB),
	}
}

type FileReportRequest struct {
	ReporterID uint64 `json:"reporter_id"`
	ReportedID uint64 `json:"reported_id"`
	Reason     string `json:"reason"`
	Details    string `json:"details"`
}

type FileReportResponse struct {
	ReportID   uint64 `json:"report_id"`
	Status     string `json:"status"`
	ReporterID uint64 `json:"reporter_id"`
	ReportedID uint64 `json:"reported_id"`
}

// FileReport persists a report and then removes any match between the
// two parties.
//
// The unmatch step is best-effort: the report must never be lost because
// an unrelated cleanup failed, so a delete failure is logged and the
// report still succeeds. The match delete goes through the same canonical
// pair routine as reconciliation and disclosure.
func (s *Service) FileReport(ctx context.Context, req *FileReportRequest) (*FileReportResponse, error) {
	s.appCtx.Logger.Debug("FileReport called", "reporter", req.ReporterID, "reported", req.ReportedID)

	if req.ReporterID == 0 || req.ReportedID == 0 {
		return nil, svcErr.InvalidArgument("reporter_id and reported_id are required")
	}
	if req.ReporterID == req.ReportedID {
		return nil, svcErr.InvalidArgument("cannot report yourself")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, svcErr.InvalidArgument("reason is required")
	}

	report, err := s.reportRepo.Create(ctx, req.ReporterID, req.ReportedID, req.Reason, req.Details)
	if err != nil {
		s.appCtx.Logger.Error("report create failed", "err", err)
		return nil, svcErr.Map(err)
	}

	// interlock: sever any match between the parties
	if deleted, err := s.matchRepo.Delete(ctx, req.ReporterID, req.ReportedID); err != nil {
		s.appCtx.Logger.Error("report unmatch cleanup failed",
			"report_id", report.ID, "reporter", req.ReporterID, "reported", req.ReportedID, "err", err)
	} else if deleted {
		s.appCtx.Logger.Info("match severed by report",
			"report_id", report.ID, "reporter", req.ReporterID, "reported", req.ReportedID)
	}

	return &FileReportResponse{
		ReportID:   report.ID,
		Status:     report.Status,
		ReporterID: report.ReporterID,
		ReportedID: report.ReportedID,
	}, nil
}

package service

import (
	"context"
	"time"

	"github.com/deppfellow/tourism/internal/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type ReportStore interface {
	Revenue(ctx context.Context, groupBy model.ReportGroupBy, from, to *time.Time) ([]model.RevenueRow, error)
	Dashboard(ctx context.Context) (*model.Dashboard, error)
}

type ReportService struct {
	reports ReportStore
	logger  *zerolog.Logger
}

func NewReportService(reports ReportStore, logger *zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, logger: logger}
}

func (s *ReportService) Revenue(ctx context.Context, q *model.RevenueQuery) (*model.RevenueReport, error) {
	from, to := q.Range()
	rows, err := s.reports.Revenue(ctx, q.GroupBy, from, to)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Revenue)
	}
	if rows == nil {
		rows = []model.RevenueRow{}
	}
	return &model.RevenueReport{GroupBy: q.GroupBy, Rows: rows, Total: total}, nil
}

func (s *ReportService) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	return s.reports.Dashboard(ctx)
}

package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	Handler
	reports *service.ReportService
}

func NewReportHandler(s *server.Server, reports *service.ReportService) *ReportHandler {
	return &ReportHandler{Handler: NewHandler(s), reports: reports}
}

func (h *ReportHandler) Revenue(c echo.Context, q *model.RevenueQuery) (*model.RevenueReport, error) {
	return h.reports.Revenue(c.Request().Context(), q)
}

func (h *ReportHandler) Dashboard(c echo.Context, _ *model.Empty) (*model.Dashboard, error) {
	return h.reports.Dashboard(c.Request().Context())
}

// RevenueCSV renders the revenue report as CSV with a trailing total row.
func (h *ReportHandler) RevenueCSV(c echo.Context, q *model.RevenueQuery) ([]byte, error) {
	report, err := h.reports.Revenue(c.Request().Context(), q)
	if err != nil {
		return nil, err
	}
	return revenueCSV(report)
}

func revenueCSV(report *model.RevenueReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"period", "type", "bookings", "revenue"}}
	for _, row := range report.Rows {
		records = append(records, []string{
			row.Period,
			string(row.Type),
			strconv.FormatInt(row.Bookings, 10),
			row.Revenue.StringFixed(2),
		})
	}
	records = append(records, []string{"total", "", "", report.Total.StringFixed(2)})

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write revenue csv: %w", err)
	}
	return buf.Bytes(), nil
}

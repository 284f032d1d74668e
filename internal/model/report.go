package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReportGroupBy string

const (
	GroupByDay   ReportGroupBy = "day"
	GroupByMonth ReportGroupBy = "month"
)

type RevenueQuery struct {
	From    string        `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To      string        `query:"to" validate:"omitempty,datetime=2006-01-02"`
	GroupBy ReportGroupBy `query:"group_by" validate:"omitempty,oneof=day month"`

	from *time.Time
	to   *time.Time
}

func (q *RevenueQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	if q.GroupBy == "" {
		q.GroupBy = GroupByMonth
	}

	var fe fieldErrors
	q.from = fe.date("from", q.From)
	q.to = fe.date("to", q.To)
	if q.from != nil && q.to != nil && q.to.Before(*q.from) {
		fe.add("to", "must not be before from")
	}
	return fe.err()
}

func (q *RevenueQuery) Range() (from, to *time.Time) {
	return q.from, q.to
}

type RevenueRow struct {
	Period   string          `json:"period"`
	Type     BookingType     `json:"type"`
	Bookings int64           `json:"bookings"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type RevenueReport struct {
	GroupBy ReportGroupBy   `json:"group_by"`
	Rows    []RevenueRow    `json:"rows"`
	Total   decimal.Decimal `json:"total"`
}

type Dashboard struct {
	Users                int64                   `json:"users"`
	Hotels               int64                   `json:"hotels"`
	Cars                 int64                   `json:"cars"`
	Tours                int64                   `json:"tours"`
	UmrahPackages        int64                   `json:"umrah_packages"`
	BookingsByStatus     map[BookingStatus]int64 `json:"bookings_by_status"`
	PendingContactForms  int64                   `json:"pending_contact_forms"`
	PendingUmrahRequests int64                   `json:"pending_umrah_requests"`
	TotalRevenue         decimal.Decimal         `json:"total_revenue"`
}

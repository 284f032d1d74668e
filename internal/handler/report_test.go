package handler

import (
	"testing"

	"github.com/deppfellow/tourism/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueCSV(t *testing.T) {
	report := &model.RevenueReport{
		GroupBy: model.GroupByMonth,
		Rows: []model.RevenueRow{
			{Period: "2025-01", Type: model.BookingTypeHotel, Bookings: 3, Revenue: decimal.RequireFromString("1280.5")},
			{Period: "2025-01", Type: model.BookingTypeTour, Bookings: 1, Revenue: decimal.RequireFromString("450")},
		},
		Total: decimal.RequireFromString("1730.5"),
	}

	out, err := revenueCSV(report)
	require.NoError(t, err)

	want := "period,type,bookings,revenue\n" +
		"2025-01,hotel,3,1280.50\n" +
		"2025-01,tour,1,450.00\n" +
		"total,,,1730.50\n"
	assert.Equal(t, want, string(out))
}

func TestRevenueCSV_Empty(t *testing.T) {
	out, err := revenueCSV(&model.RevenueReport{Rows: []model.RevenueRow{}, Total: decimal.Zero})
	require.NoError(t, err)
	assert.Equal(t, "period,type,bookings,revenue\ntotal,,,0.00\n", string(out))
}

package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/domain/losses"
	"medstock/internal/domain/order"
	"medstock/internal/domain/settings"
)

func TestTextWriter_OrderReport(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf)

	toOrder := 70
	rows := []order.OrderRow{{
		Code:              "DORACET1T",
		Description:       "PARACETAMOL 500mg tab",
		Type:              "Item",
		StandardQty:       100,
		CurrentStock:      40,
		QtyExpiring:       10,
		QtyNeeded:         70,
		QtyToOrder:        &toOrder,
		QtyToOrderRounded: 70,
		Amount:            14,
	}}
	meta := ReportMeta{
		Project:     settings.Project{Name: "Emergency Response", Code: "ER-01"},
		GeneratedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Filters:     map[string]string{"Kit": "All"},
	}

	err := w.WriteOrderReport(context.Background(), meta, rows, order.SummarizeTotals(rows))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Order Needs")
	assert.Contains(t, out, "Emergency Response")
	assert.Contains(t, out, "DORACET1T")
	assert.Contains(t, out, "14.00 EUR")
	assert.Contains(t, out, "70 units")
}

func TestTextWriter_OrderReportFlagsMissingPrices(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf)

	rows := []order.OrderRow{{Code: "DORACET1T", QtyToOrderRounded: 5}}
	err := w.WriteOrderReport(context.Background(), ReportMeta{}, rows, order.SummarizeTotals(rows))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "1 rows without price")
}

func TestTextWriter_LossReport(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf)

	records := []losses.Record{
		{Date: "2026-03-01", Code: "DORACET1T", Category: losses.CategoryExpired, Quantity: 8, Scenarios: "A, B"},
		{Date: "2026-03-02", Code: "DEXTAMO1C", Category: losses.CategoryTheft, Quantity: 2},
	}
	err := w.WriteLossReport(context.Background(), ReportMeta{}, records)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Losses")
	assert.Contains(t, out, "Expired Items")
	assert.Contains(t, out, "A, B")
	assert.Contains(t, out, "2 records, 10 units lost")
}

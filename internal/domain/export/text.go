package export

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"medstock/internal/domain/losses"
	"medstock/internal/domain/order"
)

// TextWriter renders reports as aligned plain text. It is the sink the
// CLI uses; heavier formats implement the same interfaces elsewhere.
type TextWriter struct {
	Out io.Writer
	Tr  Translator
}

func NewTextWriter(out io.Writer) *TextWriter {
	return &TextWriter{Out: out, Tr: NopTranslator{}}
}

func (w *TextWriter) translator() Translator {
	if w.Tr != nil {
		return w.Tr
	}
	return NopTranslator{}
}

func (w *TextWriter) writeHeader(meta ReportMeta, title string) error {
	if _, err := fmt.Fprintf(w.Out, "%s\n", title); err != nil {
		return err
	}
	if meta.Project.Name != "" {
		if _, err := fmt.Fprintf(w.Out, "%s: %s (%s)\n",
			w.translator().T("report.project", "Project"),
			meta.Project.Name, meta.Project.Code); err != nil {
			return err
		}
	}
	if !meta.GeneratedAt.IsZero() {
		if _, err := fmt.Fprintf(w.Out, "%s: %s\n",
			w.translator().T("report.generated", "Generated"),
			meta.GeneratedAt.Format("2006-01-02 15:04")); err != nil {
			return err
		}
	}
	for k, v := range meta.Filters {
		if v == "" {
			continue
		}
		if _, err := fmt.Fprintf(w.Out, "%s: %s\n", k, v); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w.Out)
	return err
}

// WriteOrderReport renders the projection followed by a totals line.
func (w *TextWriter) WriteOrderReport(_ context.Context, meta ReportMeta, rows []order.OrderRow, totals order.Totals) error {
	tr := w.translator()
	if err := w.writeHeader(meta, tr.T("report.order.title", "Order Needs")); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Code\tDescription\tType\tStd\tStock\tExpiring\tNeeded\tTo Order\tRounded\tAmount\tWeight kg\tVolume m3\tRemarks")
	for i := range rows {
		r := &rows[i]
		toOrder := ""
		if r.QtyToOrder != nil {
			toOrder = fmt.Sprintf("%d", *r.QtyToOrder)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\t%d\t%.2f\t%.3f\t%.3f\t%s\n",
			r.Code, r.Description, r.Type,
			r.StandardQty, r.CurrentStock, r.QtyExpiring,
			r.QtyNeeded, toOrder, r.QtyToOrderRounded,
			r.Amount, r.WeightKg, r.VolumeM3, r.Remarks)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w.Out, "\n%s: %d rows, %d units, %s EUR, %s kg, %s m3",
		tr.T("report.order.totals", "Totals"),
		totals.Rows, totals.ToOrder,
		totals.Amount.StringFixed(2),
		totals.WeightKg.StringFixed(3),
		totals.VolumeM3.StringFixed(3))
	if err != nil {
		return err
	}
	if totals.MissingPrice > 0 {
		if _, err := fmt.Fprintf(w.Out, " (%d %s)",
			totals.MissingPrice,
			tr.T("report.order.missing_price", "rows without price")); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w.Out)
	return err
}

// WriteLossReport renders the aggregated loss records.
func (w *TextWriter) WriteLossReport(_ context.Context, meta ReportMeta, records []losses.Record) error {
	tr := w.translator()
	if err := w.writeHeader(meta, tr.T("report.losses.title", "Losses")); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tCode\tDescription\tType\tCategory\tQty\tScenarios\tKits\tModules\tExpiry\tDocuments\tRemarks")
	total := 0
	for i := range records {
		rec := &records[i]
		total += rec.Quantity
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Date, rec.Code, rec.Description, rec.Type, rec.Category,
			rec.Quantity, rec.Scenarios, rec.Kits, rec.Modules,
			rec.ExpiryDates, rec.Documents, rec.Remarks)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w.Out, "\n%s: %d records, %d units lost\n",
		tr.T("report.losses.totals", "Totals"), len(records), total)
	return err
}

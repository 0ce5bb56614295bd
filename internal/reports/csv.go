package reports

import (
	"encoding/csv"
	"io"
	"strconv"
)

// utf8BOM keeps spreadsheet tools from misreading Arabic cell content.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteRevenueCSV writes the revenue series as a BOM-prefixed CSV with a
// header row. The ARR column repeats the per-month annualized figure.
func WriteRevenueCSV(w io.Writer, points []RevenuePoint) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Month", "Revenue", "Annualized"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{p.Month, formatAmount(p.MRR), formatAmount(p.ARR)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSubscriberCSV writes the subscriber series as a BOM-prefixed CSV
// with a header row.
func WriteSubscriberCSV(w io.Writer, points []SubscriberPoint) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Month", "New", "Churned"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{p.Month, strconv.Itoa(p.New), strconv.Itoa(p.Churned)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

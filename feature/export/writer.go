package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	leadingColumns = []string{"item_name", "build_cost_per_unit", "volume", "top_market_group", "quantity"}
	hubColumns     = []string{"sell_price", "on_market", "stock", "order_price", "avg_daily_volume"}
)

const sheetName = "report"

// Header returns the report columns: five item columns, then five columns per hub.
func Header(hubs []string) []string {
	header := append([]string(nil), leadingColumns...)
	for _, hub := range hubs {
		prefix := strings.ToLower(hub)
		for _, col := range hubColumns {
			header = append(header, prefix+"_"+col)
		}
	}
	return header
}

// Values returns the row's cells in header order.
func (r Row) Values(hubs []string) []any {
	values := []any{r.ItemName, r.BuildCostPerUnit, r.Volume, r.TopMarketGroup, r.Quantity}
	for _, hub := range hubs {
		m := r.Hubs[hub]
		values = append(values, m.SellPrice, m.OnMarket, m.Stock, m.OrderPrice, m.AvgDailyVolume)
	}
	return values
}

// WriteCSV writes the header and rows as CSV.
func WriteCSV(w io.Writer, hubs []string, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(hubs)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		values := row.Values(hubs)
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %q: %w", row.ItemName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the header and rows to a single-sheet workbook, keeping numbers numeric.
func WriteXLSX(w io.Writer, hubs []string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := Header(hubs)
	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row.Values(hubs)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write xlsx row %q: %w", row.ItemName, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func formatCell(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(t)
	}
}

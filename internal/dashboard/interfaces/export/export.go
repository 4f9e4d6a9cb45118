// Package export renders dashboard tables as XLSX and PDF downloads.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"ultracare-admin/internal/dashboard/views"
)

// Content types of the rendered files.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// BuildDevicesXLSX renders the devices table with a status summary.
func BuildDevicesXLSX(view views.DevicesView) ([]byte, error) {
	rows := make([][]any, 0, len(view.Rows))
	for _, row := range view.Rows {
		rows = append(rows, []any{row.DeviceID, row.Name, row.Household, row.Location, string(row.Status), row.Registered, row.LastActive})
	}
	return buildWorkbook("devices",
		[]string{"Device ID", "Name", "Household", "Location", "Status", "Registered", "Last Active"},
		rows,
		[][]any{{"Online", view.Counts.Online}, {"Offline", view.Counts.Offline}},
	)
}

// BuildAlertsXLSX renders the filtered alerts table with status counts.
func BuildAlertsXLSX(view views.AlertsView) ([]byte, error) {
	rows := make([][]any, 0, len(view.Rows))
	for _, row := range view.Rows {
		rows = append(rows, []any{row.Timestamp, row.TypeLabel, row.DeviceID, row.HouseholdEmail, row.Resident, row.Confidence, string(row.Status)})
	}
	return buildWorkbook("alerts",
		[]string{"Time", "Type", "Device", "Household", "Resident", "Confidence", "Status"},
		rows,
		[][]any{
			{"Filter", view.Filter},
			{"New", view.Counts.New},
			{"Acknowledged", view.Counts.Acknowledged},
			{"Resolved", view.Counts.Resolved},
		},
	)
}

// BuildSubscriptionsXLSX renders committed plans per user.
func BuildSubscriptionsXLSX(rows []views.SubscriptionRow) ([]byte, error) {
	out := make([][]any, 0, len(rows))
	pro := 0
	for _, row := range rows {
		if row.CurrentPlan == "PRO" {
			pro++
		}
		out = append(out, []any{row.ID, row.Email, row.CurrentPlan, row.CurrentStatus})
	}
	return buildWorkbook("subscriptions",
		[]string{"User ID", "Email", "Plan", "Status"},
		out,
		[][]any{{"Users", len(rows)}, {"PRO", pro}},
	)
}

func buildWorkbook(sheet string, headers []string, rows [][]any, summary [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheet, cell, header)
	}
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	if len(summary) > 0 {
		if _, err := f.NewSheet("summary"); err != nil {
			return nil, err
		}
		for i, line := range summary {
			_ = f.SetCellValue("summary", fmt.Sprintf("A%d", i+1), line[0])
			_ = f.SetCellValue("summary", fmt.Sprintf("B%d", i+1), line[1])
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildAlertsPDF renders the filtered alerts table for printing.
func BuildAlertsPDF(view views.AlertsView, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "UltraCare Alerts")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Filter: %s", view.Filter))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generated.In(views.Location).Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("New: %d  Acknowledged: %d  Resolved: %d", view.Counts.New, view.Counts.Acknowledged, view.Counts.Resolved))
	pdf.Ln(8)

	widths := []float64{48, 36, 40, 62, 40, 24, 28}
	headers := []string{"Time", "Type", "Device", "Household", "Resident", "Conf.", "Status"}
	pdf.SetFont("Arial", "B", 9)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 6, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	for _, row := range view.Rows {
		cells := []string{row.Timestamp, row.TypeLabel, row.DeviceID, row.HouseholdEmail, row.Resident, row.Confidence, string(row.Status)}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, translate(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

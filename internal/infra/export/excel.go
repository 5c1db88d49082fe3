package export

import (
	"fmt"
	"io"
	"time"

	"lodgekeeper/internal/pkg/config"
	"lodgekeeper/internal/pkg/errs"
	"lodgekeeper/internal/usecase/queries"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Report"

// ExcelExporter writes a stay report as a single-sheet workbook.
type ExcelExporter struct {
	lodge config.LodgeConfig
}

func NewExcelExporter(cfg config.LodgeConfig) *ExcelExporter {
	return &ExcelExporter{lodge: cfg}
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) FileExtension() string {
	return "xlsx"
}

func (e *ExcelExporter) Write(w io.Writer, data *queries.ReportData) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return errs.Wrap(err, "failed to create report sheet")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errs.Wrap(err, "failed to drop default sheet")
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return errs.Wrap(err, "failed to create title style")
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return errs.Wrap(err, "failed to create header style")
	}

	f.SetCellValue(reportSheet, "A1", e.lodge.Name)
	f.SetCellStyle(reportSheet, "A1", "A1", titleStyle)
	f.SetCellValue(reportSheet, "A2", data.Title)
	f.SetCellValue(reportSheet, "A3", fmt.Sprintf("Generated %s", data.GeneratedAt.Format("2006-01-02 15:04")))

	headers := []string{"Room", "Guest", "Voucher No.", "Check-in", "Check-out", "Nights", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(reportSheet, cell, h)
		f.SetCellStyle(reportSheet, cell, cell, headerStyle)
	}

	for rowIdx, row := range data.Rows {
		voucher := ""
		if row.VoucherNumber != nil {
			voucher = *row.VoucherNumber
		}

		values := []any{
			row.RoomNumber,
			row.CustomerName,
			voucher,
			row.CheckInDate.Format(time.DateOnly),
			row.CheckOutDate.Format(time.DateOnly),
			row.Nights,
			row.Status,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+6)
			f.SetCellValue(reportSheet, cell, v)
		}
	}

	summaryRow := len(data.Rows) + 7
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	f.SetCellValue(reportSheet, cell, fmt.Sprintf("Reservations: %d    Nights: %d    Rooms booked: %d/%d    Occupancy: %.1f%%",
		data.TotalReservations, data.TotalNights, data.BookedRooms, data.TotalRooms, data.OccupancyPercent))

	f.SetColWidth(reportSheet, "A", "A", 10)
	f.SetColWidth(reportSheet, "B", "B", 28)
	f.SetColWidth(reportSheet, "C", "E", 14)
	f.SetColWidth(reportSheet, "F", "G", 10)

	if err := f.Write(w); err != nil {
		return errs.Wrap(err, "failed to write workbook")
	}
	return nil
}

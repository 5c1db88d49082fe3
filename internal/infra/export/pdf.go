package export

import (
	"fmt"
	"io"
	"time"

	"lodgekeeper/internal/pkg/config"
	"lodgekeeper/internal/pkg/errs"
	"lodgekeeper/internal/usecase/queries"

	"github.com/go-pdf/fpdf"
)

// PDFExporter renders a stay report as an A4 letterhead document.
type PDFExporter struct {
	lodge config.LodgeConfig
}

func NewPDFExporter(cfg config.LodgeConfig) *PDFExporter {
	return &PDFExporter{lodge: cfg}
}

func (e *PDFExporter) ContentType() string {
	return "application/pdf"
}

func (e *PDFExporter) FileExtension() string {
	return "pdf"
}

func (e *PDFExporter) Write(w io.Writer, data *queries.ReportData) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	e.writeLetterhead(pdf)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, data.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", data.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	e.writeTable(pdf, data)
	e.writeSummary(pdf, data)

	if err := pdf.Output(w); err != nil {
		return errs.Wrap(err, "failed to render PDF report")
	}
	return nil
}

func (e *PDFExporter) writeLetterhead(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, e.lodge.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, e.lodge.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Tel: %s | %s", e.lodge.Phone, e.lodge.Email), "", 1, "C", false, 0, "")
	pdf.Ln(6)
}

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Room", 18},
	{"Guest", 55},
	{"Voucher No.", 32},
	{"Check-in", 25},
	{"Check-out", 25},
	{"Nights", 15},
	{"Status", 20},
}

func (e *PDFExporter) writeTable(pdf *fpdf.Fpdf, data *queries.ReportData) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(data.Rows) == 0 {
		pdf.CellFormat(190, 8, "No reservations in this period", "1", 1, "C", false, 0, "")
		return
	}

	for _, row := range data.Rows {
		voucher := ""
		if row.VoucherNumber != nil {
			voucher = *row.VoucherNumber
		}

		cells := []string{
			row.RoomNumber,
			row.CustomerName,
			voucher,
			row.CheckInDate.Format(time.DateOnly),
			row.CheckOutDate.Format(time.DateOnly),
			fmt.Sprintf("%d", row.Nights),
			row.Status,
		}
		for i, cell := range cells {
			pdf.CellFormat(pdfColumns[i].width, 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (e *PDFExporter) writeSummary(pdf *fpdf.Fpdf, data *queries.ReportData) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Reservations: %d    Nights: %d    Rooms booked: %d/%d    Occupancy: %.1f%%",
		data.TotalReservations, data.TotalNights, data.BookedRooms, data.TotalRooms, data.OccupancyPercent), "", 1, "L", false, 0, "")
}

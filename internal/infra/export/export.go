package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/queries"

	"github.com/phpdave11/gofpdf"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

var csvHeader = []string{
	"id", "client_name", "client_email", "client_phone", "service_name", "date", "time",
	"duration", "total_amount", "status", "payment_verified", "created_at",
}

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

func (e *Exporter) Export(format string, meta queries.ExportMeta, bookings []*queries.BookingView) (*queries.ExportFile, error) {
	stamp := meta.GeneratedAt.Format("20060102-150405")
	switch strings.ToLower(format) {
	case "", FormatJSON:
		body, err := json.MarshalIndent(struct {
			Bookings   []*queries.BookingView `json:"bookings"`
			Count      int                    `json:"count"`
			ExportDate time.Time              `json:"export_date"`
		}{bookings, len(bookings), meta.GeneratedAt}, "", "  ")
		if err != nil {
			return nil, errs.Wrap(err, "encode json export")
		}
		return &queries.ExportFile{Filename: "bookings-" + stamp + ".json", ContentType: "application/json", Body: body}, nil
	case FormatCSV:
		body, err := renderCSV(bookings)
		if err != nil {
			return nil, err
		}
		return &queries.ExportFile{Filename: "bookings-" + stamp + ".csv", ContentType: "text/csv", Body: body}, nil
	case FormatPDF:
		body, err := renderPDF(meta, bookings)
		if err != nil {
			return nil, err
		}
		return &queries.ExportFile{Filename: "bookings-" + stamp + ".pdf", ContentType: "application/pdf", Body: body}, nil
	default:
		return nil, errs.Mark(errs.New("unsupported export format "+strconv.Quote(format)), queries.ErrUnsupportedExportFormat)
	}
}

func renderCSV(bookings []*queries.BookingView) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, errs.Wrap(err, "write csv header")
	}
	for _, b := range bookings {
		row := []string{
			b.ID.String(), b.ClientName, b.ClientEmail, b.ClientPhone, b.ServiceName, b.Date, b.Time,
			strconv.Itoa(b.Duration), strconv.FormatFloat(b.TotalAmount, 'f', 2, 64), b.Status,
			strconv.FormatBool(b.PaymentVerified), b.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, errs.Wrap(err, "write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errs.Wrap(err, "flush csv")
	}
	return buf.Bytes(), nil
}

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Date", 24}, {"Time", 14}, {"Client", 40}, {"Service", 44}, {"Status", 34}, {"Amount", 24},
}

func renderPDF(meta queries.ExportMeta, bookings []*queries.BookingView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	title := "Bookings"
	if meta.BusinessName != "" {
		title = meta.BusinessName + " - Bookings"
	}
	pdf.Cell(0, 10, title)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 8, "Generated "+meta.GeneratedAt.Format("2006-01-02 15:04 MST"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	var revenue float64
	for _, b := range bookings {
		cells := []string{b.Date, b.Time, b.ClientName, b.ServiceName, b.Status, fmt.Sprintf("%.2f", b.TotalAmount)}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, truncate(cells[i], int(col.width/2)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		if booking.Status(b.Status).EarnsRevenue() {
			revenue += b.TotalAmount
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Total bookings: %d    Revenue: %.2f", len(bookings), revenue))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errs.Wrap(err, "render pdf export")
	}
	return buf.Bytes(), nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "."
}

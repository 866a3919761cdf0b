package rollover

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

var reportColumns = []struct {
	title string
	width float64
}{
	{"Employee", 60},
	{"Old casual", 26},
	{"Rollover", 26},
	{"Encash", 26},
	{"New casual", 26},
	{"New sick", 26},
}

func renderReportPDF(year int, generatedAt time.Time, rows []ReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Year-end rollover %d", year), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Year-end leave rollover %d (dry run)", year))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated "+generatedAt.Format("2006-01-02 15:04 MST"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range reportColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(reportColumns[0].width, 6, r.Employee, "1", 0, "L", false, 0, "")
		for i, v := range []string{
			r.OldCasual.StringFixed(2),
			r.CasualRollover.StringFixed(2),
			r.CasualEncash.StringFixed(2),
			r.NewCasualBalance.StringFixed(2),
			r.NewSickBalance.StringFixed(2),
		} {
			pdf.CellFormat(reportColumns[i+1].width, 6, v, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(rows) == 0 {
		pdf.Cell(0, 6, "No employees to roll over.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

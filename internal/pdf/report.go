package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"blogsyte/internal/models"
)

// Generator renders admin reports (interface kept small so handlers can be
// tested with a stub).
type Generator interface {
	RenderAdminStats(w io.Writer, stats models.AdminStats, generatedAt time.Time) error
}

type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

func (g *ReportGenerator) RenderAdminStats(w io.Writer, stats models.AdminStats, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Blogsyte Platform Report", false)
	pdf.SetAuthor("Blogsyte", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "BLOGSYTE PLATFORM REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Generated "+generatedAt.Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetDrawColor(120, 120, 120)
	x, y := pdf.GetXY()
	pdf.Line(x, y, 190, y)
	pdf.Ln(6)

	rows := []struct {
		label string
		value int
	}{
		{"Registered users", stats.TotalUsers},
		{"Banned users", stats.BannedUsers},
		{"Blog posts", stats.TotalBlogs},
		{"Likes", stats.TotalLikes},
		{"Comments", stats.TotalComments},
		{"Views", stats.TotalViews},
	}

	pdf.SetFont("Helvetica", "", 12)
	for _, row := range rows {
		pdf.CellFormat(110, 9, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 9, fmt.Sprintf("%d", row.value), "1", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

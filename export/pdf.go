package export

import (
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/arealens-org/arealens/engine"
	"github.com/arealens-org/arealens/extract"
)

// ============================================================================
// PDF REPORT — A4 analysis report: scope, summary, per-locality insights
// ============================================================================

// Report carries everything the PDF renders.
type Report struct {
	Areas     []string
	Cities    []string
	YearRange *extract.YearRange
	Summary   string
	Insights  engine.Insights
}

// WritePDF renders the report and writes the PDF bytes to w.
// Core fonts are Latin-1, so amounts print with an "Rs" prefix.
func WritePDF(w io.Writer, r Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "Real Estate Analysis Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Scope: "+scopeLabel(r.Areas, r.Cities), "", 1, "L", false, 0, "")
	if r.YearRange != nil {
		pdf.CellFormat(0, 5, fmt.Sprintf("Years: %d - %d", r.YearRange.Start, r.YearRange.End),
			"", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, sanitize(r.Summary), "", "L", false)
	pdf.Ln(4)

	if len(r.Insights.Areas) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Locality Insights", "", 1, "L", false, 0, "")
		pdf.Ln(1)

		// Ranked order keeps the report deterministic and puts the best
		// opportunities first.
		for _, ranked := range r.Insights.RankedAreas {
			s := r.Insights.Areas[ranked.Area]
			if s == nil {
				continue
			}
			writeAreaBlock(pdf, ranked.Area, s)
		}
	}

	return pdf.Output(w)
}

func writeAreaBlock(pdf *fpdf.Fpdf, area string, s *engine.AreaStats) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5, "- "+sanitize(area), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	lines := []string{
		fmt.Sprintf("Period: %d - %d", s.YearStart, s.YearEnd),
		fmt.Sprintf("Avg price: Rs %s | CAGR: %.1f%%", engine.FormatAmount(s.AvgPrice), s.PriceCAGR*100),
		fmt.Sprintf("Demand trend: %s | Total demand: %s", s.DemandTrend, engine.FormatAmount(s.TotalDemand)),
		fmt.Sprintf("Investment score: %.1f/10", s.InvestmentScore),
	}
	if s.PriceForecastNextYear != nil {
		lines = append(lines,
			fmt.Sprintf("Next year estimated price: Rs %s", engine.FormatAmount(*s.PriceForecastNextYear)))
	}

	for _, line := range lines {
		pdf.CellFormat(5, 4.5, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 4.5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func scopeLabel(areas, cities []string) string {
	var parts []string
	if len(areas) > 0 {
		parts = append(parts, strings.Join(areas, ", "))
	}
	if len(cities) > 0 {
		parts = append(parts, "in "+strings.Join(cities, ", "))
	}
	if len(parts) == 0 {
		return "All data"
	}
	return strings.Join(parts, " ")
}

// sanitize replaces characters outside the core-font range.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "₹", "Rs ")
	s = strings.ReplaceAll(s, "’", "'")
	return s
}

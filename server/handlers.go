package server

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arealens-org/arealens/engine"
	"github.com/arealens-org/arealens/export"
	"github.com/arealens-org/arealens/extract"
)

// ============================================================================
// HANDLERS
// ============================================================================
// POST /api/query/        — free-text query, explicit fields override extraction
// GET  /api/download_csv/ — filtered rows as CSV attachment
// GET  /api/report_pdf/   — insight report as PDF attachment
// GET  /api/localities/   — distinct sorted locality list
// ============================================================================

type queryRequest struct {
	Message   string   `json:"message"`
	Metric    string   `json:"metric"`
	Areas     []string `json:"areas"`
	Cities    []string `json:"cities"`
	StartYear *int     `json:"start_year"`
	EndYear   *int     `json:"end_year"`
}

func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	ds := s.loadDataset(c)
	if ds == nil {
		return
	}

	explicit := engine.Query{
		Areas:  req.Areas,
		Cities: req.Cities,
		Metric: extract.Metric(req.Metric),
	}
	if req.StartYear != nil && req.EndYear != nil {
		explicit.YearRange = &extract.YearRange{Start: *req.StartYear, End: *req.EndYear}
	}

	q := engine.ExtractQuery(ds, req.Message, s.opts...).Merge(explicit)
	c.JSON(http.StatusOK, engine.ExecuteQuery(ds, q, s.opts...))
}

func (s *Server) handleDownloadCSV(c *gin.Context) {
	ds := s.loadDataset(c)
	if ds == nil {
		return
	}

	q := s.queryFromParams(c)
	sub := engine.Filter(ds, q)

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, sub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="filtered_data.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (s *Server) handleReportPDF(c *gin.Context) {
	ds := s.loadDataset(c)
	if ds == nil {
		return
	}

	q := s.queryFromParams(c)
	if m := c.Query("metric"); m != "" {
		q.Metric = extract.Metric(m)
	}

	res := engine.ExecuteQuery(ds, q, s.opts...)

	var buf bytes.Buffer
	err := export.WritePDF(&buf, export.Report{
		Areas:     q.Areas,
		Cities:    q.Cities,
		YearRange: q.YearRange,
		Summary:   res.Summary,
		Insights:  res.Insights,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="real_estate_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (s *Server) handleLocalities(c *gin.Context) {
	ds := s.loadDataset(c)
	if ds == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"localities": ds.Localities()})
}

// queryFromParams reads the export endpoints' explicit parameters: comma
// lists for areas/cities, start_year/end_year bounds.
func (s *Server) queryFromParams(c *gin.Context) engine.Query {
	return engine.Query{
		Areas:     splitParam(c.Query("areas")),
		Cities:    splitParam(c.Query("cities")),
		YearRange: yearRangeFromParams(c.Query("start_year"), c.Query("end_year")),
	}
}

func splitParam(param string) []string {
	var out []string
	for _, p := range strings.Split(param, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

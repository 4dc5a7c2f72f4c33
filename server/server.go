// Package server exposes the query and export pipeline over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arealens-org/arealens/dataset"
	"github.com/arealens-org/arealens/engine"
	"github.com/arealens-org/arealens/extract"
)

// Server wires the dataset store and engine options to HTTP handlers.
type Server struct {
	store         *dataset.Store
	opts          []engine.Option
	allowedOrigin string
}

// New creates a server. Engine options apply to every request.
func New(store *dataset.Store, allowedOrigin string, opts ...engine.Option) *Server {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return &Server{store: store, opts: opts, allowedOrigin: allowedOrigin}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(s.cors())

	api := r.Group("/api")
	api.POST("/query/", s.handleQuery)
	api.GET("/download_csv/", s.handleDownloadCSV)
	api.GET("/report_pdf/", s.handleReportPDF)
	api.GET("/localities/", s.handleLocalities)

	return r
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", s.allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// loadDataset resolves the cached dataset or writes the hard failure.
// Returns nil after responding when the load failed.
func (s *Server) loadDataset(c *gin.Context) *dataset.Dataset {
	ds, err := s.store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil
	}
	return ds
}

// yearRangeFromParams builds an inclusive range from two string params.
// Either side missing or unparsable yields no range, matching the export
// endpoints' lenient contract.
func yearRangeFromParams(start, end string) *extract.YearRange {
	if start == "" || end == "" {
		return nil
	}
	s, err1 := atoi(start)
	e, err2 := atoi(end)
	if err1 != nil || err2 != nil {
		return nil
	}
	return &extract.YearRange{Start: s, End: e}
}

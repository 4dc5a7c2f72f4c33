// Package arealens answers natural-language questions about real-estate
// price and demand trends for localities and cities, backed by a single
// tabular dataset.
//
// Usage:
//
//	import (
//	    "github.com/arealens-org/arealens/dataset"
//	    "github.com/arealens-org/arealens/engine"
//	)
//
//	store := dataset.NewStore(dataset.NewExcelSource(path), dataset.DefaultFieldMapping())
//	ds, err := store.Load()
//	result := engine.Execute(ds, "price trend for Wakad 2019 to 2023")
//
// Execute parses free text into localities, cities, a year range, and a
// metric; filters the dataset; and returns a render-ready bundle (chart
// series, capped table rows, ranked investment insights, and a summary).
//
// The engine never calls an external service — all computation is local.
// An optional summary rewrite through a text-generation API lives in the
// summarizer package and degrades to the deterministic text on any failure.
package arealens

package ports

import (
	"context"
	"io"
)

// CityStat aggregates the listings of one city.
type CityStat struct {
	City         string  `json:"city"`
	Count        int     `json:"count"`
	AveragePrice float64 `json:"average_price"`
}

// QualityIssue flags a property whose data fails a quality rule.
type QualityIssue struct {
	PropertyID string `json:"property_id"`
	Title      string `json:"title"`
	Rule       string `json:"rule"`
}

// QualityReport summarises data-quality problems across all properties.
type QualityReport struct {
	Checked int            `json:"checked"`
	Issues  []QualityIssue `json:"issues"`
}

// ReportService produces aggregate reports over the property table.
type ReportService interface {
	// CityStatistics returns per-city counters sorted by count descending.
	CityStatistics(ctx context.Context) ([]CityStat, error)
	// ExportPublishedCSV streams the published properties as CSV.
	ExportPublishedCSV(ctx context.Context, w io.Writer) error
	Quality(ctx context.Context) (*QualityReport, error)
}

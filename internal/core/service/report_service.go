package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/immoconnect/listing-api/internal/core/ports"
)

// minTitleLength is the threshold below which a title is flagged as too short.
const minTitleLength = 5

var exportHeader = []string{"id", "title", "price", "city", "agent_id"}

// ReportService computes aggregate reports over the property table.
type ReportService struct {
	repo   ports.PropertyRepository
	logger zerolog.Logger
}

func NewReportService(repo ports.PropertyRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, logger: logger}
}

// CityStatistics returns the listing count and average price per city,
// sorted by count descending, ties broken by city name ascending.
func (s *ReportService) CityStatistics(ctx context.Context) ([]ports.CityStat, error) {
	props, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	type agg struct {
		count int
		total float64
	}
	byCity := make(map[string]*agg)
	for _, p := range props {
		a, ok := byCity[p.City]
		if !ok {
			a = &agg{}
			byCity[p.City] = a
		}
		a.count++
		a.total += p.Price
	}

	stats := make([]ports.CityStat, 0, len(byCity))
	for city, a := range byCity {
		stats = append(stats, ports.CityStat{
			City:         city,
			Count:        a.count,
			AveragePrice: a.total / float64(a.count),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].City < stats[j].City
	})
	return stats, nil
}

// ExportPublishedCSV streams the published properties as CSV with the
// columns id, title, price, city, agent_id.
func (s *ReportService) ExportPublishedCSV(ctx context.Context, w io.Writer) error {
	props, err := s.repo.ListPublished(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range props {
		record := []string{
			p.ID,
			p.Title,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			p.City,
			p.AgentID,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()

	s.logger.Info().Int("rows", len(props)).Msg("exported published properties")
	return cw.Error()
}

// Quality flags properties that fail basic data-quality rules: non-positive
// price, short title, missing city, missing description.
func (s *ReportService) Quality(ctx context.Context) (*ports.QualityReport, error) {
	props, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &ports.QualityReport{Checked: len(props), Issues: []ports.QualityIssue{}}
	for _, p := range props {
		if p.Price <= 0 {
			report.Issues = append(report.Issues, ports.QualityIssue{PropertyID: p.ID, Title: p.Title, Rule: "non_positive_price"})
		}
		if utf8.RuneCountInString(p.Title) < minTitleLength {
			report.Issues = append(report.Issues, ports.QualityIssue{PropertyID: p.ID, Title: p.Title, Rule: "short_title"})
		}
		if p.City == "" {
			report.Issues = append(report.Issues, ports.QualityIssue{PropertyID: p.ID, Title: p.Title, Rule: "missing_city"})
		}
		if p.Description == "" {
			report.Issues = append(report.Issues, ports.QualityIssue{PropertyID: p.ID, Title: p.Title, Rule: "missing_description"})
		}
	}
	return report, nil
}

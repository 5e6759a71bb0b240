package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/immoconnect/listing-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// CityStatistics tests
// ---------------------------------------------------------------------------

func TestReportService_CityStatistics(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewReportService(repo, discardLogger)

	seedProperty(repo, "p1", func(p *domain.Property) { p.City = "Lyon"; p.Price = 200000 })
	seedProperty(repo, "p2", func(p *domain.Property) { p.City = "Lyon"; p.Price = 300000 })
	seedProperty(repo, "p3", func(p *domain.Property) { p.City = "Paris"; p.Price = 500000; p.IsPublished = false })

	stats, err := svc.CityStatistics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 cities, got %d", len(stats))
	}

	// Sorted by count descending; drafts count too.
	if stats[0].City != "Lyon" || stats[0].Count != 2 {
		t.Errorf("stats[0]: expected Lyon with 2 listings, got %+v", stats[0])
	}
	if stats[0].AveragePrice != 250000 {
		t.Errorf("Lyon average: expected 250000, got %v", stats[0].AveragePrice)
	}
	if stats[1].City != "Paris" || stats[1].Count != 1 {
		t.Errorf("stats[1]: expected Paris with 1 listing, got %+v", stats[1])
	}
}

func TestReportService_CityStatistics_TiesSortedByCity(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewReportService(repo, discardLogger)

	seedProperty(repo, "p1", func(p *domain.Property) { p.City = "Paris" })
	seedProperty(repo, "p2", func(p *domain.Property) { p.City = "Lyon" })
	seedProperty(repo, "p3", func(p *domain.Property) { p.City = "Bordeaux" })

	stats, err := svc.CityStatistics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Bordeaux", "Lyon", "Paris"}
	for i, city := range want {
		if stats[i].City != city {
			t.Errorf("stats[%d]: expected %q, got %q", i, city, stats[i].City)
		}
	}
}

func TestReportService_CityStatistics_Empty(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewReportService(repo, discardLogger)

	stats, err := svc.CityStatistics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("expected no stats, got %d", len(stats))
	}
}

// ---------------------------------------------------------------------------
// CSV export tests
// ---------------------------------------------------------------------------

func TestReportService_ExportPublishedCSV(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewReportService(repo, discardLogger)

	seedProperty(repo, "p1", func(p *domain.Property) {
		p.Title = "Appartement T3"
		p.Price = 250000.5
		p.City = "Lyon"
		p.AgentID = "agent-1"
	})
	seedProperty(repo, "p2", func(p *domain.Property) { p.IsPublished = false })

	var buf bytes.Buffer
	if err := svc.ExportPublishedCSV(context.Background(), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output must be valid csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 published row, got %d rows", len(rows))
	}

	wantHeader := []string{"id", "title", "price", "city", "agent_id"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d]: expected %q, got %q", i, col, rows[0][i])
		}
	}
	want := []string{"p1", "Appartement T3", "250000.5", "Lyon", "agent-1"}
	for i, col := range want {
		if rows[1][i] != col {
			t.Errorf("row[%d]: expected %q, got %q", i, col, rows[1][i])
		}
	}
}

func TestReportService_ExportPublishedCSV_EmptyKeepsHeader(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewReportService(repo, discardLogger)

	var buf bytes.Buffer
	if err := svc.ExportPublishedCSV(context.Background(), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output must be valid csv: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}

// ---------------------------------------------------------------------------
// Quality report tests
// ---------------------------------------------------------------------------

func TestReportService_Quality_FlagsAllRules(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewReportService(repo, discardLogger)

	seedProperty(repo, "clean", nil)
	seedProperty(repo, "bad", func(p *domain.Property) {
		p.Title = "T1" // shorter than the 5-rune minimum
		p.Price = 0
		p.City = ""
		p.Description = ""
	})

	report, err := svc.Quality(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Checked != 2 {
		t.Errorf("checked: expected 2, got %d", report.Checked)
	}

	rules := make(map[string]int)
	for _, issue := range report.Issues {
		if issue.PropertyID != "bad" {
			t.Errorf("unexpected issue on %s: %+v", issue.PropertyID, issue)
			continue
		}
		rules[issue.Rule]++
	}
	for _, rule := range []string{"non_positive_price", "short_title", "missing_city", "missing_description"} {
		if rules[rule] != 1 {
			t.Errorf("expected one %q issue, got %d", rule, rules[rule])
		}
	}
}

func TestReportService_Quality_ShortTitleCountsRunes(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewReportService(repo, discardLogger)

	// Five runes but more than five bytes; must not be flagged.
	seedProperty(repo, "p1", func(p *domain.Property) { p.Title = "ééééé" })

	report, err := svc.Quality(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, issue := range report.Issues {
		if issue.Rule == "short_title" {
			t.Errorf("five-rune title must not be flagged: %+v", issue)
		}
	}
}

func TestReportService_Quality_CleanDataset(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewReportService(repo, discardLogger)

	seedProperty(repo, "p1", nil)
	seedProperty(repo, "p2", func(p *domain.Property) { p.IsPublished = false })

	report, err := svc.Quality(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Errorf("expected no issues, got %+v", report.Issues)
	}
}

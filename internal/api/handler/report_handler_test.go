package handler

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/immoconnect/listing-api/internal/core/ports"
)

type stubReportService struct {
	cityStatsFn func(ctx context.Context) ([]ports.CityStat, error)
	exportFn    func(ctx context.Context, w io.Writer) error
	qualityFn   func(ctx context.Context) (*ports.QualityReport, error)
}

func (s *stubReportService) CityStatistics(ctx context.Context) ([]ports.CityStat, error) {
	return s.cityStatsFn(ctx)
}

func (s *stubReportService) ExportPublishedCSV(ctx context.Context, w io.Writer) error {
	return s.exportFn(ctx, w)
}

func (s *stubReportService) Quality(ctx context.Context) (*ports.QualityReport, error) {
	return s.qualityFn(ctx)
}

func TestReportHandler_ExportCSV_Success(t *testing.T) {
	stub := &stubReportService{
		exportFn: func(_ context.Context, w io.Writer) error {
			cw := csv.NewWriter(w)
			_ = cw.Write([]string{"id", "title", "price", "city", "agent_id"})
			_ = cw.Write([]string{"p1", "Appartement T3", "250000", "Lyon", "agent-1"})
			cw.Flush()
			return cw.Error()
		},
	}
	handler := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/exports/properties.csv", "")
	asAgent(c)

	if err := handler.ExportCSV(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/csv" {
		t.Errorf("content type: expected text/csv, got %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd == "" {
		t.Error("expected an attachment content disposition")
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("body must be valid csv: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "p1" {
		t.Errorf("unexpected csv body: %+v", rows)
	}
}

func TestReportHandler_ExportCSV_FetchFailureNotCommitted(t *testing.T) {
	fetchErr := errors.New("db unavailable")
	stub := &stubReportService{
		exportFn: func(_ context.Context, _ io.Writer) error {
			return fetchErr
		},
	}
	handler := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/exports/properties.csv", "")
	asAgent(c)

	err := handler.ExportCSV(c)
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected the fetch error to propagate, got %v", err)
	}
	// Nothing was written, so the central error handler can still respond.
	if c.Response().Committed {
		t.Error("response must not be committed before the first csv write")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestReportHandler_CityStatistics_Success(t *testing.T) {
	stub := &stubReportService{
		cityStatsFn: func(_ context.Context) ([]ports.CityStat, error) {
			return []ports.CityStat{{City: "Lyon", Count: 2, AveragePrice: 250000}}, nil
		},
	}
	handler := NewReportHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/reports/cities", "")
	asAgent(c)

	if err := handler.CityStatistics(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReportHandler_Quality_ErrorPropagates(t *testing.T) {
	stub := &stubReportService{
		qualityFn: func(_ context.Context) (*ports.QualityReport, error) {
			return nil, fmt.Errorf("scan properties: %w", errors.New("db unavailable"))
		},
	}
	handler := NewReportHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/v1/reports/quality", "")
	asAgent(c)

	if err := handler.Quality(c); err == nil {
		t.Fatal("expected the service error to propagate")
	}
}

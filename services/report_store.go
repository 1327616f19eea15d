// services/report_store.go
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
)

const createReportsTable = `
CREATE TABLE IF NOT EXISTS brand_reports (
	report_id  UUID PRIMARY KEY,
	brand      TEXT NOT NULL,
	category   TEXT NOT NULL,
	provider   TEXT NOT NULL,
	source     TEXT NOT NULL,
	strategy   TEXT NOT NULL DEFAULT '',
	cost       DOUBLE PRECISION NOT NULL DEFAULT 0,
	report     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type reportStore struct {
	db *sqlx.DB
}

// NewReportStore creates the Postgres report sink.
func NewReportStore(db *sqlx.DB) ReportStore {
	return &reportStore{db: db}
}

func (s *reportStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createReportsTable); err != nil {
		return fmt.Errorf("failed to ensure brand_reports table: %w", err)
	}
	return nil
}

func (s *reportStore) SaveReport(ctx context.Context, req *models.ResearchRequest, result *models.ResearchResult) (uuid.UUID, error) {
	if result.Report == nil {
		return uuid.Nil, fmt.Errorf("result carries no report to save")
	}

	reportJSON, err := json.Marshal(result.Report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to serialize report: %w", err)
	}

	reportID := uuid.New()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO brand_reports (report_id, brand, category, provider, source, strategy, cost, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		reportID, req.Brand, req.Category, string(result.Provider),
		string(result.Source), result.Strategy, result.Cost, reportJSON,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert report: %w", err)
	}

	return reportID, nil
}

func (s *reportStore) GetReport(ctx context.Context, reportID uuid.UUID) (*StoredReport, error) {
	var stored StoredReport
	err := s.db.GetContext(ctx, &stored,
		`SELECT report_id, brand, category, provider, source, strategy, cost, report, created_at
		 FROM brand_reports WHERE report_id = $1`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load report %s: %w", reportID, err)
	}
	return &stored, nil
}

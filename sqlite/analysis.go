package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/kwrank"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ kwrank.AnalysisService = (*AnalysisService)(nil)

// AnalysisService implements kwrank.AnalysisService using SQLite.
type AnalysisService struct {
	db *DB
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(db *DB) *AnalysisService {
	return &AnalysisService{db: db}
}

// CreateAnalysis stores the analysis and its keywords in one transaction.
// A new ID is assigned unless the analysis already has one; AnalyzedAt is set
// to now if it is zero.
func (s *AnalysisService) CreateAnalysis(ctx context.Context, a *kwrank.Analysis) error {
	if err := a.Validate(); err != nil {
		return err
	}

	if a.ID == "" {
		a.ID = uuid.New().String()
	} else {
		var exists bool
		if err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM analyses WHERE id = ?)", a.ID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return kwrank.Errorf(kwrank.ECONFLICT, "analysis %s already exists", a.ID)
		}
	}
	if a.AnalyzedAt.IsZero() {
		a.AnalyzedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO analyses (id, source_url, status, text_hash, text_bytes, error, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.SourceURL, string(a.Status), a.TextHash, a.TextBytes, a.Error, formatTime(a.AnalyzedAt)); err != nil {
		return err
	}

	for i, kw := range a.Keywords {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO analysis_keywords (analysis_id, position, word, weight)
			VALUES (?, ?, ?, ?)
		`, a.ID, i, kw.Word, kw.Weight); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindAnalysisByID retrieves an analysis with its keywords.
func (s *AnalysisService) FindAnalysisByID(ctx context.Context, id string) (*kwrank.Analysis, error) {
	analyses, err := s.FindAnalyses(ctx, kwrank.AnalysisFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(analyses) == 0 {
		return nil, kwrank.Errorf(kwrank.ENOTFOUND, "analysis not found")
	}
	return analyses[0], nil
}

// FindAnalyses retrieves analyses matching the filter, newest first.
func (s *AnalysisService) FindAnalyses(ctx context.Context, filter kwrank.AnalysisFilter) ([]*kwrank.Analysis, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, status, text_hash, text_bytes, error, analyzed_at FROM analyses WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY analyzed_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	analyses, err := s.scanAnalyses(ctx, query.String(), args)
	if err != nil {
		return nil, err
	}

	// Keywords are loaded after the analyses cursor is closed; the pool
	// holds a single connection.
	for _, a := range analyses {
		if a.Keywords, err = s.findKeywords(ctx, a.ID); err != nil {
			return nil, err
		}
	}
	return analyses, nil
}

func (s *AnalysisService) scanAnalyses(ctx context.Context, query string, args []any) ([]*kwrank.Analysis, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []*kwrank.Analysis
	for rows.Next() {
		var a kwrank.Analysis
		var status, analyzedAt string

		if err := rows.Scan(&a.ID, &a.SourceURL, &status, &a.TextHash, &a.TextBytes, &a.Error, &analyzedAt); err != nil {
			return nil, err
		}
		a.Status = kwrank.Status(status)
		if a.AnalyzedAt, err = parseTime(analyzedAt, "analyzed_at"); err != nil {
			return nil, err
		}
		analyses = append(analyses, &a)
	}
	return analyses, rows.Err()
}

func (s *AnalysisService) findKeywords(ctx context.Context, analysisID string) ([]kwrank.Keyword, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT word, weight FROM analysis_keywords
		WHERE analysis_id = ?
		ORDER BY position ASC
	`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords []kwrank.Keyword
	for rows.Next() {
		var kw kwrank.Keyword
		if err := rows.Scan(&kw.Word, &kw.Weight); err != nil {
			return nil, err
		}
		keywords = append(keywords, kw)
	}
	return keywords, rows.Err()
}

// DeleteAnalysis permanently removes an analysis. Its keywords are removed
// by the foreign key cascade.
func (s *AnalysisService) DeleteAnalysis(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return kwrank.Errorf(kwrank.ENOTFOUND, "analysis not found")
	}
	return nil
}


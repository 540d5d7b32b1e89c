package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/copyforge/optimizer/internal/domain"
)

// OptimizationHistoryRepository handles database operations for optimization
// history.
type OptimizationHistoryRepository struct {
	db *sqlx.DB
}

// NewOptimizationHistoryRepository creates a new optimization history
// repository.
func NewOptimizationHistoryRepository(db *sqlx.DB) *OptimizationHistoryRepository {
	return &OptimizationHistoryRepository{db: db}
}

// OptimizationStats represents a user's aggregate optimization statistics.
type OptimizationStats struct {
	TotalOptimizations  int            `json:"total_optimizations"`
	AvgSEOScore         float64        `json:"avg_seo_score"`
	AvgReadabilityScore float64        `json:"avg_readability_score"`
	AvgProcessingTimeMs float64        `json:"avg_processing_time_ms"`
	ContentTypes        map[string]int `json:"content_types"`
}

// Create inserts a new optimization history record and fills in the generated
// ID and timestamp.
func (r *OptimizationHistoryRepository) Create(ctx context.Context, record *domain.OptimizationRecord) error {
	query := `
		INSERT INTO optimization_history (
			user_id, content_type, tone, keywords,
			seo_score, readability_score, suggestion_count, processing_time_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		record.UserID,
		record.ContentType,
		record.Tone,
		pq.Array(record.Keywords),
		record.SEOScore,
		record.ReadabilityScore,
		record.SuggestionCount,
		record.ProcessingTimeMs,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create optimization history: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's most recent optimization records, newest
// first.
func (r *OptimizationHistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.OptimizationRecord, error) {
	query := `
		SELECT id, user_id, content_type, tone, keywords,
		       seo_score, readability_score, suggestion_count, processing_time_ms,
		       created_at
		FROM optimization_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list optimization history: %w", err)
	}
	defer rows.Close()

	records := []domain.OptimizationRecord{}
	for rows.Next() {
		var record domain.OptimizationRecord
		if scanErr := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.ContentType,
			&record.Tone,
			pq.Array(&record.Keywords),
			&record.SEOScore,
			&record.ReadabilityScore,
			&record.SuggestionCount,
			&record.ProcessingTimeMs,
			&record.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan optimization history: %w", scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate optimization history: %w", rowsErr)
	}

	return records, nil
}

// GetStats retrieves a user's aggregate statistics including the distribution
// of optimized content types.
func (r *OptimizationHistoryRepository) GetStats(ctx context.Context, userID string) (*OptimizationStats, error) {
	stats := OptimizationStats{ContentTypes: map[string]int{}}

	query := `
		SELECT
			COUNT(*) as total_optimizations,
			COALESCE(AVG(seo_score), 0) as avg_seo_score,
			COALESCE(AVG(readability_score), 0) as avg_readability_score,
			COALESCE(AVG(processing_time_ms), 0) as avg_processing_time_ms
		FROM optimization_history
		WHERE user_id = $1
	`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.TotalOptimizations,
		&stats.AvgSEOScore,
		&stats.AvgReadabilityScore,
		&stats.AvgProcessingTimeMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get optimization stats: %w", err)
	}

	typeQuery := `
		SELECT content_type, COUNT(*) as count
		FROM optimization_history
		WHERE user_id = $1
		GROUP BY content_type
	`

	rows, err := r.db.QueryContext(ctx, typeQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get content type distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var contentType string
		var count int
		if scanErr := rows.Scan(&contentType, &count); scanErr != nil {
			return nil, fmt.Errorf("failed to scan content type distribution: %w", scanErr)
		}
		stats.ContentTypes[contentType] = count
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate content type distribution: %w", rowsErr)
	}

	return &stats, nil
}

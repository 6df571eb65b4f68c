package db

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"

	"moodring/internal/domain"
)

// Store persists classification results for the analytics side of the
// application. Classification itself never depends on it; when no DSN is
// configured the server simply runs without a store.
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS mood_classifications (
			id TEXT PRIMARY KEY,
			primary_mood TEXT NOT NULL,
			secondary_mood TEXT,
			confidence DOUBLE PRECISION NOT NULL,
			complexity TEXT NOT NULL,
			raw_emotions JSONB NOT NULL DEFAULT '{}'::jsonb,
			profile JSONB NOT NULL DEFAULT '{}'::jsonb,
			analyzed_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_mood_classifications_analyzed ON mood_classifications(analyzed_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_mood_classifications_primary ON mood_classifications(primary_mood);`,
	}
	for _, q := range queries {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) SaveClassification(ctx context.Context, mood domain.ClassifiedMood) error {
	rawJSON, err := json.Marshal(mood.RawEmotions)
	if err != nil {
		return fmt.Errorf("encode raw emotions: %w", err)
	}
	profileJSON, err := json.Marshal(mood.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	var secondary *string
	if mood.Secondary != "" {
		secondary = &mood.Secondary
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO mood_classifications
			(id, primary_mood, secondary_mood, confidence, complexity, raw_emotions, profile, analyzed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		mood.ID, mood.Primary, secondary, mood.Confidence, string(mood.Complexity),
		rawJSON, profileJSON, mood.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("save classification: %w", err)
	}
	return nil
}

func (s *Store) RecentClassifications(ctx context.Context, limit int) ([]domain.ClassifiedMood, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, primary_mood, secondary_mood, confidence, complexity, raw_emotions, profile, analyzed_at
		 FROM mood_classifications
		 ORDER BY analyzed_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ClassifiedMood, 0, limit)
	for rows.Next() {
		var (
			mood        domain.ClassifiedMood
			secondary   *string
			complexity  string
			rawJSON     []byte
			profileJSON []byte
			analyzedAt  time.Time
		)
		if err := rows.Scan(&mood.ID, &mood.Primary, &secondary, &mood.Confidence,
			&complexity, &rawJSON, &profileJSON, &analyzedAt); err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		if secondary != nil {
			mood.Secondary = *secondary
		}
		mood.Complexity = domain.Complexity(complexity)
		mood.AnalyzedAt = analyzedAt
		if err := json.Unmarshal(rawJSON, &mood.RawEmotions); err != nil {
			return nil, fmt.Errorf("decode raw emotions: %w", err)
		}
		if err := json.Unmarshal(profileJSON, &mood.Profile); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		out = append(out, mood)
	}
	return out, rows.Err()
}

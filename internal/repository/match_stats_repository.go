package repository

import (
	"context"

	"trademart/internal/database"
)

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// MatchStats aggregates the persisted match history.
type MatchStats struct {
	MatchesToday        int             `json:"matches_today"`
	SuccessfulLast30d   int             `json:"successful_matches_30d"`
	AverageScore        float64         `json:"average_match_score"`
	TopCategories       []CategoryCount `json:"top_categories"`
	SuccessRate         float64         `json:"success_rate"`
}

type MatchStatsRepository interface {
	Collect(ctx context.Context) (MatchStats, error)
}

type PostgresMatchStatsRepository struct {
	db database.DB
}

func NewPostgresMatchStatsRepository(db database.DB) *PostgresMatchStatsRepository {
	return &PostgresMatchStatsRepository{db: db}
}

func (r *PostgresMatchStatsRepository) Collect(ctx context.Context) (MatchStats, error) {
	var s MatchStats

	row := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE created_at >= date_trunc('day', now())),
			COUNT(*) FILTER (WHERE created_at >= now() - interval '30 days'
				AND confidence_level = 'high'),
			COALESCE(AVG(match_score), 0),
			COALESCE(
				COUNT(*) FILTER (WHERE confidence_level = 'high')::float
					/ NULLIF(COUNT(*), 0),
				0)
		 FROM match_results`,
	)
	if err := row.Scan(&s.MatchesToday, &s.SuccessfulLast30d, &s.AverageScore, &s.SuccessRate); err != nil {
		return MatchStats{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT br.category, COUNT(*) AS n
		 FROM match_results mr
		 JOIN buyer_requirements br ON br.id = mr.requirement_id
		 GROUP BY br.category
		 ORDER BY n DESC, br.category ASC
		 LIMIT 5`,
	)
	if err != nil {
		return MatchStats{}, err
	}
	defer rows.Close()

	s.TopCategories = make([]CategoryCount, 0, 5)
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return MatchStats{}, err
		}
		s.TopCategories = append(s.TopCategories, cc)
	}
	if err := rows.Err(); err != nil {
		return MatchStats{}, err
	}

	return s, nil
}

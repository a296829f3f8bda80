package repository

import (
	"context"
	"encoding/json"
	"time"

	"trademart/internal/database"
	"trademart/internal/domain/matching"
)

// MatchResultRepository persists scoring snapshots. Inserts are
// insert-if-absent: a re-scored pair never overwrites the first
// recorded result.
type MatchResultRepository interface {
	InsertIgnore(ctx context.Context, results []matching.MatchResult) error
}

type PostgresMatchResultRepository struct {
	db database.DB
}

func NewPostgresMatchResultRepository(db database.DB) *PostgresMatchResultRepository {
	return &PostgresMatchResultRepository{db: db}
}

func (r *PostgresMatchResultRepository) InsertIgnore(ctx context.Context, results []matching.MatchResult) error {
	for _, m := range results {
		factors, err := json.Marshal(m.Factors)
		if err != nil {
			return err
		}

		createdAt := m.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		_, err = r.db.Exec(ctx,
			`INSERT INTO match_results
				(id, requirement_id, offering_id, buyer_id, seller_id,
				 match_score, match_factors, confidence_level,
				 estimated_success_probability, match_reasons, potential_issues, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			 ON CONFLICT (id) DO NOTHING`,
			m.MatchID, m.RequirementID, m.OfferingID, m.BuyerID, m.SellerID,
			m.Score, factors, string(m.Confidence),
			m.SuccessProbability, m.Reasons, m.Issues, createdAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trademart/internal/database"
	"trademart/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RequirementCandidateFilter narrows the buyer-side candidate scan when
// matching an offering against requirements.
type RequirementCandidateFilter struct {
	Category  string
	Location  string
	MinBudget *float64
	Limit     int
}

type RequirementListFilter struct {
	Category string
	Limit    int
	Offset   int
}

type BuyerRequirementRepository interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*matching.BuyerRequirement, error)
	FindCandidates(ctx context.Context, f RequirementCandidateFilter) ([]matching.BuyerRequirement, error)
	Insert(ctx context.Context, r matching.BuyerRequirement) error
	List(ctx context.Context, f RequirementListFilter) ([]matching.BuyerRequirement, error)
}

type PostgresBuyerRequirementRepository struct {
	db database.DB
}

func NewPostgresBuyerRequirementRepository(db database.DB) *PostgresBuyerRequirementRepository {
	return &PostgresBuyerRequirementRepository{db: db}
}

const requirementColumns = `id, buyer_id, title, description, category,
	COALESCE(subcategory, ''), budget_min, budget_max, location,
	COALESCE(preferred_locations, '{}'), quantity, COALESCE(unit, ''),
	COALESCE(quality_requirements, '{}'), COALESCE(certifications_required, '{}'),
	COALESCE(tags, '{}'), created_at`

func scanRequirement(row database.Row) (matching.BuyerRequirement, error) {
	var r matching.BuyerRequirement
	err := row.Scan(
		&r.RequirementID, &r.BuyerID, &r.Title, &r.Description, &r.Category,
		&r.Subcategory, &r.BudgetMin, &r.BudgetMax, &r.Location,
		&r.PreferredLocations, &r.Quantity, &r.Unit,
		&r.QualityRequirements, &r.CertificationsRequired,
		&r.Tags, &r.CreatedAt,
	)
	return r, err
}

func (repo *PostgresBuyerRequirementRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*matching.BuyerRequirement, error) {
	row := repo.db.QueryRow(ctx,
		`SELECT `+requirementColumns+`
		 FROM buyer_requirements
		 WHERE id = $1 AND is_active = TRUE`,
		id,
	)
	r, err := scanRequirement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (repo *PostgresBuyerRequirementRepository) FindCandidates(ctx context.Context, f RequirementCandidateFilter) ([]matching.BuyerRequirement, error) {
	query := `SELECT ` + requirementColumns + `
		 FROM buyer_requirements
		 WHERE is_active = TRUE AND LOWER(category) = LOWER($1)`
	args := []any{f.Category}

	if f.Location != "" {
		args = append(args, f.Location)
		query += fmt.Sprintf(" AND LOWER(location) = LOWER($%d)", len(args))
	}
	if f.MinBudget != nil {
		args = append(args, *f.MinBudget)
		query += fmt.Sprintf(" AND (budget_max IS NULL OR budget_max >= $%d)", len(args))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.BuyerRequirement, 0, limit)
	for rows.Next() {
		r, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (repo *PostgresBuyerRequirementRepository) Insert(ctx context.Context, r matching.BuyerRequirement) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := repo.db.Exec(ctx,
		`INSERT INTO buyer_requirements
			(id, buyer_id, title, description, category, subcategory,
			 budget_min, budget_max, location, preferred_locations,
			 quantity, unit, quality_requirements, certifications_required,
			 tags, is_active, created_at)
		 VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),$7,$8,$9,$10,$11,NULLIF($12,''),$13,$14,$15,TRUE,$16)`,
		r.RequirementID, r.BuyerID, r.Title, r.Description, r.Category, r.Subcategory,
		r.BudgetMin, r.BudgetMax, r.Location, r.PreferredLocations,
		r.Quantity, r.Unit, r.QualityRequirements, r.CertificationsRequired,
		r.Tags, r.CreatedAt,
	)
	return err
}

func (repo *PostgresBuyerRequirementRepository) List(ctx context.Context, f RequirementListFilter) ([]matching.BuyerRequirement, error) {
	query := `SELECT ` + requirementColumns + `
		 FROM buyer_requirements
		 WHERE is_active = TRUE`
	args := []any{}

	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND LOWER(category) = LOWER($%d)", len(args))
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.BuyerRequirement, 0, limit)
	for rows.Next() {
		r, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

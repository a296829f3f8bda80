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

// OfferingCandidateFilter narrows the seller-side candidate scan when
// matching a requirement against offerings.
type OfferingCandidateFilter struct {
	Category string
	Location string
	MaxPrice *float64
	Limit    int
}

type OfferingListFilter struct {
	Category string
	Limit    int
	Offset   int
}

type SellerOfferingRepository interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*matching.SellerOffering, error)
	FindCandidates(ctx context.Context, f OfferingCandidateFilter) ([]matching.SellerOffering, error)
	Insert(ctx context.Context, o matching.SellerOffering) error
	List(ctx context.Context, f OfferingListFilter) ([]matching.SellerOffering, error)
}

type PostgresSellerOfferingRepository struct {
	db database.DB
}

func NewPostgresSellerOfferingRepository(db database.DB) *PostgresSellerOfferingRepository {
	return &PostgresSellerOfferingRepository{db: db}
}

const offeringColumns = `id, seller_id, title, description, category,
	COALESCE(subcategory, ''), price_min, price_max, location,
	COALESCE(service_areas, '{}'), capacity, COALESCE(unit, ''),
	COALESCE(certifications, '{}'), COALESCE(quality_standards, '{}'),
	COALESCE(tags, '{}'), rating, created_at`

func scanOffering(row database.Row) (matching.SellerOffering, error) {
	var o matching.SellerOffering
	err := row.Scan(
		&o.OfferingID, &o.SellerID, &o.Title, &o.Description, &o.Category,
		&o.Subcategory, &o.PriceMin, &o.PriceMax, &o.Location,
		&o.ServiceAreas, &o.Capacity, &o.Unit,
		&o.Certifications, &o.QualityStandards,
		&o.Tags, &o.Rating, &o.CreatedAt,
	)
	return o, err
}

func (repo *PostgresSellerOfferingRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*matching.SellerOffering, error) {
	row := repo.db.QueryRow(ctx,
		`SELECT `+offeringColumns+`
		 FROM seller_offerings
		 WHERE id = $1 AND is_active = TRUE`,
		id,
	)
	o, err := scanOffering(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (repo *PostgresSellerOfferingRepository) FindCandidates(ctx context.Context, f OfferingCandidateFilter) ([]matching.SellerOffering, error) {
	query := `SELECT ` + offeringColumns + `
		 FROM seller_offerings
		 WHERE is_active = TRUE AND LOWER(category) = LOWER($1)`
	args := []any{f.Category}

	if f.Location != "" {
		args = append(args, f.Location)
		query += fmt.Sprintf(" AND LOWER(location) = LOWER($%d)", len(args))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		query += fmt.Sprintf(" AND (price_min IS NULL OR price_min <= $%d)", len(args))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY rating DESC NULLS LAST, created_at DESC LIMIT $%d", len(args))

	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.SellerOffering, 0, limit)
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (repo *PostgresSellerOfferingRepository) Insert(ctx context.Context, o matching.SellerOffering) error {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	_, err := repo.db.Exec(ctx,
		`INSERT INTO seller_offerings
			(id, seller_id, title, description, category, subcategory,
			 price_min, price_max, location, service_areas,
			 capacity, unit, certifications, quality_standards,
			 tags, rating, is_active, created_at)
		 VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),$7,$8,$9,$10,$11,NULLIF($12,''),$13,$14,$15,$16,TRUE,$17)`,
		o.OfferingID, o.SellerID, o.Title, o.Description, o.Category, o.Subcategory,
		o.PriceMin, o.PriceMax, o.Location, o.ServiceAreas,
		o.Capacity, o.Unit, o.Certifications, o.QualityStandards,
		o.Tags, o.Rating, o.CreatedAt,
	)
	return err
}

func (repo *PostgresSellerOfferingRepository) List(ctx context.Context, f OfferingListFilter) ([]matching.SellerOffering, error) {
	query := `SELECT ` + offeringColumns + `
		 FROM seller_offerings
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

	out := make([]matching.SellerOffering, 0, limit)
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

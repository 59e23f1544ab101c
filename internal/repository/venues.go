package repository

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/venue-booking/internal/database"
	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VenueRepository handles persistence for venues.
type VenueRepository struct {
	db *pgxpool.Pool
}

// NewVenueRepository constructs a VenueRepository.
func NewVenueRepository(db *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{db: db}
}

// Create inserts a venue; a duplicate name is ErrVenueExists.
func (r *VenueRepository) Create(ctx context.Context, v model.Venue) error {
	_, err := database.Conn(ctx, r.db).Exec(ctx,
		`INSERT INTO venues (id, name, created_at) VALUES ($1, $2, $3)`,
		v.ID, v.Name, v.CreatedAt,
	)
	if database.PgCode(err) == database.CodeUniqueViolation {
		return model.ErrVenueExists
	}
	return translate(err, "insert venue", nil)
}

// List returns all venues ordered by name.
func (r *VenueRepository) List(ctx context.Context) ([]model.Venue, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT id, name, created_at FROM venues ORDER BY name`)
	if err != nil {
		return nil, translate(err, "list venues", nil)
	}
	defer rows.Close()

	venues := []model.Venue{}
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// Delete removes a venue. Events that pointed at it keep existing without one.
func (r *VenueRepository) Delete(ctx context.Context, id string) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete venue", nil)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVenueNotFound
	}
	return nil
}

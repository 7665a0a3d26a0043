package postgres

import (
	"context"
	"errors"
	"fmt"

	"fleet-toll-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StationRepo implements ports.StationRepository.
type StationRepo struct {
	pool Pool
}

// NewStationRepo creates a new StationRepo.
func NewStationRepo(pool Pool) *StationRepo {
	return &StationRepo{pool: pool}
}

// Create inserts a new toll station.
func (r *StationRepo) Create(ctx context.Context, s *domain.TollStation) error {
	query := `INSERT INTO toll_stations (id, name, location, route, fee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query, s.ID, s.Name, s.Location, s.Route, s.Fee, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert toll station: %w", err)
	}
	return nil
}

// GetByID fetches a toll station by UUID.
func (r *StationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TollStation, error) {
	query := `SELECT id, name, location, route, fee, created_at FROM toll_stations WHERE id = $1`

	s := &domain.TollStation{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Location, &s.Route, &s.Fee, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get toll station by id: %w", err)
	}
	return s, nil
}

// List fetches all toll stations.
func (r *StationRepo) List(ctx context.Context) ([]domain.TollStation, error) {
	query := `SELECT id, name, location, route, fee, created_at FROM toll_stations ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list toll stations: %w", err)
	}
	defer rows.Close()

	var stations []domain.TollStation
	for rows.Next() {
		s := domain.TollStation{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Route, &s.Fee, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan toll station row: %w", err)
		}
		stations = append(stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate toll station rows: %w", err)
	}
	return stations, nil
}

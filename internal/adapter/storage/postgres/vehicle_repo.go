package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet-toll-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// VehicleRepo implements ports.VehicleRepository.
type VehicleRepo struct {
	pool Pool
}

// NewVehicleRepo creates a new VehicleRepo.
func NewVehicleRepo(pool Pool) *VehicleRepo {
	return &VehicleRepo{pool: pool}
}

const vehicleColumns = `id, owner_id, owner_email, registration_number, brand, model, year, color,
	serial_number, toll_balance, insurance_expiry, next_technical_check, created_at`

// Create inserts a new vehicle.
func (r *VehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (id, owner_id, owner_email, registration_number, brand, model, year, color,
		serial_number, toll_balance, insurance_expiry, next_technical_check, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		v.ID, v.OwnerID, v.OwnerEmail, v.RegistrationNumber,
		v.Brand, v.Model, v.Year, v.Color,
		v.SerialNumber, v.TollBalance, v.InsuranceExpiry, v.NextTechnicalCheck,
		v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID fetches a vehicle by UUID.
func (r *VehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE id = $1`, vehicleColumns)

	return r.scanVehicle(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate fetches a vehicle with a row-level lock inside the given
// transaction. The lock serializes concurrent toll settlements per vehicle.
func (r *VehicleRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE id = $1 FOR UPDATE`, vehicleColumns)

	return r.scanVehicle(tx.QueryRow(ctx, query, id))
}

// ListByOwner fetches all vehicles belonging to an owner.
func (r *VehicleRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE owner_id = $1 ORDER BY created_at DESC`, vehicleColumns)

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	return r.collectVehicles(rows)
}

// UpdateBalance sets a vehicle's toll balance within a database transaction.
// Callers hold the FOR UPDATE lock, so the write is a plain assignment.
func (r *VehicleRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, vehicleID uuid.UUID, newBalance decimal.Decimal) error {
	query := `UPDATE vehicles SET toll_balance = $1 WHERE id = $2`

	tag, err := tx.Exec(ctx, query, newBalance, vehicleID)
	if err != nil {
		return fmt.Errorf("update vehicle balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vehicle not found: %s", vehicleID)
	}
	return nil
}

// ListExpiring fetches vehicles whose insurance or technical control falls due
// within the given window, including ones already overdue.
func (r *VehicleRepo) ListExpiring(ctx context.Context, within time.Duration) ([]domain.Vehicle, error) {
	deadline := time.Now().Add(within)
	query := fmt.Sprintf(`SELECT %s FROM vehicles
		WHERE (insurance_expiry IS NOT NULL AND insurance_expiry <= $1)
		OR (next_technical_check IS NOT NULL AND next_technical_check <= $1)
		ORDER BY created_at`, vehicleColumns)

	rows, err := r.pool.Query(ctx, query, deadline)
	if err != nil {
		return nil, fmt.Errorf("list expiring vehicles: %w", err)
	}
	defer rows.Close()

	return r.collectVehicles(rows)
}

func (r *VehicleRepo) collectVehicles(rows pgx.Rows) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	for rows.Next() {
		v := domain.Vehicle{}
		err := rows.Scan(
			&v.ID, &v.OwnerID, &v.OwnerEmail, &v.RegistrationNumber,
			&v.Brand, &v.Model, &v.Year, &v.Color,
			&v.SerialNumber, &v.TollBalance, &v.InsuranceExpiry, &v.NextTechnicalCheck,
			&v.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicle rows: %w", err)
	}
	return vehicles, nil
}

// scanVehicle is a helper to scan a single row into a Vehicle.
func (r *VehicleRepo) scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.OwnerEmail, &v.RegistrationNumber,
		&v.Brand, &v.Model, &v.Year, &v.Color,
		&v.SerialNumber, &v.TollBalance, &v.InsuranceExpiry, &v.NextTechnicalCheck,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan vehicle: %w", err)
	}
	return v, nil
}

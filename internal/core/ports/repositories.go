package ports

import (
	"context"
	"time"

	"fleet-toll-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// VehicleRepository defines persistence operations for vehicles.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic
// locking: the balance check and the debit must be serialized per vehicle.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Vehicle, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, vehicleID uuid.UUID, newBalance decimal.Decimal) error
	// ListExpiring returns vehicles whose insurance or technical control falls
	// due within the given window. Used by the reminder job.
	ListExpiring(ctx context.Context, within time.Duration) ([]domain.Vehicle, error)
}

// StationRepository defines persistence operations for toll stations.
type StationRepository interface {
	Create(ctx context.Context, station *domain.TollStation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TollStation, error)
	List(ctx context.Context) ([]domain.TollStation, error)
}

// TransactionRepository defines persistence operations for toll transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.TollTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TollTransaction, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.TollTransaction, error)
	// FinalizeIfPending moves a transaction out of pending. It returns false
	// when the row was not pending anymore, which makes replayed callbacks a
	// no-op instead of a double transition.
	FinalizeIfPending(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus) (bool, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.TollTransaction, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// IPNReplayStore remembers already-processed IPN payload digests so exact
// replays can be short-circuited before touching the database.
type IPNReplayStore interface {
	// MarkProcessed atomically records a payload digest. Returns true if the
	// digest is new, false if this exact callback was already processed.
	MarkProcessed(ctx context.Context, digest string, ttl time.Duration) (bool, error)
	// Forget drops a recorded digest so the provider's retry of a callback
	// that failed to apply is not mistaken for a replay.
	Forget(ctx context.Context, digest string) error
}

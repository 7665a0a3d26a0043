package postgres

import (
	"context"
	"errors"
	"fmt"

	"fleet-toll-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const transactionColumns = `id, owner_id, vehicle_id, station_id, amount, currency, status,
	COALESCE(external_id, '') AS external_id, payment_method, created_at`

// Create inserts a new toll transaction within a database transaction, so the
// record and the balance debit commit or roll back together. Card settlements
// have no provider id; NULLIF stores NULL so the unique constraint on
// external_id only applies to rows that actually carry one.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.TollTransaction) error {
	query := `INSERT INTO toll_transactions (id, owner_id, vehicle_id, station_id, amount, currency, status,
		external_id, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.OwnerID, t.VehicleID, t.StationID,
		t.Amount, t.Currency, t.Status,
		t.ExternalID, t.PaymentMethod, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert toll transaction: %w", err)
	}
	return nil
}

// GetByID fetches a toll transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TollTransaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM toll_transactions WHERE id = $1`, transactionColumns)

	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByExternalID fetches a toll transaction by the provider-assigned ID.
// Used by the reconciler to match callbacks to pending settlements.
func (r *TransactionRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.TollTransaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM toll_transactions WHERE external_id = $1`, transactionColumns)

	return r.scanTransaction(r.pool.QueryRow(ctx, query, externalID))
}

// FinalizeIfPending moves a transaction out of pending within a database
// transaction. The WHERE status guard makes duplicate callbacks a no-op:
// false means the row was already terminal (or absent).
func (r *TransactionRepo) FinalizeIfPending(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus) (bool, error) {
	query := `UPDATE toll_transactions SET status = $1 WHERE id = $2 AND status = $3`

	tag, err := tx.Exec(ctx, query, status, id, domain.TransactionStatusPending)
	if err != nil {
		return false, fmt.Errorf("finalize toll transaction: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByOwner fetches all toll transactions for an owner, newest first.
func (r *TransactionRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.TollTransaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM toll_transactions WHERE owner_id = $1 ORDER BY created_at DESC`, transactionColumns)

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list toll transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.TollTransaction
	for rows.Next() {
		t := domain.TollTransaction{}
		err := rows.Scan(
			&t.ID, &t.OwnerID, &t.VehicleID, &t.StationID,
			&t.Amount, &t.Currency, &t.Status,
			&t.ExternalID, &t.PaymentMethod, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan toll transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate toll transaction rows: %w", err)
	}
	return txns, nil
}

// scanTransaction is a helper to scan a single row into a TollTransaction.
func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.TollTransaction, error) {
	t := &domain.TollTransaction{}
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.VehicleID, &t.StationID,
		&t.Amount, &t.Currency, &t.Status,
		&t.ExternalID, &t.PaymentMethod, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan toll transaction: %w", err)
	}
	return t, nil
}

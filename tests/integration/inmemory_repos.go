package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fleet-toll-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// --- In-Memory Vehicle Repo ---

type inMemoryVehicleRepo struct {
	mu       sync.RWMutex
	vehicles map[uuid.UUID]*domain.Vehicle
}

func newInMemoryVehicleRepo() *inMemoryVehicleRepo {
	return &inMemoryVehicleRepo{vehicles: make(map[uuid.UUID]*domain.Vehicle)}
}

func (r *inMemoryVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.vehicles {
		if existing.RegistrationNumber == v.RegistrationNumber {
			return fmt.Errorf("registration number already exists")
		}
		if existing.SerialNumber == v.SerialNumber {
			return fmt.Errorf("serial number already exists")
		}
	}
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *inMemoryVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *inMemoryVehicleRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Vehicle, error) {
	// Row locking is emulated by the serializing transactor.
	return r.GetByID(ctx, id)
}

func (r *inMemoryVehicleRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Vehicle
	for _, v := range r.vehicles {
		if v.OwnerID == ownerID {
			result = append(result, *v)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *inMemoryVehicleRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, vehicleID uuid.UUID, newBalance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[vehicleID]
	if !ok {
		return fmt.Errorf("vehicle not found")
	}
	v.TollBalance = newBalance
	return nil
}

func (r *inMemoryVehicleRepo) ListExpiring(ctx context.Context, within time.Duration) ([]domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now()
	var result []domain.Vehicle
	for _, v := range r.vehicles {
		if v.InsuranceExpiringWithin(now, within) || v.TechnicalCheckDueWithin(now, within) {
			result = append(result, *v)
		}
	}
	return result, nil
}

// --- In-Memory Station Repo ---

type inMemoryStationRepo struct {
	mu       sync.RWMutex
	stations map[uuid.UUID]*domain.TollStation
}

func newInMemoryStationRepo() *inMemoryStationRepo {
	return &inMemoryStationRepo{stations: make(map[uuid.UUID]*domain.TollStation)}
}

func (r *inMemoryStationRepo) Create(ctx context.Context, s *domain.TollStation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.stations[s.ID] = &cp
	return nil
}

func (r *inMemoryStationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TollStation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stations[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *inMemoryStationRepo) List(ctx context.Context) ([]domain.TollStation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.TollStation
	for _, s := range r.stations {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]*domain.TollTransaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{transactions: make(map[uuid.UUID]*domain.TollTransaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.TollTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ExternalID != "" {
		for _, existing := range r.transactions {
			if existing.ExternalID == t.ExternalID {
				return fmt.Errorf("external id already exists")
			}
		}
	}
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TollTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.TollTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if externalID == "" {
		return nil, nil
	}
	for _, t := range r.transactions {
		if t.ExternalID == externalID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) FinalizeIfPending(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok || t.Status != domain.TransactionStatusPending {
		return false, nil
	}
	t.Status = status
	return true, nil
}

func (r *inMemoryTransactionRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.TollTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.TollTransaction
	for _, t := range r.transactions {
		if t.OwnerID == ownerID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// --- Serializing Transactor ---

// serialTransactor gives each Begin exclusive access until Commit or Rollback,
// which stands in for the per-row FOR UPDATE locks the real store takes.
type serialTransactor struct {
	mu sync.Mutex
}

func newSerialTransactor() *serialTransactor {
	return &serialTransactor{}
}

func (t *serialTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &memTx{unlock: t.mu.Unlock}, nil
}

// memTx releases the transactor on first Commit or Rollback. The embedded
// interface covers the pgx.Tx methods the services never call.
type memTx struct {
	pgx.Tx
	once   sync.Once
	unlock func()
}

func (t *memTx) Commit(ctx context.Context) error {
	t.once.Do(t.unlock)
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	t.once.Do(t.unlock)
	return nil
}

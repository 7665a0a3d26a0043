package service

import (
	"context"
	"fmt"
	"time"

	"fleet-toll-gateway/internal/core/domain"
	"fleet-toll-gateway/internal/core/ports"
	"fleet-toll-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// FleetServiceImpl implements ports.FleetService.
type FleetServiceImpl struct {
	vehicleRepo ports.VehicleRepository
	stationRepo ports.StationRepository
	txRepo      ports.TransactionRepository
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewFleetService creates a new FleetServiceImpl.
func NewFleetService(
	vehicleRepo ports.VehicleRepository,
	stationRepo ports.StationRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *FleetServiceImpl {
	return &FleetServiceImpl{
		vehicleRepo: vehicleRepo,
		stationRepo: stationRepo,
		txRepo:      txRepo,
		transactor:  transactor,
		log:         log,
	}
}

// RegisterVehicle creates a vehicle with a zero toll balance.
func (s *FleetServiceImpl) RegisterVehicle(ctx context.Context, req ports.RegisterVehicleRequest) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{
		ID:                 uuid.New(),
		OwnerID:            req.OwnerID,
		OwnerEmail:         req.OwnerEmail,
		RegistrationNumber: req.RegistrationNumber,
		Brand:              req.Brand,
		Model:              req.Model,
		Year:               req.Year,
		Color:              req.Color,
		SerialNumber:       req.SerialNumber,
		TollBalance:        decimal.Zero,
		InsuranceExpiry:    req.InsuranceExpiry,
		NextTechnicalCheck: req.NextTechnicalCheck,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create vehicle: %w", err))
	}

	s.log.Info().
		Str("vehicle_id", vehicle.ID.String()).
		Str("registration", vehicle.RegistrationNumber).
		Msg("vehicle registered")

	return vehicle, nil
}

// GetVehicle fetches a vehicle, enforcing ownership.
func (s *FleetServiceImpl) GetVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get vehicle: %w", err))
	}
	if vehicle == nil {
		return nil, apperror.ErrVehicleNotFound()
	}
	if vehicle.OwnerID != ownerID {
		return nil, apperror.ErrForbidden()
	}
	return vehicle, nil
}

// ListVehicles fetches all vehicles for an owner.
func (s *FleetServiceImpl) ListVehicles(ctx context.Context, ownerID uuid.UUID) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicleRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list vehicles: %w", err))
	}
	return vehicles, nil
}

// TopUpVehicle adds funds to a vehicle's toll balance under the row lock.
func (s *FleetServiceImpl) TopUpVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID, amount decimal.Decimal) (*domain.Vehicle, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vehicle, err := s.vehicleRepo.GetByIDForUpdate(ctx, dbTx, vehicleID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock vehicle: %w", err))
	}
	if vehicle == nil {
		return nil, apperror.ErrVehicleNotFound()
	}
	if vehicle.OwnerID != ownerID {
		return nil, apperror.ErrForbidden()
	}

	newBalance := vehicle.TollBalance.Add(amount)
	if err := s.vehicleRepo.UpdateBalance(ctx, dbTx, vehicle.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("credit balance: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	vehicle.TollBalance = newBalance

	s.log.Info().
		Str("vehicle_id", vehicle.ID.String()).
		Str("amount", amount.String()).
		Str("new_balance", newBalance.String()).
		Msg("toll balance topped up")

	return vehicle, nil
}

// ListTransactions fetches the owner's toll transaction history.
func (s *FleetServiceImpl) ListTransactions(ctx context.Context, ownerID uuid.UUID) ([]domain.TollTransaction, error) {
	txns, err := s.txRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}

// CreateStation registers a toll station.
func (s *FleetServiceImpl) CreateStation(ctx context.Context, req ports.CreateStationRequest) (*domain.TollStation, error) {
	if req.Fee.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.ErrInvalidAmount()
	}
	// Fees are charged to cards in whole minor units, so anything finer
	// than two decimals cannot be settled exactly.
	if !req.Fee.Mul(decimal.NewFromInt(100)).IsInteger() {
		return nil, apperror.ErrInvalidAmount()
	}

	station := &domain.TollStation{
		ID:        uuid.New(),
		Name:      req.Name,
		Location:  req.Location,
		Route:     req.Route,
		Fee:       req.Fee,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.stationRepo.Create(ctx, station); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create station: %w", err))
	}

	s.log.Info().
		Str("station_id", station.ID.String()).
		Str("name", station.Name).
		Str("fee", station.Fee.String()).
		Msg("toll station created")

	return station, nil
}

// GetStation fetches a toll station by id.
func (s *FleetServiceImpl) GetStation(ctx context.Context, id uuid.UUID) (*domain.TollStation, error) {
	station, err := s.stationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get station: %w", err))
	}
	if station == nil {
		return nil, apperror.ErrStationNotFound()
	}
	return station, nil
}

// ListStations fetches all toll stations.
func (s *FleetServiceImpl) ListStations(ctx context.Context) ([]domain.TollStation, error) {
	stations, err := s.stationRepo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list stations: %w", err))
	}
	return stations, nil
}

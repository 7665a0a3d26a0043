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

// SettlementConfig carries the pricing the settlement flows charge with.
// CryptoTollAmount is parsed once at startup from configuration.
type SettlementConfig struct {
	CryptoTollAmount decimal.Decimal
	CryptoCurrency   domain.Currency
	CardCurrency     domain.Currency
}

// SettlementServiceImpl implements ports.SettlementService.
type SettlementServiceImpl struct {
	vehicleRepo ports.VehicleRepository
	stationRepo ports.StationRepository
	txRepo      ports.TransactionRepository
	transactor  ports.DBTransactor
	cryptoGW    ports.CryptoGateway
	cardGW      ports.CardGateway
	notifier    ports.Notifier
	cfg         SettlementConfig
	log         zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl.
func NewSettlementService(
	vehicleRepo ports.VehicleRepository,
	stationRepo ports.StationRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	cryptoGW ports.CryptoGateway,
	cardGW ports.CardGateway,
	notifier ports.Notifier,
	cfg SettlementConfig,
	log zerolog.Logger,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		vehicleRepo: vehicleRepo,
		stationRepo: stationRepo,
		txRepo:      txRepo,
		transactor:  transactor,
		cryptoGW:    cryptoGW,
		cardGW:      cardGW,
		notifier:    notifier,
		cfg:         cfg,
		log:         log,
	}
}

// PayTollWithCard settles a station toll from the vehicle balance and charges
// the owner's card. The debit and the pending record commit before the charge
// so no lock is held across the network call; a declined charge is compensated
// by crediting the balance back.
func (s *SettlementServiceImpl) PayTollWithCard(ctx context.Context, req ports.CardSettlementRequest) (*domain.TollTransaction, error) {
	station, err := s.stationRepo.GetByID(ctx, req.StationID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get station: %w", err))
	}
	if station == nil {
		return nil, apperror.ErrStationNotFound()
	}
	if station.Fee.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.ErrInvalidAmount()
	}
	// The card gateway charges whole minor units; a fee finer than that
	// would be silently truncated by the conversion.
	feeMinor := station.Fee.Mul(decimal.NewFromInt(100))
	if !feeMinor.IsInteger() {
		return nil, apperror.ErrInvalidAmount()
	}

	// Phase 1: debit and record pending inside one DB transaction.
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vehicle, err := s.vehicleRepo.GetByIDForUpdate(ctx, dbTx, req.VehicleID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock vehicle: %w", err))
	}
	if vehicle == nil {
		return nil, apperror.ErrVehicleNotFound()
	}
	if vehicle.OwnerID != req.OwnerID {
		return nil, apperror.ErrForbidden()
	}
	if !vehicle.CanAfford(station.Fee) {
		return nil, apperror.ErrInsufficientFunds()
	}

	newBalance := vehicle.TollBalance.Sub(station.Fee)
	if err := s.vehicleRepo.UpdateBalance(ctx, dbTx, vehicle.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("debit balance: %w", err))
	}

	now := time.Now().UTC()
	txn := &domain.TollTransaction{
		ID:            uuid.New(),
		OwnerID:       req.OwnerID,
		VehicleID:     vehicle.ID,
		StationID:     &station.ID,
		Amount:        station.Fee,
		Currency:      s.cfg.CardCurrency,
		Status:        domain.TransactionStatusPending,
		PaymentMethod: "card",
		CreatedAt:     now,
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	// Phase 2: charge the card outside any DB transaction.
	charge, chargeErr := s.cardGW.Charge(ctx, ports.CardChargeRequest{
		AmountMinor: feeMinor.IntPart(),
		Currency:    s.cfg.CardCurrency,
		Token:       req.CardToken,
		Description: fmt.Sprintf("Péage %s (%s)", station.Name, vehicle.RegistrationNumber),
	})
	if chargeErr != nil {
		if err := s.compensateFailedCharge(ctx, txn, station.Fee); err != nil {
			// The refund will be retried by support tooling; the failure is
			// logged with everything needed to replay it.
			s.log.Error().Err(err).
				Str("tx_id", txn.ID.String()).
				Str("vehicle_id", vehicle.ID.String()).
				Str("amount", station.Fee.String()).
				Msg("card charge failed and compensation did not apply")
		}
		txn.Status = domain.TransactionStatusFailed
		return nil, chargeErr
	}

	// Phase 3: finalize.
	dbTx2, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin finalize tx: %w", err))
	}
	defer dbTx2.Rollback(ctx) //nolint:errcheck

	if _, err := s.txRepo.FinalizeIfPending(ctx, dbTx2, txn.ID, domain.TransactionStatusCompleted); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("finalize transaction: %w", err))
	}
	if err := dbTx2.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit finalize tx: %w", err))
	}
	txn.Status = domain.TransactionStatusCompleted

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("charge_id", charge.ChargeID).
		Str("station_id", station.ID.String()).
		Str("amount", station.Fee.String()).
		Msg("card toll settled")

	if s.notifier != nil && req.OwnerEmail != "" {
		go s.sendConfirmation(req.OwnerEmail, txn, station.Name)
	}

	return txn, nil
}

// compensateFailedCharge credits the debited fee back and marks the pending
// transaction failed, in one DB transaction.
func (s *SettlementServiceImpl) compensateFailedCharge(ctx context.Context, txn *domain.TollTransaction, fee decimal.Decimal) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin compensation tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vehicle, err := s.vehicleRepo.GetByIDForUpdate(ctx, dbTx, txn.VehicleID)
	if err != nil {
		return fmt.Errorf("lock vehicle: %w", err)
	}
	if vehicle == nil {
		return fmt.Errorf("vehicle disappeared: %s", txn.VehicleID)
	}

	if err := s.vehicleRepo.UpdateBalance(ctx, dbTx, vehicle.ID, vehicle.TollBalance.Add(fee)); err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	if _, err := s.txRepo.FinalizeIfPending(ctx, dbTx, txn.ID, domain.TransactionStatusFailed); err != nil {
		return fmt.Errorf("mark transaction failed: %w", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit compensation tx: %w", err)
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("amount", fee.String()).
		Msg("failed card charge compensated")
	return nil
}

// PayTollWithCrypto debits the fixed crypto toll, records a pending
// transaction keyed by the provider id and hands back the checkout URL.
// Completion arrives later through the IPN reconciler.
func (s *SettlementServiceImpl) PayTollWithCrypto(ctx context.Context, req ports.CryptoSettlementRequest) (*ports.CryptoSettlementResult, error) {
	amount := s.cfg.CryptoTollAmount

	// Unlocked pre-check keeps obviously broke vehicles away from the
	// provider; the authoritative check happens under the row lock below.
	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get vehicle: %w", err))
	}
	if vehicle == nil {
		return nil, apperror.ErrVehicleNotFound()
	}
	if vehicle.OwnerID != req.OwnerID {
		return nil, apperror.ErrForbidden()
	}
	if !vehicle.CanAfford(amount) {
		return nil, apperror.ErrInsufficientFunds()
	}

	invoice, err := s.cryptoGW.CreateInvoice(ctx, ports.CryptoInvoiceRequest{
		Amount:     amount,
		Currency:   s.cfg.CryptoCurrency,
		BuyerEmail: req.OwnerEmail,
	})
	if err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vehicle, err = s.vehicleRepo.GetByIDForUpdate(ctx, dbTx, req.VehicleID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock vehicle: %w", err))
	}
	if vehicle == nil {
		return nil, apperror.ErrVehicleNotFound()
	}
	if !vehicle.CanAfford(amount) {
		// Balance changed between the pre-check and the lock.
		return nil, apperror.ErrInsufficientFunds()
	}

	if err := s.vehicleRepo.UpdateBalance(ctx, dbTx, vehicle.ID, vehicle.TollBalance.Sub(amount)); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("debit balance: %w", err))
	}

	txn := &domain.TollTransaction{
		ID:            uuid.New(),
		OwnerID:       req.OwnerID,
		VehicleID:     vehicle.ID,
		Amount:        amount,
		Currency:      s.cfg.CryptoCurrency,
		Status:        domain.TransactionStatusPending,
		ExternalID:    invoice.ExternalID,
		PaymentMethod: "crypto",
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("external_id", invoice.ExternalID).
		Str("amount", amount.String()).
		Msg("crypto toll initiated, awaiting provider confirmation")

	return &ports.CryptoSettlementResult{
		Transaction: txn,
		CheckoutURL: invoice.CheckoutURL,
	}, nil
}

// sendConfirmation delivers the payment email best-effort.
func (s *SettlementServiceImpl) sendConfirmation(email string, txn *domain.TollTransaction, stationName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.notifier.PaymentConfirmation(ctx, email, txn, stationName); err != nil {
		s.log.Warn().Err(err).Str("tx_id", txn.ID.String()).Msg("payment confirmation email failed")
	}
}

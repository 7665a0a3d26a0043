package service

import (
	"context"
	"testing"

	"fleet-toll-gateway/internal/core/domain"
	"fleet-toll-gateway/internal/core/ports"
	"fleet-toll-gateway/internal/core/ports/mocks"
	"fleet-toll-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type settlementTestDeps struct {
	svc         *SettlementServiceImpl
	vehicleRepo *mocks.MockVehicleRepository
	stationRepo *mocks.MockStationRepository
	txRepo      *mocks.MockTransactionRepository
	transactor  *mocks.MockDBTransactor
	cryptoGW    *mocks.MockCryptoGateway
	cardGW      *mocks.MockCardGateway
	ctrl        *gomock.Controller
}

func setupSettlementService(t *testing.T) *settlementTestDeps {
	ctrl := gomock.NewController(t)
	d := &settlementTestDeps{
		vehicleRepo: mocks.NewMockVehicleRepository(ctrl),
		stationRepo: mocks.NewMockStationRepository(ctrl),
		txRepo:      mocks.NewMockTransactionRepository(ctrl),
		transactor:  mocks.NewMockDBTransactor(ctrl),
		cryptoGW:    mocks.NewMockCryptoGateway(ctrl),
		cardGW:      mocks.NewMockCardGateway(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewSettlementService(
		d.vehicleRepo, d.stationRepo, d.txRepo, d.transactor,
		d.cryptoGW, d.cardGW, nil,
		SettlementConfig{
			CryptoTollAmount: decimal.RequireFromString("0.01"),
			CryptoCurrency:   domain.CurrencyBTC,
			CardCurrency:     domain.CurrencyEUR,
		},
		zerolog.Nop(),
	)
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func balancedVehicle(ownerID uuid.UUID, balance string) *domain.Vehicle {
	return &domain.Vehicle{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		OwnerEmail:         "owner@example.com",
		RegistrationNumber: "1234-TU-567",
		TollBalance:        decimal.RequireFromString(balance),
	}
}

// ==================== PayTollWithCard Tests ====================

func TestSettlementService_PayTollWithCard_Success(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	vehicle := balancedVehicle(ownerID, "10.00")
	station := &domain.TollStation{
		ID:   uuid.New(),
		Name: "Péage Hammamet Sud",
		Fee:  decimal.RequireFromString("5.00"),
	}
	tx := &mockTx{}

	d.stationRepo.EXPECT().GetByID(ctx, station.ID).Return(station, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.vehicleRepo.EXPECT().GetByIDForUpdate(ctx, tx, vehicle.ID).Return(vehicle, nil)
	// Debit: 10.00 - 5.00 = 5.00
	d.vehicleRepo.EXPECT().UpdateBalance(ctx, tx, vehicle.ID, decimal.RequireFromString("5.00")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	// Charge in minor units: 5.00 EUR -> 500
	d.cardGW.EXPECT().Charge(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.CardChargeRequest) (*ports.CardCharge, error) {
			assert.Equal(t, int64(500), req.AmountMinor)
			assert.Equal(t, domain.CurrencyEUR, req.Currency)
			assert.Equal(t, "tok_visa", req.Token)
			return &ports.CardCharge{ChargeID: "ch_123"}, nil
		})
	// Finalize
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txRepo.EXPECT().FinalizeIfPending(ctx, tx, gomock.Any(), domain.TransactionStatusCompleted).Return(true, nil)

	result, err := d.svc.PayTollWithCard(ctx, ports.CardSettlementRequest{
		OwnerID:   ownerID,
		VehicleID: vehicle.ID,
		StationID: station.ID,
		CardToken: "tok_visa",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.TransactionStatusCompleted, result.Status)
	assert.Equal(t, "card", result.PaymentMethod)
	assert.True(t, station.Fee.Equal(result.Amount))
	assert.Equal(t, &station.ID, result.StationID)
}

func TestSettlementService_PayTollWithCard_InsufficientFunds(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	vehicle := balancedVehicle(ownerID, "2.00")
	station := &domain.TollStation{ID: uuid.New(), Fee: decimal.RequireFromString("5.00")}
	tx := &mockTx{}

	d.stationRepo.EXPECT().GetByID(ctx, station.ID).Return(station, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.vehicleRepo.EXPECT().GetByIDForUpdate(ctx, tx, vehicle.ID).Return(vehicle, nil)

	result, err := d.svc.PayTollWithCard(ctx, ports.CardSettlementRequest{
		OwnerID:   ownerID,
		VehicleID: vehicle.ID,
		StationID: station.ID,
		CardToken: "tok_visa",
	})
	assert.Nil(t, result)
	assertAppError(t, err, "TOLL_001")
}

func TestSettlementService_PayTollWithCard_ChargeDeclinedCompensates(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	vehicle := balancedVehicle(ownerID, "10.00")
	station := &domain.TollStation{ID: uuid.New(), Name: "Péage A1", Fee: decimal.RequireFromString("5.00")}
	tx := &mockTx{}

	d.stationRepo.EXPECT().GetByID(ctx, station.ID).Return(station, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.vehicleRepo.EXPECT().GetByIDForUpdate(ctx, tx, vehicle.ID).Return(vehicle, nil)
	d.vehicleRepo.EXPECT().UpdateBalance(ctx, tx, vehicle.ID, decimal.RequireFromString("5.00")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.cardGW.EXPECT().Charge(ctx, gomock.Any()).Return(nil, apperror.ErrGateway("Your card was declined."))

	// Compensation: re-lock, credit the fee back, mark failed.
	debited := balancedVehicle(ownerID, "5.00")
	debited.ID = vehicle.ID
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.vehicleRepo.EXPECT().GetByIDForUpdate(ctx, tx, vehicle.ID).Return(debited, nil)
	d.vehicleRepo.EXPECT().UpdateBalance(ctx, tx, vehicle.ID, decimal.RequireFromString("10.00")).Return(nil)
	d.txRepo.EXPECT().FinalizeIfPending(ctx, tx, gomock.Any(), domain.TransactionStatusFailed).Return(true, nil)

	result, err := d.svc.PayTollWithCard(ctx, ports.CardSettlementRequest{
		OwnerID:   ownerID,
		VehicleID: vehicle.ID,
		StationID: station.ID,
		CardToken: "tok_chargeDeclined",
	})
	assert.Nil(t, result)
	assertAppError(t, err, "GW_001")
}

func TestSettlementService_PayTollWithCard_SubCentFeeRejected(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	// 0.015 EUR is 1.5 minor units; truncating would undercharge the card.
	station := &domain.TollStation{ID: uuid.New(), Fee: decimal.RequireFromString("0.015")}

	d.stationRepo.EXPECT().GetByID(ctx, station.ID).Return(station, nil)

	result, err := d.svc.PayTollWithCard(ctx, ports.CardSettlementRequest{
		OwnerID:   uuid.New(),
		VehicleID: uuid.New(),
		StationID: station.ID,
		CardToken: "tok_visa",
	})
	assert.Nil(t, result)
	assertAppError(t, err, "TOLL_002")
}

func TestSettlementService_PayTollWithCard_StationNotFound(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	stationID := uuid.New()
	d.stationRepo.EXPECT().GetByID(ctx, stationID).Return(nil, nil)

	result, err := d.svc.PayTollWithCard(ctx, ports.CardSettlementRequest{
		OwnerID:   uuid.New(),
		VehicleID: uuid.New(),
		StationID: stationID,
	})
	assert.Nil(t, result)
	assertAppError(t, err, "TOLL_004")
}

func TestSettlementService_PayTollWithCard_NotOwner(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	vehicle := balancedVehicle(uuid.New(), "10.00")
	station := &domain.TollStation{ID: uuid.New(), Fee: decimal.RequireFromString("5.00")}
	tx := &mockTx{}

	d.stationRepo.EXPECT().GetByID(ctx, station.ID).Return(station, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.vehicleRepo.EXPECT().GetByIDForUpdate(ctx, tx, vehicle.ID).Return(vehicle, nil)

	result, err := d.svc.PayTollWithCard(ctx, ports.CardSettlementRequest{
		OwnerID:   uuid.New(), // not the vehicle's owner
		VehicleID: vehicle.ID,
		StationID: station.ID,
	})
	assert.Nil(t, result)
	assertAppError(t, err, "SEC_003")
}

// ==================== PayTollWithCrypto Tests ====================

func TestSettlementService_PayTollWithCrypto_Success(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	vehicle := balancedVehicle(ownerID, "0.02")
	tx := &mockTx{}

	d.vehicleRepo.EXPECT().GetByID(ctx, vehicle.ID).Return(vehicle, nil)
	d.cryptoGW.EXPECT().CreateInvoice(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.CryptoInvoiceRequest) (*ports.CryptoInvoice, error) {
			assert.Equal(t, "0.01", req.Amount.String())
			assert.Equal(t, domain.CurrencyBTC, req.Currency)
			assert.Equal(t, "owner@example.com", req.BuyerEmail)
			return &ports.CryptoInvoice{
				ExternalID:  "CPFD1NY3RJ",
				CheckoutURL: "https://www.coinpayments.net/index.php?cmd=checkout&id=CPFD1NY3RJ",
			}, nil
		})
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.vehicleRepo.EXPECT().GetByIDForUpdate(ctx, tx, vehicle.ID).Return(vehicle, nil)
	// Debit: 0.02 - 0.01 = 0.01
	d.vehicleRepo.EXPECT().UpdateBalance(ctx, tx, vehicle.ID, decimal.RequireFromString("0.01")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, txn *domain.TollTransaction) error {
			assert.Equal(t, domain.TransactionStatusPending, txn.Status)
			assert.Equal(t, "CPFD1NY3RJ", txn.ExternalID)
			assert.Equal(t, "crypto", txn.PaymentMethod)
			assert.Nil(t, txn.StationID)
			return nil
		})

	result, err := d.svc.PayTollWithCrypto(ctx, ports.CryptoSettlementRequest{
		OwnerID:    ownerID,
		OwnerEmail: "owner@example.com",
		VehicleID:  vehicle.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.CheckoutURL, "cmd=checkout")
	assert.Equal(t, domain.TransactionStatusPending, result.Transaction.Status)
}

func TestSettlementService_PayTollWithCrypto_InsufficientFunds(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	vehicle := balancedVehicle(ownerID, "0.005")

	d.vehicleRepo.EXPECT().GetByID(ctx, vehicle.ID).Return(vehicle, nil)

	result, err := d.svc.PayTollWithCrypto(ctx, ports.CryptoSettlementRequest{
		OwnerID:   ownerID,
		VehicleID: vehicle.ID,
	})
	assert.Nil(t, result)
	assertAppError(t, err, "TOLL_001")
}

func TestSettlementService_PayTollWithCrypto_BalanceDrainedUnderLock(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	vehicle := balancedVehicle(ownerID, "0.01")
	tx := &mockTx{}

	d.vehicleRepo.EXPECT().GetByID(ctx, vehicle.ID).Return(vehicle, nil)
	d.cryptoGW.EXPECT().CreateInvoice(ctx, gomock.Any()).Return(&ports.CryptoInvoice{
		ExternalID:  "CPFD1NY3RJ",
		CheckoutURL: "https://checkout.test",
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)

	// A concurrent settlement spent the balance between pre-check and lock.
	drained := balancedVehicle(ownerID, "0.00")
	drained.ID = vehicle.ID
	d.vehicleRepo.EXPECT().GetByIDForUpdate(ctx, tx, vehicle.ID).Return(drained, nil)

	result, err := d.svc.PayTollWithCrypto(ctx, ports.CryptoSettlementRequest{
		OwnerID:   ownerID,
		VehicleID: vehicle.ID,
	})
	assert.Nil(t, result)
	assertAppError(t, err, "TOLL_001")
}

func TestSettlementService_PayTollWithCrypto_VehicleNotFound(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	vehicleID := uuid.New()
	d.vehicleRepo.EXPECT().GetByID(ctx, vehicleID).Return(nil, nil)

	result, err := d.svc.PayTollWithCrypto(ctx, ports.CryptoSettlementRequest{
		OwnerID:   uuid.New(),
		VehicleID: vehicleID,
	})
	assert.Nil(t, result)
	assertAppError(t, err, "TOLL_003")
}

func TestSettlementService_PayTollWithCrypto_GatewayError(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	vehicle := balancedVehicle(ownerID, "0.02")

	d.vehicleRepo.EXPECT().GetByID(ctx, vehicle.ID).Return(vehicle, nil)
	d.cryptoGW.EXPECT().CreateInvoice(ctx, gomock.Any()).Return(nil, apperror.ErrGateway("Amount too small"))

	result, err := d.svc.PayTollWithCrypto(ctx, ports.CryptoSettlementRequest{
		OwnerID:   ownerID,
		VehicleID: vehicle.ID,
	})
	assert.Nil(t, result)
	assertAppError(t, err, "GW_001")
}

// ==================== Helper ====================

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}

package postgres

import (
	"context"
	"testing"
	"time"

	"fleet-toll-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction() *domain.TollTransaction {
	stationID := uuid.New()
	return &domain.TollTransaction{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		VehicleID:     uuid.New(),
		StationID:     &stationID,
		Amount:        decimal.RequireFromString("0.01"),
		Currency:      domain.CurrencyBTC,
		Status:        domain.TransactionStatusPending,
		ExternalID:    "CPFD1NY3RJGAMNJLQMR5KBEXJJ",
		PaymentMethod: "crypto",
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func transactionColumnNames() []string {
	return []string{"id", "owner_id", "vehicle_id", "station_id", "amount", "currency", "status",
		"external_id", "payment_method", "created_at"}
}

func transactionRow(tr *domain.TollTransaction) *pgxmock.Rows {
	return pgxmock.NewRows(transactionColumnNames()).AddRow(
		tr.ID, tr.OwnerID, tr.VehicleID, tr.StationID,
		tr.Amount, tr.Currency, tr.Status,
		tr.ExternalID, tr.PaymentMethod, tr.CreatedAt,
	)
}

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	tr := newTestTransaction()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO toll_transactions").
		WithArgs(tr.ID, tr.OwnerID, tr.VehicleID, tr.StationID,
			tr.Amount, tr.Currency, tr.Status,
			tr.ExternalID, tr.PaymentMethod, tr.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, tr)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_Create_CardWithoutExternalID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	tr := newTestTransaction()
	tr.ExternalID = ""
	tr.PaymentMethod = "card"
	tr.Currency = domain.CurrencyEUR

	// The empty provider id must be stored as NULL, not '': two card
	// settlements would otherwise collide on the external_id uniqueness.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO toll_transactions(.|\n)+NULLIF\(\$8, ''\)`).
		WithArgs(tr.ID, tr.OwnerID, tr.VehicleID, tr.StationID,
			tr.Amount, tr.Currency, tr.Status,
			tr.ExternalID, tr.PaymentMethod, tr.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, tr)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByExternalID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	tr := newTestTransaction()

	mock.ExpectQuery("SELECT .+ FROM toll_transactions WHERE external_id").
		WithArgs(tr.ExternalID).
		WillReturnRows(transactionRow(tr))

	result, err := repo.GetByExternalID(context.Background(), tr.ExternalID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, tr.ID, result.ID)
	assert.Equal(t, domain.TransactionStatusPending, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByExternalID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM toll_transactions WHERE external_id").
		WithArgs("unknown-external-id").
		WillReturnRows(pgxmock.NewRows(transactionColumnNames()))

	result, err := repo.GetByExternalID(context.Background(), "unknown-external-id")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_FinalizeIfPending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	tr := newTestTransaction()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE toll_transactions SET status").
		WithArgs(domain.TransactionStatusCompleted, tr.ID, domain.TransactionStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	transitioned, err := repo.FinalizeIfPending(context.Background(), tx, tr.ID, domain.TransactionStatusCompleted)
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_FinalizeIfPending_AlreadyTerminal(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	tr := newTestTransaction()

	// Row already completed: the status guard matches nothing.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE toll_transactions SET status").
		WithArgs(domain.TransactionStatusFailed, tr.ID, domain.TransactionStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	transitioned, err := repo.FinalizeIfPending(context.Background(), tx, tr.ID, domain.TransactionStatusFailed)
	require.NoError(t, err)
	assert.False(t, transitioned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_ListByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	tr1 := newTestTransaction()
	tr2 := newTestTransaction()
	tr2.OwnerID = tr1.OwnerID
	tr2.ExternalID = ""
	tr2.PaymentMethod = "card"
	tr2.Currency = domain.CurrencyEUR
	tr2.Status = domain.TransactionStatusCompleted

	rows := pgxmock.NewRows(transactionColumnNames()).
		AddRow(tr1.ID, tr1.OwnerID, tr1.VehicleID, tr1.StationID,
			tr1.Amount, tr1.Currency, tr1.Status, tr1.ExternalID, tr1.PaymentMethod, tr1.CreatedAt).
		AddRow(tr2.ID, tr2.OwnerID, tr2.VehicleID, tr2.StationID,
			tr2.Amount, tr2.Currency, tr2.Status, tr2.ExternalID, tr2.PaymentMethod, tr2.CreatedAt)

	mock.ExpectQuery("SELECT .+ FROM toll_transactions WHERE owner_id").
		WithArgs(tr1.OwnerID).
		WillReturnRows(rows)

	result, err := repo.ListByOwner(context.Background(), tr1.OwnerID)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "crypto", result[0].PaymentMethod)
	assert.Equal(t, "card", result[1].PaymentMethod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"fleet-toll-gateway/internal/core/domain"
	"fleet-toll-gateway/internal/core/ports"
	"fleet-toll-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

const ipnReplayTTL = 24 * time.Hour

// Provider status codes: >= 100 means funds are confirmed, < 0 means the
// payment errored or timed out. Everything between is an intermediate state.
const ipnStatusComplete = 100

// ReconcilerServiceImpl implements ports.ReconcilerService for CoinPayments
// IPN callbacks.
type ReconcilerServiceImpl struct {
	txRepo      ports.TransactionRepository
	vehicleRepo ports.VehicleRepository
	transactor  ports.DBTransactor
	cryptoGW    ports.CryptoGateway
	replayStore ports.IPNReplayStore
	notifier    ports.Notifier
	log         zerolog.Logger
}

// NewReconcilerService creates a new ReconcilerServiceImpl.
func NewReconcilerService(
	txRepo ports.TransactionRepository,
	vehicleRepo ports.VehicleRepository,
	transactor ports.DBTransactor,
	cryptoGW ports.CryptoGateway,
	replayStore ports.IPNReplayStore,
	notifier ports.Notifier,
	log zerolog.Logger,
) *ReconcilerServiceImpl {
	return &ReconcilerServiceImpl{
		txRepo:      txRepo,
		vehicleRepo: vehicleRepo,
		transactor:  transactor,
		cryptoGW:    cryptoGW,
		replayStore: replayStore,
		notifier:    notifier,
		log:         log,
	}
}

// HandleIPN authenticates a provider callback and applies its outcome to the
// matching pending transaction. Replays, intermediate statuses and callbacks
// for already-terminal transactions are acknowledged no-ops.
func (s *ReconcilerServiceImpl) HandleIPN(ctx context.Context, providedMAC string, body []byte) (*ports.IPNResult, error) {
	// Authentication first: nothing below runs on an unverified payload.
	if !s.cryptoGW.VerifyIPN(body, providedMAC) {
		s.log.Warn().Msg("ipn: HMAC verification failed")
		return nil, apperror.ErrInvalidIPN()
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, apperror.ErrInvalidIPN()
	}
	externalID := values.Get("txn_id")
	statusRaw := values.Get("status")
	if externalID == "" || statusRaw == "" {
		return nil, apperror.ErrInvalidIPN()
	}
	status, err := strconv.Atoi(statusRaw)
	if err != nil {
		return nil, apperror.ErrInvalidIPN()
	}

	txn, err := s.txRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find transaction: %w", err))
	}
	if txn == nil {
		s.log.Warn().Str("external_id", externalID).Msg("ipn: no matching transaction")
		return nil, apperror.ErrTransactionNotFound()
	}

	// Exact-replay short circuit. Redis being down degrades to relying on
	// the pending-status guard alone, so errors only log.
	digest := payloadDigest(body)
	marked, markErr := s.replayStore.MarkProcessed(ctx, digest, ipnReplayTTL)
	if markErr != nil {
		s.log.Warn().Err(markErr).Msg("ipn: replay store unavailable, continuing without cache")
	} else if !marked {
		s.log.Info().Str("external_id", externalID).Msg("ipn: exact replay ignored")
		return &ports.IPNResult{TransactionID: txn.ID, Outcome: ports.IPNOutcomeNoop}, nil
	}

	var result *ports.IPNResult
	switch {
	case status >= ipnStatusComplete:
		result, err = s.confirm(ctx, txn)
	case status < 0:
		result, err = s.fail(ctx, txn)
	default:
		// Intermediate status (e.g. waiting for confirmations): acknowledge
		// and wait for the next callback.
		s.log.Debug().
			Str("external_id", externalID).
			Int("status", status).
			Msg("ipn: intermediate status, no transition")
		return &ports.IPNResult{TransactionID: txn.ID, Outcome: ports.IPNOutcomeNoop}, nil
	}
	if err != nil {
		// The digest was consumed but the outcome never applied. Drop it so
		// the provider's retry of the same bytes is processed, not dropped
		// as a replay.
		if marked && markErr == nil {
			if forgetErr := s.replayStore.Forget(ctx, digest); forgetErr != nil {
				s.log.Warn().Err(forgetErr).Str("external_id", externalID).
					Msg("ipn: could not release replay digest after failed transition")
			}
		}
		return nil, err
	}
	return result, nil
}

// confirm moves a pending transaction to completed.
func (s *ReconcilerServiceImpl) confirm(ctx context.Context, txn *domain.TollTransaction) (*ports.IPNResult, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	transitioned, err := s.txRepo.FinalizeIfPending(ctx, dbTx, txn.ID, domain.TransactionStatusCompleted)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("finalize transaction: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	if !transitioned {
		s.log.Info().Str("tx_id", txn.ID.String()).Msg("ipn: transaction already terminal")
		return &ports.IPNResult{TransactionID: txn.ID, Outcome: ports.IPNOutcomeNoop}, nil
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("external_id", txn.ExternalID).
		Msg("ipn: crypto toll confirmed")

	if s.notifier != nil {
		go s.notifyConfirmed(txn)
	}

	return &ports.IPNResult{TransactionID: txn.ID, Outcome: ports.IPNOutcomeCompleted}, nil
}

// fail moves a pending transaction to failed and credits the debited amount
// back, in one DB transaction.
func (s *ReconcilerServiceImpl) fail(ctx context.Context, txn *domain.TollTransaction) (*ports.IPNResult, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock order matches the settlement path: vehicle row first.
	vehicle, err := s.vehicleRepo.GetByIDForUpdate(ctx, dbTx, txn.VehicleID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock vehicle: %w", err))
	}

	transitioned, err := s.txRepo.FinalizeIfPending(ctx, dbTx, txn.ID, domain.TransactionStatusFailed)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("finalize transaction: %w", err))
	}
	if !transitioned {
		// Already terminal: commit nothing, acknowledge.
		if err := dbTx.Commit(ctx); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
		}
		s.log.Info().Str("tx_id", txn.ID.String()).Msg("ipn: transaction already terminal")
		return &ports.IPNResult{TransactionID: txn.ID, Outcome: ports.IPNOutcomeNoop}, nil
	}

	// The credit only runs on the first transition, so a replayed failure
	// cannot double-refund.
	if vehicle != nil {
		if err := s.vehicleRepo.UpdateBalance(ctx, dbTx, vehicle.ID, vehicle.TollBalance.Add(txn.Amount)); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("credit balance: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("external_id", txn.ExternalID).
		Str("refunded", txn.Amount.String()).
		Msg("ipn: crypto toll failed, balance credited back")

	return &ports.IPNResult{TransactionID: txn.ID, Outcome: ports.IPNOutcomeFailed}, nil
}

// notifyConfirmed delivers the confirmation email best-effort.
func (s *ReconcilerServiceImpl) notifyConfirmed(txn *domain.TollTransaction) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	vehicle, err := s.vehicleRepo.GetByID(ctx, txn.VehicleID)
	if err != nil || vehicle == nil || vehicle.OwnerEmail == "" {
		return
	}
	if err := s.notifier.PaymentConfirmation(ctx, vehicle.OwnerEmail, txn, ""); err != nil {
		s.log.Warn().Err(err).Str("tx_id", txn.ID.String()).Msg("ipn: confirmation email failed")
	}
}

// payloadDigest fingerprints the raw callback bytes for replay detection.
func payloadDigest(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

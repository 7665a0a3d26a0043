package service

import (
	"context"
	"testing"
	"time"

	"fleet-toll-gateway/internal/core/domain"
	"fleet-toll-gateway/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const reminderWindow = 30 * 24 * time.Hour

func TestReminderService_Sweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vehicleRepo := mocks.NewMockVehicleRepository(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	svc := NewReminderService(vehicleRepo, notifier, time.Hour, reminderWindow, zerolog.Nop())

	ctx := context.Background()
	soon := time.Now().Add(5 * 24 * time.Hour)
	vehicles := []domain.Vehicle{
		{ID: uuid.New(), OwnerEmail: "a@example.com", InsuranceExpiry: &soon},
		{ID: uuid.New(), OwnerEmail: "b@example.com", NextTechnicalCheck: &soon},
	}

	vehicleRepo.EXPECT().ListExpiring(ctx, reminderWindow).Return(vehicles, nil)
	notifier.EXPECT().MaintenanceReminder(ctx, "a@example.com", &vehicles[0]).Return(nil)
	notifier.EXPECT().MaintenanceReminder(ctx, "b@example.com", &vehicles[1]).Return(nil)

	svc.Sweep(ctx)
}

func TestReminderService_Sweep_SkipsMissingEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vehicleRepo := mocks.NewMockVehicleRepository(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	svc := NewReminderService(vehicleRepo, notifier, time.Hour, reminderWindow, zerolog.Nop())

	ctx := context.Background()
	soon := time.Now().Add(24 * time.Hour)
	vehicles := []domain.Vehicle{
		{ID: uuid.New(), OwnerEmail: "", InsuranceExpiry: &soon},
	}

	vehicleRepo.EXPECT().ListExpiring(ctx, reminderWindow).Return(vehicles, nil)
	// No notifier call expected.

	svc.Sweep(ctx)
}

func TestReminderService_Sweep_ContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vehicleRepo := mocks.NewMockVehicleRepository(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	svc := NewReminderService(vehicleRepo, notifier, time.Hour, reminderWindow, zerolog.Nop())

	ctx := context.Background()
	soon := time.Now().Add(24 * time.Hour)
	vehicles := []domain.Vehicle{
		{ID: uuid.New(), OwnerEmail: "a@example.com", InsuranceExpiry: &soon},
		{ID: uuid.New(), OwnerEmail: "b@example.com", InsuranceExpiry: &soon},
	}

	vehicleRepo.EXPECT().ListExpiring(ctx, reminderWindow).Return(vehicles, nil)
	notifier.EXPECT().MaintenanceReminder(ctx, "a@example.com", &vehicles[0]).Return(assert.AnError)
	notifier.EXPECT().MaintenanceReminder(ctx, "b@example.com", &vehicles[1]).Return(nil)

	svc.Sweep(ctx)
}

func TestReminderService_Sweep_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vehicleRepo := mocks.NewMockVehicleRepository(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	svc := NewReminderService(vehicleRepo, notifier, time.Hour, reminderWindow, zerolog.Nop())

	ctx := context.Background()
	vehicleRepo.EXPECT().ListExpiring(ctx, reminderWindow).Return(nil, assert.AnError)

	svc.Sweep(ctx)
}

func TestReminderService_Run_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vehicleRepo := mocks.NewMockVehicleRepository(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	svc := NewReminderService(vehicleRepo, notifier, time.Hour, reminderWindow, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())

	// The immediate sweep on start.
	vehicleRepo.EXPECT().ListExpiring(ctx, reminderWindow).Return(nil, nil)

	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reminder loop did not stop after cancel")
	}
}

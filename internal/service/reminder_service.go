package service

import (
	"context"
	"time"

	"fleet-toll-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

// ReminderService periodically emails owners whose vehicle insurance or
// technical control falls due within the configured window.
type ReminderService struct {
	vehicleRepo ports.VehicleRepository
	notifier    ports.Notifier
	interval    time.Duration
	window      time.Duration
	log         zerolog.Logger
}

// NewReminderService creates a new ReminderService.
func NewReminderService(
	vehicleRepo ports.VehicleRepository,
	notifier ports.Notifier,
	interval time.Duration,
	window time.Duration,
	log zerolog.Logger,
) *ReminderService {
	return &ReminderService{
		vehicleRepo: vehicleRepo,
		notifier:    notifier,
		interval:    interval,
		window:      window,
		log:         log,
	}
}

// Run executes the reminder loop until ctx is cancelled. One sweep runs
// immediately on start.
func (s *ReminderService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("reminder: loop stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep sends one round of reminders. Delivery failures are logged and do not
// stop the sweep; the next run retries naturally.
func (s *ReminderService) Sweep(ctx context.Context) {
	vehicles, err := s.vehicleRepo.ListExpiring(ctx, s.window)
	if err != nil {
		s.log.Error().Err(err).Msg("reminder: listing expiring vehicles failed")
		return
	}
	if len(vehicles) == 0 {
		s.log.Debug().Msg("reminder: nothing due")
		return
	}

	sent := 0
	for i := range vehicles {
		v := &vehicles[i]
		if v.OwnerEmail == "" {
			continue
		}
		if err := s.notifier.MaintenanceReminder(ctx, v.OwnerEmail, v); err != nil {
			s.log.Warn().Err(err).
				Str("vehicle_id", v.ID.String()).
				Msg("reminder: email failed")
			continue
		}
		sent++
	}

	s.log.Info().
		Int("due", len(vehicles)).
		Int("sent", sent).
		Msg("reminder: sweep finished")
}

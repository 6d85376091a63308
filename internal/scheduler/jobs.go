package scheduler

import (
	"context"

	"github.com/univera/univera/internal/app/services"
	"github.com/univera/univera/internal/pkg/logger"
)

// OverdueSweepJob refreshes the accrued fine on every open overdue loan.
type OverdueSweepJob struct {
	libraryService *services.LibraryService
}

// NewOverdueSweepJob creates a new OverdueSweepJob.
func NewOverdueSweepJob(libraryService *services.LibraryService) *OverdueSweepJob {
	return &OverdueSweepJob{libraryService: libraryService}
}

func (j *OverdueSweepJob) Name() string { return "library-overdue-sweep" }

func (j *OverdueSweepJob) Description() string {
	return "Recomputes fines on open overdue book loans"
}

func (j *OverdueSweepJob) Run(ctx context.Context) error {
	updated, err := j.libraryService.SweepOverdues(ctx)
	if err != nil {
		return err
	}
	if updated > 0 {
		logger.Info().Int("updated", updated).Msg("Overdue fines refreshed")
	}
	return nil
}

// ReservationSweepJob expires pending book reservations whose pickup
// window has lapsed.
type ReservationSweepJob struct {
	libraryService *services.LibraryService
}

// NewReservationSweepJob creates a new ReservationSweepJob.
func NewReservationSweepJob(libraryService *services.LibraryService) *ReservationSweepJob {
	return &ReservationSweepJob{libraryService: libraryService}
}

func (j *ReservationSweepJob) Name() string { return "library-reservation-sweep" }

func (j *ReservationSweepJob) Description() string {
	return "Expires book reservations past their pickup window"
}

func (j *ReservationSweepJob) Run(ctx context.Context) error {
	expired, err := j.libraryService.SweepExpiredReservations(ctx)
	if err != nil {
		return err
	}
	if expired > 0 {
		logger.Info().Int64("expired", expired).Msg("Stale reservations expired")
	}
	return nil
}

// FeeReminderJob records reminders for students still owing against fee
// structures whose due date has passed.
type FeeReminderJob struct {
	wizardService *services.WizardService
}

// NewFeeReminderJob creates a new FeeReminderJob.
func NewFeeReminderJob(wizardService *services.WizardService) *FeeReminderJob {
	return &FeeReminderJob{wizardService: wizardService}
}

func (j *FeeReminderJob) Name() string { return "fee-reminder-sweep" }

func (j *FeeReminderJob) Description() string {
	return "Sends reminders for unpaid dues past their deadline"
}

func (j *FeeReminderJob) Run(ctx context.Context) error {
	sent, err := j.wizardService.SweepDueReminders(ctx)
	if err != nil {
		return err
	}
	if sent > 0 {
		logger.Info().Int("sent", sent).Msg("Fee reminders recorded")
	}
	return nil
}

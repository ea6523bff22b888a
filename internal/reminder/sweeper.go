package reminder

import (
	"context"
	"time"

	"leadbot_backend/internal/leads"
	"leadbot_backend/platform/logger"
)

// Sender delivers a nudge to a sender identity. Failures are logged and the
// record is retried on the next sweep because its counter never advanced.
type Sender interface {
	Send(ctx context.Context, identity string, message string) error
}

// nudgeMessages is indexed by the reminder count at send time. The last
// entry is reused if more tiers are configured than messages written.
var nudgeMessages = []string{
	"¡Hola! 👋 Tu solicitud de préstamo sigue pendiente. Solo nos faltan las fotos de tu garantía para continuar. Envíalas por este chat cuando puedas. 📸",
	"Tu solicitud sigue en espera de las fotos de tu garantía. Envíanoslas para avanzar, o escribe *cancelar* si ya no deseas continuar. 📸",
}

// Sweeper walks leads stalled waiting for photos and nudges their senders.
type Sweeper struct {
	repo   leads.Repository
	sender Sender
	tiers  []time.Duration
	window ActiveWindow
	now    func() time.Time
	log    *logger.Logger
}

func NewSweeper(repo leads.Repository, sender Sender, tiers []time.Duration, window ActiveWindow, log *logger.Logger) *Sweeper {
	return &Sweeper{
		repo:   repo,
		sender: sender,
		tiers:  tiers,
		window: window,
		now:    time.Now,
		log:    log,
	}
}

// Sweep sends at most one nudge per eligible record. Outside the active
// window it does nothing; due reminders wait for the next in-window sweep.
// The counter is written right after a successful send, so a crash between
// send and write can repeat a nudge but never skip one.
func (s *Sweeper) Sweep(ctx context.Context) error {
	now := s.now()
	if !s.window.Contains(now) {
		return nil
	}

	records, err := s.repo.ScanStalled(ctx, leads.StageAwaitingPhotos)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if !s.due(rec, now) {
			continue
		}

		message := nudgeMessages[min(rec.ReminderCount, len(nudgeMessages)-1)]
		if err := s.sender.Send(ctx, rec.SenderIdentity, message); err != nil {
			s.log.DispatchError(rec.SenderIdentity, err)
			continue
		}

		count := rec.ReminderCount + 1
		sentAt := now
		err := s.repo.Update(ctx, rec.ID, leads.Patch{
			ReminderCount:  &count,
			LastReminderAt: &sentAt,
		})
		if err != nil {
			s.log.PersistenceError("reminder_counter_update", err)
		}
	}

	return nil
}

// due filters out records that already got photos, exhausted their tiers,
// or are mid-write and missing required fields.
func (s *Sweeper) due(rec leads.LeadRecord, now time.Time) bool {
	if rec.SenderIdentity == "" || rec.ContactedAt.IsZero() {
		return false
	}
	if len(rec.PhotoURLs) > 0 {
		return false
	}
	if rec.ReminderCount >= len(s.tiers) {
		return false
	}

	anchor := rec.ContactedAt
	if rec.LastReminderAt != nil {
		anchor = *rec.LastReminderAt
	}
	return now.Sub(anchor) >= s.tiers[rec.ReminderCount]
}

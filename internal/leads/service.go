package leads

import (
	"context"
	"fmt"
	"time"

	"leadbot_backend/platform/apperr"
	"leadbot_backend/platform/logger"

	"github.com/google/uuid"
)

// NewLead carries the canonicalized fields captured by the dialogue when the
// first durable write happens.
type NewLead struct {
	SenderIdentity  string
	FullName        string
	CollateralKind  string
	CollateralYear  int
	RequestedAmount float64
	Location        string
}

// Service enforces lead lifecycle rules on top of the repository.
type Service struct {
	repo Repository
	log  *logger.Logger
	now  func() time.Time
}

// NewService creates the lead service.
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// HasOpenLead reports whether the sender already has an open record.
func (s *Service) HasOpenLead(ctx context.Context, identity string) (bool, error) {
	open, err := s.repo.QueryOpen(ctx, identity)
	if err != nil {
		return false, apperr.Wrap(apperr.KindUnavailable, "lead store query failed", err).WithOp("HasOpenLead")
	}
	return len(open) > 0, nil
}

// StartAwaitingPhotos performs the first durable write of a qualification
// attempt: a record in stage awaiting_photos, visible to the reminder sweep
// before any photo arrives.
func (s *Service) StartAwaitingPhotos(ctx context.Context, lead NewLead) error {
	rec := &LeadRecord{
		ID:              uuid.New(),
		SenderIdentity:  lead.SenderIdentity,
		FullName:        lead.FullName,
		CollateralKind:  lead.CollateralKind,
		CollateralYear:  lead.CollateralYear,
		RequestedAmount: lead.RequestedAmount,
		Location:        lead.Location,
		Stage:           StageAwaitingPhotos,
		ContactedAt:     s.now(),
		Owner:           OwnerBot,
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "lead append failed", err).WithOp("StartAwaitingPhotos")
	}
	return nil
}

// findAwaitingPhotos locates the sender's open awaiting_photos record.
func (s *Service) findAwaitingPhotos(ctx context.Context, identity string) (*LeadRecord, *apperr.Error) {
	open, err := s.repo.QueryOpen(ctx, identity)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "lead store query failed", err)
	}

	for i := range open {
		if open[i].Stage == StageAwaitingPhotos {
			return &open[i], nil
		}
	}
	return nil, apperr.NotFound("no open lead awaiting photos")
}

// UpdateOpenLead rewrites the captured fields on the sender's open
// awaiting_photos record after a correction. Stage, photos, and the reminder
// history are untouched; the row stays the one and only open record.
func (s *Service) UpdateOpenLead(ctx context.Context, lead NewLead) error {
	rec, aerr := s.findAwaitingPhotos(ctx, lead.SenderIdentity)
	if aerr != nil {
		return aerr.WithOp("UpdateOpenLead")
	}

	if err := s.repo.Update(ctx, rec.ID, Patch{
		FullName:        &lead.FullName,
		CollateralKind:  &lead.CollateralKind,
		CollateralYear:  &lead.CollateralYear,
		RequestedAmount: &lead.RequestedAmount,
		Location:        &lead.Location,
	}); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "lead update failed", err).WithOp("UpdateOpenLead")
	}
	return nil
}

// SavePhotos stores the accumulated photo references on the sender's open
// record without changing its stage, so a partially delivered batch is
// visible to the reminder sweep.
func (s *Service) SavePhotos(ctx context.Context, identity string, photos []string) error {
	rec, aerr := s.findAwaitingPhotos(ctx, identity)
	if aerr != nil {
		return aerr.WithOp("SavePhotos")
	}

	if err := s.repo.Update(ctx, rec.ID, Patch{PhotoURLs: photos}); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "lead update failed", err).WithOp("SavePhotos")
	}
	return nil
}

// CompleteWithPhotos updates the sender's open awaiting_photos record to
// completed with the accumulated photo references. This is an update of the
// existing row, never a second append.
func (s *Service) CompleteWithPhotos(ctx context.Context, identity string, photos []string) error {
	rec, aerr := s.findAwaitingPhotos(ctx, identity)
	if aerr != nil {
		return aerr.WithOp("CompleteWithPhotos")
	}

	completed := StageCompleted
	outcome := fmt.Sprintf("photos received: %d", len(photos))
	if err := s.repo.Update(ctx, rec.ID, Patch{
		Stage:     &completed,
		PhotoURLs: photos,
		Outcome:   &outcome,
	}); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "lead update failed", err).WithOp("CompleteWithPhotos")
	}
	return nil
}

// RequestAdvisor persists an advisor-handoff record. Idempotent per sender:
// while any open record exists, no second one is written.
func (s *Service) RequestAdvisor(ctx context.Context, identity, fullName string) error {
	hasOpen, err := s.HasOpenLead(ctx, identity)
	if err != nil {
		return err
	}
	if hasOpen {
		return apperr.Conflict("an open request already exists").WithOp("RequestAdvisor")
	}

	rec := &LeadRecord{
		ID:             uuid.New(),
		SenderIdentity: identity,
		FullName:       fullName,
		Stage:          StageAwaitingHuman,
		ContactedAt:    s.now(),
		Owner:          OwnerAdvisor,
		Notes:          "requested human contact",
	}
	if err := s.repo.Append(ctx, rec); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "lead append failed", err).WithOp("RequestAdvisor")
	}
	return nil
}

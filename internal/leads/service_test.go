package leads

import (
	"context"
	"testing"

	"leadbot_backend/platform/apperr"
	"leadbot_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	records []LeadRecord
	appends int
	updates int
	failAll bool
}

func (f *fakeRepo) Append(_ context.Context, rec *LeadRecord) error {
	if f.failAll {
		return context.DeadlineExceeded
	}
	f.appends++
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, patch Patch) error {
	if f.failAll {
		return context.DeadlineExceeded
	}
	f.updates++
	for i := range f.records {
		if f.records[i].ID != id {
			continue
		}
		if patch.FullName != nil {
			f.records[i].FullName = *patch.FullName
		}
		if patch.CollateralKind != nil {
			f.records[i].CollateralKind = *patch.CollateralKind
		}
		if patch.CollateralYear != nil {
			f.records[i].CollateralYear = *patch.CollateralYear
		}
		if patch.RequestedAmount != nil {
			f.records[i].RequestedAmount = *patch.RequestedAmount
		}
		if patch.Location != nil {
			f.records[i].Location = *patch.Location
		}
		if patch.Stage != nil {
			f.records[i].Stage = *patch.Stage
		}
		if patch.PhotoURLs != nil {
			f.records[i].PhotoURLs = patch.PhotoURLs
		}
		if patch.Outcome != nil {
			f.records[i].Outcome = *patch.Outcome
		}
	}
	return nil
}

func (f *fakeRepo) QueryOpen(_ context.Context, identity string) ([]LeadRecord, error) {
	if f.failAll {
		return nil, context.DeadlineExceeded
	}
	var open []LeadRecord
	for _, rec := range f.records {
		if rec.SenderIdentity == identity && rec.Stage.Open() {
			open = append(open, rec)
		}
	}
	return open, nil
}

func (f *fakeRepo) ScanStalled(_ context.Context, stage Stage) ([]LeadRecord, error) {
	var out []LeadRecord
	for _, rec := range f.records {
		if rec.Stage == stage {
			out = append(out, rec)
		}
	}
	return out, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, logger.New("development"))
}

func TestStartThenCompleteUpdatesNotAppends(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	lead := NewLead{
		SenderIdentity:  "+5215512345678",
		FullName:        "Juan Perez",
		CollateralKind:  "Auto",
		CollateralYear:  2020,
		RequestedAmount: 150000,
		Location:        "CDMX",
	}
	if err := svc.StartAwaitingPhotos(ctx, lead); err != nil {
		t.Fatalf("StartAwaitingPhotos: %v", err)
	}

	photos := []string{"u1", "u2", "u3", "u4"}
	if err := svc.CompleteWithPhotos(ctx, lead.SenderIdentity, photos); err != nil {
		t.Fatalf("CompleteWithPhotos: %v", err)
	}

	if repo.appends != 1 {
		t.Errorf("expected exactly 1 append, got %d", repo.appends)
	}
	if repo.updates != 1 {
		t.Errorf("expected exactly 1 update, got %d", repo.updates)
	}

	rec := repo.records[0]
	if rec.Stage != StageCompleted {
		t.Errorf("stage = %q, want %q", rec.Stage, StageCompleted)
	}
	if len(rec.PhotoURLs) != 4 {
		t.Errorf("expected 4 photo refs, got %d", len(rec.PhotoURLs))
	}
	if rec.FullName != "Juan Perez" || rec.CollateralYear != 2020 || rec.RequestedAmount != 150000 {
		t.Errorf("captured fields did not round-trip: %+v", rec)
	}
}

func TestHasOpenLead(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	open, err := svc.HasOpenLead(ctx, "+5215512345678")
	if err != nil || open {
		t.Fatalf("expected no open lead, got open=%v err=%v", open, err)
	}

	_ = svc.StartAwaitingPhotos(ctx, NewLead{SenderIdentity: "+5215512345678"})

	open, err = svc.HasOpenLead(ctx, "+5215512345678")
	if err != nil || !open {
		t.Fatalf("expected open lead, got open=%v err=%v", open, err)
	}

	_ = svc.CompleteWithPhotos(ctx, "+5215512345678", []string{"u1"})

	open, _ = svc.HasOpenLead(ctx, "+5215512345678")
	if open {
		t.Error("completed lead still counts as open")
	}
}

func TestUpdateOpenLeadRewritesFields(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_ = svc.StartAwaitingPhotos(ctx, NewLead{
		SenderIdentity:  "+5215512345678",
		FullName:        "Juan Perez",
		CollateralKind:  "Auto",
		CollateralYear:  2020,
		RequestedAmount: 150000,
		Location:        "CDMX",
	})

	corrected := NewLead{
		SenderIdentity:  "+5215512345678",
		FullName:        "Pedro Gomez",
		CollateralKind:  "Auto",
		CollateralYear:  2021,
		RequestedAmount: 200000,
		Location:        "Monterrey",
	}
	if err := svc.UpdateOpenLead(ctx, corrected); err != nil {
		t.Fatalf("UpdateOpenLead: %v", err)
	}

	if repo.appends != 1 {
		t.Fatalf("correction must not append, got %d appends", repo.appends)
	}
	rec := repo.records[0]
	if rec.FullName != "Pedro Gomez" || rec.CollateralYear != 2021 ||
		rec.RequestedAmount != 200000 || rec.Location != "Monterrey" {
		t.Errorf("corrected fields did not land: %+v", rec)
	}
	if rec.Stage != StageAwaitingPhotos {
		t.Errorf("stage = %q, must stay %q", rec.Stage, StageAwaitingPhotos)
	}
}

func TestUpdateOpenLeadWithoutOpenRecord(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	err := svc.UpdateOpenLead(context.Background(), NewLead{SenderIdentity: "+5215512345678"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSavePhotosKeepsStageOpen(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	_ = svc.StartAwaitingPhotos(ctx, NewLead{SenderIdentity: "+5215512345678"})
	if err := svc.SavePhotos(ctx, "+5215512345678", []string{"u1", "u2"}); err != nil {
		t.Fatalf("SavePhotos: %v", err)
	}

	rec := repo.records[0]
	if rec.Stage != StageAwaitingPhotos {
		t.Errorf("stage = %q, must stay %q", rec.Stage, StageAwaitingPhotos)
	}
	if len(rec.PhotoURLs) != 2 {
		t.Errorf("expected 2 photo refs, got %d", len(rec.PhotoURLs))
	}
	if repo.appends != 1 || repo.updates != 1 {
		t.Errorf("expected 1 append and 1 update, got %d/%d", repo.appends, repo.updates)
	}
}

func TestRequestAdvisorIdempotentPerIdentity(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.RequestAdvisor(ctx, "+5215512345678", "Juan Perez"); err != nil {
		t.Fatalf("first RequestAdvisor: %v", err)
	}

	err := svc.RequestAdvisor(ctx, "+5215512345678", "Juan Perez")
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on second request, got %v", err)
	}
	if repo.appends != 1 {
		t.Errorf("expected 1 append, got %d", repo.appends)
	}
}

func TestCompleteWithoutOpenLead(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	err := svc.CompleteWithPhotos(context.Background(), "+5215512345678", []string{"u1"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreFailuresSurfaceAsUnavailable(t *testing.T) {
	svc := newTestService(&fakeRepo{failAll: true})
	ctx := context.Background()

	if _, err := svc.HasOpenLead(ctx, "x"); !apperr.Is(err, apperr.KindUnavailable) {
		t.Errorf("HasOpenLead: expected unavailable, got %v", err)
	}
	if err := svc.StartAwaitingPhotos(ctx, NewLead{}); !apperr.Is(err, apperr.KindUnavailable) {
		t.Errorf("StartAwaitingPhotos: expected unavailable, got %v", err)
	}
}

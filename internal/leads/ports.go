package leads

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Patch is a partial update to a lead record. Nil pointers and nil slices
// leave the column untouched.
type Patch struct {
	FullName        *string
	CollateralKind  *string
	CollateralYear  *int
	RequestedAmount *float64
	Location        *string
	Stage           *Stage
	PhotoURLs       []string
	Outcome         *string
	Notes           *string
	ReminderCount   *int
	LastReminderAt  *time.Time
}

// Repository is the durable store contract. The store is treated as
// eventually consistent: an Append followed by a QueryOpen may not see the
// new row, so invariant checks built on it are best-effort and the schema's
// partial unique index is the hard backstop.
type Repository interface {
	Append(ctx context.Context, rec *LeadRecord) error
	Update(ctx context.Context, id uuid.UUID, patch Patch) error
	QueryOpen(ctx context.Context, senderIdentity string) ([]LeadRecord, error)
	ScanStalled(ctx context.Context, stage Stage) ([]LeadRecord, error)
}

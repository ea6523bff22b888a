// Package leads provides the durable lead record model and the business
// rules around it, most importantly the one-open-record-per-sender invariant.
package leads

import (
	"time"

	"github.com/google/uuid"
)

// Stage is the lifecycle label of a lead record.
type Stage string

const (
	StageInitialContact Stage = "initial_contact"
	StageQualifying     Stage = "qualifying"
	StageAwaitingPhotos Stage = "awaiting_photos"
	StageAwaitingHuman  Stage = "awaiting_human_contact"
	StageCompleted      Stage = "completed"
	StageNotViable      Stage = "not_viable"
)

// Open reports whether a record in this stage still blocks a new
// qualification attempt for the same sender.
func (s Stage) Open() bool {
	return s != StageCompleted && s != StageNotViable
}

// Owner tags who currently drives the conversation for a lead.
type Owner string

const (
	OwnerBot     Owner = "bot"
	OwnerAdvisor Owner = "advisor"
)

// LeadRecord is one durable qualification attempt.
type LeadRecord struct {
	ID              uuid.UUID
	SenderIdentity  string
	FullName        string
	CollateralKind  string
	CollateralYear  int
	RequestedAmount float64
	Location        string
	Stage           Stage
	ContactedAt     time.Time
	Owner           Owner
	Outcome         string
	Notes           string
	PhotoURLs       []string
	ReminderCount   int
	LastReminderAt  *time.Time
}

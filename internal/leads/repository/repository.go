// Package repository provides postgres data access for lead records.
package repository

import (
	"context"
	"fmt"
	"strings"

	"leadbot_backend/internal/leads"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const leadColumns = `
	id, sender_identity, full_name, collateral_kind, collateral_year,
	requested_amount, location, stage, contacted_at, owner, outcome, notes,
	photo_urls, reminder_count, last_reminder_at`

// Repository provides data access for lead records.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new lead repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Append inserts a new lead record. The partial unique index on open records
// rejects a second open row for the same sender, backing up the best-effort
// duplicate check done before the write.
func (r *Repository) Append(ctx context.Context, rec *leads.LeadRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO leads (
			id, sender_identity, full_name, collateral_kind, collateral_year,
			requested_amount, location, stage, contacted_at, owner, outcome,
			notes, photo_urls, reminder_count, last_reminder_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		rec.ID, rec.SenderIdentity, rec.FullName, rec.CollateralKind,
		rec.CollateralYear, rec.RequestedAmount, rec.Location, rec.Stage,
		rec.ContactedAt, rec.Owner, rec.Outcome, rec.Notes,
		photoURLs(rec.PhotoURLs), rec.ReminderCount, rec.LastReminderAt,
	)
	return err
}

// Update applies a partial update to one record by ID.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch leads.Patch) error {
	sets := make([]string, 0, 11)
	args := make([]interface{}, 0, 12)

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.FullName != nil {
		addSet("full_name", *patch.FullName)
	}
	if patch.CollateralKind != nil {
		addSet("collateral_kind", *patch.CollateralKind)
	}
	if patch.CollateralYear != nil {
		addSet("collateral_year", *patch.CollateralYear)
	}
	if patch.RequestedAmount != nil {
		addSet("requested_amount", *patch.RequestedAmount)
	}
	if patch.Location != nil {
		addSet("location", *patch.Location)
	}
	if patch.Stage != nil {
		addSet("stage", *patch.Stage)
	}
	if patch.PhotoURLs != nil {
		addSet("photo_urls", patch.PhotoURLs)
	}
	if patch.Outcome != nil {
		addSet("outcome", *patch.Outcome)
	}
	if patch.Notes != nil {
		addSet("notes", *patch.Notes)
	}
	if patch.ReminderCount != nil {
		addSet("reminder_count", *patch.ReminderCount)
	}
	if patch.LastReminderAt != nil {
		addSet("last_reminder_at", *patch.LastReminderAt)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE leads SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// QueryOpen returns all open records for a sender.
func (r *Repository) QueryOpen(ctx context.Context, senderIdentity string) ([]leads.LeadRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE sender_identity = $1
		  AND stage NOT IN ($2, $3)
		ORDER BY contacted_at
	`, senderIdentity, leads.StageCompleted, leads.StageNotViable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ScanStalled returns all records currently in the given stage, oldest first.
func (r *Repository) ScanStalled(ctx context.Context, stage leads.Stage) ([]leads.LeadRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE stage = $1
		ORDER BY contacted_at
	`, stage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]leads.LeadRecord, error) {
	var records []leads.LeadRecord
	for rows.Next() {
		var rec leads.LeadRecord
		if err := rows.Scan(
			&rec.ID, &rec.SenderIdentity, &rec.FullName, &rec.CollateralKind,
			&rec.CollateralYear, &rec.RequestedAmount, &rec.Location, &rec.Stage,
			&rec.ContactedAt, &rec.Owner, &rec.Outcome, &rec.Notes,
			&rec.PhotoURLs, &rec.ReminderCount, &rec.LastReminderAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func photoURLs(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}

// Compile-time check that Repository satisfies the leads port.
var _ leads.Repository = (*Repository)(nil)

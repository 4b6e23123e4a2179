// Package database provides database operations for the training eligibility engine.
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
)

// LeadRepository handles lead database operations.
type LeadRepository struct {
	db *DB
}

// NewLeadRepository creates a new lead repository.
func NewLeadRepository(db *DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create inserts a captured lead into the database.
func (r *LeadRepository) Create(ctx context.Context, lead *models.LeadCreate) (int64, error) {
	profileJSON, err := json.Marshal(lead.Profile)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `
		INSERT INTO leads (
			lead_id, name, email, phone, profile,
			best_course_id, best_score, is_eligible, status, source,
			batch_id, check_completed_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		ON CONFLICT (email) DO UPDATE SET
			lead_id = EXCLUDED.lead_id,
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			profile = EXCLUDED.profile,
			best_course_id = EXCLUDED.best_course_id,
			best_score = EXCLUDED.best_score,
			is_eligible = EXCLUDED.is_eligible,
			status = EXCLUDED.status,
			source = EXCLUDED.source,
			batch_id = EXCLUDED.batch_id,
			check_completed_at = EXCLUDED.check_completed_at,
			updated_at = EXCLUDED.updated_at
		RETURNING id`

	var id int64
	now := time.Now().UTC()

	err = r.db.QueryRowContext(ctx, query,
		lead.LeadID,
		lead.Name,
		lead.Email,
		lead.Phone,
		string(profileJSON),
		lead.BestCourseID,
		lead.BestScore,
		lead.IsEligible,
		string(lead.Status),
		string(lead.Source),
		lead.BatchID,
		lead.CheckCompletedAt,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create lead: %w", err)
	}

	return id, nil
}

// BulkInsert inserts multiple leads into the database.
func (r *LeadRepository) BulkInsert(ctx context.Context, leads []*models.LeadCreate) (*models.BulkInsertResult, error) {
	result := &models.BulkInsertResult{
		Errors: []string{},
	}

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		now := time.Now().UTC()

		for _, lead := range leads {
			profileJSON, err := json.Marshal(lead.Profile)
			if err != nil {
				result.FailedCount++
				result.Errors = append(result.Errors, fmt.Sprintf("lead %s: %v", lead.Email, err))
				continue
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO leads (
					lead_id, name, email, phone, profile,
					best_course_id, best_score, is_eligible, status, source,
					batch_id, check_completed_at, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
				ON CONFLICT (email) DO UPDATE SET
					best_course_id = EXCLUDED.best_course_id,
					best_score = EXCLUDED.best_score,
					is_eligible = EXCLUDED.is_eligible,
					batch_id = EXCLUDED.batch_id,
					updated_at = EXCLUDED.updated_at`,
				lead.LeadID,
				lead.Name,
				lead.Email,
				lead.Phone,
				string(profileJSON),
				lead.BestCourseID,
				lead.BestScore,
				lead.IsEligible,
				string(lead.Status),
				string(lead.Source),
				lead.BatchID,
				lead.CheckCompletedAt,
				now,
			)

			if err != nil {
				result.FailedCount++
				result.Errors = append(result.Errors, fmt.Sprintf("lead %s: %v", lead.Email, err))
			} else {
				result.InsertedCount++
			}
		}
		return nil
	})

	if err != nil {
		return result, fmt.Errorf("bulk insert failed: %w", err)
	}

	return result, nil
}

// GetByID retrieves a lead by its database ID.
func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	query := selectLeadColumns + " FROM leads WHERE id = $1"

	lead, err := scanLead(r.db.QueryRowContext(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return lead, nil
}

// GetByEmail retrieves a lead by email address.
func (r *LeadRepository) GetByEmail(ctx context.Context, email string) (*models.Lead, error) {
	query := selectLeadColumns + " FROM leads WHERE email = $1"

	lead, err := scanLead(r.db.QueryRowContext(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return lead, nil
}

// GetByBatchID retrieves all leads from a screening batch.
func (r *LeadRepository) GetByBatchID(ctx context.Context, batchID string) ([]*models.Lead, error) {
	query := selectLeadColumns + " FROM leads WHERE batch_id = $1 ORDER BY best_score DESC"

	rows, err := r.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// GetQualified retrieves qualified leads that have not been notified yet.
func (r *LeadRepository) GetQualified(ctx context.Context, limit int) ([]*models.Lead, error) {
	query := selectLeadColumns + `
		FROM leads
		WHERE is_eligible = true AND notified_at IS NULL
		ORDER BY best_score DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query qualified leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// GetRecent retrieves the most recently captured leads.
func (r *LeadRepository) GetRecent(ctx context.Context, limit int) ([]*models.Lead, error) {
	query := selectLeadColumns + " FROM leads ORDER BY created_at DESC LIMIT $1"

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// MarkAsNotified marks a lead as notified.
func (r *LeadRepository) MarkAsNotified(ctx context.Context, leadID int64) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		"UPDATE leads SET status = 'notified', notified_at = $1, updated_at = $1 WHERE id = $2",
		now, leadID)
	return err
}

// UpdateStatus changes a lead's follow-up status.
func (r *LeadRepository) UpdateStatus(ctx context.Context, leadID int64, status models.LeadStatus) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE leads SET status = $1, updated_at = $2 WHERE id = $3",
		string(status), time.Now().UTC(), leadID)
	return err
}

// GetBatchSummary returns summary statistics for a screening batch.
func (r *LeadRepository) GetBatchSummary(ctx context.Context, batchID string) (*models.BatchLeadSummary, error) {
	summary := &models.BatchLeadSummary{
		BatchID: batchID,
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) as total_leads,
			COUNT(CASE WHEN is_eligible THEN 1 END) as qualified_leads,
			COALESCE(AVG(best_score), 0) as avg_best_score
		FROM leads
		WHERE batch_id = $1`,
		batchID).Scan(
		&summary.TotalLeads,
		&summary.QualifiedLeads,
		&summary.AvgBestScore,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch summary: %w", err)
	}

	summary.TotalProspects = summary.TotalLeads
	return summary, nil
}

const selectLeadColumns = `
	SELECT id, lead_id, name, email, phone, profile,
		   best_course_id, best_score, is_eligible, status, source,
		   batch_id, check_completed_at, created_at, updated_at, notified_at`

// scanLead scans a single row into a Lead.
func scanLead(row pgx.Row) (*models.Lead, error) {
	var lead models.Lead
	var profileJSON string
	var status, source string
	var phone, bestCourseID, batchID *string

	err := row.Scan(
		&lead.ID,
		&lead.LeadID,
		&lead.Name,
		&lead.Email,
		&phone,
		&profileJSON,
		&bestCourseID,
		&lead.BestScore,
		&lead.IsEligible,
		&status,
		&source,
		&batchID,
		&lead.CheckCompletedAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&lead.NotifiedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Status = models.LeadStatus(status)
	lead.Source = models.LeadSource(source)
	if phone != nil {
		lead.Phone = *phone
	}
	if bestCourseID != nil {
		lead.BestCourseID = *bestCourseID
	}
	if batchID != nil {
		lead.BatchID = *batchID
	}

	if profileJSON != "" {
		if err := json.Unmarshal([]byte(profileJSON), &lead.Profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
	}

	return &lead, nil
}

// scanLeads scans all rows into a Lead slice.
func scanLeads(rows pgx.Rows) ([]*models.Lead, error) {
	var leads []*models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

// Package models defines the data structures for the training eligibility engine.
package models

import (
	"time"
)

// LeadStatus represents the follow-up status of a captured lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusNotified  LeadStatus = "notified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusClosed    LeadStatus = "closed"
)

// LeadSource indicates which tool captured the lead.
type LeadSource string

const (
	LeadSourceEligibilityChecker LeadSource = "eligibility_checker"
	LeadSourceCSVBatch           LeadSource = "csv_batch"
	LeadSourceManual             LeadSource = "manual"
)

// Lead represents a captured lead with its eligibility snapshot.
type Lead struct {
	ID              int64       `json:"id" db:"id"`
	LeadID          string      `json:"lead_id" db:"lead_id"`
	Name            string      `json:"name" db:"name"`
	Email           string      `json:"email" db:"email"`
	Phone           string      `json:"phone,omitempty" db:"phone"`
	Profile         UserProfile `json:"profile"`
	BestCourseID    string      `json:"best_course_id,omitempty" db:"best_course_id"`
	BestScore       int         `json:"best_score" db:"best_score"`
	IsEligible      bool        `json:"is_eligible" db:"is_eligible"`
	Status          LeadStatus  `json:"status" db:"status"`
	Source          LeadSource  `json:"source" db:"source"`
	BatchID         string      `json:"batch_id,omitempty" db:"batch_id"`
	CheckCompletedAt time.Time  `json:"check_completed_at" db:"check_completed_at"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
	NotifiedAt      *time.Time  `json:"notified_at,omitempty" db:"notified_at"`
}

// LeadCreate represents data needed to capture a new lead.
type LeadCreate struct {
	LeadID           string      `json:"lead_id" validate:"required"`
	Name             string      `json:"name" validate:"required,min=1,max=100"`
	Email            string      `json:"email" validate:"required,email"`
	Phone            string      `json:"phone,omitempty"`
	Profile          UserProfile `json:"profile"`
	BestCourseID     string      `json:"best_course_id,omitempty"`
	BestScore        int         `json:"best_score" validate:"gte=0,lte=100"`
	IsEligible       bool        `json:"is_eligible"`
	Status           LeadStatus  `json:"status"`
	Source           LeadSource  `json:"source"`
	BatchID          string      `json:"batch_id,omitempty"`
	CheckCompletedAt time.Time   `json:"check_completed_at"`
}

// LeadWithResults pairs a lead with its full per-course breakdown.
type LeadWithResults struct {
	Lead
	Results []EligibilityResult `json:"results"`
}

// BatchLeadSummary provides summary statistics for one screening batch.
type BatchLeadSummary struct {
	BatchID               string  `json:"batch_id"`
	TotalProspects        int     `json:"total_prospects"`
	TotalLeads            int     `json:"total_leads"`
	QualifiedLeads        int     `json:"qualified_leads"`
	AvgBestScore          float64 `json:"avg_best_score"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

// CaptureFromCheck builds a LeadCreate from contact details and a completed check.
func CaptureFromCheck(leadID, name, email, phone string, check *EligibilityCheckResult, source LeadSource, batchID string) *LeadCreate {
	lead := &LeadCreate{
		LeadID:           leadID,
		Name:             name,
		Email:            email,
		Phone:            phone,
		Profile:          check.UserProfile,
		Status:           LeadStatusNew,
		Source:           source,
		BatchID:          batchID,
		CheckCompletedAt: check.CompletedAt,
	}

	if best := check.BestResult(); best != nil {
		lead.BestCourseID = best.CourseID
		lead.BestScore = best.EligibilityScore
		lead.IsEligible = best.IsEligible
		if best.IsEligible {
			lead.Status = LeadStatusQualified
		}
	}

	return lead
}

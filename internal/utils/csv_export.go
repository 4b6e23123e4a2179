// Package utils provides utility functions for the training eligibility engine.
package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
)

// exportHeader is the column order for lead export files.
var exportHeader = []string{
	"lead_id",
	"name",
	"email",
	"phone",
	"age",
	"education",
	"experience",
	"medical_status",
	"english_proficiency",
	"previous_training",
	"location",
	"best_course_id",
	"best_score",
	"is_eligible",
	"status",
	"batch_id",
	"check_completed_at",
}

// BuildLeadExportCSV renders captured leads as a CSV document for the
// admissions team.
func BuildLeadExportCSV(leads []*models.Lead) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeader); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for _, lead := range leads {
		record := []string{
			lead.LeadID,
			lead.Name,
			lead.Email,
			lead.Phone,
			fmt.Sprintf("%d", lead.Profile.Age),
			string(lead.Profile.Education),
			string(lead.Profile.Experience),
			string(lead.Profile.MedicalStatus),
			string(lead.Profile.EnglishProficiency),
			strings.Join(lead.Profile.PreviousTraining, ";"),
			lead.Profile.Location,
			lead.BestCourseID,
			fmt.Sprintf("%d", lead.BestScore),
			fmt.Sprintf("%t", lead.IsEligible),
			string(lead.Status),
			lead.BatchID,
			lead.CheckCompletedAt.UTC().Format(time.RFC3339),
		}

		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write lead %s: %w", lead.LeadID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export: %w", err)
	}

	return buf.String(), nil
}

// ExportKey builds the S3 object key for a lead export file.
func ExportKey(batchID string, at time.Time) string {
	if batchID == "" {
		batchID = "all"
	}
	return fmt.Sprintf("exports/leads_%s_%s.csv", batchID, at.UTC().Format("20060102T150405"))
}

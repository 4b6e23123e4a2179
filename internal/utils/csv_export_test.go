package utils_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/utils"
)

func TestBuildLeadExportCSV(t *testing.T) {
	completed := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)

	leads := []*models.Lead{
		{
			LeadID: "lead-1",
			Name:   "Asha Verma",
			Email:  "asha@example.com",
			Profile: models.UserProfile{
				Age:                21,
				Education:          models.Education12thPCM,
				Experience:         models.ExperienceNone,
				MedicalStatus:      models.MedicalFit,
				EnglishProficiency: models.EnglishIntermediate,
				PreviousTraining:   []string{models.TrainingRTR},
			},
			BestCourseID:     "cpl",
			BestScore:        100,
			IsEligible:       true,
			Status:           models.LeadStatusQualified,
			BatchID:          "batch-1",
			CheckCompletedAt: completed,
		},
	}

	content, err := utils.BuildLeadExportCSV(leads)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus one lead")

	header := records[0]
	assert.Equal(t, "lead_id", header[0])
	assert.Equal(t, "email", header[2])

	row := records[1]
	assert.Equal(t, "lead-1", row[0])
	assert.Equal(t, "asha@example.com", row[2])
	assert.Equal(t, "100", row[12])
	assert.Equal(t, "true", row[13])
	assert.Equal(t, "2026-08-20T10:30:00Z", row[16])
}

func TestBuildLeadExportCSV_Empty(t *testing.T) {
	content, err := utils.BuildLeadExportCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}

func TestExportKey(t *testing.T) {
	at := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "exports/leads_batch-1_20260820T103000.csv", utils.ExportKey("batch-1", at))
	assert.Equal(t, "exports/leads_all_20260820T103000.csv", utils.ExportKey("", at))
}
